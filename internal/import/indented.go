package import_parser

import (
	"bufio"
	"strings"

	"github.com/pstuifzand/tui-treelist/internal/storage"
)

// IndentedTextParser imports plain text where unindented lines are groups,
// lines indented once are items and deeper lines extend the item's subtitle
type IndentedTextParser struct{}

func (p *IndentedTextParser) Name() string {
	return "Indented Text"
}

// Parse converts indented text to a document
func (p *IndentedTextParser) Parse(content string) (*storage.Document, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	b := newBuilder()

	for scanner.Scan() {
		line := scanner.Text()
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		switch level := indentLevel(line); {
		case level == 0:
			b.addGroup(text)
		case level == 1:
			b.addItem(text)
		default:
			b.addDetail(text)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return b.doc, nil
}
