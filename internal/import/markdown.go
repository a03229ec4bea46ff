package import_parser

import (
	"bufio"
	"strings"

	"github.com/pstuifzand/tui-treelist/internal/storage"
)

// MarkdownParser imports markdown files. When the file has level 2 headings
// the level 1 heading is the title and level 2 headings are groups,
// otherwise every heading is a group. Top-level bullets and plain lines are
// items, nested bullets extend the subtitle of the item above them.
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

// Parse converts markdown content to a document
func (p *MarkdownParser) Parse(content string) (*storage.Document, error) {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	hasSections := false
	for _, line := range lines {
		if level, _ := parseHeader(line); level == 1 {
			hasSections = true
			break
		}
	}

	b := newBuilder()
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if level, text := parseHeader(line); level >= 0 {
			if level == 0 && hasSections {
				if b.doc.Title == "" {
					b.doc.Title = text
				}
				continue
			}
			b.addGroup(text)
			continue
		}

		if level, text := parseListItem(line); level >= 0 {
			if level == 0 {
				b.addItem(text)
			} else {
				b.addDetail(text)
			}
			continue
		}

		b.addItem(strings.TrimSpace(line))
	}

	return b.doc, nil
}

// parseHeader extracts the 0-based level and text from a markdown header.
// Returns -1 when line is not a header.
func parseHeader(line string) (level int, text string) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level == len(line) || line[level] != ' ' {
		return -1, ""
	}

	return level - 1, strings.TrimSpace(line[level:])
}

// parseListItem extracts indentation level and text from a list item.
// Returns -1 when line is not a list item.
func parseListItem(line string) (level int, text string) {
	trimmed := strings.TrimSpace(line)

	if len(trimmed) > 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		return indentLevel(line), strings.TrimSpace(trimmed[2:])
	}

	return -1, ""
}
