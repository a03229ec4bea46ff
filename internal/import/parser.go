package import_parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-treelist/internal/storage"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown     ImportFormat = "markdown"
	FormatIndentedText ImportFormat = "indented"
)

// defaultGroup holds items that appear before the first group
const defaultGroup = "Items"

// Parser interface for different import formats
type Parser interface {
	Parse(content string) (*storage.Document, error)
	Name() string
}

// ImportFile parses content into a document with the given format
func ImportFile(content string, format ImportFormat) (*storage.Document, error) {
	var parser Parser

	switch format {
	case FormatMarkdown:
		parser = &MarkdownParser{}
	case FormatIndentedText:
		parser = &IndentedTextParser{}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	doc, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}
	if doc.Title == "" {
		doc.Title = "Untitled"
	}

	return doc, nil
}

// DetectFormat detects the file format from the extension. It reports false
// for files that are not imported.
func DetectFormat(filename string) (ImportFormat, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown, true
	case ".txt":
		return FormatIndentedText, true
	}
	return "", false
}

// builder collects groups and items while a parser walks the input
type builder struct {
	doc *storage.Document
}

func newBuilder() *builder {
	return &builder{doc: &storage.Document{}}
}

func (b *builder) addGroup(title string) {
	b.doc.Groups = append(b.doc.Groups, storage.Group{Title: title})
}

func (b *builder) addItem(title string) {
	if len(b.doc.Groups) == 0 {
		b.addGroup(defaultGroup)
	}
	g := &b.doc.Groups[len(b.doc.Groups)-1]
	g.Items = append(g.Items, storage.Item{Title: title})
}

// addDetail appends text to the subtitle of the last item, or adds an item
// when the current group has none
func (b *builder) addDetail(text string) {
	if len(b.doc.Groups) == 0 || len(b.doc.Groups[len(b.doc.Groups)-1].Items) == 0 {
		b.addItem(text)
		return
	}
	g := &b.doc.Groups[len(b.doc.Groups)-1]
	item := &g.Items[len(g.Items)-1]
	if item.Subtitle == "" {
		item.Subtitle = text
	} else {
		item.Subtitle += " " + text
	}
}

// indentLevel calculates the indentation level (0-based).
// Counts tabs and spaces (tab = 2 spaces, 2 spaces = 1 level).
func indentLevel(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			indent += 2
		} else if line[i] == ' ' {
			indent++
		} else {
			break
		}
	}
	return indent / 2
}
