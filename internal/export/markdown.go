package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pstuifzand/tui-treelist/internal/model"
)

// TreeToMarkdown renders the whole tree: the title as a level 1 heading, each
// group as a level 2 heading and its items as bullets. A subtitle becomes a
// nested bullet below its item.
func TreeToMarkdown(title string, tree *model.Tree) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n")

	for _, header := range tree.Headers() {
		writeGroup(&sb, header, header.Children())
	}
	return sb.String()
}

// SelectionToMarkdown renders the given nodes grouped under their headers.
// Nodes are expected in tree order, as returned by the selection engine.
func SelectionToMarkdown(tree *model.Tree, nodes []*model.Node) string {
	var sb strings.Builder

	var header *model.Node
	var items []*model.Node
	for _, n := range nodes {
		if !n.IsChild() {
			continue
		}
		parent := tree.Parent(n)
		if parent != header && header != nil {
			writeGroup(&sb, header, items)
			items = nil
		}
		header = parent
		items = append(items, n)
	}
	if header != nil {
		writeGroup(&sb, header, items)
	}
	return sb.String()
}

func writeGroup(sb *strings.Builder, header *model.Node, items []*model.Node) {
	sb.WriteString("\n## ")
	sb.WriteString(header.Title)
	sb.WriteString("\n\n")

	for _, item := range items {
		writeItemAsMarkdown(sb, item)
	}
}

// writeItemAsMarkdown writes an item bullet. Items with an empty title are skipped.
func writeItemAsMarkdown(sb *strings.Builder, item *model.Node) {
	if strings.TrimSpace(item.Title) == "" {
		return
	}

	sb.WriteString("- ")
	sb.WriteString(item.Title)
	sb.WriteString("\n")

	if item.Subtitle != "" {
		sb.WriteString("  - ")
		sb.WriteString(item.Subtitle)
		sb.WriteString("\n")
	}
}

// ExportToMarkdown writes rendered markdown to filePath
func ExportToMarkdown(content, filePath string) error {
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}
