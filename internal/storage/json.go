package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/pstuifzand/tui-treelist/internal/model"
)

// Document is the on-disk form of a tree list
type Document struct {
	Title  string  `json:"title"`
	Groups []Group `json:"groups"`
}

// Group is a header with its rows
type Group struct {
	Title    string `json:"title"`
	Expanded *bool  `json:"expanded,omitempty"` // nil means expanded
	Items    []Item `json:"items,omitempty"`
}

// Item is a single selectable row
type Item struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
	Exclude  bool   `json:"exclude,omitempty"`
}

// JSONStore handles JSON file persistence
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load reads a document. A missing file yields an empty document.
func (s *JSONStore) Load() (*Document, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{Title: "Untitled"}, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if doc.Title == "" {
		doc.Title = "Untitled"
	}

	return &doc, nil
}

// Save writes a document to the store's file
func (s *JSONStore) Save(doc *Document) error {
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// FileExists checks if the document file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

// Populate replaces the contents of tree with the document's groups
func (d *Document) Populate(tree *model.Tree) {
	tree.ClearAll()
	for _, g := range d.Groups {
		header := tree.AddHeader(g.Title)
		for _, it := range g.Items {
			child := tree.AddChild(header, it.Title, it.Subtitle)
			child.Enabled = !it.Disabled
			child.ExcludeFromMultiSelection = it.Exclude
		}
		if g.Expanded != nil && !*g.Expanded {
			tree.Collapse(header)
		}
	}
}

// DocumentFromTree captures the current contents of tree
func DocumentFromTree(title string, tree *model.Tree) *Document {
	doc := &Document{Title: title}
	for _, h := range tree.Headers() {
		g := Group{Title: h.Title}
		if !h.Expanded() {
			collapsed := false
			g.Expanded = &collapsed
		}
		for _, c := range h.Children() {
			g.Items = append(g.Items, Item{
				Title:    c.Title,
				Subtitle: c.Subtitle,
				Disabled: !c.Enabled,
				Exclude:  c.ExcludeFromMultiSelection,
			})
		}
		doc.Groups = append(doc.Groups, g)
	}
	return doc
}
