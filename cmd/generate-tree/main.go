package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pstuifzand/tui-treelist/internal/storage"
)

func main() {
	groups := flag.Int("groups", 10, "Number of groups to generate")
	items := flag.Int("items", 20, "Number of items per group")
	output := flag.String("output", "sample_tree.json", "Output file path")
	flag.Parse()

	if *groups < 1 || *items < 0 {
		fmt.Fprintf(os.Stderr, "groups must be at least 1 and items at least 0\n")
		os.Exit(1)
	}

	doc := generateDocument(*groups, *items)
	if err := storage.NewJSONStore(*output).Save(doc); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write document: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stat output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d groups with %d items\n", len(doc.Groups), *groups * *items)
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f KB\n", float64(info.Size())/1024)
}

// generateDocument builds groups of items numbered across the whole
// document. Every tenth item is excluded from multi-selection and every
// seventh is disabled.
func generateDocument(groups, items int) *storage.Document {
	doc := &storage.Document{Title: fmt.Sprintf("Generated (%d x %d)", groups, items)}

	n := 0
	for g := 0; g < groups; g++ {
		group := storage.Group{Title: groupTitle(g)}
		for i := 0; i < items; i++ {
			n++
			group.Items = append(group.Items, storage.Item{
				Title:    itemTitle(n),
				Subtitle: itemSubtitle(n),
				Exclude:  n%10 == 0,
				Disabled: n%7 == 0,
			})
		}
		doc.Groups = append(doc.Groups, group)
	}
	return doc
}

func groupTitle(index int) string {
	categories := []string{
		"Tables", "Views", "Queries", "Reports", "Jobs",
		"Schemas", "Indexes", "Functions", "Triggers", "Sequences",
	}
	return fmt.Sprintf("%s %d", categories[index%len(categories)], index+1)
}

func itemTitle(index int) string {
	names := []string{
		"customers", "orders", "invoices", "products", "suppliers",
		"shipments", "payments", "accounts", "audit_log", "sessions",
		"inventory", "returns", "discounts",
	}
	return fmt.Sprintf("%s_%d", names[index%len(names)], index)
}

func itemSubtitle(index int) string {
	descriptions := []string{
		"Last modified today",
		"Read only",
		"Contains personal data",
		"Refreshed hourly",
		"Archived",
		"Owned by reporting",
		"Large table",
	}
	return descriptions[index%len(descriptions)]
}
