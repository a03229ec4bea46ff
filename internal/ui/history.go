package ui

import (
	"log"

	"github.com/pstuifzand/tui-treelist/internal/history"
)

// History keeps previous search queries. Previous and Next walk through
// them, restoring the text being typed when walking past the newest entry.
type History struct {
	entries        []string
	currentIndex   int // -1 when not navigating
	maxEntries     int
	temporaryInput string
	manager        *history.Manager
	filename       string
}

// NewHistory creates an in-memory history of at most maxEntries
func NewHistory(maxEntries int) *History {
	return &History{
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// NewHistoryWithManager creates a history persisted by manager in filename
func NewHistoryWithManager(maxEntries int, manager *history.Manager, filename string) (*History, error) {
	h := NewHistory(maxEntries)
	h.manager = manager
	h.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add appends entry, skipping empty entries and repeats of the newest one
func (h *History) Add(entry string) {
	if entry == "" {
		return
	}
	h.Reset()
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	if h.manager != nil {
		if err := h.manager.Save(h.filename, h.entries); err != nil {
			log.Printf("Failed to save history: %v", err)
		}
	}
}

// Previous returns the next older entry. current is remembered when
// navigation starts.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.currentIndex < 0:
		h.temporaryInput = current
		h.currentIndex = len(h.entries) - 1
	case h.currentIndex > 0:
		h.currentIndex--
	}
	return h.entries[h.currentIndex], true
}

// Next returns the next newer entry, or the remembered input after the newest
func (h *History) Next() (string, bool) {
	if h.currentIndex < 0 {
		return "", false
	}
	h.currentIndex++
	if h.currentIndex >= len(h.entries) {
		temp := h.temporaryInput
		h.Reset()
		return temp, true
	}
	return h.entries[h.currentIndex], true
}

// Reset stops navigating
func (h *History) Reset() {
	h.currentIndex = -1
	h.temporaryInput = ""
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}
