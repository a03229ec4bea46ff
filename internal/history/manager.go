package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Manager stores named lists of recent queries, one TOML file per list
type Manager struct {
	dir string
}

// entriesFile is the on-disk form of one list
type entriesFile struct {
	Entries []string `toml:"entries"`
}

// NewManager stores lists under ~/.local/share/tui-treelist/history
func NewManager() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}
	return NewManagerAt(filepath.Join(home, ".local", "share", "tui-treelist", "history"))
}

// NewManagerAt stores lists in dir, creating it when needed
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name)
}

// Load returns the entries of list name, oldest first. A list that was
// never saved, or whose file no longer parses, is empty.
func (m *Manager) Load(name string) ([]string, error) {
	data, err := os.ReadFile(m.path(name))
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var f entriesFile
	if toml.Unmarshal(data, &f) != nil {
		return []string{}, nil
	}
	return f.Entries, nil
}

// Save replaces list name with entries
func (m *Manager) Save(name string, entries []string) error {
	data, err := toml.Marshal(entriesFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(m.path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
