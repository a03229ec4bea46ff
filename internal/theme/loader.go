package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string `toml:"name"`
	Colors struct {
		Background        string `toml:"background"`
		TreeHeaderText    string `toml:"tree_header_text"`
		TreeChildText     string `toml:"tree_child_text"`
		TreeSubtitleText  string `toml:"tree_subtitle_text"`
		TreeDisabledText  string `toml:"tree_disabled_text"`
		TreeSelectedText  string `toml:"tree_selected_text"`
		TreeSelectedBg    string `toml:"tree_selected_bg"`
		TreeCurrentText   string `toml:"tree_current_text"`
		TreeCurrentBg     string `toml:"tree_current_bg"`
		TreeArrow         string `toml:"tree_arrow"`
		TreeExcludedMark  string `toml:"tree_excluded_mark"`
		SearchLabel       string `toml:"search_label"`
		SearchText        string `toml:"search_text"`
		SearchResultCount string `toml:"search_result_count"`
		HelpBackground    string `toml:"help_background"`
		HelpBorder        string `toml:"help_border"`
		HelpTitle         string `toml:"help_title"`
		HelpContent       string `toml:"help_content"`
		StatusText        string `toml:"status_text"`
		StatusCount       string `toml:"status_count"`
		HeaderTitle       string `toml:"header_title"`
	} `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "tui-treelist", "themes"),
			filepath.Join(home, ".local", "share", "tui-treelist", "themes"),
		)
	}

	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// override replaces dst when value holds a color
func override(dst *tcell.Color, value string) {
	if value != "" {
		*dst = ParseColorString(value)
	}
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo Night for missing colors
func configToTheme(config ThemeConfig) *Theme {
	t := TokyoNight()
	c := &t.Colors
	src := config.Colors

	override(&c.Background, src.Background)
	override(&c.TreeHeaderText, src.TreeHeaderText)
	override(&c.TreeChildText, src.TreeChildText)
	override(&c.TreeSubtitleText, src.TreeSubtitleText)
	override(&c.TreeDisabledText, src.TreeDisabledText)
	override(&c.TreeSelectedText, src.TreeSelectedText)
	override(&c.TreeSelectedBg, src.TreeSelectedBg)
	override(&c.TreeCurrentText, src.TreeCurrentText)
	override(&c.TreeCurrentBg, src.TreeCurrentBg)
	override(&c.TreeArrow, src.TreeArrow)
	override(&c.TreeExcludedMark, src.TreeExcludedMark)
	override(&c.SearchLabel, src.SearchLabel)
	override(&c.SearchText, src.SearchText)
	override(&c.SearchResultCount, src.SearchResultCount)
	override(&c.HelpBackground, src.HelpBackground)
	override(&c.HelpBorder, src.HelpBorder)
	override(&c.HelpTitle, src.HelpTitle)
	override(&c.HelpContent, src.HelpContent)
	override(&c.StatusText, src.StatusText)
	override(&c.StatusCount, src.StatusCount)
	override(&c.HeaderTitle, src.HeaderTitle)

	if config.Name != "" {
		t.Name = config.Name
	}

	return t
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "tokyo-night":
		return TokyoNight()
	}

	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}

	return theme
}
