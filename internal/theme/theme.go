package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// Tree list colors
	TreeHeaderText   tcell.Color
	TreeChildText    tcell.Color
	TreeSubtitleText tcell.Color
	TreeDisabledText tcell.Color
	TreeSelectedText tcell.Color
	TreeSelectedBg   tcell.Color
	TreeCurrentText  tcell.Color
	TreeCurrentBg    tcell.Color
	TreeArrow        tcell.Color
	TreeExcludedMark tcell.Color

	// Search bar colors
	SearchLabel       tcell.Color
	SearchText        tcell.Color
	SearchResultCount tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusText  tcell.Color
	StatusCount tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background:        tcell.ColorDefault,
			TreeHeaderText:    tcell.ColorDefault,
			TreeChildText:     tcell.ColorDefault,
			TreeSubtitleText:  tcell.ColorGray,
			TreeDisabledText:  tcell.ColorGray,
			TreeSelectedText:  tcell.ColorBlack,
			TreeSelectedBg:    tcell.ColorSilver,
			TreeCurrentText:   tcell.ColorDefault,
			TreeCurrentBg:     tcell.ColorDefault,
			TreeArrow:         tcell.ColorDefault,
			TreeExcludedMark:  tcell.ColorDefault,
			SearchLabel:       tcell.ColorDefault,
			SearchText:        tcell.ColorDefault,
			SearchResultCount: tcell.ColorDefault,
			HelpBackground:    tcell.ColorDefault,
			HelpBorder:        tcell.ColorDefault,
			HelpTitle:         tcell.ColorDefault,
			HelpContent:       tcell.ColorDefault,
			StatusText:        tcell.ColorDefault,
			StatusCount:       tcell.ColorDefault,
			HeaderTitle:       tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Background:        HexToColor("#1a1b26"),
			TreeHeaderText:    HexToColor("#bb9af7"), // Magenta
			TreeChildText:     HexToColor("#c0caf5"), // Light gray-blue
			TreeSubtitleText:  HexToColor("#565f89"), // Comment gray
			TreeDisabledText:  HexToColor("#414868"),
			TreeSelectedText:  HexToColor("#1a1b26"),
			TreeSelectedBg:    HexToColor("#7aa2f7"), // Blue
			TreeCurrentText:   HexToColor("#c0caf5"),
			TreeCurrentBg:     HexToColor("#292e42"),
			TreeArrow:         HexToColor("#7dcfff"), // Cyan
			TreeExcludedMark:  HexToColor("#e0af68"), // Yellow
			SearchLabel:       HexToColor("#bb9af7"),
			SearchText:        HexToColor("#c0caf5"),
			SearchResultCount: HexToColor("#9ece6a"), // Green
			HelpBackground:    HexToColor("#1a1b26"),
			HelpBorder:        HexToColor("#7dcfff"),
			HelpTitle:         HexToColor("#bb9af7"),
			HelpContent:       HexToColor("#c0caf5"),
			StatusText:        HexToColor("#9ece6a"),
			StatusCount:       HexToColor("#f7768e"), // Red
			HeaderTitle:       HexToColor("#bb9af7"),
		},
	}
}
