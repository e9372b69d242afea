package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Standard ANSI 16-color palette using correct hex values
// This ensures consistent colors regardless of terminal color scheme
var (
	// Basic 8 colors (0-7)
	DOSBlack     = tcell.NewHexColor(0x000000) // 0: Black
	DOSRed       = tcell.NewHexColor(0x800000) // 1: Red (Dark Red)
	DOSGreen     = tcell.NewHexColor(0x008000) // 2: Green (Dark Green)
	DOSBrown     = tcell.NewHexColor(0x808000) // 3: Yellow/Brown (Dark Yellow)
	DOSBlue      = tcell.NewHexColor(0x000080) // 4: Blue (Dark Blue)
	DOSMagenta   = tcell.NewHexColor(0x800080) // 5: Magenta (Dark Magenta)
	DOSCyan      = tcell.NewHexColor(0x008080) // 6: Cyan (Dark Cyan)
	DOSLightGray = tcell.NewHexColor(0xC0C0C0) // 7: White/Light Gray

	// Bright 8 colors (8-15)
	DOSDarkGray     = tcell.NewHexColor(0x808080) // 8: Gray (Dark Gray)
	DOSLightRed     = tcell.NewHexColor(0xFF0000) // 9: Bright Red
	DOSLightGreen   = tcell.NewHexColor(0x00FF00) // 10: Bright Green
	DOSYellow       = tcell.NewHexColor(0xFFFF00) // 11: Bright Yellow
	DOSLightBlue    = tcell.NewHexColor(0x0000FF) // 12: Bright Blue
	DOSLightMagenta = tcell.NewHexColor(0xFF00FF) // 13: Bright Magenta
	DOSLightCyan    = tcell.NewHexColor(0x00FFFF) // 14: Bright Cyan
	DOSWhite        = tcell.NewHexColor(0xFFFFFF) // 15: Bright White
)

// TelixTheme is the classic DOS terminal look
type TelixTheme struct{}

// NewTelixTheme creates a new Telix theme instance
func NewTelixTheme() *TelixTheme {
	return &TelixTheme{}
}

// Name returns the theme name
func (t *TelixTheme) Name() string {
	return "telix"
}

// TerminalColors returns the terminal color scheme
func (t *TelixTheme) TerminalColors() TerminalColors {
	return TerminalColors{
		Background: DOSBlack,
		Foreground: DOSLightGray, // Light gray text (standard DOS terminal)
		Command:    DOSWhite,
		Prompt:     DOSLightGreen,
		Cursor:     DOSLightGray,
		Muted:      DOSDarkGray,
		Border:     DOSLightGray,
	}
}

// SegmentColors uses the bright half of the palette
func (t *TelixTheme) SegmentColors() SegmentColors {
	return SegmentColors{
		Green:  DOSLightGreen,
		Yellow: DOSYellow,
		Cyan:   DOSLightCyan,
	}
}

// TabColors mirror the blue menu bar
func (t *TelixTheme) TabColors() TabColors {
	return TabColors{
		Background: DOSBlue,
		Foreground: DOSLightGray,
		ActiveBg:   DOSRed, // Red background for selected items (like reference)
		ActiveFg:   DOSWhite,
	}
}

func (t *TelixTheme) ButtonColors() ButtonColors {
	return ButtonColors{
		Background: DOSLightGray,
		Foreground: DOSBlack,
		ActiveBg:   DOSWhite,
		ActiveFg:   DOSBlue,
		StopBg:     DOSRed,
		StopFg:     DOSWhite,
	}
}

// StatusColors returns the status bar color scheme
func (t *TelixTheme) StatusColors() StatusColors {
	return StatusColors{
		Background: DOSBlue,      // Use blue #000080 for the bar background
		Foreground: DOSLightGray, // Light gray text on blue background
		RunningFg:  DOSLightGreen,
		StoppedFg:  DOSYellow,
		CompleteFg: DOSLightCyan,
	}
}

func (t *TelixTheme) WelcomeColors() WelcomeColors {
	return WelcomeColors{
		Title:       DOSLightCyan,
		Description: DOSLightGray,
		Badge:       DOSLightGreen,
		Highlight:   DOSYellow,
	}
}

// BorderStyle returns the border styling
func (t *TelixTheme) BorderStyle() BorderStyle {
	return BorderStyle{
		Color:      DOSLightGray, // Light gray borders
		TitleColor: DOSLightGray, // Light gray titles
		Padding:    0,
	}
}

// ANSIColorPalette returns the 16-color ANSI palette for this theme
func (t *TelixTheme) ANSIColorPalette() [16]tcell.Color {
	return [16]tcell.Color{
		DOSBlack,        // 0: Black
		DOSRed,          // 1: Red (Dark Red)
		DOSGreen,        // 2: Green (Dark Green)
		DOSBrown,        // 3: Yellow/Brown (Dark Yellow)
		DOSBlue,         // 4: Blue (Dark Blue)
		DOSMagenta,      // 5: Magenta (Dark Magenta)
		DOSCyan,         // 6: Cyan (Dark Cyan)
		DOSLightGray,    // 7: White/Light Gray
		DOSDarkGray,     // 8: Gray (Dark Gray)
		DOSLightRed,     // 9: Bright Red
		DOSLightGreen,   // 10: Bright Green
		DOSYellow,       // 11: Bright Yellow
		DOSLightBlue,    // 12: Bright Blue
		DOSLightMagenta, // 13: Bright Magenta
		DOSLightCyan,    // 14: Bright Cyan
		DOSWhite,        // 15: Bright White
	}
}
