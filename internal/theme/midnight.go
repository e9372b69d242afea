package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors of the web demo widget
var (
	MidnightBlack   = tcell.NewHexColor(0x000000)
	MidnightPanel   = tcell.NewHexColor(0x1F2937) // gray-800 header and controls
	MidnightBorder  = tcell.NewHexColor(0x374151) // gray-700
	MidnightMuted   = tcell.NewHexColor(0x6B7280) // gray-500
	MidnightSubtle  = tcell.NewHexColor(0x9CA3AF) // gray-400
	MidnightText    = tcell.NewHexColor(0xD1D5DB) // gray-300 output
	MidnightCommand = tcell.NewHexColor(0xE5E7EB) // gray-200 typed commands
	MidnightWhite   = tcell.NewHexColor(0xFFFFFF)
	MidnightEmerald = tcell.NewHexColor(0x34D399) // emerald-400 prompt and cursor
	MidnightAccent  = tcell.NewHexColor(0x059669) // emerald-600 active tab
	MidnightYellow  = tcell.NewHexColor(0xFACC15) // yellow-400
	MidnightCyan    = tcell.NewHexColor(0x22D3EE) // cyan-400
	MidnightRed     = tcell.NewHexColor(0xDC2626) // red-600 stop button
)

// MidnightTheme reproduces the black terminal with emerald prompt used on
// the product site
type MidnightTheme struct{}

func NewMidnightTheme() *MidnightTheme {
	return &MidnightTheme{}
}

func (t *MidnightTheme) Name() string {
	return "midnight"
}

func (t *MidnightTheme) TerminalColors() TerminalColors {
	return TerminalColors{
		Background: MidnightBlack,
		Foreground: MidnightText,
		Command:    MidnightCommand,
		Prompt:     MidnightEmerald,
		Cursor:     MidnightEmerald,
		Muted:      MidnightMuted,
		Border:     MidnightBorder,
	}
}

func (t *MidnightTheme) SegmentColors() SegmentColors {
	return SegmentColors{
		Green:  MidnightEmerald,
		Yellow: MidnightYellow,
		Cyan:   MidnightCyan,
	}
}

func (t *MidnightTheme) TabColors() TabColors {
	return TabColors{
		Background: MidnightBorder,
		Foreground: MidnightText,
		ActiveBg:   MidnightAccent,
		ActiveFg:   MidnightWhite,
	}
}

func (t *MidnightTheme) ButtonColors() ButtonColors {
	return ButtonColors{
		Background: MidnightBorder,
		Foreground: MidnightText,
		ActiveBg:   MidnightAccent,
		ActiveFg:   MidnightWhite,
		StopBg:     MidnightRed,
		StopFg:     MidnightWhite,
	}
}

func (t *MidnightTheme) StatusColors() StatusColors {
	return StatusColors{
		Background: MidnightPanel,
		Foreground: MidnightSubtle,
		RunningFg:  MidnightEmerald,
		StoppedFg:  MidnightYellow,
		CompleteFg: MidnightCyan,
	}
}

func (t *MidnightTheme) WelcomeColors() WelcomeColors {
	return WelcomeColors{
		Title:       MidnightCyan,
		Description: MidnightSubtle,
		Badge:       MidnightEmerald,
		Highlight:   MidnightCyan,
	}
}

func (t *MidnightTheme) BorderStyle() BorderStyle {
	return BorderStyle{
		Color:      MidnightBorder,
		TitleColor: MidnightText,
		Padding:    1,
	}
}

// ANSIColorPalette keeps the xterm defaults with the web demo's accents on
// green, yellow and cyan
func (t *MidnightTheme) ANSIColorPalette() [16]tcell.Color {
	return [16]tcell.Color{
		MidnightBlack,
		tcell.NewHexColor(0xCD3131),
		MidnightEmerald,
		MidnightYellow,
		tcell.NewHexColor(0x2472C8),
		tcell.NewHexColor(0xBC3FBC),
		MidnightCyan,
		MidnightText,
		MidnightMuted,
		tcell.NewHexColor(0xF14C4C),
		tcell.NewHexColor(0x6EE7B7),
		tcell.NewHexColor(0xFDE047),
		tcell.NewHexColor(0x3B8EEA),
		tcell.NewHexColor(0xD670D6),
		tcell.NewHexColor(0x67E8F9),
		MidnightWhite,
	}
}
