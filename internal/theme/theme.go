package theme

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TerminalColors defines color scheme for the playback pane
type TerminalColors struct {
	Background tcell.Color
	Foreground tcell.Color // output lines without markers
	Command    tcell.Color // typed command text
	Prompt     tcell.Color
	Cursor     tcell.Color
	Muted      tcell.Color // hints and welcome footer
	Border     tcell.Color
}

// SegmentColors maps the output color markers to display colors
type SegmentColors struct {
	Green  tcell.Color
	Yellow tcell.Color
	Cyan   tcell.Color
}

// TabColors defines color scheme for the category and subcategory selectors
type TabColors struct {
	Background tcell.Color
	Foreground tcell.Color
	ActiveBg   tcell.Color
	ActiveFg   tcell.Color
}

// ButtonColors defines color scheme for the playback controls
type ButtonColors struct {
	Background tcell.Color
	Foreground tcell.Color
	ActiveBg   tcell.Color
	ActiveFg   tcell.Color
	StopBg     tcell.Color
	StopFg     tcell.Color
}

// StatusColors defines color scheme for status bars
type StatusColors struct {
	Background tcell.Color
	Foreground tcell.Color
	RunningFg  tcell.Color
	StoppedFg  tcell.Color
	CompleteFg tcell.Color
}

// WelcomeColors defines color scheme for the welcome message
type WelcomeColors struct {
	Title       tcell.Color
	Description tcell.Color
	Badge       tcell.Color
	Highlight   tcell.Color
}

// BorderStyle defines border styling options
type BorderStyle struct {
	Color      tcell.Color
	TitleColor tcell.Color
	Padding    int
}

// Theme interface defines all theming properties
type Theme interface {
	// Name returns the theme name
	Name() string

	// Color schemes for different components
	TerminalColors() TerminalColors
	SegmentColors() SegmentColors
	TabColors() TabColors
	ButtonColors() ButtonColors
	StatusColors() StatusColors
	WelcomeColors() WelcomeColors

	// Border styling
	BorderStyle() BorderStyle

	// ANSI color mapping - returns a 16-color palette (indices 0-15)
	ANSIColorPalette() [16]tcell.Color
}

// ThemeManager manages theme selection and application
type ThemeManager struct {
	mu           sync.RWMutex
	currentTheme Theme
	themes       map[string]Theme
}

// DefaultTheme is the theme selected when nothing is configured
const DefaultTheme = "midnight"

// NewThemeManager creates a new theme manager
func NewThemeManager() *ThemeManager {
	tm := &ThemeManager{
		themes: make(map[string]Theme),
	}

	// Register built-in themes
	tm.RegisterTheme(NewMidnightTheme())
	tm.RegisterTheme(NewTelixTheme())

	// Set default theme
	tm.SetTheme(DefaultTheme)

	return tm
}

// RegisterTheme registers a new theme
func (tm *ThemeManager) RegisterTheme(theme Theme) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.themes[theme.Name()] = theme
}

// SetTheme sets the current theme by name
func (tm *ThemeManager) SetTheme(name string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if theme, exists := tm.themes[name]; exists {
		tm.currentTheme = theme
		return nil
	}
	return fmt.Errorf("theme '%s' not found", name)
}

// Current returns the current theme
func (tm *ThemeManager) Current() Theme {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.currentTheme
}

// Available returns the sorted list of available theme names
func (tm *ThemeManager) Available() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	names := make([]string, 0, len(tm.themes))
	for name := range tm.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global theme manager instance
var defaultThemeManager = NewThemeManager()

// GetThemeManager returns the global theme manager
func GetThemeManager() *ThemeManager {
	return defaultThemeManager
}

// Current returns the current theme from the global manager
func Current() Theme {
	return defaultThemeManager.Current()
}

// Hex formats a color as a #rrggbb tview color tag value
func Hex(c tcell.Color) string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
