package theme

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ThemedComponents provides convenience factory functions for creating themed components
// while still allowing manual styling using theme properties
type ThemedComponents struct {
	theme Theme
}

// NewThemedComponents creates a new themed components factory
func NewThemedComponents(theme Theme) *ThemedComponents {
	return &ThemedComponents{theme: theme}
}

// Theme returns the theme the factory styles with
func (tc *ThemedComponents) Theme() Theme {
	return tc.theme
}

// NewTextView creates the playback pane text view with theme applied
func (tc *ThemedComponents) NewTextView() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.TerminalColors()
	border := tc.theme.BorderStyle()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetBorderColor(colors.Border)
	textView.SetTitleColor(border.TitleColor)
	textView.SetBorder(true)
	textView.SetBorderPadding(0, 0, border.Padding, border.Padding)
	textView.SetDynamicColors(true)
	textView.SetWrap(true)
	textView.SetScrollable(true)

	return textView
}

// NewDropDown creates a category or subcategory selector
func (tc *ThemedComponents) NewDropDown(label string) *tview.DropDown {
	dropDown := tview.NewDropDown()
	colors := tc.theme.TabColors()

	dropDown.SetLabel(label)
	dropDown.SetBackgroundColor(colors.Background)
	dropDown.SetLabelColor(colors.Foreground)
	dropDown.SetFieldBackgroundColor(colors.Background)
	dropDown.SetFieldTextColor(colors.Foreground)
	dropDown.SetListStyles(
		tcell.StyleDefault.Background(colors.Background).Foreground(colors.Foreground),
		tcell.StyleDefault.Background(colors.ActiveBg).Foreground(colors.ActiveFg),
	)

	return dropDown
}

// NewButton creates a playback control button
func (tc *ThemedComponents) NewButton(label string) *tview.Button {
	button := tview.NewButton(label)
	colors := tc.theme.ButtonColors()

	button.SetStyle(tcell.StyleDefault.Background(colors.Background).Foreground(colors.Foreground))
	button.SetActivatedStyle(tcell.StyleDefault.Background(colors.ActiveBg).Foreground(colors.ActiveFg))

	return button
}

// NewFlex creates a new flex container with theme background
func (tc *ThemedComponents) NewFlex() *tview.Flex {
	flex := tview.NewFlex()
	flex.SetBackgroundColor(tc.theme.StatusColors().Background)
	return flex
}

// NewStatusBar creates a new text view styled for status bars
func (tc *ThemedComponents) NewStatusBar() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.StatusColors()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetDynamicColors(true)

	return textView
}

// NewModal creates a new modal with theme applied
func (tc *ThemedComponents) NewModal() *tview.Modal {
	modal := tview.NewModal()
	status := tc.theme.StatusColors()
	buttons := tc.theme.ButtonColors()

	modal.SetBackgroundColor(status.Background)
	modal.SetTextColor(status.Foreground)
	modal.SetButtonBackgroundColor(buttons.Background)
	modal.SetButtonTextColor(buttons.Foreground)

	return modal
}

// Global factory instance using current theme
var defaultFactory = &ThemedComponents{}

// updateDefaultFactory updates the global factory with current theme
func updateDefaultFactory() {
	defaultFactory.theme = defaultThemeManager.Current()
}

// Factory returns a factory bound to the current global theme
func Factory() *ThemedComponents {
	updateDefaultFactory()
	return NewThemedComponents(defaultFactory.theme)
}
