package components

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"neurondemo/internal/playback"
	"neurondemo/internal/theme"
)

// KeyHelp is shown on the right of the status bar
const KeyHelp = "s=Run x=Stop r=Reset 1-3=Speed [ ]=Tab { }=Sub-tab w=Save q=Quit"

// StatusComponent manages the bottom status bar
type StatusComponent struct {
	wrapper *tview.TextView
	colors  theme.StatusColors
	message string
	last    playback.Snapshot
}

// NewStatusComponent creates a new status bar component
func NewStatusComponent(factory *theme.ThemedComponents) *StatusComponent {
	statusBar := factory.NewStatusBar()
	statusBar.SetTextAlign(tview.AlignLeft)
	statusBar.SetWrap(false)

	sc := &StatusComponent{
		wrapper: statusBar,
		colors:  factory.Theme().StatusColors(),
	}
	sc.Update(playback.Snapshot{})
	return sc
}

// GetWrapper returns the status bar TextView
func (sc *StatusComponent) GetWrapper() *tview.TextView {
	return sc.wrapper
}

// SetMessage shows msg until the playback status changes
func (sc *StatusComponent) SetMessage(msg string) {
	sc.message = msg
	sc.render()
}

// Update shows the state of snap
func (sc *StatusComponent) Update(snap playback.Snapshot) {
	if snap.Status != sc.last.Status || len(snap.History) != len(sc.last.History) {
		sc.message = ""
	}
	sc.last = snap
	sc.render()
}

func (sc *StatusComponent) render() {
	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(StatusText(sc.last, sc.colors))
	if sc.message != "" {
		b.WriteString(" | ")
		b.WriteString(tview.Escape(sc.message))
	}
	b.WriteString(" | ")
	b.WriteString(tview.Escape(KeyHelp))
	sc.wrapper.SetText(b.String())
}

// Text returns the status bar content
func (sc *StatusComponent) Text() string {
	return sc.wrapper.GetText(true)
}

// StatusText describes the playback state with tview color tags
func StatusText(snap playback.Snapshot, colors theme.StatusColors) string {
	n := len(snap.History)
	switch {
	case snap.Status.Active():
		return fmt.Sprintf("[%s]● Running at %s speed[-]", theme.Hex(colors.RunningFg), snap.Speed)
	case snap.Status == playback.StatusStopped:
		return fmt.Sprintf("[%s]■ Stopped (%d commands executed)[-]", theme.Hex(colors.StoppedFg), n)
	case n > 0:
		return fmt.Sprintf("[%s]✓ Demo complete (%d commands executed)[-]", theme.Hex(colors.CompleteFg), n)
	}
	return "Ready to explore NeuronDB"
}
