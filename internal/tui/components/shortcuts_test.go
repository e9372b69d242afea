package components

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyEventToString(t *testing.T) {
	tests := []struct {
		name  string
		event *tcell.EventKey
		want  string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), "s"},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModShift), "s"},
		{"bracket", tcell.NewEventKey(tcell.KeyRune, '[', tcell.ModNone), "["},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt+x"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), "ctrl+s"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "tab"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "f5"},
		{"shift arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), "shift+right"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyEventToString(tt.event); got != tt.want {
				t.Errorf("keyEventToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortcutManager(t *testing.T) {
	sm := NewShortcutManager()
	calls := 0
	sm.RegisterShortcut(" Ctrl+S ", func() { calls++ })
	sm.RegisterShortcut("", func() { t.Error("empty shortcut registered") })

	if !sm.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)) {
		t.Fatal("ctrl+s not handled")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if sm.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("unregistered key handled")
	}

	if got := sm.ListRegisteredShortcuts(); len(got) != 1 || got[0] != "ctrl+s" {
		t.Errorf("ListRegisteredShortcuts() = %v", got)
	}

	sm.UnregisterShortcut("CTRL+S")
	if sm.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)) {
		t.Error("unregistered shortcut still handled")
	}
}
