package components

import (
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ShortcutManager maps key strings such as "s", "ctrl+s" or "f5" to actions
type ShortcutManager struct {
	shortcuts map[string]func() // map of shortcut string to callback function
	mutex     sync.RWMutex
}

// NewShortcutManager creates a new shortcut manager
func NewShortcutManager() *ShortcutManager {
	return &ShortcutManager{
		shortcuts: make(map[string]func()),
	}
}

// RegisterShortcut registers a shortcut with its callback
func (sm *ShortcutManager) RegisterShortcut(shortcut string, callback func()) {
	if shortcut == "" {
		return
	}

	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.shortcuts[normalizeShortcut(shortcut)] = callback
}

// UnregisterShortcut removes a shortcut
func (sm *ShortcutManager) UnregisterShortcut(shortcut string) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	delete(sm.shortcuts, normalizeShortcut(shortcut))
}

// HandleKeyEvent checks if a key event matches any registered shortcuts
func (sm *ShortcutManager) HandleKeyEvent(event *tcell.EventKey) bool {
	shortcutString := keyEventToString(event)
	if shortcutString == "" {
		return false
	}

	sm.mutex.RLock()
	callback, exists := sm.shortcuts[shortcutString]
	sm.mutex.RUnlock()

	if exists {
		callback()
		return true // Event was handled
	}
	return false // Event not handled
}

// ListRegisteredShortcuts returns all registered shortcuts, sorted
func (sm *ShortcutManager) ListRegisteredShortcuts() []string {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	shortcuts := make([]string, 0, len(sm.shortcuts))
	for shortcut := range sm.shortcuts {
		shortcuts = append(shortcuts, shortcut)
	}
	sort.Strings(shortcuts)
	return shortcuts
}

// normalizeShortcut converts a shortcut string to a consistent format
func normalizeShortcut(shortcut string) string {
	return strings.ToLower(strings.TrimSpace(shortcut))
}

var specialKeys = map[tcell.Key]string{
	tcell.KeyF1:        "f1",
	tcell.KeyF2:        "f2",
	tcell.KeyF3:        "f3",
	tcell.KeyF4:        "f4",
	tcell.KeyF5:        "f5",
	tcell.KeyF6:        "f6",
	tcell.KeyF7:        "f7",
	tcell.KeyF8:        "f8",
	tcell.KeyF9:        "f9",
	tcell.KeyF10:       "f10",
	tcell.KeyF11:       "f11",
	tcell.KeyF12:       "f12",
	tcell.KeyEnter:     "enter",
	tcell.KeyEscape:    "esc",
	tcell.KeyTab:       "tab",
	tcell.KeyBacktab:   "backtab",
	tcell.KeyBackspace: "backspace",
	tcell.KeyDelete:    "delete",
	tcell.KeyHome:      "home",
	tcell.KeyEnd:       "end",
	tcell.KeyPgUp:      "pageup",
	tcell.KeyPgDn:      "pagedown",
	tcell.KeyUp:        "up",
	tcell.KeyDown:      "down",
	tcell.KeyLeft:      "left",
	tcell.KeyRight:     "right",
}

// keyEventToString converts a tcell.EventKey to a shortcut string
func keyEventToString(event *tcell.EventKey) string {
	if event.Key() == tcell.KeyRune {
		// the rune already carries shift
		var parts []string
		if event.Modifiers()&tcell.ModAlt != 0 {
			parts = append(parts, "alt")
		}
		return strings.Join(append(parts, strings.ToLower(string(event.Rune()))), "+")
	}

	name, ok := specialKeys[event.Key()]
	if !ok {
		// tcell reports ctrl+letter as its own key. Tab, enter and
		// backspace share codes with ctrl+i, ctrl+m and ctrl+h and resolve
		// to their specialKeys names.
		if event.Key() >= tcell.KeyCtrlA && event.Key() <= tcell.KeyCtrlZ {
			return "ctrl+" + string(rune('a'+event.Key()-tcell.KeyCtrlA))
		}
		return "" // Unknown key
	}
	var parts []string
	if event.Modifiers()&tcell.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if event.Modifiers()&tcell.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if event.Modifiers()&tcell.ModShift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(append(parts, name), "+")
}
