package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"neurondemo/internal/ansi"
	"neurondemo/internal/catalog"
	"neurondemo/internal/log"
	"neurondemo/internal/playback"
	"neurondemo/internal/theme"
	"neurondemo/internal/tui/components"
)

// Options configure the demo terminal
type Options struct {
	Catalog       *catalog.Catalog
	Initial       catalog.Key
	Clock         playback.Clock
	Timings       playback.Timings
	Speed         playback.Speed
	CursorBlink   time.Duration // 0 keeps the cursor on
	TranscriptDir string
}

// DemoApp is the tview application around one playback scheduler
type DemoApp struct {
	app   *tview.Application
	pages *tview.Pages
	grid  *tview.Flex
	opts  Options

	// Core components
	sched   *playback.Scheduler
	catalog *catalog.Catalog
	demo    catalog.Demo

	// UI Components
	header    *tview.TextView
	controls  *components.ControlsComponent
	terminal  *components.TerminalComponent
	status    *components.StatusComponent
	shortcuts *components.ShortcutManager

	// written on the scheduler's event path, read on the UI goroutine
	mu       sync.Mutex
	latest   playback.Snapshot
	cursorOn bool

	version string

	// Update channel
	updateChan chan struct{}
	done       chan struct{}
	closeOnce  sync.Once
}

// NewApplication creates and configures the tview application
func NewApplication(opts Options) *DemoApp {
	factory := theme.Factory()

	da := &DemoApp{
		app:        tview.NewApplication(),
		opts:       opts,
		catalog:    opts.Catalog,
		cursorOn:   true,
		shortcuts:  components.NewShortcutManager(),
		updateChan: make(chan struct{}, 100),
		done:       make(chan struct{}),
	}

	da.sched = playback.NewScheduler(playback.Options{
		Clock:   opts.Clock,
		Timings: opts.Timings,
		Speed:   opts.Speed,
	})
	da.sched.Bus().SubscribeAll(da.onPlaybackEvent)

	da.header = tview.NewTextView().SetDynamicColors(true)
	da.header.SetBackgroundColor(factory.Theme().StatusColors().Background)
	da.terminal = components.NewTerminalComponent(factory)
	da.status = components.NewStatusComponent(factory)
	da.controls = components.NewControlsComponent(factory, opts.Catalog, components.ControlHandlers{
		OnSelect: da.selectDemo,
		OnSpeed:  da.setSpeed,
		OnRun:    da.run,
		OnStop:   da.stop,
		OnReset:  da.reset,
		OnSave:   da.saveTranscript,
	})

	da.setupUI()
	da.setupShortcuts()

	initial := opts.Initial
	if initial.Category == "" {
		initial = opts.Catalog.DefaultKey()
	}
	da.selectDemo(initial)
	da.refresh()

	return da
}

// SetVersionInfo shows the build in the header
func (da *DemoApp) SetVersionInfo(version, commit, date string) {
	da.version = version
	log.Debug("demo terminal", "version", version, "commit", commit, "date", date)
	da.renderHeader()
}

// setupUI configures the user interface layout
func (da *DemoApp) setupUI() {
	da.grid = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(da.header, 1, 0, false).
		AddItem(da.controls.GetWrapper(), 1, 0, true).
		AddItem(da.terminal.GetView(), 0, 1, false).
		AddItem(da.status.GetWrapper(), 1, 0, false)

	da.pages = tview.NewPages()
	da.pages.AddPage("main", da.grid, true, true)

	da.app.SetRoot(da.pages, true)
	da.app.SetInputCapture(da.handleKey)
	da.renderHeader()
}

func (da *DemoApp) renderHeader() {
	version := ""
	if da.version != "" {
		version = "  [::d]" + tview.Escape(da.version) + "[::-]"
	}
	da.header.SetText(fmt.Sprintf(" [red]●[-] [yellow]●[-] [green]●[-]  neurondb-demo  [::b]%s[::-]%s",
		tview.Escape(da.demo.Title), version))
}

// setupShortcuts registers the global keys
func (da *DemoApp) setupShortcuts() {
	da.shortcuts.RegisterShortcut("s", da.run)
	da.shortcuts.RegisterShortcut("f5", da.run)
	da.shortcuts.RegisterShortcut("x", da.stop)
	da.shortcuts.RegisterShortcut("esc", da.stop)
	da.shortcuts.RegisterShortcut("r", da.reset)
	da.shortcuts.RegisterShortcut("w", da.saveTranscript)
	da.shortcuts.RegisterShortcut("ctrl+s", da.saveTranscript)
	da.shortcuts.RegisterShortcut("q", da.exit)
	for _, speed := range playback.Speeds {
		da.shortcuts.RegisterShortcut(fmt.Sprint(int(speed)), func() { da.setSpeed(speed) })
	}
	da.shortcuts.RegisterShortcut("]", func() { da.controls.Step(1, false) })
	da.shortcuts.RegisterShortcut("[", func() { da.controls.Step(-1, false) })
	da.shortcuts.RegisterShortcut("}", func() { da.controls.Step(1, true) })
	da.shortcuts.RegisterShortcut("{", func() { da.controls.Step(-1, true) })
	da.shortcuts.RegisterShortcut("tab", func() { da.cycleFocus(1) })
	da.shortcuts.RegisterShortcut("backtab", func() { da.cycleFocus(-1) })
}

// handleKey runs global shortcuts unless an open dropdown has the keyboard
func (da *DemoApp) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if da.controls.ListOpen() {
		return event
	}
	if da.shortcuts.HandleKeyEvent(event) {
		return nil
	}
	return event
}

func (da *DemoApp) cycleFocus(delta int) {
	items := da.controls.Focusables()
	current := da.app.GetFocus()
	next := 0
	for i, item := range items {
		if item == current {
			next = ((i+delta)%len(items) + len(items)) % len(items)
		}
	}
	da.app.SetFocus(items[next])
}

// Run starts the update workers and the TUI. The scheduler is closed when
// the application exits.
func (da *DemoApp) Run() error {
	da.startUpdateWorker()
	da.startCursorBlink()
	defer da.Close()
	return da.app.Run()
}

// Close cancels playback and stops the workers
func (da *DemoApp) Close() {
	da.closeOnce.Do(func() {
		da.sched.Close()
		close(da.done)
	})
}

func (da *DemoApp) exit() {
	da.Close()
	da.app.Stop()
}

// onPlaybackEvent runs on the scheduler's event path; it must not call back
// into the scheduler or block on the UI
func (da *DemoApp) onPlaybackEvent(ev playback.Event) {
	da.mu.Lock()
	da.latest = ev.Snapshot
	da.mu.Unlock()
	da.requestUpdate()
}

func (da *DemoApp) requestUpdate() {
	select {
	case da.updateChan <- struct{}{}:
	default:
		// an update is already pending
	}
}

// startUpdateWorker starts the background update worker
func (da *DemoApp) startUpdateWorker() {
	go func() {
		for {
			select {
			case <-da.done:
				return
			case <-da.updateChan:
				da.app.QueueUpdateDraw(da.refresh)
			}
		}
	}()
}

func (da *DemoApp) startCursorBlink() {
	if da.opts.CursorBlink <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(da.opts.CursorBlink)
		defer ticker.Stop()
		for {
			select {
			case <-da.done:
				return
			case <-ticker.C:
				da.mu.Lock()
				da.cursorOn = !da.cursorOn
				da.mu.Unlock()
				da.requestUpdate()
			}
		}
	}()
}

// refresh redraws every component from the latest snapshot. UI goroutine only.
func (da *DemoApp) refresh() {
	da.mu.Lock()
	snap := da.latest
	cursorOn := da.cursorOn
	da.mu.Unlock()

	da.terminal.Update(snap, da.demo, cursorOn)
	da.status.Update(snap)
	da.controls.Update(snap)
}

// selectDemo loads key into the scheduler, resetting any session
func (da *DemoApp) selectDemo(key catalog.Key) {
	demo, err := da.catalog.Lookup(key)
	if err != nil {
		log.Warn("demo not found", "key", key.String(), "error", err)
		da.status.SetMessage(fmt.Sprintf("Unknown demo %s", key))
		return
	}
	da.demo = demo
	da.controls.SetSelection(demo.Key)
	da.sched.SelectScript(demo.Script)
	da.renderHeader()
	log.Info("demo selected", "key", demo.Key.String(), "steps", demo.Script.Len())
}

func (da *DemoApp) run() {
	if err := da.sched.Start(); err != nil {
		if errors.Is(err, playback.ErrAlreadyRunning) {
			da.status.SetMessage("Demo already running")
			return
		}
		log.Error("start failed", "error", err)
		da.status.SetMessage(err.Error())
	}
}

func (da *DemoApp) stop() {
	da.sched.Stop()
}

func (da *DemoApp) reset() {
	da.sched.Reset()
}

func (da *DemoApp) setSpeed(speed playback.Speed) {
	if err := da.sched.SetSpeed(speed); err != nil {
		if errors.Is(err, playback.ErrRunning) {
			da.status.SetMessage("Stop the demo to change speed")
		} else {
			da.status.SetMessage(err.Error())
		}
		// put the selector back
		da.controls.SetSpeed(da.sched.Speed())
	}
}

// saveTranscript writes the plain transcript of the current history
func (da *DemoApp) saveTranscript() {
	path, err := da.writeTranscript(time.Now())
	if err != nil {
		log.Warn("transcript not saved", "error", err)
		da.status.SetMessage(err.Error())
		return
	}
	log.Info("transcript saved", "path", path)
	da.status.SetMessage("Transcript saved to " + path)
}

func (da *DemoApp) writeTranscript(now time.Time) (string, error) {
	history := da.sched.Snapshot().History
	if len(history) == 0 {
		return "", errors.New("nothing to save yet")
	}

	dir := da.opts.TranscriptDir
	if dir == "" {
		dir = "."
	}
	name := fmt.Sprintf("neurondemo-%s-%s.txt",
		strings.ReplaceAll(da.demo.Key.String(), "/", "-"), now.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(ansi.PlainTranscript(history)), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return path, nil
}
