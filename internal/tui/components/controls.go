package components

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"neurondemo/internal/catalog"
	"neurondemo/internal/playback"
	"neurondemo/internal/theme"
)

// ControlHandlers are called when the user operates a control
type ControlHandlers struct {
	OnSelect func(key catalog.Key)
	OnSpeed  func(speed playback.Speed)
	OnRun    func()
	OnStop   func()
	OnReset  func()
	OnSave   func()
}

// ControlsComponent is the tab selectors and playback buttons row
type ControlsComponent struct {
	wrapper     *tview.Flex
	category    *tview.DropDown
	subcategory *tview.DropDown
	speed       *tview.DropDown
	run         *tview.Button
	stop        *tview.Button
	reset       *tview.Button
	save        *tview.Button

	catalog  *catalog.Catalog
	handlers ControlHandlers
	colors   theme.ButtonColors

	key      catalog.Key
	subNames []string
	updating bool // set while the dropdowns are changed from code
}

// NewControlsComponent builds the controls for cat
func NewControlsComponent(factory *theme.ThemedComponents, cat *catalog.Catalog, handlers ControlHandlers) *ControlsComponent {
	cc := &ControlsComponent{
		category:    factory.NewDropDown("Demo "),
		subcategory: factory.NewDropDown(""),
		speed:       factory.NewDropDown("Speed "),
		run:         factory.NewButton("Run Demo"),
		stop:        factory.NewButton("Stop"),
		reset:       factory.NewButton("Reset"),
		save:        factory.NewButton("Save"),
		catalog:     cat,
		handlers:    handlers,
		colors:      factory.Theme().ButtonColors(),
	}

	var titles []string
	for _, c := range cat.Categories() {
		titles = append(titles, c.Title)
	}
	cc.category.SetOptions(titles, func(_ string, index int) {
		if cc.updating {
			return
		}
		cats := cc.catalog.Categories()
		if index < 0 || index >= len(cats) {
			return
		}
		cc.selectKey(catalog.Key{Category: cats[index].Name})
	})

	speeds := make([]string, len(playback.Speeds))
	for i, s := range playback.Speeds {
		speeds[i] = s.String()
	}
	cc.speed.SetOptions(speeds, func(_ string, index int) {
		if cc.updating || index < 0 || index >= len(playback.Speeds) {
			return
		}
		if cc.handlers.OnSpeed != nil {
			cc.handlers.OnSpeed(playback.Speeds[index])
		}
	})

	cc.run.SetSelectedFunc(func() { call(cc.handlers.OnRun) })
	cc.stop.SetSelectedFunc(func() { call(cc.handlers.OnStop) })
	cc.reset.SetSelectedFunc(func() { call(cc.handlers.OnReset) })
	cc.save.SetSelectedFunc(func() { call(cc.handlers.OnSave) })

	cc.wrapper = factory.NewFlex().
		AddItem(cc.category, 0, 2, true).
		AddItem(cc.subcategory, 0, 2, false).
		AddItem(cc.speed, 10, 0, false).
		AddItem(cc.run, 16, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(cc.stop, 8, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(cc.reset, 9, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(cc.save, 8, 0, false)

	return cc
}

func call(f func()) {
	if f != nil {
		f()
	}
}

// GetWrapper returns the controls row
func (cc *ControlsComponent) GetWrapper() *tview.Flex {
	return cc.wrapper
}

// Focusables lists the controls in tab order
func (cc *ControlsComponent) Focusables() []tview.Primitive {
	return []tview.Primitive{cc.category, cc.subcategory, cc.speed, cc.run, cc.stop, cc.reset, cc.save}
}

// ListOpen reports whether a dropdown list has the keyboard
func (cc *ControlsComponent) ListOpen() bool {
	return cc.category.IsOpen() || cc.subcategory.IsOpen() || cc.speed.IsOpen()
}

// Selected returns the demo the selectors point at
func (cc *ControlsComponent) Selected() catalog.Key {
	return cc.key
}

// SetSelection moves the selectors to key without calling OnSelect
func (cc *ControlsComponent) SetSelection(key catalog.Key) {
	cc.updating = true
	defer func() { cc.updating = false }()

	cc.key = key
	for i, c := range cc.catalog.Categories() {
		if c.Name != key.Category {
			continue
		}
		cc.category.SetCurrentOption(i)
		cc.setSubcategories(c, key.Subcategory)
		return
	}
}

// SetSpeed moves the speed selector without calling OnSpeed
func (cc *ControlsComponent) SetSpeed(speed playback.Speed) {
	cc.updating = true
	defer func() { cc.updating = false }()
	for i, s := range playback.Speeds {
		if s == speed {
			cc.speed.SetCurrentOption(i)
		}
	}
}

func (cc *ControlsComponent) setSubcategories(c catalog.Category, selected string) {
	cc.subNames = c.Subcategories()
	if len(cc.subNames) == 0 {
		cc.subcategory.SetOptions([]string{"(none)"}, nil)
		cc.subcategory.SetCurrentOption(0)
		return
	}

	labels := make([]string, len(c.Demos))
	current := 0
	for i, d := range c.Demos {
		labels[i] = d.Label
		if d.Key.Subcategory == selected {
			current = i
		}
	}
	cc.subcategory.SetOptions(labels, func(_ string, index int) {
		if cc.updating || index < 0 || index >= len(cc.subNames) {
			return
		}
		cc.selectKey(catalog.Key{Category: cc.key.Category, Subcategory: cc.subNames[index]})
	})
	cc.subcategory.SetCurrentOption(current)
}

func (cc *ControlsComponent) selectKey(key catalog.Key) {
	resolved, err := cc.catalog.Resolve(key)
	if err != nil {
		return
	}
	if resolved == cc.key {
		return
	}
	cc.SetSelection(resolved)
	if cc.handlers.OnSelect != nil {
		cc.handlers.OnSelect(resolved)
	}
}

// Step moves the category (or, with sub set, the subcategory) selector by
// delta, wrapping around
func (cc *ControlsComponent) Step(delta int, sub bool) {
	if sub {
		if len(cc.subNames) == 0 {
			return
		}
		i := indexOf(cc.subNames, cc.key.Subcategory)
		next := cc.subNames[wrap(i+delta, len(cc.subNames))]
		cc.selectKey(catalog.Key{Category: cc.key.Category, Subcategory: next})
		return
	}

	cats := cc.catalog.Categories()
	if len(cats) == 0 {
		return
	}
	i := 0
	for j, c := range cats {
		if c.Name == cc.key.Category {
			i = j
		}
	}
	cc.selectKey(catalog.Key{Category: cats[wrap(i+delta, len(cats))].Name})
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Update reflects the playback state on the buttons
func (cc *ControlsComponent) Update(snap playback.Snapshot) {
	active := snap.Status.Active()

	if active {
		cc.run.SetLabel("Running Demo...")
	} else {
		cc.run.SetLabel("Run Demo")
	}

	idle := tcell.StyleDefault.Background(cc.colors.Background).Foreground(cc.colors.Foreground)
	dim := idle.Dim(true)
	stopStyle := tcell.StyleDefault.Background(cc.colors.StopBg).Foreground(cc.colors.StopFg)

	cc.run.SetStyle(pick(active, dim, idle))
	cc.stop.SetStyle(pick(active, stopStyle, dim))
	cc.save.SetStyle(pick(len(snap.History) > 0, idle, dim))
	cc.SetSpeed(snap.Speed)
}

func pick(cond bool, a, b tcell.Style) tcell.Style {
	if cond {
		return a
	}
	return b
}
