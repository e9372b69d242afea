// Package catalog holds the demo scripts, grouped into categories and
// subcategories, and the stores they are loaded from.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"neurondemo/internal/playback"
)

var (
	ErrNotFound = errors.New("demo not found")
	ErrInvalid  = errors.New("invalid catalog")
)

// Key names a demo. Subcategory is empty for categories without
// subcategories and selects the category default when omitted.
type Key struct {
	Category    string
	Subcategory string
}

func (k Key) String() string {
	if k.Subcategory == "" {
		return k.Category
	}
	return k.Category + "/" + k.Subcategory
}

// ParseKey parses "category" or "category/subcategory"
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	category, sub, _ := strings.Cut(s, "/")
	if category == "" || strings.Contains(sub, "/") {
		return Key{}, fmt.Errorf("%w: bad demo key %q", ErrInvalid, s)
	}
	return Key{Category: category, Subcategory: sub}, nil
}

// Demo is one runnable script with its welcome text
type Demo struct {
	Key         Key
	Title       string // "Vectors: Operations"
	Label       string // subcategory title, or the category title for flat categories
	Description string
	Badges      []string
	Script      playback.Script
}

// Category is a top-level tab
type Category struct {
	Name    string
	Title   string
	Order   int
	Default string // default subcategory, empty for flat categories
	Demos   []Demo
}

// Flat reports whether the category has no subcategories
func (c Category) Flat() bool {
	return len(c.Demos) == 1 && c.Demos[0].Key.Subcategory == ""
}

// Subcategories returns the subcategory names in display order
func (c Category) Subcategories() []string {
	if c.Flat() {
		return nil
	}
	names := make([]string, len(c.Demos))
	for i, d := range c.Demos {
		names[i] = d.Key.Subcategory
	}
	return names
}

// Source is the read side of a catalog
type Source interface {
	Categories() []Category
	Lookup(key Key) (Demo, error)
}

// Catalog is an immutable in-memory Source
type Catalog struct {
	categories []Category
	index      map[string]int
}

// New validates categories and orders them by Order, then name
func New(categories []Category) (*Catalog, error) {
	sorted := make([]Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].Name < sorted[j].Name
	})

	c := &Catalog{categories: sorted, index: make(map[string]int, len(sorted))}
	for i, cat := range sorted {
		if err := validate(cat); err != nil {
			return nil, err
		}
		if _, dup := c.index[cat.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalid, cat.Name)
		}
		c.index[cat.Name] = i
	}
	return c, nil
}

func validate(cat Category) error {
	if cat.Name == "" {
		return fmt.Errorf("%w: category without name", ErrInvalid)
	}
	if len(cat.Demos) == 0 {
		return fmt.Errorf("%w: category %q has no demos", ErrInvalid, cat.Name)
	}
	if cat.Flat() {
		if cat.Default != "" {
			return fmt.Errorf("%w: flat category %q has a default", ErrInvalid, cat.Name)
		}
		return nil
	}

	seen := make(map[string]bool, len(cat.Demos))
	for _, d := range cat.Demos {
		switch {
		case d.Key.Category != cat.Name:
			return fmt.Errorf("%w: demo %s filed under %q", ErrInvalid, d.Key, cat.Name)
		case d.Key.Subcategory == "":
			return fmt.Errorf("%w: category %q mixes flat and nested demos", ErrInvalid, cat.Name)
		case seen[d.Key.Subcategory]:
			return fmt.Errorf("%w: duplicate subcategory %s", ErrInvalid, d.Key)
		}
		seen[d.Key.Subcategory] = true
	}
	if !seen[cat.Default] {
		return fmt.Errorf("%w: category %q default %q is not a subcategory", ErrInvalid, cat.Name, cat.Default)
	}
	return nil
}

// Categories returns the categories in display order
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category returns a category by name
func (c *Catalog) Category(name string) (Category, bool) {
	i, ok := c.index[name]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Resolve fills in the default subcategory
func (c *Catalog) Resolve(key Key) (Key, error) {
	cat, ok := c.Category(key.Category)
	if !ok {
		return Key{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if key.Subcategory == "" && !cat.Flat() {
		key.Subcategory = cat.Default
	}
	return key, nil
}

// Lookup returns the demo for key
func (c *Catalog) Lookup(key Key) (Demo, error) {
	key, err := c.Resolve(key)
	if err != nil {
		return Demo{}, err
	}
	cat, _ := c.Category(key.Category)
	for _, d := range cat.Demos {
		if d.Key == key {
			return d, nil
		}
	}
	return Demo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Keys returns every demo key in display order
func (c *Catalog) Keys() []Key {
	var keys []Key
	for _, cat := range c.categories {
		for _, d := range cat.Demos {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// DefaultKey is the first category with its default subcategory
func (c *Catalog) DefaultKey() Key {
	if len(c.categories) == 0 {
		return Key{}
	}
	key, _ := c.Resolve(Key{Category: c.categories[0].Name})
	return key
}
