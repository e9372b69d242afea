package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"neurondemo/internal/log"
	"neurondemo/internal/playback"
)

//go:embed scripts/*.yaml
var builtin embed.FS

// categoryFile is the on-disk shape of one category
type categoryFile struct {
	Name          string            `yaml:"name"`
	Title         string            `yaml:"title,omitempty"`
	Order         int               `yaml:"order"`
	Default       string            `yaml:"default,omitempty"`
	Description   string            `yaml:"description,omitempty"`
	Badges        []string          `yaml:"badges,omitempty"`
	Steps         []playback.Step   `yaml:"steps,omitempty"`
	Subcategories []subcategoryFile `yaml:"subcategories,omitempty"`
}

type subcategoryFile struct {
	Name        string          `yaml:"name"`
	Title       string          `yaml:"title,omitempty"`
	Description string          `yaml:"description,omitempty"`
	Badges      []string        `yaml:"badges,omitempty"`
	Steps       []playback.Step `yaml:"steps"`
}

// Title turns a tab name such as "hf_models" into "Hf Models"
func Title(name string) string {
	// casers keep state, one per call
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// Builtin returns the catalog compiled into the binary
func Builtin() (*Catalog, error) {
	return Load(builtin, "scripts")
}

// LoadDir reads every *.yaml file in dir
func LoadDir(dir string) (*Catalog, error) {
	return Load(os.DirFS(dir), ".")
}

// Load reads every *.yaml file in dir of fsys, one category per file
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list catalog files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no *.yaml files in %s", ErrInvalid, dir)
	}

	categories := make([]Category, 0, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		cat, err := ParseCategory(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		categories = append(categories, cat)
	}

	c, err := New(categories)
	if err != nil {
		return nil, err
	}
	log.Debug("catalog loaded", "dir", dir, "categories", len(categories), "demos", len(c.Keys()))
	return c, nil
}

// ParseCategory decodes one category document
func ParseCategory(data []byte) (Category, error) {
	var f categoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Category{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return f.category()
}

func (f categoryFile) category() (Category, error) {
	if f.Name == "" {
		return Category{}, fmt.Errorf("%w: missing category name", ErrInvalid)
	}
	title := f.Title
	if title == "" {
		title = Title(f.Name)
	}
	cat := Category{
		Name:    f.Name,
		Title:   title,
		Order:   f.Order,
		Default: f.Default,
	}

	if len(f.Subcategories) == 0 {
		cat.Demos = []Demo{{
			Key:         Key{Category: f.Name},
			Title:       title,
			Label:       title,
			Description: f.Description,
			Badges:      f.Badges,
			Script:      playback.Script{Name: f.Name, Steps: f.Steps},
		}}
		return cat, nil
	}
	if len(f.Steps) > 0 {
		return Category{}, fmt.Errorf("%w: category %q has both steps and subcategories", ErrInvalid, f.Name)
	}
	if cat.Default == "" {
		cat.Default = f.Subcategories[0].Name
	}

	for _, sub := range f.Subcategories {
		if sub.Name == "" {
			return Category{}, fmt.Errorf("%w: unnamed subcategory in %q", ErrInvalid, f.Name)
		}
		label := sub.Title
		if label == "" {
			label = Title(sub.Name)
		}
		key := Key{Category: f.Name, Subcategory: sub.Name}
		cat.Demos = append(cat.Demos, Demo{
			Key:         key,
			Title:       title + ": " + label,
			Label:       label,
			Description: sub.Description,
			Badges:      sub.Badges,
			Script:      playback.Script{Name: key.String(), Steps: sub.Steps},
		})
	}
	return cat, nil
}

// MarshalCategory encodes a category in the on-disk shape
func MarshalCategory(cat Category) ([]byte, error) {
	f := categoryFile{Name: cat.Name, Order: cat.Order}
	if cat.Title != Title(cat.Name) {
		f.Title = cat.Title
	}
	if cat.Flat() {
		d := cat.Demos[0]
		f.Description = d.Description
		f.Badges = d.Badges
		f.Steps = d.Script.Steps
	} else {
		f.Default = cat.Default
		for _, d := range cat.Demos {
			sub := subcategoryFile{
				Name:        d.Key.Subcategory,
				Description: d.Description,
				Badges:      d.Badges,
				Steps:       d.Script.Steps,
			}
			if d.Label != Title(d.Key.Subcategory) {
				sub.Title = d.Label
			}
			f.Subcategories = append(f.Subcategories, sub)
		}
	}
	return yaml.Marshal(f)
}
