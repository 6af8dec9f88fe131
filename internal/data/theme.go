package data

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme is one visual chunk theme. The engine treats the name as an opaque
// tag and forwards it to decoration hooks; Tint is carried for the hook's
// benefit and never interpreted here.
type Theme struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
	Tint   string `yaml:"tint"`
}

type themeFile struct {
	Themes []Theme `yaml:"themes"`
}

// ThemeTable holds the weighted theme catalog.
type ThemeTable struct {
	themes      []Theme
	totalWeight int
}

// LoadThemeTable loads the theme catalog from a YAML file.
func LoadThemeTable(path string) (*ThemeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme table: %w", err)
	}
	var f themeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse theme table: %w", err)
	}
	if len(f.Themes) == 0 {
		return nil, fmt.Errorf("theme table %s: no themes", path)
	}
	t := &ThemeTable{themes: f.Themes}
	for i := range t.themes {
		if t.themes[i].Weight < 1 {
			t.themes[i].Weight = 1
		}
		t.totalWeight += t.themes[i].Weight
	}
	return t, nil
}

// DefaultThemeTable returns a single-theme catalog, used when no theme file
// is configured.
func DefaultThemeTable() *ThemeTable {
	return &ThemeTable{
		themes:      []Theme{{Name: "stone", Weight: 1}},
		totalWeight: 1,
	}
}

// Pick returns a theme name drawn by weight.
func (t *ThemeTable) Pick() string {
	roll := rand.Intn(t.totalWeight)
	for _, th := range t.themes {
		roll -= th.Weight
		if roll < 0 {
			return th.Name
		}
	}
	return t.themes[len(t.themes)-1].Name
}

// Get returns a theme by name, or nil.
func (t *ThemeTable) Get(name string) *Theme {
	for i := range t.themes {
		if t.themes[i].Name == name {
			return &t.themes[i]
		}
	}
	return nil
}

// Len returns the number of themes in the catalog.
func (t *ThemeTable) Len() int { return len(t.themes) }
