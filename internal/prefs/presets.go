// Package prefs persists small user preferences outside the backend.
// Currently that is saved filter presets for the browse views.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const presetsFile = "presets.toml"

// Preset is a named, reusable filter configuration.
type Preset struct {
	Name       string   `toml:"name"`
	Search     string   `toml:"search,omitempty"`
	DateFrom   string   `toml:"date_from,omitempty"`
	DateTo     string   `toml:"date_to,omitempty"`
	Locations  []string `toml:"locations,omitempty"`
	Priorities []string `toml:"priorities,omitempty"`
	Authors    []string `toml:"authors,omitempty"`
}

type presetsDoc struct {
	Preset []Preset `toml:"preset"`
}

// Store reads and writes presets under dir. A zero dir resolves to the user
// config directory on first use.
type Store struct {
	Dir string
}

func (s *Store) path() (string, error) {
	dir := s.Dir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "newsdesk")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, presetsFile), nil
}

// Load returns the saved presets; a missing file is an empty list.
func (s *Store) Load() ([]Preset, error) {
	path, err := s.path()
	if err != nil {
		return nil, err
	}
	var doc presetsDoc
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("prefs: decode %s: %w", path, err)
	}
	return doc.Preset, nil
}

// Save replaces the preset file atomically (write temp, rename over).
func (s *Store) Save(presets []Preset) error {
	path, err := s.path()
	if err != nil {
		return err
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(presetsDoc{Preset: presets}); err != nil {
		return fmt.Errorf("prefs: encode presets: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Add appends a preset, replacing any existing preset with the same name.
func (s *Store) Add(p Preset) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}
	out := make([]Preset, 0, len(existing)+1)
	for _, e := range existing {
		if !strings.EqualFold(e.Name, p.Name) {
			out = append(out, e)
		}
	}
	out = append(out, p)
	return s.Save(out)
}
