// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

// Package prefs holds the user-facing preference pair (language, theme) as an
// explicit object threaded through callers. There is no package-level state:
// Load reads the persisted value once, and every setter both updates the
// object and persists it.
package prefs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Defaults used when no preference file exists or its content is malformed.
const (
	DefaultLanguage = "en"
	DefaultTheme    = "system"
)

var knownThemes = map[string]bool{
	"system": true,
	"light":  true,
	"dark":   true,
}

// Preferences is the persisted preference pair.
type Preferences struct {
	path     string
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// Load reads the preference file at path, falling back to defaults when the
// file is absent or malformed. A malformed file is not an error; it is
// replaced on the next Set call.
func Load(path string) (*Preferences, error) {
	p := &Preferences{
		path:     path,
		Language: DefaultLanguage,
		Theme:    DefaultTheme,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}

	var stored Preferences
	if err := json.Unmarshal(data, &stored); err != nil {
		return p, nil
	}
	if stored.Language != "" {
		p.Language = stored.Language
	}
	if knownThemes[stored.Theme] {
		p.Theme = stored.Theme
	}
	return p, nil
}

// SetLanguage updates the language code and persists the pair.
func (p *Preferences) SetLanguage(language string) error {
	if language == "" {
		language = DefaultLanguage
	}
	p.Language = language
	return p.save()
}

// SetTheme updates the theme mode and persists the pair. Unknown modes fall
// back to the default.
func (p *Preferences) SetTheme(theme string) error {
	if !knownThemes[theme] {
		theme = DefaultTheme
	}
	p.Theme = theme
	return p.save()
}

func (p *Preferences) save() error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(p.path, data, 0o644)
}
