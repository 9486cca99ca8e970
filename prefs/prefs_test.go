// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAbsentFileGivesDefaults(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	p, err := Load(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(err)
	assert.Equal(DefaultLanguage, p.Language)
	assert.Equal(DefaultTheme, p.Theme)
}

func TestLoadMalformedFileGivesDefaults(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(os.WriteFile(path, []byte("{broken"), 0o644))

	p, err := Load(path)
	require.NoError(err)
	assert.Equal(DefaultLanguage, p.Language)
	assert.Equal(DefaultTheme, p.Theme)
}

func TestSetPersistsAndReloads(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	p, err := Load(path)
	require.NoError(err)

	require.NoError(p.SetLanguage("de"))
	require.NoError(p.SetTheme("dark"))

	reloaded, err := Load(path)
	require.NoError(err)
	assert.Equal("de", reloaded.Language)
	assert.Equal("dark", reloaded.Theme)
}

func TestSetThemeUnknownFallsBack(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	p, err := Load(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(err)

	require.NoError(p.SetTheme("neon"))
	assert.Equal(DefaultTheme, p.Theme)
}

func TestSetLanguageEmptyFallsBack(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	p, err := Load(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(err)

	require.NoError(p.SetLanguage(""))
	assert.Equal(DefaultLanguage, p.Language)
}

func TestLoadIgnoresUnknownStoredTheme(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(os.WriteFile(path, []byte(`{"language":"fr","theme":"neon"}`), 0o644))

	p, err := Load(path)
	require.NoError(err)
	assert.Equal("fr", p.Language)
	assert.Equal(DefaultTheme, p.Theme)
}
