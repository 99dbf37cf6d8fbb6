package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearwright/copilot"
)

func newTestStyleStore(t *testing.T) *StyleStore {
	t.Helper()
	return NewStyleStore(filepath.Join(t.TempDir(), "style.json"))
}

func TestStyleLoadDefaultsOnFirstUse(t *testing.T) {
	s := newTestStyleStore(t)
	profile, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, copilot.DefaultStyleProfile(), profile)
}

func TestStyleSaveMergesOverDefaults(t *testing.T) {
	s := newTestStyleStore(t)
	profile, err := s.Save(map[string]any{"tone": "blunt"})
	require.NoError(t, err)

	defaults := copilot.DefaultStyleProfile()
	assert.Equal(t, "blunt", profile.Tone)
	assert.Equal(t, defaults.Detail, profile.Detail)
	assert.Equal(t, defaults.Emojis, profile.Emojis)
	assert.Equal(t, defaults.Formatting, profile.Formatting)

	// The merge persisted: a fresh load sees it.
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "blunt", loaded.Tone)
	assert.Equal(t, defaults.Detail, loaded.Detail)
}

func TestStyleSaveMergesOverPriorSave(t *testing.T) {
	s := newTestStyleStore(t)
	_, err := s.Save(map[string]any{"tone": "blunt", "emojis": "always"})
	require.NoError(t, err)
	profile, err := s.Save(map[string]any{"detail": "exhaustive"})
	require.NoError(t, err)

	assert.Equal(t, "blunt", profile.Tone)
	assert.Equal(t, "always", profile.Emojis)
	assert.Equal(t, "exhaustive", profile.Detail)
}

func TestStyleUnknownFieldsSurviveRoundTrips(t *testing.T) {
	s := newTestStyleStore(t)
	_, err := s.Save(map[string]any{"dialect": "pirate"})
	require.NoError(t, err)
	_, err = s.Save(map[string]any{"tone": "blunt"})
	require.NoError(t, err)

	profile, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "pirate", profile.Extra["dialect"])
	assert.Equal(t, "blunt", profile.Tone)
}
