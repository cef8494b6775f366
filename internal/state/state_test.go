package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingeapp/tinge/internal/models"
)

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, s.Load())
	assert.Empty(t, s.Get().CurrentTheme)
}

func TestStore_UpdatePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewStore(path)
	require.NoError(t, s.Load())

	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.Update(func(st *models.ActiveThemeState) {
		st.Touch("nord", at)
	}))

	// A fresh store sees the persisted state.
	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())
	got := reloaded.Get()
	assert.Equal(t, "nord", got.CurrentTheme)
	assert.Equal(t, []string{"nord"}, got.RecencyList)
	assert.True(t, got.LastSwitched.Equal(at))
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path)
	assert.Error(t, s.Load())
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, s.Load())
	require.NoError(t, s.Update(func(st *models.ActiveThemeState) {
		st.Touch("a", time.Now())
	}))

	got := s.Get()
	got.RecencyList[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.Get().RecencyList)
}
