package maintenance

import (
	"testing"

	"github.com/portfolio-site/core/internal/modules/storage"
	"github.com/portfolio-site/core/internal/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagDefaultsOff(t *testing.T) {
	t.Parallel()
	f := NewFlag(storage.New(kv.NewMemory(), nil), nil)
	assert.False(t, f.Enabled())
}

func TestTogglePersistsStringValue(t *testing.T) {
	t.Parallel()
	store := kv.NewMemory()
	f := NewFlag(storage.New(store, nil), nil)

	on, err := f.Toggle()
	require.NoError(t, err)
	assert.True(t, on)

	raw, ok, err := store.Get(storage.KeyMaintenance)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", raw)

	off, err := f.Toggle()
	require.NoError(t, err)
	assert.False(t, off)
	raw, _, _ = store.Get(storage.KeyMaintenance)
	assert.Equal(t, "false", raw)
}

func TestFlagRestoresFromStore(t *testing.T) {
	t.Parallel()
	store := kv.NewMemory()
	require.NoError(t, store.Set(storage.KeyMaintenance, "true"))
	assert.True(t, NewFlag(storage.New(store, nil), nil).Enabled())

	// Anything but the literal "true" reads as off.
	require.NoError(t, store.Set(storage.KeyMaintenance, "TRUE"))
	assert.False(t, NewFlag(storage.New(store, nil), nil).Enabled())
}
