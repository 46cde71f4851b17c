package auth

import (
	"testing"

	"github.com/portfolio-site/core/internal/modules/storage"
	"github.com/portfolio-site/core/internal/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testIdentity = Identity{Email: "owner@example.com", Password: "s3cret-Pass"}

func TestSignInHappyPath(t *testing.T) {
	t.Parallel()
	store := kv.NewMemory()
	gate := NewGate(storage.New(store, nil), testIdentity, nil)

	require.False(t, gate.IsAdmin())
	require.NoError(t, gate.SignIn("owner@example.com", "s3cret-Pass"))
	assert.True(t, gate.IsAdmin())

	s := gate.Current()
	require.NotNil(t, s)
	assert.Equal(t, "owner@example.com", s.Email)
	assert.True(t, s.IsAdmin)

	raw, ok, err := store.Get(storage.KeySession)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"email":"owner@example.com","isAdmin":true}`, raw)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	t.Parallel()
	gate := NewGate(storage.New(kv.NewMemory(), nil), testIdentity, nil)

	assert.ErrorIs(t, gate.SignIn("owner@example.com", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, gate.SignIn("other@example.com", "s3cret-Pass"), ErrInvalidCredentials)
	assert.False(t, gate.IsAdmin())
}

func TestSignInRejectsEverythingWhenUnconfigured(t *testing.T) {
	t.Parallel()
	gate := NewGate(storage.New(kv.NewMemory(), nil), Identity{}, nil)
	assert.ErrorIs(t, gate.SignIn("", ""), ErrInvalidCredentials)
}

func TestSessionSurvivesReload(t *testing.T) {
	t.Parallel()
	store := kv.NewMemory()
	gate := NewGate(storage.New(store, nil), testIdentity, nil)
	require.NoError(t, gate.SignIn("owner@example.com", "s3cret-Pass"))

	// A fresh gate over the same store models a reload.
	reloaded := NewGate(storage.New(store, nil), testIdentity, nil)
	assert.True(t, reloaded.IsAdmin())
}

func TestSignOutRemovesSessionRecord(t *testing.T) {
	t.Parallel()
	store := kv.NewMemory()
	gate := NewGate(storage.New(store, nil), testIdentity, nil)
	require.NoError(t, gate.SignIn("owner@example.com", "s3cret-Pass"))

	gate.SignOut()
	assert.False(t, gate.IsAdmin())
	assert.Nil(t, gate.Current())

	_, ok, err := store.Get(storage.KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMalformedSessionIsDiscarded(t *testing.T) {
	t.Parallel()
	store := kv.NewMemory()
	require.NoError(t, store.Set(storage.KeySession, "{not json"))

	gate := NewGate(storage.New(store, nil), testIdentity, nil)
	assert.False(t, gate.IsAdmin())

	_, ok, err := store.Get(storage.KeySession)
	require.NoError(t, err)
	assert.False(t, ok, "malformed record should have been removed")
}

func TestSignInWithBcryptHash(t *testing.T) {
	t.Parallel()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	gate := NewGate(storage.New(kv.NewMemory(), nil), Identity{
		Email:        "owner@example.com",
		PasswordHash: string(hash),
	}, nil)

	assert.ErrorIs(t, gate.SignIn("owner@example.com", "wrong"), ErrInvalidCredentials)
	assert.NoError(t, gate.SignIn("owner@example.com", "hunter2hunter2"))
}
