package storage

import (
	"errors"
	"regexp"
	"testing"

	"github.com/portfolio-site/core/internal/models"
	"github.com/portfolio-site/core/internal/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore fails every call, standing in for disabled or full storage.
type brokenStore struct{}

var errBroken = errors.New("storage unavailable")

func (brokenStore) Get(string) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Set(string, string) error         { return errBroken }
func (brokenStore) Remove(string) error              { return errBroken }
func (brokenStore) Close() error                     { return nil }

func TestEnsureCollectionsInitializesAndIsIdempotent(t *testing.T) {
	t.Parallel()
	store := kv.NewMemory()
	acc := New(store, nil)

	acc.EnsureCollections()
	for _, key := range []string{KeyBlogPosts, KeyProjects} {
		v, ok, err := store.Get(key)
		require.NoError(t, err)
		require.True(t, ok, key)
		assert.Equal(t, "[]", v)
	}

	// A second call must not clobber existing data.
	require.NoError(t, store.Set(KeyBlogPosts, `[{"slug":"a"}]`))
	acc.EnsureCollections()
	v, _, _ := store.Get(KeyBlogPosts)
	assert.Equal(t, `[{"slug":"a"}]`, v)

	// A concurrent wipe between operations is re-initialized on the next call.
	require.NoError(t, store.Remove(KeyProjects))
	acc.EnsureCollections()
	_, ok, _ := store.Get(KeyProjects)
	assert.True(t, ok)
}

func TestVisitorIDStableAndWellFormed(t *testing.T) {
	t.Parallel()
	acc := New(kv.NewMemory(), nil)

	id := acc.VisitorID()
	require.NotEmpty(t, id)
	assert.Regexp(t, regexp.MustCompile(`^user_\d+_[0-9a-f]{7}$`), id)
	assert.Equal(t, id, acc.VisitorID())
}

func TestVisitorIDDegradesWhenStoreBroken(t *testing.T) {
	t.Parallel()
	acc := New(brokenStore{}, nil)
	assert.Equal(t, "", acc.VisitorID())
}

func TestPostsRoundTrip(t *testing.T) {
	t.Parallel()
	acc := New(kv.NewMemory(), nil)

	posts, err := acc.Posts()
	require.NoError(t, err)
	assert.Empty(t, posts)

	in := []models.BlogPost{{
		Slug: "hello", Title: "Hello", Tags: []string{"go"},
		Likes: 2, LikedBy: []string{"u1", "u2"}, CreatedAt: 1700000000000,
	}}
	require.NoError(t, acc.SavePosts(in))

	out, err := acc.Posts()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPostsReturnsErrorOnCorruptJSON(t *testing.T) {
	t.Parallel()
	store := kv.NewMemory()
	require.NoError(t, store.Set(KeyBlogPosts, "{corrupt"))
	acc := New(store, nil)

	_, err := acc.Posts()
	assert.Error(t, err)
}

func TestProjectsRoundTrip(t *testing.T) {
	t.Parallel()
	acc := New(kv.NewMemory(), nil)

	in := []models.Project{{ID: "1700000000000", Title: "Site", Featured: true, Tags: []string{}}}
	require.NoError(t, acc.SaveProjects(in))

	out, err := acc.Projects()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
