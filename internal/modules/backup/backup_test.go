package backup

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/portfolio-site/core/internal/models"
	"github.com/portfolio-site/core/internal/modules/post"
	"github.com/portfolio-site/core/internal/modules/project"
	"github.com/portfolio-site/core/internal/modules/storage"
	"github.com/portfolio-site/core/internal/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*Service, *post.Service, *project.Service, *storage.Accessor) {
	t.Helper()
	acc := storage.New(kv.NewMemory(), nil)
	return NewService(acc, "my-site", nil),
		post.NewService(acc, nil),
		project.NewService(acc, nil),
		acc
}

func TestExportShape(t *testing.T) {
	t.Parallel()
	svc, posts, _, _ := newFixture(t)

	_, err := posts.Create(post.CreatePostDTO{Title: "One", Description: "d", Content: "c"})
	require.NoError(t, err)

	doc, err := svc.Export()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(doc), &env))
	assert.NotNil(t, env.BlogPosts)
	assert.NotNil(t, env.Projects)
	_, err = time.Parse(time.RFC3339Nano, env.ExportDate)
	assert.NoError(t, err)

	// Pretty-printed with two-space indent.
	assert.Contains(t, doc, "\n  \"blogPosts\"")
}

func TestFilenamePattern(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(t)
	want := fmt.Sprintf("my-site-export-%s.json", time.Now().Format("2006-01-02"))
	assert.Equal(t, want, svc.Filename())
}

func TestExportClearImportRoundTrip(t *testing.T) {
	t.Parallel()
	svc, posts, projects, acc := newFixture(t)

	_, err := posts.Create(post.CreatePostDTO{Title: "Keep Me", Description: "d", Content: "c", Tags: []string{"go"}})
	require.NoError(t, err)
	require.True(t, posts.Like("keep-me").Success)
	_, err = projects.Create(project.CreateProjectDTO{Title: "Side Project", Featured: true})
	require.NoError(t, err)

	wantPosts, err := acc.Posts()
	require.NoError(t, err)
	wantProjects, err := acc.Projects()
	require.NoError(t, err)

	doc, err := svc.Export()
	require.NoError(t, err)

	require.True(t, svc.Clear())
	assert.Empty(t, posts.ListAll())
	assert.Empty(t, projects.ListAll())

	res := svc.Import(doc)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Successfully imported 1 blog posts and 1 projects.", res.Message)

	gotPosts, err := acc.Posts()
	require.NoError(t, err)
	gotProjects, err := acc.Projects()
	require.NoError(t, err)
	assert.Equal(t, wantPosts, gotPosts)
	assert.Equal(t, wantProjects, gotProjects)
}

func TestImportRejectsMissingKeysWithoutWriting(t *testing.T) {
	t.Parallel()
	svc, posts, _, _ := newFixture(t)

	_, err := posts.Create(post.CreatePostDTO{Title: "Survivor", Description: "d", Content: "c"})
	require.NoError(t, err)

	for _, doc := range []string{
		`{"blogPosts": []}`,
		`{"projects": []}`,
		`{"blogPosts": null, "projects": []}`,
		`{}`,
	} {
		res := svc.Import(doc)
		assert.False(t, res.Success, doc)
		assert.Equal(t, msgInvalidFormat, res.Message, doc)
	}
	assert.Len(t, posts.ListAll(), 1)
}

func TestImportRejectsGarbage(t *testing.T) {
	t.Parallel()
	svc, posts, _, _ := newFixture(t)

	res := svc.Import("{definitely not json")
	assert.False(t, res.Success)
	assert.Equal(t, msgParseFailed, res.Message)
	assert.Empty(t, posts.ListAll())
}

func TestImportOverwritesNotMerges(t *testing.T) {
	t.Parallel()
	svc, posts, _, acc := newFixture(t)

	_, err := posts.Create(post.CreatePostDTO{Title: "Old", Description: "d", Content: "c"})
	require.NoError(t, err)

	res := svc.Import(`{"blogPosts":[{"slug":"imported","title":"I","tags":[],"likedBy":[]}],"projects":[]}`)
	require.True(t, res.Success, res.Message)

	got, err := acc.Posts()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "imported", got[0].Slug)

	var projects []models.Project
	rawProjects, _, err := acc.Get(storage.KeyProjects)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(rawProjects), &projects))
	assert.Empty(t, projects)
}
