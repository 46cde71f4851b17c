// Package storage is the only component that touches the key-value store
// directly. It guarantees the two top-level collections exist before any
// read and owns the anonymous per-installation visitor identifier.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio-site/core/internal/models"
	"github.com/portfolio-site/core/internal/pkg/kv"
	"go.uber.org/zap"
)

// Persisted key space. All values are JSON text except KeyVisitorID and
// KeyMaintenance, which are plain strings.
const (
	KeyBlogPosts   = "blogPosts"
	KeyProjects    = "projects"
	KeyVisitorID   = "userId"
	KeySession     = "user"
	KeyMaintenance = "maintenanceMode"
	KeyPin         = "adminPassword"
)

const emptyCollection = "[]"

// Accessor mediates every store access for the rest of the application.
type Accessor struct {
	store  kv.Store
	logger *zap.Logger
}

func New(store kv.Store, logger *zap.Logger) *Accessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accessor{store: store, logger: logger}
}

// EnsureCollections writes an empty array to either collection key that is
// absent. Idempotent. Repositories call it at the top of every operation
// rather than once at startup: another process (or a wipe) can remove the
// keys between any two calls.
func (a *Accessor) EnsureCollections() {
	for _, key := range []string{KeyBlogPosts, KeyProjects} {
		_, ok, err := a.store.Get(key)
		if err != nil {
			a.logger.Error("failed to check collection", zap.String("key", key), zap.Error(err))
			continue
		}
		if !ok {
			if err := a.store.Set(key, emptyCollection); err != nil {
				a.logger.Error("failed to initialize collection", zap.String("key", key), zap.Error(err))
			}
		}
	}
}

// VisitorID returns the persisted anonymous visitor identifier, generating
// and persisting one on first call. It is stable for the lifetime of the
// store and is used only to deduplicate likes. Returns "" when the store is
// unavailable.
func (a *Accessor) VisitorID() string {
	id, ok, err := a.store.Get(KeyVisitorID)
	if err != nil {
		a.logger.Error("failed to read visitor id", zap.Error(err))
		return ""
	}
	if ok && id != "" {
		return id
	}

	rand := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	id = fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), rand)
	if err := a.store.Set(KeyVisitorID, id); err != nil {
		a.logger.Error("failed to persist visitor id", zap.Error(err))
		return ""
	}
	return id
}

// Posts reads the blog post collection. An absent key reads as empty; a
// store or decode failure is returned so write paths can surface it.
func (a *Accessor) Posts() ([]models.BlogPost, error) {
	raw, ok, err := a.store.Get(KeyBlogPosts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyBlogPosts, err)
	}
	if !ok || raw == "" {
		return []models.BlogPost{}, nil
	}
	var posts []models.BlogPost
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyBlogPosts, err)
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	return posts, nil
}

// SavePosts serializes the whole collection and writes it as one Set, the
// only atomic unit the store offers.
func (a *Accessor) SavePosts(posts []models.BlogPost) error {
	if posts == nil {
		posts = []models.BlogPost{}
	}
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyBlogPosts, err)
	}
	if err := a.store.Set(KeyBlogPosts, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", KeyBlogPosts, err)
	}
	return nil
}

// Projects reads the project collection with the same error contract as
// Posts.
func (a *Accessor) Projects() ([]models.Project, error) {
	raw, ok, err := a.store.Get(KeyProjects)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyProjects, err)
	}
	if !ok || raw == "" {
		return []models.Project{}, nil
	}
	var projects []models.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyProjects, err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

func (a *Accessor) SaveProjects(projects []models.Project) error {
	if projects == nil {
		projects = []models.Project{}
	}
	raw, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyProjects, err)
	}
	if err := a.store.Set(KeyProjects, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", KeyProjects, err)
	}
	return nil
}

// Get exposes raw key access for the session, PIN and maintenance state.
func (a *Accessor) Get(key string) (string, bool, error) {
	return a.store.Get(key)
}

func (a *Accessor) Set(key, value string) error {
	return a.store.Set(key, value)
}

func (a *Accessor) Remove(key string) error {
	return a.store.Remove(key)
}
