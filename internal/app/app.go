// Package app wires configuration, the key-value store and every service
// together. Nothing here contains business logic.
package app

import (
	"errors"
	"fmt"

	"github.com/portfolio-site/core/internal/config"
	"github.com/portfolio-site/core/internal/models"
	"github.com/portfolio-site/core/internal/modules/auth"
	"github.com/portfolio-site/core/internal/modules/backup"
	"github.com/portfolio-site/core/internal/modules/maintenance"
	"github.com/portfolio-site/core/internal/modules/pin"
	"github.com/portfolio-site/core/internal/modules/post"
	"github.com/portfolio-site/core/internal/modules/project"
	"github.com/portfolio-site/core/internal/modules/storage"
	"github.com/portfolio-site/core/internal/pkg/kv"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.Config
	store  kv.Store
	logger *zap.Logger

	Storage     *storage.Accessor
	Posts       *post.Service
	Projects    *project.Service
	Auth        *auth.Gate
	Pin         *pin.Gate
	Maintenance *maintenance.Flag
	Backup      *backup.Service
}

// New initializes the application: config → store → accessor → services.
func New(logger *zap.Logger, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := kv.Open(cfg.Store.Backend, cfg.StoreDSN())
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	acc := storage.New(store, logger)
	acc.EnsureCollections()

	a := &App{
		cfg:      cfg,
		store:    store,
		logger:   logger,
		Storage:  acc,
		Posts:    post.NewService(acc, logger),
		Projects: project.NewService(acc, logger),
		Auth: auth.NewGate(acc, auth.Identity{
			Email:        cfg.Admin.Email,
			Password:     cfg.Admin.Password,
			PasswordHash: cfg.Admin.PasswordHash,
		}, logger),
		Pin:         pin.NewGate(acc, logger),
		Maintenance: maintenance.NewFlag(acc, logger),
		Backup:      backup.NewService(acc, cfg.Site.Name, logger),
	}
	return a, nil
}

// Session exposes the restored session, if any.
func (a *App) Session() *models.Session { return a.Auth.Current() }

// Close releases the store.
func (a *App) Close() error { return a.store.Close() }
