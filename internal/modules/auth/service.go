// Package auth implements the session/authorization gate. There is a single
// configured admin identity; the persisted session record is the entire
// authentication state.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"sync"

	"github.com/portfolio-site/core/internal/models"
	"github.com/portfolio-site/core/internal/modules/storage"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by SignIn for any non-matching pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Identity is the configured admin account. Password holds the plaintext
// secret; when PasswordHash (bcrypt) is set it takes precedence and the
// plaintext field is ignored.
type Identity struct {
	Email        string
	Password     string
	PasswordHash string
}

// Gate is the two-state session machine: Anonymous or Authenticated-Admin.
type Gate struct {
	acc      *storage.Accessor
	identity Identity
	logger   *zap.Logger

	mu      sync.RWMutex
	session *models.Session
}

// NewGate builds the gate and restores any persisted session. A session
// record that fails to parse counts as no session and is removed.
func NewGate(acc *storage.Accessor, identity Identity, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gate{acc: acc, identity: identity, logger: logger}
	g.restore()
	return g
}

func (g *Gate) restore() {
	raw, ok, err := g.acc.Get(storage.KeySession)
	if err != nil {
		g.logger.Error("failed to read session", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		g.logger.Warn("discarding malformed session record", zap.Error(err))
		if err := g.acc.Remove(storage.KeySession); err != nil {
			g.logger.Error("failed to remove malformed session", zap.Error(err))
		}
		return
	}
	g.session = &s
}

// SignIn compares the pair against the configured identity and, on success,
// persists the session record and transitions to Authenticated-Admin.
func (g *Gate) SignIn(email, password string) error {
	if !g.matches(email, password) {
		return ErrInvalidCredentials
	}

	s := models.Session{Email: email, IsAdmin: true}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := g.acc.Set(storage.KeySession, string(raw)); err != nil {
		g.logger.Error("failed to persist session", zap.Error(err))
		return err
	}

	g.mu.Lock()
	g.session = &s
	g.mu.Unlock()
	return nil
}

func (g *Gate) matches(email, password string) bool {
	if g.identity.Email == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(g.identity.Email)) == 1

	var passwordOK bool
	if g.identity.PasswordHash != "" {
		passwordOK = bcrypt.CompareHashAndPassword(
			[]byte(g.identity.PasswordHash), []byte(password)) == nil
	} else {
		passwordOK = g.identity.Password != "" &&
			subtle.ConstantTimeCompare([]byte(password), []byte(g.identity.Password)) == 1
	}
	return emailOK && passwordOK
}

// SignOut removes the persisted session and returns to Anonymous.
func (g *Gate) SignOut() {
	if err := g.acc.Remove(storage.KeySession); err != nil {
		g.logger.Error("failed to remove session", zap.Error(err))
	}
	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()
}

// Current returns a copy of the active session, or nil when Anonymous.
func (g *Gate) Current() *models.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.session == nil {
		return nil
	}
	s := *g.session
	return &s
}

// IsAdmin reports whether the gate is in the Authenticated-Admin state. In
// this single-role system it is equivalent to session presence.
func (g *Gate) IsAdmin() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session != nil && g.session.IsAdmin
}
