// Package pin implements the sensitive-action gate: an optional 6-digit
// code, independent of the admin session, that destructive admin actions
// must be confirmed against before they run.
package pin

import (
	"crypto/subtle"
	"errors"
	"regexp"
	"sync"

	"github.com/portfolio-site/core/internal/modules/storage"
	"go.uber.org/zap"
)

// ErrInvalidPin is returned by Set when the candidate is not exactly six
// digits.
var ErrInvalidPin = errors.New("pin must be exactly 6 digits")

var pinPattern = regexp.MustCompile(`^\d{6}$`)

// Gate holds the optional PIN. When none is set every guarded action runs
// immediately.
type Gate struct {
	acc    *storage.Accessor
	logger *zap.Logger

	mu  sync.RWMutex
	pin string
}

// NewGate builds the gate and restores any persisted PIN.
func NewGate(acc *storage.Accessor, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gate{acc: acc, logger: logger}
	if raw, ok, err := acc.Get(storage.KeyPin); err != nil {
		logger.Error("failed to read pin", zap.Error(err))
	} else if ok {
		g.pin = raw
	}
	return g
}

// IsSet reports whether a PIN is configured.
func (g *Gate) IsSet() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.pin != ""
}

// Verify checks the candidate against the stored PIN. There is no rate
// limiting or lockout; a cleared gate rejects everything.
func (g *Gate) Verify(candidate string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.pin == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(g.pin)) == 1
}

// Set validates and persists the PIN, overwriting any existing one without
// re-authentication.
func (g *Gate) Set(candidate string) error {
	if !pinPattern.MatchString(candidate) {
		return ErrInvalidPin
	}
	if err := g.acc.Set(storage.KeyPin, candidate); err != nil {
		g.logger.Error("failed to persist pin", zap.Error(err))
		return err
	}
	g.mu.Lock()
	g.pin = candidate
	g.mu.Unlock()
	return nil
}

// Clear removes the PIN; afterwards the gate passes everything through.
func (g *Gate) Clear() error {
	if err := g.acc.Remove(storage.KeyPin); err != nil {
		g.logger.Error("failed to remove pin", zap.Error(err))
		return err
	}
	g.mu.Lock()
	g.pin = ""
	g.mu.Unlock()
	return nil
}

// Pending is an action deferred by Guard, waiting for PIN confirmation. It
// runs at most once: on the first successful Confirm, or never if canceled.
type Pending struct {
	gate   *Gate
	mu     sync.Mutex
	action func()
}

// Guard runs the action immediately and returns nil when no PIN is set.
// Otherwise the action is deferred behind the returned Pending.
func (g *Gate) Guard(action func()) *Pending {
	if !g.IsSet() {
		action()
		return nil
	}
	return &Pending{gate: g, action: action}
}

// Confirm runs the deferred action when the candidate verifies. Subsequent
// calls are no-ops regardless of the candidate.
func (p *Pending) Confirm(candidate string) bool {
	if !p.gate.Verify(candidate) {
		return false
	}
	p.mu.Lock()
	action := p.action
	p.action = nil
	p.mu.Unlock()
	if action == nil {
		return false
	}
	action()
	return true
}

// Cancel discards the deferred action without running it.
func (p *Pending) Cancel() {
	p.mu.Lock()
	p.action = nil
	p.mu.Unlock()
}
