// Package maintenance holds the site-wide maintenance flag shown to
// non-admin visitors.
package maintenance

import (
	"strconv"
	"sync"

	"github.com/portfolio-site/core/internal/modules/storage"
	"go.uber.org/zap"
)

// Flag is the persisted maintenance switch. The stored value is the string
// "true" or "false", not JSON.
type Flag struct {
	acc    *storage.Accessor
	logger *zap.Logger

	mu      sync.RWMutex
	enabled bool
}

// NewFlag builds the flag, restoring the persisted state. Anything other
// than the literal "true" reads as off.
func NewFlag(acc *storage.Accessor, logger *zap.Logger) *Flag {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Flag{acc: acc, logger: logger}
	if raw, ok, err := acc.Get(storage.KeyMaintenance); err != nil {
		logger.Error("failed to read maintenance flag", zap.Error(err))
	} else if ok {
		f.enabled = raw == "true"
	}
	return f
}

// Enabled reports the current state.
func (f *Flag) Enabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.enabled
}

// Set persists the given state.
func (f *Flag) Set(enabled bool) error {
	if err := f.acc.Set(storage.KeyMaintenance, strconv.FormatBool(enabled)); err != nil {
		f.logger.Error("failed to persist maintenance flag", zap.Error(err))
		return err
	}
	f.mu.Lock()
	f.enabled = enabled
	f.mu.Unlock()
	return nil
}

// Toggle flips the state and returns the new value.
func (f *Flag) Toggle() (bool, error) {
	next := !f.Enabled()
	if err := f.Set(next); err != nil {
		return f.Enabled(), err
	}
	return next, nil
}
