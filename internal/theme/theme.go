// Package theme resolves the effective light/dark theme from the stored
// preference and the host color scheme.
package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/verte-zerg/deskfolio/internal/model"
)

// StorageKey is the key holding the theme preference string.
const StorageKey = "deskfolio.theme"

// DefaultPreference applies when nothing valid is persisted.
const DefaultPreference = model.ThemeDark

// ErrInvalidPreference is returned for values other than light, dark, or system.
var ErrInvalidPreference = errors.New("theme must be 'light', 'dark', or 'system'")

// KV is the persistent key-value storage used by the resolver.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Resolver tracks the theme preference and derives the effective theme.
// While the preference is system it holds one subscription on the host signal.
type Resolver struct {
	kv     KV
	signal Signal
	logger *slog.Logger

	mu        sync.Mutex
	pref      model.ThemePreference
	effective model.EffectiveTheme
	release   func()
	onChange  []func(model.EffectiveTheme)
	closed    bool
}

// NewResolver returns a resolver with the default preference. signal may be nil,
// in which case "system" resolves to dark.
func NewResolver(kv KV, signal Signal, logger *slog.Logger) *Resolver {
	if kv == nil {
		panic("theme: nil KV")
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{kv: kv, signal: signal, logger: logger}
	r.apply(DefaultPreference)
	return r
}

// ParsePreference validates a textual preference.
func ParsePreference(raw string) (model.ThemePreference, error) {
	pref := model.ThemePreference(strings.ToLower(strings.TrimSpace(raw)))
	if !pref.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPreference, raw)
	}
	return pref, nil
}

// Load reads the persisted preference. Missing or unknown values fall back to dark.
func (r *Resolver) Load(ctx context.Context) error {
	raw, ok, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read theme: %w", err)
	}
	pref := DefaultPreference
	if ok {
		parsed, perr := ParsePreference(raw)
		if perr != nil {
			r.logger.Warn("ignoring persisted theme", "value", raw)
		} else {
			pref = parsed
		}
	}
	r.apply(pref)
	return nil
}

// SetPreference stores and persists the preference.
func (r *Resolver) SetPreference(ctx context.Context, pref model.ThemePreference) error {
	if !pref.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPreference, string(pref))
	}
	r.apply(pref)
	if err := r.kv.Put(ctx, StorageKey, string(pref)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Preference returns the stored preference.
func (r *Resolver) Preference() model.ThemePreference {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pref
}

// Effective returns the concrete theme.
func (r *Resolver) Effective() model.EffectiveTheme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.effective
}

// OnChange registers fn to be called with the new effective theme after each change.
func (r *Resolver) OnChange(fn func(model.EffectiveTheme)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = append(r.onChange, fn)
}

// Close releases the host signal subscription. The resolver keeps answering
// with the last effective theme.
func (r *Resolver) Close() {
	r.mu.Lock()
	release := r.release
	r.release = nil
	r.closed = true
	r.mu.Unlock()
	if release != nil {
		release()
	}
}

func (r *Resolver) apply(pref model.ThemePreference) {
	r.mu.Lock()
	if r.closed {
		r.pref = pref
		r.mu.Unlock()
		r.recompute()
		return
	}
	prevPref := r.pref
	r.pref = pref

	var oldRelease func()
	subscribe := false
	if pref == model.ThemeSystem {
		subscribe = prevPref != model.ThemeSystem || r.release == nil
	} else {
		oldRelease = r.release
		r.release = nil
	}
	r.mu.Unlock()

	if oldRelease != nil {
		oldRelease()
	}
	if subscribe && r.signal != nil {
		release := r.signal.Watch(r.hostChanged)
		r.mu.Lock()
		if r.release != nil || r.closed || r.pref != model.ThemeSystem {
			// Lost a race with another apply or Close.
			r.mu.Unlock()
			release()
		} else {
			r.release = release
			r.mu.Unlock()
		}
	}
	r.recompute()
}

func (r *Resolver) hostChanged(bool) {
	r.recompute()
}

func (r *Resolver) recompute() {
	r.mu.Lock()
	next := r.resolveLocked()
	changed := next != r.effective
	r.effective = next
	fns := append([]func(model.EffectiveTheme){}, r.onChange...)
	r.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range fns {
		fn(next)
	}
}

func (r *Resolver) resolveLocked() model.EffectiveTheme {
	switch r.pref {
	case model.ThemeLight:
		return model.EffectiveLight
	case model.ThemeDark:
		return model.EffectiveDark
	}
	if r.signal == nil {
		return model.EffectiveDark
	}
	dark, ok := r.signal.Dark()
	if !ok || dark {
		return model.EffectiveDark
	}
	return model.EffectiveLight
}
