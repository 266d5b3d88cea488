package theme

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/deskfolio/internal/config"
	"github.com/verte-zerg/deskfolio/internal/model"
)

type memKV struct {
	data   map[string]string
	putErr error
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func TestDefaultPreferenceIsDark(t *testing.T) {
	r := NewResolver(newMemKV(), NewSwitch(false), config.DiscardLogger())
	require.NoError(t, r.Load(context.Background()))
	assert.Equal(t, model.ThemeDark, r.Preference())
	assert.Equal(t, model.EffectiveDark, r.Effective())
}

func TestLoadIgnoresUnknownPersistedValue(t *testing.T) {
	kv := newMemKV()
	kv.data[StorageKey] = "sepia"
	r := NewResolver(kv, nil, config.DiscardLogger())
	require.NoError(t, r.Load(context.Background()))
	assert.Equal(t, model.ThemeDark, r.Preference())
}

func TestExplicitPreferencesResolveDirectly(t *testing.T) {
	kv := newMemKV()
	host := NewSwitch(true)
	r := NewResolver(kv, host, config.DiscardLogger())
	ctx := context.Background()

	require.NoError(t, r.SetPreference(ctx, model.ThemeLight))
	assert.Equal(t, model.EffectiveLight, r.Effective())
	assert.Equal(t, "light", kv.data[StorageKey])
	assert.Equal(t, 0, host.Watchers())

	require.NoError(t, r.SetPreference(ctx, model.ThemeDark))
	assert.Equal(t, model.EffectiveDark, r.Effective())
}

func TestSystemPreferenceFollowsHostSignal(t *testing.T) {
	host := NewSwitch(false)
	r := NewResolver(newMemKV(), host, config.DiscardLogger())
	t.Cleanup(r.Close)

	require.NoError(t, r.SetPreference(context.Background(), model.ThemeSystem))
	assert.Equal(t, model.EffectiveLight, r.Effective())

	host.Set(true)
	assert.Equal(t, model.EffectiveDark, r.Effective())
	assert.Equal(t, model.ThemeSystem, r.Preference())

	host.Set(false)
	assert.Equal(t, model.EffectiveLight, r.Effective())
}

func TestSubscriptionReleasedWhenLeavingSystem(t *testing.T) {
	host := NewSwitch(false)
	r := NewResolver(newMemKV(), host, config.DiscardLogger())
	ctx := context.Background()

	require.NoError(t, r.SetPreference(ctx, model.ThemeSystem))
	require.NoError(t, r.SetPreference(ctx, model.ThemeSystem))
	assert.Equal(t, 1, host.Watchers())

	require.NoError(t, r.SetPreference(ctx, model.ThemeLight))
	assert.Equal(t, 0, host.Watchers())

	host.Set(true)
	assert.Equal(t, model.EffectiveLight, r.Effective())
}

func TestCloseReleasesSubscription(t *testing.T) {
	host := NewSwitch(false)
	kv := newMemKV()
	kv.data[StorageKey] = "system"
	r := NewResolver(kv, host, config.DiscardLogger())
	require.NoError(t, r.Load(context.Background()))
	assert.Equal(t, 1, host.Watchers())

	r.Close()
	assert.Equal(t, 0, host.Watchers())
	host.Set(true)
	assert.Equal(t, model.EffectiveLight, r.Effective())
}

func TestSystemWithoutSignalIsDark(t *testing.T) {
	r := NewResolver(newMemKV(), nil, config.DiscardLogger())
	require.NoError(t, r.SetPreference(context.Background(), model.ThemeSystem))
	assert.Equal(t, model.EffectiveDark, r.Effective())
}

func TestOnChangeFiresOnlyOnEffectiveChange(t *testing.T) {
	host := NewSwitch(true)
	r := NewResolver(newMemKV(), host, config.DiscardLogger())
	t.Cleanup(r.Close)
	var got []model.EffectiveTheme
	r.OnChange(func(e model.EffectiveTheme) {
		got = append(got, e)
	})
	ctx := context.Background()

	require.NoError(t, r.SetPreference(ctx, model.ThemeSystem))
	host.Set(false)
	require.NoError(t, r.SetPreference(ctx, model.ThemeLight))
	require.NoError(t, r.SetPreference(ctx, model.ThemeDark))

	assert.Equal(t, []model.EffectiveTheme{model.EffectiveLight, model.EffectiveDark}, got)
}

func TestSetPreferenceRejectsInvalid(t *testing.T) {
	kv := newMemKV()
	r := NewResolver(kv, nil, config.DiscardLogger())
	err := r.SetPreference(context.Background(), model.ThemePreference("auto"))
	assert.ErrorIs(t, err, ErrInvalidPreference)
	assert.Empty(t, kv.data)
}

func TestSetPreferenceReportsWriteFailure(t *testing.T) {
	kv := newMemKV()
	kv.putErr = errors.New("read-only")
	r := NewResolver(kv, nil, config.DiscardLogger())
	err := r.SetPreference(context.Background(), model.ThemeLight)
	require.Error(t, err)
	assert.Equal(t, model.EffectiveLight, r.Effective())
}

func TestParsePreference(t *testing.T) {
	pref, err := ParsePreference(" System ")
	require.NoError(t, err)
	assert.Equal(t, model.ThemeSystem, pref)
	_, err = ParsePreference("")
	assert.ErrorIs(t, err, ErrInvalidPreference)
}

func TestFileSignalReadsAndFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appearance")
	fallbackDark := false
	sig, err := newFileSignal(path, func() bool { return fallbackDark }, config.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sig.Close()
	})

	dark, ok := sig.Dark()
	assert.True(t, ok)
	assert.False(t, dark)

	var notified atomic.Int32
	release := sig.Watch(func(bool) { notified.Add(1) })
	defer release()

	require.NoError(t, os.WriteFile(path, []byte("dark\n"), 0o644))
	sig.refresh()
	dark, _ = sig.Dark()
	assert.True(t, dark)
	assert.EqualValues(t, 1, notified.Load())

	require.NoError(t, os.WriteFile(path, []byte("purple"), 0o644))
	sig.refresh()
	dark, _ = sig.Dark()
	assert.False(t, dark)
	assert.EqualValues(t, 2, notified.Load())
}

func TestFileSignalToggleWritesOppositeScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appearance")
	sig, err := newFileSignal(path, func() bool { return true }, config.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sig.Close()
	})

	require.NoError(t, sig.Toggle())
	dark, _ := sig.Dark()
	assert.False(t, dark)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "light\n", string(data))

	require.NoError(t, sig.Toggle())
	dark, _ = sig.Dark()
	assert.True(t, dark)
}

func TestFileSignalRunDeliversWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appearance")
	require.NoError(t, os.WriteFile(path, []byte("light"), 0o644))
	sig, err := newFileSignal(path, func() bool { return true }, config.DiscardLogger())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = sig.Close()
	})
	go sig.Run(ctx)

	r := NewResolver(newMemKV(), sig, config.DiscardLogger())
	t.Cleanup(r.Close)
	require.NoError(t, r.SetPreference(context.Background(), model.ThemeSystem))
	assert.Equal(t, model.EffectiveLight, r.Effective())

	require.NoError(t, os.WriteFile(path, []byte("dark"), 0o644))
	require.Eventually(t, func() bool {
		return r.Effective() == model.EffectiveDark
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, lightPalette, PaletteFor(model.EffectiveLight))
	assert.Equal(t, darkPalette, PaletteFor(model.EffectiveDark))
}
