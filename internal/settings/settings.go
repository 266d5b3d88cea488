// Package settings persists user preferences in the local key-value storage.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/verte-zerg/deskfolio/internal/model"
)

// StorageKey is the key holding the serialized settings object.
const StorageKey = "deskfolio.settings"

// Key names a settings field. Values match the JSON field names.
type Key string

// Known settings keys.
const (
	KeyAnimations          Key = "animations"
	KeyWallpaper           Key = "wallpaper"
	KeyTimeZone            Key = "timeZone"
	KeyTimeFormat          Key = "timeFormat"
	KeyWeatherEnabled      Key = "weatherEnabled"
	KeyGitHubIntegration   Key = "githubIntegration"
	KeyLeetCodeIntegration Key = "leetcodeIntegration"
	KeySoundEffects        Key = "soundEffects"
	KeyGitHubUsername      Key = "githubUsername"
	KeyLeetCodeUsername    Key = "leetcodeUsername"
	KeyRefreshInterval     Key = "refreshInterval"
)

var (
	// ErrUnknownKey is returned for keys that are not settings fields.
	ErrUnknownKey = errors.New("unknown settings key")
	// ErrInvalidValue is returned when a value does not fit the field.
	ErrInvalidValue = errors.New("invalid settings value")
)

var keys = []Key{
	KeyAnimations,
	KeyWallpaper,
	KeyTimeZone,
	KeyTimeFormat,
	KeyWeatherEnabled,
	KeyGitHubIntegration,
	KeyLeetCodeIntegration,
	KeySoundEffects,
	KeyGitHubUsername,
	KeyLeetCodeUsername,
	KeyRefreshInterval,
}

// Keys returns the known settings keys in display order.
func Keys() []Key {
	return append([]Key(nil), keys...)
}

// KV is the persistent key-value storage used by the store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Store holds the current settings and writes them through to KV.
// It is owned by the UI goroutine and is not safe for concurrent use.
type Store struct {
	kv       KV
	logger   *slog.Logger
	settings model.Settings
}

// New returns a store holding the defaults. Call Load to read persisted values.
func New(kv KV, logger *slog.Logger) *Store {
	if kv == nil {
		panic("settings: nil KV")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger, settings: model.DefaultSettings()}
}

// Settings returns a snapshot of the current settings.
func (s *Store) Settings() model.Settings {
	return s.settings
}

// Load merges persisted settings over the defaults field by field.
// Missing, extra, or malformed fields never fail the load.
func (s *Store) Load(ctx context.Context) (model.Settings, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return s.settings, fmt.Errorf("failed to read settings: %w", err)
	}
	merged := model.DefaultSettings()
	if ok {
		merged = s.merge(raw)
	}
	s.settings = merged
	return merged, nil
}

func (s *Store) merge(raw string) model.Settings {
	out := model.DefaultSettings()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		s.logger.Warn("persisted settings are not an object, using defaults", "err", err)
		return out
	}
	for _, key := range keys {
		value, ok := fields[string(key)]
		if !ok {
			continue
		}
		if err := decodeField(&out, key, value); err != nil {
			s.logger.Warn("ignoring persisted setting", "key", string(key), "err", err)
		}
	}
	return out
}

func decodeField(out *model.Settings, key Key, value json.RawMessage) error {
	switch key {
	case KeyAnimations:
		return json.Unmarshal(value, &out.Animations)
	case KeyWallpaper:
		return json.Unmarshal(value, &out.Wallpaper)
	case KeyTimeZone:
		return json.Unmarshal(value, &out.TimeZone)
	case KeyTimeFormat:
		var f model.TimeFormat
		if err := json.Unmarshal(value, &f); err != nil {
			return err
		}
		if !f.Valid() {
			return fmt.Errorf("unknown time format %q", f)
		}
		out.TimeFormat = f
		return nil
	case KeyWeatherEnabled:
		return json.Unmarshal(value, &out.WeatherEnabled)
	case KeyGitHubIntegration:
		return json.Unmarshal(value, &out.GitHubIntegration)
	case KeyLeetCodeIntegration:
		return json.Unmarshal(value, &out.LeetCodeIntegration)
	case KeySoundEffects:
		return json.Unmarshal(value, &out.SoundEffects)
	case KeyGitHubUsername:
		return json.Unmarshal(value, &out.GitHubUsername)
	case KeyLeetCodeUsername:
		return json.Unmarshal(value, &out.LeetCodeUsername)
	case KeyRefreshInterval:
		var v int
		if err := json.Unmarshal(value, &v); err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("refresh interval must be positive, got %d", v)
		}
		out.RefreshInterval = v
		return nil
	default:
		return ErrUnknownKey
	}
}

// Update sets one field and persists the whole settings object.
// The in-memory value is kept even when the write fails.
func (s *Store) Update(ctx context.Context, key Key, value any) error {
	next := s.settings
	if err := assign(&next, key, value); err != nil {
		return err
	}
	s.settings = next
	return s.persist(ctx)
}

// Set parses a textual value for key and applies it with Update.
func (s *Store) Set(ctx context.Context, key Key, raw string) error {
	value, err := parseValue(key, raw)
	if err != nil {
		return err
	}
	return s.Update(ctx, key, value)
}

// Reset restores the defaults and persists them.
func (s *Store) Reset(ctx context.Context) error {
	s.settings = model.DefaultSettings()
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func assign(out *model.Settings, key Key, value any) error {
	switch key {
	case KeyAnimations:
		return assignBool(&out.Animations, key, value)
	case KeyWeatherEnabled:
		return assignBool(&out.WeatherEnabled, key, value)
	case KeyGitHubIntegration:
		return assignBool(&out.GitHubIntegration, key, value)
	case KeyLeetCodeIntegration:
		return assignBool(&out.LeetCodeIntegration, key, value)
	case KeySoundEffects:
		return assignBool(&out.SoundEffects, key, value)
	case KeyWallpaper:
		return assignString(&out.Wallpaper, key, value)
	case KeyTimeZone:
		return assignString(&out.TimeZone, key, value)
	case KeyGitHubUsername:
		return assignString(&out.GitHubUsername, key, value)
	case KeyLeetCodeUsername:
		return assignString(&out.LeetCodeUsername, key, value)
	case KeyTimeFormat:
		switch v := value.(type) {
		case model.TimeFormat:
			out.TimeFormat = v
		case string:
			out.TimeFormat = model.TimeFormat(v)
		default:
			return invalid(key, value)
		}
		if !out.TimeFormat.Valid() {
			return invalid(key, value)
		}
		return nil
	case KeyRefreshInterval:
		v, ok := value.(int)
		if !ok || v <= 0 {
			return invalid(key, value)
		}
		out.RefreshInterval = v
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
	}
}

func assignBool(target *bool, key Key, value any) error {
	v, ok := value.(bool)
	if !ok {
		return invalid(key, value)
	}
	*target = v
	return nil
}

func assignString(target *string, key Key, value any) error {
	v, ok := value.(string)
	if !ok {
		return invalid(key, value)
	}
	*target = v
	return nil
}

func invalid(key Key, value any) error {
	return fmt.Errorf("%w for %s: %v (%T)", ErrInvalidValue, key, value, value)
}

func parseValue(key Key, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch key {
	case KeyAnimations, KeyWeatherEnabled, KeyGitHubIntegration, KeyLeetCodeIntegration, KeySoundEffects:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w for %s: %q is not a boolean", ErrInvalidValue, key, raw)
		}
		return v, nil
	case KeyRefreshInterval:
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w for %s: %q is not a positive number of seconds", ErrInvalidValue, key, raw)
		}
		return v, nil
	case KeyTimeFormat:
		return model.TimeFormat(raw), nil
	case KeyWallpaper, KeyTimeZone, KeyGitHubUsername, KeyLeetCodeUsername:
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
	}
}

// Value returns the current value of key formatted for display.
func Value(s model.Settings, key Key) (string, error) {
	switch key {
	case KeyAnimations:
		return strconv.FormatBool(s.Animations), nil
	case KeyWallpaper:
		return s.Wallpaper, nil
	case KeyTimeZone:
		return s.TimeZone, nil
	case KeyTimeFormat:
		return string(s.TimeFormat), nil
	case KeyWeatherEnabled:
		return strconv.FormatBool(s.WeatherEnabled), nil
	case KeyGitHubIntegration:
		return strconv.FormatBool(s.GitHubIntegration), nil
	case KeyLeetCodeIntegration:
		return strconv.FormatBool(s.LeetCodeIntegration), nil
	case KeySoundEffects:
		return strconv.FormatBool(s.SoundEffects), nil
	case KeyGitHubUsername:
		return s.GitHubUsername, nil
	case KeyLeetCodeUsername:
		return s.LeetCodeUsername, nil
	case KeyRefreshInterval:
		return strconv.Itoa(s.RefreshInterval), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
	}
}
