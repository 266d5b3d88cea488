// Package model defines shared data structures.
package model

import "time"

// TimeFormat selects the clock format in the top bar.
type TimeFormat string

// Supported clock formats.
const (
	TimeFormat12h TimeFormat = "12h"
	TimeFormat24h TimeFormat = "24h"
)

// Valid reports whether f is a known clock format.
func (f TimeFormat) Valid() bool {
	return f == TimeFormat12h || f == TimeFormat24h
}

// Settings holds the user preferences persisted by the settings store.
type Settings struct {
	Animations          bool       `json:"animations" yaml:"animations"`
	Wallpaper           string     `json:"wallpaper" yaml:"wallpaper"`
	TimeZone            string     `json:"timeZone" yaml:"timeZone"`
	TimeFormat          TimeFormat `json:"timeFormat" yaml:"timeFormat"`
	WeatherEnabled      bool       `json:"weatherEnabled" yaml:"weatherEnabled"`
	GitHubIntegration   bool       `json:"githubIntegration" yaml:"githubIntegration"`
	LeetCodeIntegration bool       `json:"leetcodeIntegration" yaml:"leetcodeIntegration"`
	SoundEffects        bool       `json:"soundEffects" yaml:"soundEffects"`
	GitHubUsername      string     `json:"githubUsername" yaml:"githubUsername"`
	LeetCodeUsername    string     `json:"leetcodeUsername" yaml:"leetcodeUsername"`
	RefreshInterval     int        `json:"refreshInterval" yaml:"refreshInterval"`
}

// DefaultSettings returns the settings used before anything is persisted.
func DefaultSettings() Settings {
	return Settings{
		Animations:          true,
		Wallpaper:           "default",
		TimeZone:            "auto",
		TimeFormat:          TimeFormat24h,
		WeatherEnabled:      true,
		GitHubIntegration:   true,
		LeetCodeIntegration: true,
		SoundEffects:        true,
		GitHubUsername:      "",
		LeetCodeUsername:    "",
		RefreshInterval:     300,
	}
}

// ThemePreference is the stored appearance choice.
type ThemePreference string

// Theme preferences.
const (
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
	ThemeSystem ThemePreference = "system"
)

// Valid reports whether p is one of the known preferences.
func (p ThemePreference) Valid() bool {
	switch p {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// EffectiveTheme is the concrete theme after resolving "system".
type EffectiveTheme string

// Effective themes.
const (
	EffectiveLight EffectiveTheme = "light"
	EffectiveDark  EffectiveTheme = "dark"
)

// Position is a screen position in terminal cells.
type Position struct {
	X int
	Y int
}

// WindowState tracks one floating window.
type WindowState struct {
	ID         string
	Open       bool
	Minimized  bool
	StackOrder int
	Position   Position
}

// Role identifies the author of a chat message.
type Role string

// Chat roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in the chat transcript.
type ChatMessage struct {
	ID        string
	Role      Role
	Text      string
	CreatedAt time.Time
}
