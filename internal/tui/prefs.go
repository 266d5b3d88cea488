package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/deskfolio/internal/model"
	"github.com/verte-zerg/deskfolio/internal/settings"
	"github.com/verte-zerg/deskfolio/internal/theme"
)

type prefRow struct {
	label      string
	key        settings.Key
	appearance bool
}

var prefRows = []prefRow{
	{label: "Appearance", appearance: true},
	{label: "Time format", key: settings.KeyTimeFormat},
	{label: "Time zone", key: settings.KeyTimeZone},
	{label: "Weather widget", key: settings.KeyWeatherEnabled},
	{label: "GitHub integration", key: settings.KeyGitHubIntegration},
	{label: "GitHub username", key: settings.KeyGitHubUsername},
	{label: "LeetCode integration", key: settings.KeyLeetCodeIntegration},
	{label: "LeetCode username", key: settings.KeyLeetCodeUsername},
	{label: "Refresh interval", key: settings.KeyRefreshInterval},
	{label: "Wallpaper", key: settings.KeyWallpaper},
	{label: "Animations", key: settings.KeyAnimations},
	{label: "Sound effects", key: settings.KeySoundEffects},
}

var (
	timeZones        = []string{"auto", "UTC", "America/New_York", "America/Los_Angeles"}
	refreshIntervals = []int{60, 300, 900, 1800}
	preferenceCycle  = []model.ThemePreference{model.ThemeLight, model.ThemeDark, model.ThemeSystem}
)

const prefLabelWidth = 22

func newPrefsTable() table.Model {
	return table.New(
		table.WithColumns(prefColumns(40)),
		table.WithFocused(true),
		table.WithHeight(len(prefRows)),
	)
}

func prefColumns(innerWidth int) []table.Column {
	return []table.Column{
		{Title: "Setting", Width: prefLabelWidth},
		{Title: "Value", Width: max(innerWidth-prefLabelWidth-4, 8)},
	}
}

func prefsTableStyles(p theme.Palette) table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(p.Muted).
		Bold(true)
	styles.Selected = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true)
	return styles
}

func (m *Model) layoutPrefs() {
	w, h := m.windowSize(WindowSettings)
	iw, ih := w-2, h-2
	m.prefs.SetColumns(prefColumns(iw))
	m.prefs.SetWidth(iw)
	// Title, separator, table header, blank and hint rows.
	m.prefs.SetHeight(max(ih-5, 1))
	m.edit.Width = max(iw-prefLabelWidth-6, 8)
	m.refreshPrefs()
}

func (m *Model) refreshPrefs() {
	s := m.settings.Settings()
	rows := make([]table.Row, 0, len(prefRows))
	for _, row := range prefRows {
		rows = append(rows, table.Row{row.label, m.prefValue(s, row)})
	}
	m.prefs.SetRows(rows)
}

func (m *Model) prefValue(s model.Settings, row prefRow) string {
	if row.appearance {
		pref := m.theme.Preference()
		if pref == model.ThemeSystem {
			return fmt.Sprintf("system (%s)", m.theme.Effective())
		}
		return string(pref)
	}
	switch row.key {
	case settings.KeyRefreshInterval:
		return (time.Duration(s.RefreshInterval) * time.Second).String()
	case settings.KeyGitHubUsername, settings.KeyLeetCodeUsername:
		v, _ := settings.Value(s, row.key)
		if v == "" {
			return "not set"
		}
		return v
	}
	v, err := settings.Value(s, row.key)
	if err != nil {
		return "?"
	}
	switch v {
	case "true":
		return "on"
	case "false":
		return "off"
	}
	return v
}

func (m *Model) prefsLines(innerWidth int) []string {
	lines := strings.Split(m.prefs.View(), "\n")
	lines = append(lines, "")
	if m.editing != "" {
		lines = append(lines, " "+padLine(m.prefLabel(m.editing), prefLabelWidth)+m.edit.View())
	} else {
		lines = append(lines, m.styles.muted.Render(truncateLine(" enter: change · ↑/↓: select · esc: back", innerWidth)))
	}
	return lines
}

func (m *Model) prefLabel(key settings.Key) string {
	for _, row := range prefRows {
		if row.key == key && !row.appearance {
			return row.label
		}
	}
	return string(key)
}

// activatePref changes the selected setting: toggles, cycles or starts editing.
func (m *Model) activatePref() tea.Cmd {
	cursor := m.prefs.Cursor()
	if cursor < 0 || cursor >= len(prefRows) {
		return nil
	}
	row := prefRows[cursor]
	ctx := context.Background()
	s := m.settings.Settings()
	var err error
	switch {
	case row.appearance:
		err = m.theme.SetPreference(ctx, nextPreference(m.theme.Preference()))
	case row.key == settings.KeyGitHubUsername || row.key == settings.KeyLeetCodeUsername:
		v, _ := settings.Value(s, row.key)
		m.editing = row.key
		m.edit.SetValue(v)
		m.edit.CursorEnd()
		return m.edit.Focus()
	case row.key == settings.KeyTimeFormat:
		next := model.TimeFormat24h
		if s.TimeFormat == model.TimeFormat24h {
			next = model.TimeFormat12h
		}
		err = m.settings.Update(ctx, row.key, next)
	case row.key == settings.KeyTimeZone:
		err = m.settings.Update(ctx, row.key, cycleString(timeZones, s.TimeZone))
	case row.key == settings.KeyWallpaper:
		err = m.settings.Update(ctx, row.key, nextWallpaper(s.Wallpaper))
	case row.key == settings.KeyRefreshInterval:
		err = m.settings.Update(ctx, row.key, nextInterval(s.RefreshInterval))
	default:
		v, _ := settings.Value(s, row.key)
		err = m.settings.Update(ctx, row.key, v != "true")
	}
	return m.settingsChanged(err)
}

func (m *Model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		key := m.editing
		value := strings.TrimSpace(m.edit.Value())
		m.cancelEdit()
		return m.settingsChanged(m.settings.Update(context.Background(), key, value))
	case tea.KeyEsc:
		m.cancelEdit()
		return nil
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return cmd
}

func (m *Model) cancelEdit() {
	m.editing = ""
	m.edit.Blur()
	m.edit.Reset()
}

// settingsChanged re-renders everything that depends on settings. Write
// failures keep the in-memory value and surface in the top bar.
func (m *Model) settingsChanged(err error) tea.Cmd {
	if err != nil {
		m.logger.Error("failed to save settings", "err", err)
		m.status = "settings not saved"
	} else {
		m.status = ""
	}
	m.refreshPrefs()
	m.refreshWindows()
	m.refreshChat()
	if m.chat.Thinking() && m.settings.Settings().Animations {
		return m.spinner.Tick
	}
	return nil
}

func nextPreference(p model.ThemePreference) model.ThemePreference {
	for i, pref := range preferenceCycle {
		if pref == p {
			return preferenceCycle[(i+1)%len(preferenceCycle)]
		}
	}
	return preferenceCycle[0]
}

func cycleString(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func nextInterval(current int) int {
	for _, v := range refreshIntervals {
		if v > current {
			return v
		}
	}
	return refreshIntervals[0]
}

func newEditInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "username"
	input.CharLimit = 39
	return input
}
