package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/deskfolio/internal/model"
	"github.com/verte-zerg/deskfolio/internal/portfolio"
)

// resolveLocation maps the timeZone setting to a location. "auto" and ""
// mean the host zone.
func resolveLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "auto") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", name, err)
	}
	return loc, nil
}

func clockText(now time.Time, format model.TimeFormat, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	if format == model.TimeFormat12h {
		return now.Format("Mon Jan 2  3:04 PM")
	}
	return now.Format("Mon Jan 2  15:04")
}

func (m *Model) location() *time.Location {
	name := m.settings.Settings().TimeZone
	if loc, ok := m.zones[name]; ok {
		return loc
	}
	loc, err := resolveLocation(name)
	if err != nil {
		m.logger.Warn("falling back to local time", "err", err)
		loc = time.Local
	}
	m.zones[name] = loc
	return loc
}

func topBarWidgets(s model.Settings, gh portfolio.GitHubData, lc portfolio.LeetCodeData) []string {
	var widgets []string
	if s.WeatherEnabled {
		widgets = append(widgets, fmt.Sprintf("%d°C Sunny", portfolio.WeatherCelsius))
	}
	if s.GitHubIntegration {
		widgets = append(widgets, fmt.Sprintf("GH %s commits", humanize.Comma(int64(gh.Contributions))))
	}
	if s.LeetCodeIntegration {
		widgets = append(widgets, fmt.Sprintf("LC %d/%d", lc.Stats.TotalSolved, lc.Stats.TotalProblems))
	}
	return widgets
}

func (m *Model) renderTopBar() string {
	s := m.settings.Settings()
	left := m.styles.barAccent.Render(" ◆ deskfolio")
	if m.status != "" {
		left += m.styles.bar.Render("  ") + m.styles.danger.Background(m.palette.Surface).Render(m.status)
	}
	parts := topBarWidgets(s, m.github, m.leetcode)
	parts = append(parts, clockText(m.now, s.TimeFormat, m.location()))
	right := m.styles.bar.Render(strings.Join(parts, "  │  ") + " ")

	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return truncateLine(left+m.styles.bar.Render(" ")+right, m.width)
	}
	return left + m.styles.bar.Render(strings.Repeat(" ", gap)) + right
}
