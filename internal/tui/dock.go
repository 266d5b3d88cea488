package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type dockItem struct {
	label  string
	tab    int
	window string
}

var dockItems = []dockItem{
	{label: "Resume", tab: tabResume},
	{label: "Projects", tab: tabProjects},
	{label: "Skills", tab: tabSkills},
	{label: "Contact", tab: tabContact},
	{label: "Blog", tab: -1, window: WindowBlog},
	{label: "AI Playground", tab: tabPlayground},
	{label: "GitHub", tab: -1, window: WindowGitHub},
	{label: "LeetCode", tab: -1, window: WindowLeetCode},
	{label: "Settings", tab: -1, window: WindowSettings},
}

const dockSeparator = "│"

// dockSpans returns the clickable range of every dock item on a row width columns wide.
func dockSpans(width int) []span {
	total := 0
	for i, item := range dockItems {
		if i > 0 {
			total += runewidth.StringWidth(dockSeparator)
		}
		total += dockItemWidth(item)
	}
	x := max(0, (width-total)/2)
	spans := make([]span, len(dockItems))
	for i, item := range dockItems {
		if i > 0 {
			x += runewidth.StringWidth(dockSeparator)
		}
		w := dockItemWidth(item)
		spans[i] = span{start: x, end: x + w}
		x += w
	}
	return spans
}

func dockItemWidth(item dockItem) int {
	// " label" plus the one-cell state marker and a trailing space.
	return runewidth.StringWidth(item.label) + 3
}

func (m *Model) dockMarker(item dockItem) string {
	if item.window == "" {
		if item.tab == m.tab {
			return "•"
		}
		return " "
	}
	st, ok := m.windows.State(item.window)
	switch {
	case !ok || !st.Open:
		return " "
	case st.Minimized:
		return "◦"
	default:
		return "•"
	}
}

func (m *Model) renderDock() string {
	spans := dockSpans(m.width)
	var b strings.Builder
	if len(spans) > 0 {
		b.WriteString(m.styles.dock.Render(strings.Repeat(" ", spans[0].start)))
	}
	for i, item := range dockItems {
		if i > 0 {
			b.WriteString(m.styles.dock.Render(dockSeparator))
		}
		marker := m.dockMarker(item)
		style := m.styles.dock
		if marker != " " {
			style = m.styles.dockOpen
		}
		b.WriteString(style.Render(" " + item.label + marker + " "))
	}
	line := b.String()
	return padLine(truncateLine(line, m.width), m.width)
}

func (m *Model) dockHit(x int) (dockItem, bool) {
	for i, s := range dockSpans(m.width) {
		if s.contains(x) {
			return dockItems[i], true
		}
	}
	return dockItem{}, false
}

func (m *Model) activateDockItem(item dockItem) {
	if item.window != "" {
		m.showWindow(item.window)
		return
	}
	m.setTab(item.tab)
	m.focusPanel()
}
