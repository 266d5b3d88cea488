package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/deskfolio/internal/model"
	"github.com/verte-zerg/deskfolio/internal/portfolio"
)

// Window ids.
const (
	WindowGitHub   = "github"
	WindowLeetCode = "leetcode"
	WindowSettings = "settings"
	WindowBlog     = "blog"
)

const windowButtons = "[_] [x]"

type windowLayout struct {
	title  string
	width  int
	height int
	pos    model.Position
}

var windowLayouts = map[string]windowLayout{
	WindowGitHub:   {title: "GitHub Dashboard", width: 66, height: 22, pos: model.Position{X: 3, Y: 3}},
	WindowLeetCode: {title: "LeetCode Progress", width: 62, height: 18, pos: model.Position{X: 14, Y: 5}},
	WindowSettings: {title: "System Preferences", width: 58, height: 20, pos: model.Position{X: 24, Y: 4}},
	WindowBlog:     {title: "Blog", width: 48, height: 10, pos: model.Position{X: 8, Y: 7}},
}

type windowHit int

const (
	hitNone windowHit = iota
	hitBody
	hitTitle
	hitMinimize
	hitClose
)

func (m *Model) windowSize(id string) (int, int) {
	layout := windowLayouts[id]
	w := clamp(layout.width, 12, max(m.width, 12))
	h := clamp(layout.height, 4, max(m.height-2, 4))
	return w, h
}

// clampPosition keeps a window between the top bar and the dock.
func (m *Model) clampPosition(id string, pos model.Position) model.Position {
	w, h := m.windowSize(id)
	return model.Position{
		X: clamp(pos.X, 0, m.width-w),
		Y: clamp(pos.Y, 1, m.height-1-h),
	}
}

// topVisible returns the frontmost window that is open and not minimized.
func (m *Model) topVisible() (string, bool) {
	stack := m.windows.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		if !stack[i].Minimized {
			return stack[i].ID, true
		}
	}
	return "", false
}

func (m *Model) windowAt(x, y int) (string, windowHit) {
	stack := m.windows.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		st := stack[i]
		if st.Minimized {
			continue
		}
		w, h := m.windowSize(st.ID)
		if x < st.Position.X || x >= st.Position.X+w || y < st.Position.Y || y >= st.Position.Y+h {
			continue
		}
		if y != st.Position.Y+1 {
			return st.ID, hitBody
		}
		col := x - st.Position.X - 1
		inner := w - 2
		switch {
		case col >= inner-7 && col < inner-4:
			return st.ID, hitMinimize
		case col >= inner-3 && col < inner:
			return st.ID, hitClose
		}
		return st.ID, hitTitle
	}
	return "", hitNone
}

// showWindow opens, restores or raises a window and gives it keyboard focus.
func (m *Model) showWindow(id string) {
	st, ok := m.windows.State(id)
	switch {
	case ok && st.Open && st.Minimized:
		m.windows.ToggleMinimize(id)
		m.windows.Focus(id)
	case ok && st.Open:
		m.windows.Focus(id)
	default:
		m.windows.Open(id, nil)
		if st, ok := m.windows.State(id); ok {
			m.windows.Move(id, m.clampPosition(id, st.Position))
		}
	}
	m.focusWindow()
	m.logger.Debug("window shown", "id", id)
}

func (m *Model) closeWindow(id string) {
	if id == WindowSettings {
		m.cancelEdit()
	}
	m.windows.Close(id)
	if _, ok := m.topVisible(); !ok {
		m.focusPanel()
	}
}

func (m *Model) minimizeWindow(id string) {
	if id == WindowSettings {
		m.cancelEdit()
	}
	m.windows.ToggleMinimize(id)
	if _, ok := m.topVisible(); !ok {
		m.focusPanel()
	}
}

// cycleWindows raises the backmost visible window.
func (m *Model) cycleWindows() {
	for _, st := range m.windows.Stack() {
		if !st.Minimized {
			m.windows.Focus(st.ID)
			m.focusWindow()
			return
		}
	}
}

func (m *Model) nudgeWindow(dx, dy int) {
	id, ok := m.topVisible()
	if !ok {
		return
	}
	st, _ := m.windows.State(id)
	pos := m.clampPosition(id, model.Position{X: st.Position.X + dx, Y: st.Position.Y + dy})
	m.windows.Move(id, pos)
}

func (m *Model) layoutWindows() {
	for id := range windowLayouts {
		if id == WindowSettings {
			continue
		}
		w, h := m.windowSize(id)
		vp, ok := m.views[id]
		if !ok {
			vp = viewport.New(0, 0)
		}
		vp.Width = w - 2
		vp.Height = max(h-4, 1)
		m.views[id] = vp
		if st, ok := m.windows.State(id); ok && st.Open {
			m.windows.Move(id, m.clampPosition(id, st.Position))
		}
	}
	m.layoutPrefs()
	m.refreshWindows()
}

// refreshWindows re-renders the content of the stat and blog windows.
func (m *Model) refreshWindows() {
	s := m.settings.Settings()
	for id, vp := range m.views {
		width := vp.Width - 1
		var lines []string
		switch id {
		case WindowGitHub:
			lines = m.githubLines(s, width)
		case WindowLeetCode:
			lines = m.leetcodeLines(s, width)
		case WindowBlog:
			blog := portfolio.Blog()
			lines = []string{"", " " + m.styles.accent.Render(blog.Headline), ""}
			for _, line := range wrapText(blog.Body, width-1) {
				lines = append(lines, " "+line)
			}
		}
		vp.SetContent(strings.Join(lines, "\n"))
		m.views[id] = vp
	}
}

func (m *Model) syncLine(s model.Settings) string {
	every := time.Duration(s.RefreshInterval) * time.Second
	return m.styles.muted.Render(fmt.Sprintf(" Last synced %s · every %s", humanize.RelTime(m.lastSync, m.now, "ago", "from now"), every))
}

func (m *Model) githubLines(s model.Settings, width int) []string {
	if !s.GitHubIntegration {
		return []string{"", " GitHub integration is turned off in System Preferences."}
	}
	data := m.github
	if s.GitHubUsername != "" {
		data.User.Username = s.GitHubUsername
	}
	lines := []string{m.syncLine(s), ""}
	for _, line := range portfolio.GitHubLines(data, width-1, false) {
		lines = append(lines, " "+line)
	}
	return lines
}

func (m *Model) leetcodeLines(s model.Settings, width int) []string {
	if !s.LeetCodeIntegration {
		return []string{"", " LeetCode integration is turned off in System Preferences."}
	}
	lines := []string{m.syncLine(s)}
	if s.LeetCodeUsername != "" {
		lines = append(lines, " Profile: "+s.LeetCodeUsername)
	}
	lines = append(lines, "")
	for _, line := range portfolio.LeetCodeLines(m.leetcode, width-1) {
		lines = append(lines, " "+line)
	}
	return lines
}

func (m *Model) renderWindow(st model.WindowState) []string {
	w, h := m.windowSize(st.ID)
	iw, ih := w-2, h-2
	top, _ := m.topVisible()
	active := top == st.ID && m.focus == focusWindow

	titleStyle, border := m.styles.titleBar, m.styles.border
	if active {
		titleStyle, border = m.styles.titleFocus, m.styles.focused
	}
	title := padLine(truncateLine(" "+windowLayouts[st.ID].title, iw-8), iw-7)
	lines := []string{
		titleStyle.Render(title) + m.styles.muted.Render(windowButtons),
		m.styles.border.Render(strings.Repeat("─", iw)),
	}
	if st.ID == WindowSettings {
		lines = append(lines, m.prefsLines(iw)...)
	} else if vp, ok := m.views[st.ID]; ok {
		lines = append(lines, strings.Split(vp.View(), "\n")...)
	}
	return frame(fitBlock(lines, iw, ih), iw, border)
}
