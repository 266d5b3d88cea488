// Package tui provides the Bubble Tea desktop: top bar, chat panel, dock and
// floating windows.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/deskfolio/internal/chat"
	"github.com/verte-zerg/deskfolio/internal/model"
	"github.com/verte-zerg/deskfolio/internal/portfolio"
	"github.com/verte-zerg/deskfolio/internal/settings"
	"github.com/verte-zerg/deskfolio/internal/theme"
	"github.com/verte-zerg/deskfolio/internal/windows"
)

type focusArea int

const (
	focusPanel focusArea = iota
	focusWindow
)

// ChatUpdatedMsg tells the model that the chat transcript or thinking state changed.
type ChatUpdatedMsg struct{}

// ThemeChangedMsg reports that the effective theme may have changed. The
// receiver reads the current theme from the resolver since messages sent
// from separate goroutines can arrive out of order.
type ThemeChangedMsg struct{}

type clockMsg time.Time

type dragState struct {
	id      string
	offsetX int
	offsetY int
}

// Options wires the model to the state stores.
type Options struct {
	Settings *settings.Store
	Theme    *theme.Resolver
	Windows  *windows.Manager
	Chat     *chat.Simulator
	// ToggleHost flips the host color scheme; nil disables ctrl+t.
	ToggleHost func() error
	// Bell rings when a reply arrives and sound effects are on.
	Bell   func()
	Now    func() time.Time
	Logger *slog.Logger
}

// Model implements the Bubble Tea desktop UI.
type Model struct {
	settings   *settings.Store
	theme      *theme.Resolver
	windows    *windows.Manager
	chat       *chat.Simulator
	toggleHost func() error
	bell       func()
	clock      func() time.Time
	logger     *slog.Logger

	github   portfolio.GitHubData
	leetcode portfolio.LeetCodeData

	width  int
	height int

	now      time.Time
	lastSync time.Time
	zones    map[string]*time.Location

	palette theme.Palette
	styles  styles

	tab      int
	focus    focusArea
	status   string
	drag     *dragState
	replies  int
	chatView viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	views    map[string]viewport.Model
	prefs    table.Model
	edit     textinput.Model
	editing  settings.Key
}

// NewModel constructs the desktop model. Settings, Theme, Windows and Chat are required.
func NewModel(opts Options) *Model {
	if opts.Settings == nil || opts.Theme == nil || opts.Windows == nil || opts.Chat == nil {
		panic("tui: missing state store")
	}
	m := &Model{
		settings:   opts.Settings,
		theme:      opts.Theme,
		windows:    opts.Windows,
		chat:       opts.Chat,
		toggleHost: opts.ToggleHost,
		bell:       opts.Bell,
		clock:      opts.Now,
		logger:     opts.Logger,
		github:     portfolio.GitHub(),
		leetcode:   portfolio.LeetCode(),
		zones:      map[string]*time.Location{},
		views:      map[string]viewport.Model{},
		chatView:   viewport.New(0, 0),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		prefs:      newPrefsTable(),
		edit:       newEditInput(),
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.bell == nil {
		m.bell = func() {
			fmt.Fprint(os.Stderr, "\a")
		}
	}
	m.now = m.clock()
	m.lastSync = m.now
	for id, layout := range windowLayouts {
		m.windows.SetDefaultPosition(id, layout.pos)
	}
	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "Ask about skills, projects or experience..."
	m.input.CharLimit = 500
	m.input.SetValue(m.chat.Input())
	m.input.Focus()
	m.replies = countReplies(m.chat.Messages())
	m.applyTheme(m.theme.Effective())
	return m
}

// Subscribe forwards chat and theme changes to send, typically Program.Send.
// send runs on its own goroutine because the callbacks may fire inside Update.
func (m *Model) Subscribe(send func(tea.Msg)) {
	m.chat.OnChange(func() {
		go send(ChatUpdatedMsg{})
	})
	m.theme.OnChange(func(model.EffectiveTheme) {
		go send(ThemeChangedMsg{})
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickClock())
}

func tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case clockMsg:
		m.tick(time.Time(msg))
		return m, tickClock()
	case ChatUpdatedMsg:
		return m, m.chatUpdated()
	case ThemeChangedMsg:
		m.applyTheme(m.theme.Effective())
		return m, nil
	case spinner.TickMsg:
		if !m.chat.Thinking() || !m.settings.Settings().Animations {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshChat()
		return m, cmd
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.editing != "" {
		return m, m.updateEdit(msg)
	}
	switch msg.String() {
	case "ctrl+g":
		m.showWindow(WindowGitHub)
		return m, nil
	case "ctrl+l":
		m.showWindow(WindowLeetCode)
		return m, nil
	case "ctrl+o":
		m.showWindow(WindowSettings)
		return m, nil
	case "ctrl+b":
		m.showWindow(WindowBlog)
		return m, nil
	case "ctrl+w":
		if id, ok := m.topVisible(); ok {
			m.closeWindow(id)
		}
		return m, nil
	case "ctrl+n":
		if id, ok := m.topVisible(); ok {
			m.minimizeWindow(id)
		}
		return m, nil
	case "ctrl+f":
		m.cycleWindows()
		return m, nil
	case "ctrl+t":
		m.toggleHostScheme()
		return m, nil
	case "alt+left":
		m.nudgeWindow(-2, 0)
		return m, nil
	case "alt+right":
		m.nudgeWindow(2, 0)
		return m, nil
	case "alt+up":
		m.nudgeWindow(0, -1)
		return m, nil
	case "alt+down":
		m.nudgeWindow(0, 1)
		return m, nil
	case "esc":
		m.focusPanel()
		return m, nil
	}
	if m.focus == focusWindow {
		return m, m.windowKey(msg)
	}
	return m, m.panelKey(msg)
}

func (m *Model) panelKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		m.setTab(m.tab + 1)
		return nil
	case "shift+tab":
		m.setTab(m.tab - 1)
		return nil
	}
	if m.tab != tabChat {
		return nil
	}
	switch msg.String() {
	case "enter":
		return m.sendChat()
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.chat.SetInput(m.input.Value())
	return cmd
}

func (m *Model) windowKey(msg tea.KeyMsg) tea.Cmd {
	id, ok := m.topVisible()
	if !ok {
		m.focusPanel()
		return nil
	}
	if id == WindowSettings {
		if msg.String() == "enter" || msg.String() == " " {
			return m.activatePref()
		}
		var cmd tea.Cmd
		m.prefs, cmd = m.prefs.Update(msg)
		return cmd
	}
	vp := m.views[id]
	var cmd tea.Cmd
	vp, cmd = vp.Update(msg)
	m.views[id] = vp
	return cmd
}

// sendChat submits the input buffer. Enter is ignored while a reply is pending.
func (m *Model) sendChat() tea.Cmd {
	m.chat.SetInput(m.input.Value())
	err := m.chat.Send()
	switch {
	case err == nil:
		m.input.Reset()
		m.refreshChat()
		if m.settings.Settings().Animations {
			return m.spinner.Tick
		}
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrBusy):
	default:
		m.logger.Warn("chat send failed", "err", err)
	}
	return nil
}

func (m *Model) chatUpdated() tea.Cmd {
	m.refreshChat()
	replies := countReplies(m.chat.Messages())
	arrived := replies > m.replies
	m.replies = replies
	if arrived && m.settings.Settings().SoundEffects {
		m.bell()
	}
	if m.chat.Thinking() && m.settings.Settings().Animations {
		return m.spinner.Tick
	}
	return nil
}

func countReplies(msgs []model.ChatMessage) int {
	n := 0
	for _, msg := range msgs {
		if msg.Role == model.RoleAssistant {
			n++
		}
	}
	return n
}

func (m *Model) toggleHostScheme() {
	if m.toggleHost == nil {
		return
	}
	if err := m.toggleHost(); err != nil {
		m.logger.Error("failed to toggle host color scheme", "err", err)
		m.status = "appearance not switched"
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionRelease:
		m.drag = nil
		return nil
	case tea.MouseActionMotion:
		if m.drag != nil {
			pos := m.clampPosition(m.drag.id, model.Position{X: msg.X - m.drag.offsetX, Y: msg.Y - m.drag.offsetY})
			m.windows.Move(m.drag.id, pos)
		}
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		return m.scroll(msg)
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	if msg.Y == m.height-1 {
		if item, ok := m.dockHit(msg.X); ok {
			m.activateDockItem(item)
		}
		return nil
	}
	if id, hit := m.windowAt(msg.X, msg.Y); hit != hitNone {
		switch hit {
		case hitClose:
			m.closeWindow(id)
		case hitMinimize:
			m.minimizeWindow(id)
		case hitTitle:
			m.windows.Focus(id)
			m.focusWindow()
			st, _ := m.windows.State(id)
			m.drag = &dragState{id: id, offsetX: msg.X - st.Position.X, offsetY: msg.Y - st.Position.Y}
		default:
			m.windows.Focus(id)
			m.focusWindow()
		}
		return nil
	}
	px, py, pw, ph := m.panelRect()
	if msg.X >= px && msg.X < px+pw && msg.Y >= py && msg.Y < py+ph {
		m.focusPanel()
		if msg.Y == py+1 {
			for i, s := range tabSpans() {
				if s.contains(msg.X - px - 1) {
					m.setTab(i)
				}
			}
		}
	}
	return nil
}

func (m *Model) scroll(msg tea.MouseMsg) tea.Cmd {
	var cmd tea.Cmd
	if id, hit := m.windowAt(msg.X, msg.Y); hit != hitNone {
		if vp, ok := m.views[id]; ok {
			vp, cmd = vp.Update(msg)
			m.views[id] = vp
		}
		return cmd
	}
	m.chatView, cmd = m.chatView.Update(msg)
	return cmd
}

func (m *Model) focusPanel() {
	m.focus = focusPanel
	m.cancelEdit()
	m.input.Focus()
}

func (m *Model) focusWindow() {
	m.focus = focusWindow
	m.input.Blur()
}

func (m *Model) tick(now time.Time) {
	m.now = now
	interval := time.Duration(m.settings.Settings().RefreshInterval) * time.Second
	if interval > 0 && now.Sub(m.lastSync) >= interval {
		m.lastSync = now
		m.logger.Debug("mock stats refreshed")
	}
	m.refreshWindows()
}

func (m *Model) applyTheme(t model.EffectiveTheme) {
	m.palette = theme.PaletteFor(t)
	m.styles = newStyles(m.palette)
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.palette.Secondary)
	m.prefs.SetStyles(prefsTableStyles(m.palette))
	m.refreshPrefs()
	m.refreshWindows()
	m.refreshChat()
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, _, w, h := m.panelRect()
	iw, ih := max(w-2, 1), max(h-2, 1)
	m.chatView.Width = iw
	m.chatView.Height = max(ih-4, 1)
	m.input.Width = max(iw-lipgloss.Width(m.input.Prompt)-1, 1)
	m.layoutWindows()
	m.refreshChat()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "deskfolio: window too small")
	}
	pattern := m.settings.Settings().Wallpaper
	lines := make([]string, m.height)
	lines[0] = m.renderTopBar()
	for row := 1; row < m.height-1; row++ {
		lines[row] = m.styles.wallpaper.Render(wallpaperLine(pattern, row, m.width))
	}
	px, py, _, _ := m.panelRect()
	overlay(lines, m.panelLines(), px, py, m.width)
	for _, st := range m.windows.Stack() {
		if st.Minimized {
			continue
		}
		overlay(lines, m.renderWindow(st), st.Position.X, st.Position.Y, m.width)
	}
	lines[m.height-1] = m.renderDock()
	return strings.Join(lines, "\n")
}
