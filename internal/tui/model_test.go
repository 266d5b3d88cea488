package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/verte-zerg/deskfolio/internal/chat"
	"github.com/verte-zerg/deskfolio/internal/config"
	"github.com/verte-zerg/deskfolio/internal/model"
	"github.com/verte-zerg/deskfolio/internal/settings"
	"github.com/verte-zerg/deskfolio/internal/theme"
	"github.com/verte-zerg/deskfolio/internal/windows"
)

const (
	testWidth  = 120
	testHeight = 40
)

type memKV struct {
	data map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

type manualTask struct{}

func (manualTask) Stop() bool { return true }

type manualScheduler struct {
	pending []func()
}

func (s *manualScheduler) AfterFunc(_ time.Duration, fn func()) chat.Task {
	s.pending = append(s.pending, fn)
	return manualTask{}
}

func (s *manualScheduler) fire() {
	pending := s.pending
	s.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type harness struct {
	m     *Model
	kv    *memKV
	host  *theme.Switch
	res   *theme.Resolver
	wm    *windows.Manager
	sim   *chat.Simulator
	sched *manualScheduler
	bells int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		kv:    &memKV{data: map[string]string{}},
		host:  theme.NewSwitch(true),
		wm:    windows.NewManager(),
		sched: &manualScheduler{},
	}
	logger := config.DiscardLogger()
	st := settings.New(h.kv, logger)
	h.res = theme.NewResolver(h.kv, h.host, logger)
	t.Cleanup(h.res.Close)
	h.sim = chat.New(chat.Options{Scheduler: h.sched, Logger: logger})
	t.Cleanup(h.sim.Close)
	h.m = NewModel(Options{
		Settings: st,
		Theme:    h.res,
		Windows:  h.wm,
		Chat:     h.sim,
		ToggleHost: func() error {
			h.host.Toggle()
			return nil
		},
		Bell:   func() { h.bells++ },
		Now:    func() time.Time { return time.Date(2024, 1, 21, 15, 4, 0, 0, time.UTC) },
		Logger: logger,
	})
	h.m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	return h
}

func (h *harness) key(t tea.KeyType) {
	h.m.Update(tea.KeyMsg{Type: t})
}

func (h *harness) alt(t tea.KeyType) {
	h.m.Update(tea.KeyMsg{Type: t, Alt: true})
}

func (h *harness) typeText(s string) {
	h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) mouse(action tea.MouseAction, x, y int) {
	h.m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

func (h *harness) position(t *testing.T, id string) model.Position {
	t.Helper()
	st, ok := h.wm.State(id)
	if !ok {
		t.Fatalf("window %s was never opened", id)
	}
	return st.Position
}

func TestViewRendersDesktop(t *testing.T) {
	h := newHarness(t)
	plain := ansi.Strip(h.m.View())
	for _, want := range []string{"deskfolio", "22°C", "Chat", "AI Lab", "AI Playground", "> "} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in view", want)
		}
	}

	h.key(tea.KeyCtrlG)
	out := h.m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != testHeight {
		t.Fatalf("expected %d lines, got %d", testHeight, len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w > testWidth {
			t.Fatalf("line %d is %d cells wide", i, w)
		}
	}
	plain = ansi.Strip(out)
	for _, want := range []string{"GitHub Dashboard", "[_] [x]", "1,245 contributions"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestKeyboardWindowLifecycle(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlG)
	h.key(tea.KeyCtrlL)
	if top, _ := h.m.topVisible(); top != WindowLeetCode {
		t.Fatalf("expected leetcode on top, got %q", top)
	}
	if h.m.focus != focusWindow {
		t.Fatalf("expected window focus")
	}

	h.key(tea.KeyCtrlF)
	if top, _ := h.m.topVisible(); top != WindowGitHub {
		t.Fatalf("expected ctrl+f to raise github, got %q", top)
	}

	h.key(tea.KeyCtrlW)
	if h.wm.IsOpen(WindowGitHub) {
		t.Fatalf("expected github closed")
	}
	h.key(tea.KeyCtrlN)
	st, _ := h.wm.State(WindowLeetCode)
	if !st.Minimized {
		t.Fatalf("expected leetcode minimized")
	}
	if h.m.focus != focusPanel {
		t.Fatalf("expected focus back on the panel")
	}
}

func TestDockRestoresMinimizedWindow(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlG)
	h.key(tea.KeyCtrlN)

	spans := dockSpans(testWidth)
	h.mouse(tea.MouseActionPress, spans[6].start, testHeight-1)
	st, _ := h.wm.State(WindowGitHub)
	if !st.Open || st.Minimized {
		t.Fatalf("expected github restored, got %+v", st)
	}
	if top, _ := h.m.topVisible(); top != WindowGitHub {
		t.Fatalf("expected github on top")
	}

	h.mouse(tea.MouseActionPress, spans[2].start+1, testHeight-1)
	if h.m.tab != tabSkills || h.m.focus != focusPanel {
		t.Fatalf("expected skills tab with panel focus, got tab %d", h.m.tab)
	}
}

func TestDragMovesWindowByTitleBar(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlG)
	start := h.position(t, WindowGitHub)

	h.mouse(tea.MouseActionPress, start.X+7, start.Y+1)
	h.mouse(tea.MouseActionMotion, start.X+17, start.Y+5)
	h.mouse(tea.MouseActionRelease, start.X+17, start.Y+5)
	moved := h.position(t, WindowGitHub)
	if moved != (model.Position{X: start.X + 10, Y: start.Y + 4}) {
		t.Fatalf("unexpected position after drag: %+v", moved)
	}

	h.mouse(tea.MouseActionMotion, start.X+30, start.Y+9)
	if got := h.position(t, WindowGitHub); got != moved {
		t.Fatalf("window moved after release: %+v", got)
	}
}

func TestDragIsClampedToDesktop(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlG)
	start := h.position(t, WindowGitHub)
	h.mouse(tea.MouseActionPress, start.X+7, start.Y+1)
	h.mouse(tea.MouseActionMotion, 0, 0)
	w, _ := h.m.windowSize(WindowGitHub)
	if got := h.position(t, WindowGitHub); got.X != 0 || got.Y != 1 {
		t.Fatalf("expected clamp to top-left, got %+v (width %d)", got, w)
	}
}

func TestTitleBarButtons(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlG)
	pos := h.position(t, WindowGitHub)
	w, _ := h.m.windowSize(WindowGitHub)
	inner := w - 2
	titleY := pos.Y + 1

	h.mouse(tea.MouseActionPress, pos.X+1+inner-6, titleY)
	st, _ := h.wm.State(WindowGitHub)
	if !st.Minimized {
		t.Fatalf("expected minimize button to minimize")
	}

	h.key(tea.KeyCtrlG)
	before, _ := h.wm.State(WindowGitHub)
	h.mouse(tea.MouseActionPress, pos.X+1+inner-2, titleY)
	if h.wm.IsOpen(WindowGitHub) {
		t.Fatalf("expected close button to close")
	}

	h.key(tea.KeyCtrlG)
	after, _ := h.wm.State(WindowGitHub)
	if after.Position != pos {
		t.Fatalf("expected position %+v to survive close, got %+v", pos, after.Position)
	}
	if after.StackOrder <= before.StackOrder {
		t.Fatalf("expected a fresh stack order")
	}
}

func TestAltArrowsMoveFrontWindow(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlB)
	start := h.position(t, WindowBlog)
	h.alt(tea.KeyRight)
	h.alt(tea.KeyUp)
	want := model.Position{X: start.X + 2, Y: start.Y - 1}
	if got := h.position(t, WindowBlog); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestChatSendIsDisabledWhileThinking(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyEnter)
	if len(h.sim.Messages()) != 0 || h.sim.Thinking() {
		t.Fatalf("blank input must not send")
	}

	h.typeText("Hello")
	h.key(tea.KeyEnter)
	msgs := h.sim.Messages()
	if len(msgs) != 1 || msgs[0].Text != "Hello" || !h.sim.Thinking() {
		t.Fatalf("expected one pending user message, got %+v", msgs)
	}
	if h.m.input.Value() != "" {
		t.Fatalf("expected input cleared, got %q", h.m.input.Value())
	}

	h.typeText("again")
	h.key(tea.KeyEnter)
	if n := len(h.sim.Messages()); n != 1 {
		t.Fatalf("expected send to be ignored while thinking, got %d messages", n)
	}
	if h.m.input.Value() != "again" {
		t.Fatalf("expected draft kept, got %q", h.m.input.Value())
	}

	h.sched.fire()
	h.m.Update(ChatUpdatedMsg{})
	msgs = h.sim.Messages()
	if len(msgs) != 2 || msgs[1].Role != model.RoleAssistant {
		t.Fatalf("expected assistant reply, got %+v", msgs)
	}
	if h.bells != 1 {
		t.Fatalf("expected one bell, got %d", h.bells)
	}
	if !strings.Contains(ansi.Strip(h.m.View()), "Assistant") {
		t.Fatalf("expected reply in view")
	}
}

func TestBellRespectsSoundEffects(t *testing.T) {
	h := newHarness(t)
	if err := h.m.settings.Update(context.Background(), settings.KeySoundEffects, false); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	h.typeText("Hi")
	h.key(tea.KeyEnter)
	h.sched.fire()
	h.m.Update(ChatUpdatedMsg{})
	if h.bells != 0 {
		t.Fatalf("expected no bell, got %d", h.bells)
	}
}

func TestTabSwitching(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyTab)
	if h.m.tab != tabResume {
		t.Fatalf("expected resume tab, got %d", h.m.tab)
	}
	h.key(tea.KeyShiftTab)
	h.key(tea.KeyShiftTab)
	if h.m.tab != tabPlayground {
		t.Fatalf("expected wrap to the last tab, got %d", h.m.tab)
	}

	px, py, _, _ := h.m.panelRect()
	spans := tabSpans()
	h.mouse(tea.MouseActionPress, px+1+spans[tabProjects].start, py+1)
	if h.m.tab != tabProjects {
		t.Fatalf("expected projects tab after click, got %d", h.m.tab)
	}
	if !strings.Contains(ansi.Strip(h.m.View()), "Project Showcase") {
		t.Fatalf("expected projects section in view")
	}
}

func TestHostToggleFollowsSystemPreference(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlO)
	h.key(tea.KeyEnter)
	if got := h.res.Preference(); got != model.ThemeSystem {
		t.Fatalf("expected system preference, got %s", got)
	}
	if got := h.res.Effective(); got != model.EffectiveDark {
		t.Fatalf("expected dark host, got %s", got)
	}

	h.key(tea.KeyCtrlT)
	if got := h.res.Effective(); got != model.EffectiveLight {
		t.Fatalf("expected effective theme to follow the host, got %s", got)
	}
	h.m.Update(ThemeChangedMsg{})
	if h.m.palette != theme.PaletteFor(model.EffectiveLight) {
		t.Fatalf("expected light palette")
	}
	if h.kv.data[theme.StorageKey] != "system" {
		t.Fatalf("expected persisted preference, got %q", h.kv.data[theme.StorageKey])
	}
}

func TestThemeMessagesOutOfOrderKeepResolverTheme(t *testing.T) {
	h := newHarness(t)
	msgs := make(chan tea.Msg, 8)
	h.m.Subscribe(func(msg tea.Msg) { msgs <- msg })
	if err := h.res.SetPreference(context.Background(), model.ThemeSystem); err != nil {
		t.Fatalf("set preference: %v", err)
	}

	h.key(tea.KeyCtrlT)
	h.key(tea.KeyCtrlT)
	if got := h.res.Effective(); got != model.EffectiveDark {
		t.Fatalf("expected host back on dark, got %s", got)
	}

	var themeMsgs []tea.Msg
	timeout := time.After(2 * time.Second)
	for len(themeMsgs) < 2 {
		select {
		case msg := <-msgs:
			if _, ok := msg.(ThemeChangedMsg); ok {
				themeMsgs = append(themeMsgs, msg)
			}
		case <-timeout:
			t.Fatalf("expected two theme messages, got %d", len(themeMsgs))
		}
	}

	// Deliver the oldest notification last.
	h.m.Update(themeMsgs[1])
	h.m.Update(themeMsgs[0])
	if h.m.palette != theme.PaletteFor(h.res.Effective()) {
		t.Fatalf("palette does not match effective theme %s", h.res.Effective())
	}
	if h.m.palette != theme.PaletteFor(model.EffectiveDark) {
		t.Fatalf("expected dark palette after flipping twice")
	}
}

func TestSettingsWindowTogglesAndEdits(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlO)
	h.key(tea.KeyDown)
	h.key(tea.KeyEnter)
	if got := h.m.settings.Settings().TimeFormat; got != model.TimeFormat12h {
		t.Fatalf("expected 12h, got %s", got)
	}

	for i := 0; i < 4; i++ {
		h.key(tea.KeyDown)
	}
	h.key(tea.KeyEnter)
	if h.m.editing != settings.KeyGitHubUsername {
		t.Fatalf("expected username editing, got %q", h.m.editing)
	}
	h.typeText("octocat")
	h.key(tea.KeyEnter)
	if got := h.m.settings.Settings().GitHubUsername; got != "octocat" {
		t.Fatalf("expected username saved, got %q", got)
	}
	if !strings.Contains(h.kv.data[settings.StorageKey], `"githubUsername":"octocat"`) {
		t.Fatalf("expected persisted username, got %s", h.kv.data[settings.StorageKey])
	}
	if h.m.editing != "" {
		t.Fatalf("expected editing to end")
	}
}

func TestTimeZoneRowCyclesZones(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlO)
	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	for _, want := range []string{"UTC", "America/New_York", "America/Los_Angeles", "auto"} {
		h.key(tea.KeyEnter)
		if got := h.m.settings.Settings().TimeZone; got != want {
			t.Fatalf("expected time zone %q, got %q", want, got)
		}
	}
}

func TestEscCancelsUsernameEdit(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlO)
	for i := 0; i < 5; i++ {
		h.key(tea.KeyDown)
	}
	h.key(tea.KeyEnter)
	h.typeText("ghost")
	h.key(tea.KeyEsc)
	if h.m.editing != "" || h.m.settings.Settings().GitHubUsername != "" {
		t.Fatalf("expected edit cancelled")
	}
}

func TestRefreshIntervalDrivesSync(t *testing.T) {
	h := newHarness(t)
	start := h.m.lastSync
	h.m.Update(clockMsg(start.Add(10 * time.Second)))
	if !h.m.lastSync.Equal(start) {
		t.Fatalf("expected no sync before the interval")
	}
	later := start.Add(301 * time.Second)
	h.m.Update(clockMsg(later))
	if !h.m.lastSync.Equal(later) {
		t.Fatalf("expected sync after the interval")
	}
}
