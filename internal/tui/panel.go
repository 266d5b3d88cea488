package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/verte-zerg/deskfolio/internal/model"
	"github.com/verte-zerg/deskfolio/internal/portfolio"
)

const (
	tabChat = iota
	tabResume
	tabProjects
	tabSkills
	tabContact
	tabPlayground
)

func tabTitles() []string {
	titles := []string{"Chat"}
	for _, s := range portfolio.Sections() {
		titles = append(titles, s.Title)
	}
	return titles
}

// tabSpans returns the clickable ranges of the tab bar relative to the panel's inner left edge.
func tabSpans() []span {
	titles := tabTitles()
	spans := make([]span, len(titles))
	x := 0
	for i, title := range titles {
		w := ansi.StringWidth(title) + 2
		spans[i] = span{start: x, end: x + w}
		x += w + 1
	}
	return spans
}

func (m *Model) panelRect() (x, y, w, h int) {
	deskHeight := max(m.height-2, 1)
	w = clamp(m.width-8, min(40, m.width), 96)
	h = clamp(deskHeight-2, min(6, deskHeight), deskHeight)
	x = (m.width - w) / 2
	y = 1 + (deskHeight-h)/2
	return x, y, w, h
}

func (m *Model) setTab(tab int) {
	n := len(tabTitles())
	m.tab = ((tab % n) + n) % n
}

func (m *Model) renderTabs(innerWidth int) string {
	var b strings.Builder
	for i, title := range tabTitles() {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == m.tab {
			b.WriteString(m.styles.tabActive.Render(" " + title + " "))
		} else {
			b.WriteString(m.styles.tabIdle.Render(" " + title + " "))
		}
	}
	return truncateLine(b.String(), innerWidth)
}

func (m *Model) panelLines() []string {
	_, _, w, h := m.panelRect()
	iw, ih := max(w-2, 1), max(h-2, 1)
	lines := []string{m.renderTabs(iw), m.styles.border.Render(strings.Repeat("─", iw))}
	if m.tab == tabChat {
		lines = append(lines, strings.Split(m.chatView.View(), "\n")...)
		lines = fitBlock(lines, iw, max(ih-2, 0))
		lines = append(lines, m.renderChatHint(iw), m.input.View())
	} else {
		lines = append(lines, m.sectionLines(iw)...)
	}
	border := m.styles.border
	if m.focus == focusPanel {
		border = m.styles.focused
	}
	return frame(fitBlock(lines, iw, ih), iw, border)
}

func (m *Model) sectionLines(width int) []string {
	sections := portfolio.Sections()
	idx := m.tab - 1
	if idx < 0 || idx >= len(sections) {
		return nil
	}
	s := sections[idx]
	lines := []string{"", m.styles.accent.Render(s.Headline), ""}
	for _, line := range wrapText(s.Body, width-2) {
		lines = append(lines, " "+m.styles.muted.Render(line))
	}
	return lines
}

func (m *Model) renderChatHint(width int) string {
	hint := " enter: send · tab: switch tabs "
	if m.chat.Thinking() {
		hint = " " + m.thinkingIndicator() + " thinking… send disabled "
	}
	fill := max(width-ansi.StringWidth(hint)-2, 0)
	return m.styles.border.Render("──") + m.styles.muted.Render(hint) + m.styles.border.Render(strings.Repeat("─", fill))
}

func (m *Model) thinkingIndicator() string {
	if m.settings.Settings().Animations {
		return m.spinner.View()
	}
	return "●"
}

// refreshChat rebuilds the transcript shown in the chat viewport.
func (m *Model) refreshChat() {
	width := m.chatView.Width
	if width <= 0 {
		return
	}
	bubble := max(width*3/4, 10)
	s := m.settings.Settings()
	loc := m.location()
	var lines []string
	for _, msg := range m.chat.Messages() {
		stamp := msg.CreatedAt.In(loc).Format("15:04")
		if s.TimeFormat == model.TimeFormat12h {
			stamp = msg.CreatedAt.In(loc).Format("3:04 PM")
		}
		if msg.Role == model.RoleUser {
			lines = append(lines, alignRight(m.styles.muted.Render("You · "+stamp), width))
			for _, line := range wrapText(msg.Text, bubble) {
				lines = append(lines, alignRight(m.styles.user.Render(line), width))
			}
		} else {
			lines = append(lines, m.styles.secondary.Render("Assistant · "+stamp))
			for _, line := range wrapText(msg.Text, bubble) {
				lines = append(lines, m.styles.assistant.Render(line))
			}
		}
		lines = append(lines, "")
	}
	if m.chat.Thinking() {
		lines = append(lines, m.styles.secondary.Render(m.thinkingIndicator()+" Assistant is thinking..."))
	}
	m.chatView.SetContent(strings.Join(lines, "\n"))
	m.chatView.GotoBottom()
}

func alignRight(line string, width int) string {
	gap := width - ansi.StringWidth(line)
	if gap <= 0 {
		return line
	}
	return strings.Repeat(" ", gap) + line
}
