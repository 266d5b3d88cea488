package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/deskfolio/internal/theme"
)

type styles struct {
	bar        lipgloss.Style
	barAccent  lipgloss.Style
	text       lipgloss.Style
	muted      lipgloss.Style
	accent     lipgloss.Style
	secondary  lipgloss.Style
	highlight  lipgloss.Style
	danger     lipgloss.Style
	border     lipgloss.Style
	focused    lipgloss.Style
	tabActive  lipgloss.Style
	tabIdle    lipgloss.Style
	user       lipgloss.Style
	assistant  lipgloss.Style
	wallpaper  lipgloss.Style
	dock       lipgloss.Style
	dockOpen   lipgloss.Style
	titleBar   lipgloss.Style
	titleFocus lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	return styles{
		bar:        lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Surface),
		barAccent:  lipgloss.NewStyle().Foreground(p.Primary).Background(p.Surface).Bold(true),
		text:       lipgloss.NewStyle().Foreground(p.Foreground),
		muted:      lipgloss.NewStyle().Foreground(p.Muted),
		accent:     lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		secondary:  lipgloss.NewStyle().Foreground(p.Secondary),
		highlight:  lipgloss.NewStyle().Foreground(p.Tertiary),
		danger:     lipgloss.NewStyle().Foreground(p.Danger),
		border:     lipgloss.NewStyle().Foreground(p.Border),
		focused:    lipgloss.NewStyle().Foreground(p.Primary),
		tabActive:  lipgloss.NewStyle().Foreground(p.Background).Background(p.Primary).Bold(true),
		tabIdle:    lipgloss.NewStyle().Foreground(p.Muted),
		user:       lipgloss.NewStyle().Foreground(p.Primary),
		assistant:  lipgloss.NewStyle().Foreground(p.Foreground),
		wallpaper:  lipgloss.NewStyle().Foreground(p.Wallpaper),
		dock:       lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Surface),
		dockOpen:   lipgloss.NewStyle().Foreground(p.Tertiary).Background(p.Surface).Bold(true),
		titleBar:   lipgloss.NewStyle().Foreground(p.Muted),
		titleFocus: lipgloss.NewStyle().Foreground(p.Foreground).Bold(true),
	}
}
