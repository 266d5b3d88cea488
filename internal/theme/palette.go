package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/deskfolio/internal/model"
)

// Palette holds the colors used to render one theme.
type Palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Tertiary   lipgloss.Color
	Danger     lipgloss.Color
	Wallpaper  lipgloss.Color
}

var darkPalette = Palette{
	Background: lipgloss.Color("#0E1117"),
	Surface:    lipgloss.Color("#1A1F2B"),
	Border:     lipgloss.Color("#4A4A4A"),
	Foreground: lipgloss.Color("#F0F0F0"),
	Muted:      lipgloss.Color("#8C8C8C"),
	Primary:    lipgloss.Color("#38BDF8"),
	Secondary:  lipgloss.Color("#A78BFA"),
	Tertiary:   lipgloss.Color("#C89A3A"),
	Danger:     lipgloss.Color("#FF4D4F"),
	Wallpaper:  lipgloss.Color("#2A3140"),
}

var lightPalette = Palette{
	Background: lipgloss.Color("#F6F7FB"),
	Surface:    lipgloss.Color("#FFFFFF"),
	Border:     lipgloss.Color("#B8B8B8"),
	Foreground: lipgloss.Color("#1F2328"),
	Muted:      lipgloss.Color("#6E6E6E"),
	Primary:    lipgloss.Color("#0369A1"),
	Secondary:  lipgloss.Color("#6D28D9"),
	Tertiary:   lipgloss.Color("#A16207"),
	Danger:     lipgloss.Color("#CF222E"),
	Wallpaper:  lipgloss.Color("#D0D7DE"),
}

// PaletteFor returns the palette for an effective theme.
func PaletteFor(t model.EffectiveTheme) Palette {
	if t == model.EffectiveLight {
		return lightPalette
	}
	return darkPalette
}
