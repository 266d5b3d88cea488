package tui

import "strings"

// Wallpapers lists the background patterns in the order the settings window cycles them.
var Wallpapers = []string{"default", "dots", "grid", "waves", "none"}

func wallpaperLine(pattern string, row, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for x := 0; x < width; x++ {
		b.WriteRune(wallpaperCell(pattern, x, row))
	}
	return b.String()
}

func wallpaperCell(pattern string, x, y int) rune {
	switch pattern {
	case "dots":
		if x%4 == 0 && y%2 == 0 {
			return '.'
		}
	case "grid":
		switch {
		case x%10 == 0 && y%4 == 0:
			return '+'
		case y%4 == 0:
			return '-'
		case x%10 == 0:
			return '|'
		}
	case "waves":
		if (x+2*y)%12 < 2 {
			return '~'
		}
	case "none":
	default:
		if (x+3*y)%16 == 0 {
			return '·'
		}
	}
	return ' '
}

func nextWallpaper(current string) string {
	for i, w := range Wallpapers {
		if w == current {
			return Wallpapers[(i+1)%len(Wallpapers)]
		}
	}
	return Wallpapers[0]
}
