package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type wrapRune struct {
	r       rune
	width   int
	isSpace bool
}

// wrapText breaks text into lines at most width cells wide, preferring the
// last space on a line and hard-breaking words that do not fit.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		out = append(out, wrapParagraph([]rune(paragraph), width)...)
	}
	return out
}

func wrapParagraph(runes []rune, width int) []string {
	if len(runes) == 0 {
		return []string{""}
	}
	var out []string
	line := make([]wrapRune, 0, width)
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := wrapRune{r: runes[i], width: runewidth.RuneWidth(runes[i]), isSpace: runes[i] == ' '}
		if len(line) == 0 && item.isSpace && len(out) > 0 {
			i++
			continue
		}
		if lineWidth+item.width > width && len(line) > 0 {
			switch {
			case item.isSpace:
				out = append(out, renderWrapRunes(line))
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
				i++
			case lastSpaceIdx > 0:
				out = append(out, renderWrapRunes(line[:lastSpaceIdx]))
				line = append([]wrapRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			default:
				out = append(out, renderWrapRunes(line))
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	return append(out, renderWrapRunes(line))
}

func renderWrapRunes(runes []wrapRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteRune(item.r)
	}
	return strings.TrimRight(b.String(), " ")
}

func lineWidthOf(line []wrapRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []wrapRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
