package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ansiReset = "\x1b[0m"

func padLine(line string, width int) string {
	lineWidth := ansi.StringWidth(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, "...")
}

// fitBlock clips or pads lines to exactly width columns and height rows.
func fitBlock(lines []string, width, height int) []string {
	out := make([]string, 0, height)
	for _, line := range lines {
		if len(out) == height {
			break
		}
		out = append(out, padLine(truncateLine(line, width), width))
	}
	for len(out) < height {
		out = append(out, strings.Repeat(" ", width))
	}
	return out
}

// frame draws a rounded border around lines, which must already be inner wide.
func frame(lines []string, innerWidth int, border lipgloss.Style) []string {
	out := make([]string, 0, len(lines)+2)
	horizontal := strings.Repeat("─", innerWidth)
	out = append(out, border.Render("╭"+horizontal+"╮"))
	side := border.Render("│")
	for _, line := range lines {
		out = append(out, side+line+ansiReset+side)
	}
	out = append(out, border.Render("╰"+horizontal+"╯"))
	return out
}

// overlay draws box onto base with its top-left corner at (x, y), clipped to width.
func overlay(base, box []string, x, y, width int) {
	for i, line := range box {
		row := y + i
		if row < 0 || row >= len(base) {
			continue
		}
		base[row] = spliceLine(base[row], line, x, width)
	}
}

func spliceLine(under, over string, x, width int) string {
	if x >= width {
		return under
	}
	overWidth := ansi.StringWidth(over)
	if x < 0 {
		over = ansi.TruncateLeft(over, -x, "")
		overWidth += x
		x = 0
	}
	if overWidth <= 0 {
		return under
	}
	if x+overWidth > width {
		over = ansi.Truncate(over, width-x, "")
		overWidth = width - x
	}
	left := padLine(ansi.Truncate(under, x, ""), x)
	right := ansi.TruncateLeft(under, x+overWidth, "")
	return left + ansiReset + over + ansiReset + right
}

// span is a clickable horizontal range [start, end) on one row.
type span struct {
	start int
	end   int
}

func (s span) contains(x int) bool {
	return x >= s.start && x < s.end
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
