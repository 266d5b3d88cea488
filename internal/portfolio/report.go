package portfolio

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// TrendWindow is the number of weeks averaged for the commit trend.
const TrendWindow = 4

// GitHubLines renders the GitHub dashboard for a pane width columns wide.
func GitHubLines(d GitHubData, width int, useColor bool) []string {
	lines := []string{
		fmt.Sprintf("%s (@%s)", d.User.Name, d.User.Username),
		fmt.Sprintf("%s repos · %s followers · %s following",
			humanize.Comma(int64(d.User.PublicRepos)),
			humanize.Comma(int64(d.User.Followers)),
			humanize.Comma(int64(d.User.Following))),
		fmt.Sprintf("%s contributions in the last year", humanize.Comma(int64(d.Contributions))),
	}
	if len(d.Weekly) > 0 {
		trend := MovingAverage(d.Weekly, TrendWindow)
		lines = append(lines, "",
			fmt.Sprintf("Weekly commits (avg %.0f over last %d weeks)", trend[len(trend)-1], TrendWindow))
		lines = append(lines, Plot(d.Weekly, PlotWidthFor(width), 0, useColor)...)
	}

	lines = append(lines, "", "Repositories")
	rows := make([][]string, 0, len(d.Repositories))
	for _, r := range d.Repositories {
		rows = append(rows, []string{
			r.Name,
			r.Language,
			humanize.Comma(int64(r.Stars)),
			humanize.Comma(int64(r.Forks)),
			r.Updated,
		})
	}
	lines = append(lines, FormatTable([]string{"Name", "Language", "Stars", "Forks", "Updated"}, rows, map[int]bool{2: true, 3: true})...)

	lines = append(lines, "", "Recent activity")
	for _, a := range d.Activity {
		lines = append(lines, "• "+describeActivity(a))
	}
	return lines
}

func describeActivity(a Activity) string {
	switch a.Kind {
	case "commit":
		return fmt.Sprintf("Pushed to %s: %s (%s)", a.Repo, a.Message, a.Time)
	case "star":
		return fmt.Sprintf("Starred %s (%s)", a.Repo, a.Time)
	case "fork":
		return fmt.Sprintf("Forked %s (%s)", a.Repo, a.Time)
	default:
		return fmt.Sprintf("%s %s (%s)", a.Kind, a.Repo, a.Time)
	}
}

// LeetCodeLines renders the LeetCode progress pane.
func LeetCodeLines(d LeetCodeData, width int) []string {
	s := d.Stats
	pct := 0
	if s.TotalProblems > 0 {
		pct = s.TotalSolved * 100 / s.TotalProblems
	}
	barWidth := max(width-2, 10)
	lines := []string{
		fmt.Sprintf("Solved %d / %d (%d%%)", s.TotalSolved, s.TotalProblems, pct),
		ProgressBar(s.TotalSolved, s.TotalProblems, barWidth),
		fmt.Sprintf("Easy %d   Medium %d   Hard %d", s.Easy, s.Medium, s.Hard),
		fmt.Sprintf("Ranking #%s   Streak %d days", humanize.Comma(int64(s.Ranking)), s.Streak),
		"",
		"Recent submissions",
	}
	rows := make([][]string, 0, len(d.Submissions))
	for _, sub := range d.Submissions {
		rows = append(rows, []string{sub.Title, sub.Difficulty, sub.Status, sub.Runtime, sub.Time})
	}
	lines = append(lines, FormatTable([]string{"Problem", "Level", "Status", "Runtime", "When"}, rows, map[int]bool{3: true})...)
	lines = append(lines, "", fmt.Sprintf("Upcoming: %s · %s %s", d.Contest.Name, d.Contest.Date, d.Contest.Time))
	return lines
}

// ProgressBar draws done/total as a bracketed bar width cells wide.
func ProgressBar(done, total, width int) string {
	inner := max(width-2, 1)
	filled := 0
	if total > 0 {
		filled = min(done*inner/total, inner)
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", inner-filled) + "]"
}

// WriteLines writes each line to w.
func WriteLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
