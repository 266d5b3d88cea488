package portfolio

import (
	"bytes"
	"strings"
	"testing"
)

func TestGitHubLines(t *testing.T) {
	out := strings.Join(GitHubLines(GitHub(), 60, false), "\n")
	for _, want := range []string{
		"Sanjay Kumar (@sanjay-dev)",
		"42 repos · 234 followers",
		"1,245 contributions",
		"ai-portfolio-dashboard",
		"Starred react-component-library",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestLeetCodeLines(t *testing.T) {
	lines := LeetCodeLines(LeetCode(), 40)
	if lines[0] != "Solved 78 / 150 (52%)" {
		t.Fatalf("unexpected headline %q", lines[0])
	}
	out := strings.Join(lines, "\n")
	for _, want := range []string{"Ranking #12,453", "Streak 15 days", "Two Sum", "Weekly Contest 382"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(1, 2, 6); got != "[██░░]" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := ProgressBar(5, 0, 4); got != "[░░]" {
		t.Fatalf("unexpected bar for empty total %q", got)
	}
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLines(&buf, []string{"a", "b"}); err != nil {
		t.Fatalf("WriteLines failed: %v", err)
	}
	if buf.String() != "a\nb\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
