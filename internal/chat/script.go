package chat

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultReply is the scripted assistant answer.
const DefaultReply = "I can help you with that! Let me analyze your profile and provide personalized suggestions based on your skills and experience."

// DefaultGreeting seeds the transcript.
const DefaultGreeting = "Hi! I've analyzed your GitHub repos. Your strongest skill right now is React.js 🚀"

// Script supplies assistant replies.
type Script struct {
	mu      sync.Mutex
	replies []string
	rnd     *rand.Rand
}

// NewScript returns a script over replies. An empty list falls back to DefaultReply.
func NewScript(replies []string) *Script {
	if len(replies) == 0 {
		replies = []string{DefaultReply}
	}
	return &Script{
		replies: append([]string(nil), replies...),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the next reply, picked uniformly when there is more than one.
func (s *Script) Next() string {
	if len(s.replies) == 1 {
		return s.replies[0]
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replies[s.rnd.Intn(len(s.replies))]
}

// Len returns the number of replies.
func (s *Script) Len() int {
	return len(s.replies)
}

// LoadScript reads one reply per line from path. Blank lines and lines starting
// with '#' are skipped.
func LoadScript(path string) (*Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only script.
			_ = cerr
		}
	}()

	var replies []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		replies = append(replies, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(replies) == 0 {
		return nil, fmt.Errorf("reply script is empty")
	}
	return NewScript(replies), nil
}
