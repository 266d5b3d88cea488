// Package chat simulates the AI assistant: user messages are appended at once
// and a scripted reply follows after a fixed delay.
package chat

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/deskfolio/internal/model"
)

// DefaultDelay is the simulated thinking time.
const DefaultDelay = 2 * time.Second

var (
	// ErrEmptyMessage is returned for empty or whitespace-only input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy is returned when a reply is still pending.
	ErrBusy = errors.New("assistant is still thinking")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("chat is closed")
)

// Options configures a Simulator. Zero values select the defaults.
type Options struct {
	Delay     time.Duration
	Greeting  string
	Script    *Script
	Scheduler Scheduler
	Now       func() time.Time
	Logger    *slog.Logger
}

// Simulator owns the chat transcript and the pending reply.
// Methods are safe for concurrent use; the reply fires on the scheduler's goroutine.
type Simulator struct {
	delay  time.Duration
	script *Script
	sched  Scheduler
	now    func() time.Time
	logger *slog.Logger

	mu       sync.Mutex
	messages []model.ChatMessage
	input    string
	thinking bool
	pending  Task
	seq      uint64
	closed   bool
	onChange []func()
}

// New returns a simulator whose transcript starts with the greeting, if any.
func New(opts Options) *Simulator {
	s := &Simulator{
		delay:  opts.Delay,
		script: opts.Script,
		sched:  opts.Scheduler,
		now:    opts.Now,
		logger: opts.Logger,
	}
	if s.delay <= 0 {
		s.delay = DefaultDelay
	}
	if s.script == nil {
		s.script = NewScript(nil)
	}
	if s.sched == nil {
		s.sched = ClockScheduler{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if greeting := strings.TrimSpace(opts.Greeting); greeting != "" {
		s.messages = append(s.messages, model.ChatMessage{
			ID:        uuid.NewString(),
			Role:      model.RoleAssistant,
			Text:      greeting,
			CreatedAt: s.now().Add(-time.Minute),
		})
	}
	return s
}

// OnChange registers fn to run after the transcript or thinking state changes.
// fn is called without internal locks held, possibly from the scheduler goroutine.
func (s *Simulator) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// SetInput replaces the pending input buffer.
func (s *Simulator) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Input returns the pending input buffer.
func (s *Simulator) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Send submits the pending input buffer.
func (s *Simulator) Send() error {
	return s.Submit(s.Input())
}

// Submit appends a user message and schedules one scripted reply.
func (s *Simulator) Submit(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.thinking {
		s.mu.Unlock()
		return ErrBusy
	}
	s.messages = append(s.messages, model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleUser,
		Text:      text,
		CreatedAt: s.stamp(),
	})
	s.input = ""
	s.thinking = true
	s.seq++
	seq := s.seq
	s.pending = s.sched.AfterFunc(s.delay, func() {
		s.deliver(seq)
	})
	fns := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Debug("chat message submitted", "len", len(text))
	notify(fns)
	return nil
}

func (s *Simulator) deliver(seq uint64) {
	s.mu.Lock()
	if s.closed || !s.thinking || seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.messages = append(s.messages, model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleAssistant,
		Text:      s.script.Next(),
		CreatedAt: s.stamp(),
	})
	s.thinking = false
	s.pending = nil
	fns := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Debug("chat reply delivered")
	notify(fns)
}

// Messages returns a copy of the transcript.
func (s *Simulator) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatMessage(nil), s.messages...)
}

// Thinking reports whether a reply is pending.
func (s *Simulator) Thinking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thinking
}

// Close cancels a pending reply. No message is appended afterwards.
func (s *Simulator) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	pending := s.pending
	s.pending = nil
	s.thinking = false
	s.mu.Unlock()
	if pending != nil {
		pending.Stop()
	}
}

// stamp returns a creation time that never goes backwards within the transcript.
func (s *Simulator) stamp() time.Time {
	now := s.now()
	if n := len(s.messages); n > 0 && now.Before(s.messages[n-1].CreatedAt) {
		return s.messages[n-1].CreatedAt
	}
	return now
}

func (s *Simulator) listenersLocked() []func() {
	return append([]func(){}, s.onChange...)
}

func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
