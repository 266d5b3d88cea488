package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
)

// Signal reports the host color scheme.
type Signal interface {
	// Dark returns the current scheme. ok is false when the host cannot tell.
	Dark() (dark, ok bool)
	// Watch calls fn on every scheme change until release is called.
	Watch(fn func(dark bool)) (release func())
}

type listeners struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(bool)
}

func (l *listeners) add(fn func(bool)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = map[int]func(bool){}
	}
	id := l.nextID
	l.nextID++
	l.fns[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

func (l *listeners) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

func (l *listeners) notify(dark bool) {
	l.mu.Lock()
	fns := make([]func(bool), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn(dark)
	}
}

// Switch is an in-memory host signal flipped by hand.
type Switch struct {
	mu        sync.Mutex
	dark      bool
	known     bool
	listeners listeners
}

// NewSwitch returns a switch reporting the given scheme.
func NewSwitch(dark bool) *Switch {
	return &Switch{dark: dark, known: true}
}

// Dark implements Signal.
func (s *Switch) Dark() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark, s.known
}

// Watch implements Signal.
func (s *Switch) Watch(fn func(dark bool)) func() {
	return s.listeners.add(fn)
}

// Set changes the scheme and notifies watchers when it differs.
func (s *Switch) Set(dark bool) {
	s.mu.Lock()
	changed := !s.known || s.dark != dark
	s.dark = dark
	s.known = true
	s.mu.Unlock()
	if changed {
		s.listeners.notify(dark)
	}
}

// Toggle flips the scheme.
func (s *Switch) Toggle() {
	dark, _ := s.Dark()
	s.Set(!dark)
}

// Watchers returns the number of live subscriptions.
func (s *Switch) Watchers() int {
	return s.listeners.count()
}

// FileSignal reads the host scheme from a file containing "dark" or "light"
// and watches it for changes. When the file is missing or holds anything
// else, the terminal background decides.
type FileSignal struct {
	path     string
	fallback func() bool
	logger   *slog.Logger
	watcher  *fsnotify.Watcher

	mu        sync.Mutex
	dark      bool
	listeners listeners
}

// NewFileSignal starts watching path. Run must be called to deliver events.
func NewFileSignal(path string, logger *slog.Logger) (*FileSignal, error) {
	return newFileSignal(path, lipgloss.HasDarkBackground, logger)
}

func newFileSignal(path string, fallback func() bool, logger *slog.Logger) (*FileSignal, error) {
	if path == "" {
		return nil, errors.New("appearance file path is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create appearance directory: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory so that editors replacing the file are seen.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	s := &FileSignal{
		path:     path,
		fallback: fallback,
		logger:   logger,
		watcher:  watcher,
	}
	s.dark = s.read()
	return s, nil
}

// Dark implements Signal.
func (s *FileSignal) Dark() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark, true
}

// Watch implements Signal.
func (s *FileSignal) Watch(fn func(dark bool)) func() {
	return s.listeners.add(fn)
}

// Run delivers file events until ctx is done or the watcher is closed.
func (s *FileSignal) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("appearance watcher error", "err", err)
		}
	}
}

// Toggle writes the opposite scheme to the file and applies it at once.
func (s *FileSignal) Toggle() error {
	dark, _ := s.Dark()
	scheme := "dark"
	if dark {
		scheme = "light"
	}
	if err := os.WriteFile(s.path, []byte(scheme+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write appearance file: %w", err)
	}
	s.refresh()
	return nil
}

// Close stops the watcher.
func (s *FileSignal) Close() error {
	return s.watcher.Close()
}

func (s *FileSignal) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(s.path) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	s.refresh()
}

func (s *FileSignal) refresh() {
	dark := s.read()
	s.mu.Lock()
	changed := dark != s.dark
	s.dark = dark
	s.mu.Unlock()
	if changed {
		s.logger.Debug("host color scheme changed", "dark", dark)
		s.listeners.notify(dark)
	}
}

func (s *FileSignal) read() bool {
	data, err := os.ReadFile(s.path)
	if err == nil {
		if dark, ok := parseScheme(string(data)); ok {
			return dark
		}
	} else if !os.IsNotExist(err) {
		s.logger.Warn("failed to read appearance file", "path", s.path, "err", err)
	}
	if s.fallback == nil {
		return true
	}
	return s.fallback()
}

func parseScheme(content string) (dark, ok bool) {
	switch strings.ToLower(strings.TrimSpace(content)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}
