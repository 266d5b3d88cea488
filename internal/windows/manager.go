// Package windows tracks floating windows: open state, minimize state,
// stacking order and screen position.
package windows

import (
	"sort"

	"github.com/verte-zerg/deskfolio/internal/model"
)

// BaseStackOrder is the counter value before the first window opens.
const BaseStackOrder = 100

// DefaultPosition is used for windows opened without a position or a registered default.
var DefaultPosition = model.Position{X: 10, Y: 3}

// Manager owns the window table. Entries are created on first open and never removed.
// It is owned by the UI goroutine and is not safe for concurrent use.
type Manager struct {
	windows  map[string]*model.WindowState
	defaults map[string]model.Position
	top      int
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		windows:  map[string]*model.WindowState{},
		defaults: map[string]model.Position{},
		top:      BaseStackOrder,
	}
}

// SetDefaultPosition registers where id opens the first time when no position is given.
func (m *Manager) SetDefaultPosition(id string, pos model.Position) {
	m.defaults[id] = pos
}

// Open moves a closed window to the open state on top of the stack.
// Opening an already open window is a no-op. A nil pos reuses the last known
// position. It reports whether anything changed.
func (m *Manager) Open(id string, pos *model.Position) bool {
	w, ok := m.windows[id]
	if ok && w.Open {
		return false
	}
	if !ok {
		w = &model.WindowState{ID: id, Position: m.defaultFor(id)}
		m.windows[id] = w
	}
	if pos != nil {
		w.Position = *pos
	}
	w.Open = true
	w.Minimized = false
	w.StackOrder = m.next()
	return true
}

// Close closes an open window and keeps its position for the next open.
func (m *Manager) Close(id string) bool {
	w, ok := m.windows[id]
	if !ok || !w.Open {
		return false
	}
	w.Open = false
	w.Minimized = false
	return true
}

// ToggleMinimize flips the minimized flag of an open window.
func (m *Manager) ToggleMinimize(id string) bool {
	w, ok := m.windows[id]
	if !ok || !w.Open {
		return false
	}
	w.Minimized = !w.Minimized
	return true
}

// Focus brings an open window to the front.
func (m *Manager) Focus(id string) bool {
	w, ok := m.windows[id]
	if !ok || !w.Open {
		return false
	}
	w.StackOrder = m.next()
	return true
}

// Move sets the position of an open window.
func (m *Manager) Move(id string, pos model.Position) bool {
	w, ok := m.windows[id]
	if !ok || !w.Open || w.Position == pos {
		return false
	}
	w.Position = pos
	return true
}

// State returns a copy of the window state. ok is false for never-opened ids.
func (m *Manager) State(id string) (model.WindowState, bool) {
	w, ok := m.windows[id]
	if !ok {
		return model.WindowState{}, false
	}
	return *w, true
}

// IsOpen reports whether id is open (minimized or not).
func (m *Manager) IsOpen(id string) bool {
	w, ok := m.windows[id]
	return ok && w.Open
}

// Frontmost returns the open window with the highest stack order.
func (m *Manager) Frontmost() (string, bool) {
	best := ""
	bestOrder := 0
	for id, w := range m.windows {
		if w.Open && w.StackOrder > bestOrder {
			best = id
			bestOrder = w.StackOrder
		}
	}
	return best, best != ""
}

// Stack returns the open windows from back to front.
func (m *Manager) Stack() []model.WindowState {
	out := make([]model.WindowState, 0, len(m.windows))
	for _, w := range m.windows {
		if w.Open {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StackOrder < out[j].StackOrder
	})
	return out
}

// TopStackOrder returns the last stack order handed out.
func (m *Manager) TopStackOrder() int {
	return m.top
}

func (m *Manager) next() int {
	m.top++
	return m.top
}

func (m *Manager) defaultFor(id string) model.Position {
	if pos, ok := m.defaults[id]; ok {
		return pos
	}
	return DefaultPosition
}
