package windows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/deskfolio/internal/model"
)

func TestNeverOpenedWindowIsNotPresent(t *testing.T) {
	m := NewManager()
	_, ok := m.State("github")
	assert.False(t, ok)
	assert.False(t, m.IsOpen("github"))

	assert.False(t, m.Close("github"))
	assert.False(t, m.ToggleMinimize("github"))
	assert.False(t, m.Focus("github"))
	assert.False(t, m.Move("github", model.Position{X: 1, Y: 1}))

	_, ok = m.State("github")
	assert.False(t, ok, "no-op calls must not create entries")
	_, ok = m.Frontmost()
	assert.False(t, ok)
}

func TestOpenAssignsIncreasingStackOrder(t *testing.T) {
	m := NewManager()
	require.True(t, m.Open("a", nil))
	require.True(t, m.Open("b", nil))

	a, _ := m.State("a")
	b, _ := m.State("b")
	assert.Equal(t, BaseStackOrder+1, a.StackOrder)
	assert.Equal(t, BaseStackOrder+2, b.StackOrder)
	assert.True(t, a.Open)
	assert.False(t, a.Minimized)
	assert.Equal(t, DefaultPosition, a.Position)

	front, ok := m.Frontmost()
	require.True(t, ok)
	assert.Equal(t, "b", front)
}

func TestFocusBringsWindowToFront(t *testing.T) {
	m := NewManager()
	m.Open("a", nil)
	m.Open("b", nil)
	require.True(t, m.Focus("a"))

	a, _ := m.State("a")
	b, _ := m.State("b")
	assert.Greater(t, a.StackOrder, b.StackOrder)
	front, _ := m.Frontmost()
	assert.Equal(t, "a", front)

	stack := m.Stack()
	require.Len(t, stack, 2)
	assert.Equal(t, "b", stack[0].ID)
	assert.Equal(t, "a", stack[1].ID)
}

func TestOpenIsIdempotentWhileOpen(t *testing.T) {
	m := NewManager()
	m.Open("a", &model.Position{X: 5, Y: 6})
	m.Open("b", nil)
	before, _ := m.State("a")

	assert.False(t, m.Open("a", &model.Position{X: 40, Y: 9}))
	after, _ := m.State("a")
	assert.Equal(t, before, after)
	assert.Equal(t, BaseStackOrder+2, m.TopStackOrder())
}

func TestCloseThenOpenRestoresPosition(t *testing.T) {
	m := NewManager()
	m.Open("a", &model.Position{X: 20, Y: 4})
	m.Open("b", nil)
	require.True(t, m.Move("a", model.Position{X: 33, Y: 7}))
	highest := m.TopStackOrder()

	require.True(t, m.Close("a"))
	closed, ok := m.State("a")
	require.True(t, ok)
	assert.False(t, closed.Open)
	assert.Equal(t, model.Position{X: 33, Y: 7}, closed.Position)

	require.True(t, m.Open("a", nil))
	reopened, _ := m.State("a")
	assert.True(t, reopened.Open)
	assert.Equal(t, model.Position{X: 33, Y: 7}, reopened.Position)
	assert.Greater(t, reopened.StackOrder, highest)
}

func TestToggleMinimize(t *testing.T) {
	m := NewManager()
	m.Open("a", nil)
	require.True(t, m.ToggleMinimize("a"))
	s, _ := m.State("a")
	assert.True(t, s.Open)
	assert.True(t, s.Minimized)

	front, _ := m.Frontmost()
	assert.Equal(t, "a", front, "minimized windows stay open")

	require.True(t, m.ToggleMinimize("a"))
	s, _ = m.State("a")
	assert.False(t, s.Minimized)

	m.ToggleMinimize("a")
	m.Close("a")
	m.Open("a", nil)
	s, _ = m.State("a")
	assert.False(t, s.Minimized, "reopening clears minimize")
}

func TestFocusAndMinimizeIgnoreClosedWindows(t *testing.T) {
	m := NewManager()
	m.Open("a", nil)
	m.Close("a")
	order := m.TopStackOrder()

	assert.False(t, m.Focus("a"))
	assert.False(t, m.ToggleMinimize("a"))
	assert.False(t, m.Move("a", model.Position{X: 1, Y: 2}))
	assert.Equal(t, order, m.TopStackOrder())
	assert.Empty(t, m.Stack())
}

func TestRegisteredDefaultPosition(t *testing.T) {
	m := NewManager()
	m.SetDefaultPosition("leetcode", model.Position{X: 50, Y: 5})
	m.Open("leetcode", nil)
	s, _ := m.State("leetcode")
	assert.Equal(t, model.Position{X: 50, Y: 5}, s.Position)

	m.Open("github", &model.Position{X: 2, Y: 2})
	s, _ = m.State("github")
	assert.Equal(t, model.Position{X: 2, Y: 2}, s.Position)
}

func TestStackOrderNeverTies(t *testing.T) {
	m := NewManager()
	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		m.Open(id, nil)
	}
	m.Focus("b")
	m.Close("c")
	m.Open("c", nil)
	m.Focus("a")

	seen := map[int]string{}
	for _, w := range m.Stack() {
		prev, dup := seen[w.StackOrder]
		require.False(t, dup, "%s and %s share stack order %d", prev, w.ID, w.StackOrder)
		seen[w.StackOrder] = w.ID
	}
	front, _ := m.Frontmost()
	assert.Equal(t, "a", front)
}
