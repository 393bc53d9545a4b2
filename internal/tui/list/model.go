package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected reports whether the cursor is on it.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a cursor over a short list of items with a fixed-height window.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]
	cursor int
	// offset is the first item inside the window.
	offset int
	height int
}

// New creates a list showing at most height items at a time.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{items: items, render: render, height: max(height, 1)}
	m.scroll()
	return m
}

// SetItems replaces the items, keeping the cursor in range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetCursor(m.cursor)
}

// SetHeight resizes the window.
func (m *Model[T]) SetHeight(h int) {
	m.height = max(h, 1)
	m.scroll()
}

// Len returns the number of items.
func (m *Model[T]) Len() int { return len(m.items) }

// Cursor returns the index under the cursor.
func (m *Model[T]) Cursor() int { return m.cursor }

// SetCursor moves the cursor, capping to the list bounds.
func (m *Model[T]) SetCursor(i int) {
	m.cursor = min(max(i, 0), max(len(m.items)-1, 0))
	m.scroll()
}

// Selected returns the item under the cursor.
func (m *Model[T]) Selected() (T, bool) {
	var zero T
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return zero, false
	}
	return m.items[m.cursor], true
}

// Update moves the cursor for navigation keys and reports whether the key
// was consumed.
//
//nolint:exhaustive // Only navigation keys are handled.
func (m *Model[T]) Update(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		m.SetCursor(m.cursor - 1)
	case tea.KeyDown:
		m.SetCursor(m.cursor + 1)
	case tea.KeyPgUp:
		m.SetCursor(m.cursor - m.height)
	case tea.KeyPgDown:
		m.SetCursor(m.cursor + m.height)
	case tea.KeyHome:
		m.SetCursor(0)
	case tea.KeyEnd:
		m.SetCursor(len(m.items) - 1)
	case tea.KeyRunes:
		switch msg.String() {
		case "k":
			m.SetCursor(m.cursor - 1)
		case "j":
			m.SetCursor(m.cursor + 1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// scroll keeps the cursor inside the window.
func (m *Model[T]) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	m.offset = min(m.offset, max(len(m.items)-m.height, 0))
}

// View renders the items inside the window, one per line.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	end := min(m.offset+m.height, len(m.items))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.render(m.items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}
