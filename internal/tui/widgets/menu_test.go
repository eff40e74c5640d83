package widgets

import (
	"testing"

	"personix/internal/msgtypes"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMenuNavigatesToSelectedScreen(t *testing.T) {
	m := NewMenu()

	// Move to the second entry and open it.
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(msgtypes.SetScreenMsg)
	if !ok {
		t.Fatalf("expected SetScreenMsg, got %T", cmd())
	}
	if msg.Screen != "lookup" {
		t.Errorf("screen = %q, want %q", msg.Screen, "lookup")
	}
}

func TestMenuCursorStaysInBounds(t *testing.T) {
	m := NewMenu()

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first entry: %d", m.cursor)
	}

	for i := 0; i < 20; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.entries)-1 {
		t.Errorf("cursor = %d, want last entry %d", m.cursor, len(m.entries)-1)
	}
}
