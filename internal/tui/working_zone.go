package tui

import (
	"fmt"

	"personix/internal/client"
	"personix/internal/colors"
	log "personix/internal/logging"
	"personix/internal/tui/widgets/common"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// restAware is implemented by screens that talk to the record services and
// need fresh clients after a profile switch.
type restAware interface {
	SetRest(rest *client.Rest)
}

// WorkingZone hosts the registered screens and routes messages to whichever
// one is active.
type WorkingZone struct {
	width, height int
	screens       map[string]common.Screen
	current       common.Screen
}

// NewWorkingZone registers the given screens. The first one becomes active.
func NewWorkingZone(screens ...common.Screen) *WorkingZone {
	registry := make(map[string]common.Screen, len(screens))
	for _, s := range screens {
		registry[s.GetName()] = s
	}
	w := &WorkingZone{screens: registry}
	if len(screens) > 0 {
		w.current = screens[0]
	}
	return w
}

// SetScreen activates the named screen and returns its init command. The
// outgoing screen is reset: its session state, drafts included, does not
// survive navigating away.
func (w *WorkingZone) SetScreen(name string) tea.Cmd {
	screen, ok := w.screens[name]
	if !ok {
		log.Warn("Unknown screen requested", zap.String("screen", name))
		return nil
	}
	if w.current != nil && w.current != screen {
		w.current.Reset()
	}
	w.current = screen
	screen.SetSize(w.width, w.height)
	return func() tea.Msg { return screen.Init() }
}

// CurrentScreen returns the active screen.
func (w *WorkingZone) CurrentScreen() common.Screen {
	return w.current
}

// GetScreen returns a registered screen by name.
func (w *WorkingZone) GetScreen(name string) common.Screen {
	return w.screens[name]
}

// GetKeyBindings returns the active screen's bindings.
func (w *WorkingZone) GetKeyBindings() []common.KeyBinding {
	if w.current == nil {
		return common.GenericKeyBindings()
	}
	return w.current.GetKeyBindings()
}

// SetRest hands fresh service clients to every screen that uses them.
func (w *WorkingZone) SetRest(rest *client.Rest) {
	for _, s := range w.screens {
		if aware, ok := s.(restAware); ok {
			aware.SetRest(rest)
		}
	}
}

// SetSize sets the dimensions of the working zone
func (w *WorkingZone) SetSize(width, height int) {
	w.width = width
	w.height = height
	for _, s := range w.screens {
		s.SetSize(width, height)
	}
}

// Update forwards the message to the active screen. Messages owned by a
// specific screen go to that screen even when it is not the active one, so
// in-flight request results are never dropped by navigation.
func (w *WorkingZone) Update(msg tea.Msg) tea.Cmd {
	if owned, ok := msg.(common.ScreenMsg); ok {
		if screen, exists := w.screens[owned.TargetScreen()]; exists {
			return screen.Update(msg)
		}
	}
	if w.current == nil {
		return nil
	}
	return w.current.Update(msg)
}

// View renders the active screen under its title.
func (w *WorkingZone) View() string {
	if w.current == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(colors.White).
		Bold(true).
		Underline(true)

	return fmt.Sprintf("%s\n\n%s", titleStyle.Render(w.current.Title()), w.current.View())
}

// Ready returns whether the working zone can be displayed.
func (w *WorkingZone) Ready() bool {
	return w.current != nil
}
