package common

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is one full-screen view managed by the working zone. Screens keep
// their own state between visits; Reset puts them back to a blank state.
type Screen interface {
	GetName() string              // Identifier used for navigation
	Title() string                // Display title shown above the screen
	Init() tea.Msg                // One-time initialization, called at startup
	Reset()                       // Puts the screen back to its initial state
	Update(msg tea.Msg) tea.Cmd   // Handles messages while the screen is active
	View() string                 // Renders the screen body
	SetSize(w, h int)             // Propagates terminal size changes
	GetKeyBindings() []KeyBinding // Bindings shown in the keybindings zone
}

// ScreenMsg is implemented by messages that belong to one specific screen,
// such as the result of a request that screen launched. The working zone
// delivers them to the owning screen even when another screen is active, so
// a response never lands on whatever screen the operator navigated to.
type ScreenMsg interface {
	TargetScreen() string
}

// KeyBinding describes one keyboard shortcut for the keybindings zone.
type KeyBinding struct {
	Key     string // Key combination (e.g., "ctrl+c")
	Desc    string // Description of the key binding
	Generic bool   // Whether this binding is app-wide rather than screen-specific
}

// GenericKeyBindings are available on every screen.
func GenericKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: ":", Desc: "menu", Generic: true},
		{Key: "esc", Desc: "back", Generic: true},
		{Key: "ctrl+c", Desc: "quit", Generic: true},
	}
}
