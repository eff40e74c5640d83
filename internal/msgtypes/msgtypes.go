package msgtypes

import (
	"time"

	"personix/internal/client"
	"personix/internal/persona"

	tea "github.com/charmbracelet/bubbletea"
)

var spinnerCounter = Counter{1}

// SpinnerTickMsg is a message for updating the spinner
type SpinnerTickMsg string

type SpinnerStartMsg struct {
	SpinnerId int16
	SpinnerTs time.Time
}

type SpinnerStopMsg struct {
	SpinnerId int16
}

// SetScreenMsg is sent when switching application screens
type SetScreenMsg struct {
	Screen string
}

// EditPersonaMsg is sent when a looked-up record should be opened in the
// form screen in update mode.
type EditPersonaMsg struct {
	Draft persona.Draft
}

// ProfileDataMsg is sent when the remote service metadata is refreshed
type ProfileDataMsg struct {
	APIVersion string
	Compatible bool
}

// UpdateProfileMsg is sent after the active connection profile changed
type UpdateProfileMsg struct{}

// TickerUpdateProfileMsg triggers a periodic refresh of profile metadata
type TickerUpdateProfileMsg struct{}

// InitProfileMsg carries the client built for a freshly activated profile
type InitProfileMsg struct {
	Client *client.Rest
}

func ProcessWithSpinner(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	spinnerId := spinnerCounter.Value()
	spinnerTs := time.Now()
	spinnerCounter.Inc()

	startSpinner := func() tea.Msg {
		return SpinnerStartMsg{SpinnerId: spinnerId, SpinnerTs: spinnerTs}
	}
	stopSpinner := func() tea.Msg {
		return SpinnerStopMsg{SpinnerId: spinnerId}
	}
	return tea.Sequence(startSpinner, cmd, stopSpinner)
}

func ProcessWithClearError(cmd tea.Cmd) tea.Cmd {
	clearError := func() tea.Msg {
		return ClearErrorMsg{}
	}

	if cmd == nil {
		return clearError
	}
	return tea.Sequence(clearError, cmd)
}

// ErrorMsg is a message for displaying errors
type ErrorMsg struct {
	Err error
}

// InfoMsg is a message for displaying info messages
type InfoMsg struct {
	Message string
	Tag     int // Used for debouncing
}

// ClearInfoMsg is a message for clearing info messages from status zone
type ClearInfoMsg struct{}

// InfoDebounceMsg is sent after delay to auto-clear info messages
type InfoDebounceMsg struct {
	Tag int // If this matches current tag, clear the info message
}

// ClearErrorMsg is a message for clearing errors from status zone
type ClearErrorMsg struct{}

type Counter struct {
	value int16
}

func (c *Counter) Inc() {
	if c.value == 32767 {
		c.value = -32768
	} else {
		c.value++
	}

	if c.value == 0 {
		c.value++
	}
}

func (c *Counter) Value() int16 {
	return c.value
}
