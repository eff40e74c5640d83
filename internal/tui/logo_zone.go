package tui

import (
	"strings"

	"personix/internal/colors"
	log "personix/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LogoZone represents the logo zone
type LogoZone struct {
	width, height int
}

// NewLogoZone creates a new logo zone
func NewLogoZone() *LogoZone {
	log.Debug("LogoZone initialized")
	return &LogoZone{}
}

func (l *LogoZone) Init() {}

// SetSize sets the dimensions of the logo zone
func (l *LogoZone) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Update handles messages for the logo zone
func (l *LogoZone) Update(msg tea.Msg) (*LogoZone, tea.Cmd) {
	return l, nil
}

// View renders the logo zone
func (l *LogoZone) View() string {
	if l.width == 0 {
		return ""
	}

	bigText := []string{
		" ___  ___  ___  ___  ___  _  _  ___ __  __",
		"| _ \\| __|| _ \\/ __|/ _ \\| \\| ||_ _|\\ \\/ /",
		"|  _/| _| |   /\\__ \\ (_) | .` | | |  >  < ",
		"|_|  |___||_|_\\|___/\\___/|_|\\_||___|/_/\\_\\",
		"                                          ",
	}

	gradientLines := colors.ApplyGradient(bigText)

	logoStyle := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Right)

	logoContent := strings.Join(gradientLines, "\n")
	return logoStyle.Render(logoContent)
}

// Ready returns whether the logo zone is ready to be displayed
func (l *LogoZone) Ready() bool {
	// Logo zone is always ready since it's static
	return true
}
