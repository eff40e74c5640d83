package tui

import (
	"regexp"
	"strings"

	"personix/internal/colors"
	log "personix/internal/logging"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StatusZone displays errors, info messages and the operation spinner.
// Priority is error first, then info, then spinner.
type StatusZone struct {
	width, height int
	errorMsg      string
	infoMsg       string
	spinnerMsg    string
}

// NewStatusZone creates a new status zone
func NewStatusZone() *StatusZone {
	log.Debug("StatusZone initialized")
	return &StatusZone{}
}

func (s *StatusZone) Init() {}

// SetSize sets the dimensions of the status zone
func (s *StatusZone) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetError sets the error message to display
func (s *StatusZone) SetError(msg string) {
	s.errorMsg = msg
	log.Debug("Error message set", zap.String("message", msg))
}

// SetInfo sets the info message to display
func (s *StatusZone) SetInfo(msg string) {
	s.infoMsg = msg
}

// SetSpinner sets the spinner message to display
func (s *StatusZone) SetSpinner(msg string) {
	s.spinnerMsg = msg
}

// Clear clears all messages (error, info, and spinner)
func (s *StatusZone) Clear() {
	s.errorMsg = ""
	s.infoMsg = ""
	s.spinnerMsg = ""
}

// ClearError clears only the error message
func (s *StatusZone) ClearError() {
	s.errorMsg = ""
}

// ClearInfo clears only the info message
func (s *StatusZone) ClearInfo() {
	s.infoMsg = ""
}

// ClearSpinner clears only the spinner message
func (s *StatusZone) ClearSpinner() {
	s.spinnerMsg = ""
}

// HasError returns true if there's an error message to display
func (s *StatusZone) HasError() bool {
	return s.errorMsg != ""
}

// HasInfo returns true if there's an info message to display
func (s *StatusZone) HasInfo() bool {
	return s.infoMsg != ""
}

// Ready returns whether the status zone is ready to be displayed
func (s *StatusZone) Ready() bool {
	return true
}

// GetHeight returns the height the status zone needs when visible
func (s *StatusZone) GetHeight() int {
	contentWidth := s.width - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	switch {
	case s.errorMsg != "":
		return len(wrapText(s.errorMsg, contentWidth)) + 3
	case s.infoMsg != "":
		return len(wrapText(s.infoMsg, contentWidth)) + 3
	case s.spinnerMsg != "":
		return 4
	}
	return 0
}

// View renders the status zone
func (s *StatusZone) View() string {
	switch {
	case s.errorMsg != "":
		style := lipgloss.NewStyle().Foreground(colors.ErrorColor)
		contentWidth := s.contentWidth()
		return s.renderBlock(wrapText(s.errorMsg, contentWidth), style, true)
	case s.infoMsg != "":
		style := lipgloss.NewStyle().Foreground(colors.NeonGreen)
		contentWidth := s.contentWidth()
		return s.renderBlock(wrapText(s.infoMsg, contentWidth), style, true)
	case s.spinnerMsg != "":
		// Spinner content carries its own ANSI colors, only style the borders
		gradientColors := []string{"#00FFFF", "#40E0D0", "#8A2BE2", "#FF69B4", "#FF1493"}
		colorIndex := len(s.spinnerMsg) % len(gradientColors)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColors[colorIndex]))
		return s.renderBlock([]string{s.spinnerMsg}, style, false)
	}
	return ""
}

func (s *StatusZone) contentWidth() int {
	w := s.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

// renderBlock renders message lines inside a corner-only thick border.
// When styleContent is false only the border characters are styled.
func (s *StatusZone) renderBlock(msgLines []string, style lipgloss.Style, styleContent bool) string {
	contentWidth := s.contentWidth()

	var lines []string
	lines = append(lines, style.Render("┏"+strings.Repeat(" ", contentWidth)+"┓"))

	for _, line := range msgLines {
		centered := centerText(line, contentWidth)
		if styleContent {
			lines = append(lines, style.Render("┃"+centered+"┃"))
		} else {
			lines = append(lines, style.Render("┃")+centered+style.Render("┃"))
		}
	}

	lines = append(lines, style.Render("┃"+strings.Repeat(" ", contentWidth)+"┃"))
	lines = append(lines, style.Render("┗"+strings.Repeat(" ", contentWidth)+"┛"))

	return strings.Join(lines, "\n")
}

// centerText centers text within the given width. ANSI escape sequences are
// excluded from the width calculation so colored spinner content stays aligned.
func centerText(text string, width int) string {
	textLen := len(ansiRe.ReplaceAllString(text, ""))
	if textLen >= width {
		if !strings.Contains(text, "\x1b") && width > 3 {
			runes := []rune(text)
			left := (width - 1) / 2
			right := width - 1 - left
			return string(runes[:left]) + "…" + string(runes[len(runes)-right:])
		}
		return text
	}

	leftPadding := (width - textLen) / 2
	rightPadding := width - textLen - leftPadding
	return strings.Repeat(" ", leftPadding) + text + strings.Repeat(" ", rightPadding)
}

// wrapText wraps text into lines that fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current []string
	currentLen := 0

	for _, word := range words {
		if currentLen > 0 && currentLen+1+len(word) > width {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
			currentLen = len(word)
			continue
		}
		current = append(current, word)
		if currentLen > 0 {
			currentLen++
		}
		currentLen += len(word)
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	return lines
}
