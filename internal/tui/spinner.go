package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"personix/internal/colors"
	"personix/internal/msgtypes"

	"github.com/charmbracelet/lipgloss"
)

var (
	allChars          = []rune{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', '@', '#', '$', '%', '&', '*', '+', '=', '~', '^', '|', '\\', '/', '<', '>', '?'}
	brandCharsHidden  = []string{"*", "*", "*", "*", "*", "*", "*", "*"}
	brandCharsVisible = []string{"P", "E", "R", "S", "O", "N", "I", "X"}
)

// Spinner animates the brand reveal. Reset is called from the relay
// goroutine while the ticker goroutine drives Update/View, so all state
// access goes through the mutex.
type Spinner struct {
	mu         sync.Mutex
	counter    int
	leftChars  []rune
	rightChars []rune
	brandChars []string
}

// NewSpinner creates a new spinner instance
func NewSpinner() *Spinner {
	return &Spinner{
		counter:    0,
		leftChars:  generateRandomChars(6),
		rightChars: generateRandomChars(6),
		brandChars: append([]string(nil), brandCharsHidden...),
	}
}

func (s *Spinner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter = 0
	s.leftChars = generateRandomChars(6)
	s.rightChars = generateRandomChars(6)
	s.brandChars = append([]string(nil), brandCharsHidden...)
}

// generateRandomChars creates random ASCII characters
func generateRandomChars(count int) []rune {
	result := make([]rune, count)
	for i := 0; i < count; i++ {
		result[i] = allChars[rand.Intn(len(allChars))]
	}
	return result
}

// Update updates the spinner state
func (s *Spinner) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++

	// Generate new random characters on each iteration
	s.leftChars = generateRandomChars(6)
	s.rightChars = generateRandomChars(6)

	// Every 15 iterations, reveal one more letter of the brand word
	for i := 0; i < len(brandCharsVisible); i++ {
		if s.counter >= (i+1)*15 {
			s.brandChars[i] = brandCharsVisible[i]
		}
	}

	// Hold the full word for a while, then start over
	if s.counter >= len(brandCharsVisible)*15+30 {
		s.counter = 0
		s.brandChars = append([]string(nil), brandCharsHidden...)
	}
}

// View renders the spinner
func (s *Spinner) View() string {
	s.mu.Lock()
	leftStr := string(s.leftChars)
	rightStr := string(s.rightChars)
	middleStr := strings.Join(s.brandChars, "")
	s.mu.Unlock()

	spinnerLine := fmt.Sprintf("%s%s%s", leftStr, middleStr, rightStr)

	gradientLines := colors.ApplyGradient([]string{spinnerLine})
	spinnerContent := gradientLines[0]

	return s.addBracketsToSpinner(spinnerContent)
}

// StartSpinner creates a new spinner and returns a channel for tick messages.
// It starts a goroutine that sends new spinner tick messages on every tick
// interval. The goroutine stops when the provided context is cancelled.
func StartSpinner(ctx context.Context) (*Spinner, <-chan msgtypes.SpinnerTickMsg) {
	spinner := NewSpinner()
	tickChan := make(chan msgtypes.SpinnerTickMsg)

	go func() {
		ticker := time.NewTicker(SpinnerTickInterval)
		defer ticker.Stop()
		defer close(tickChan)

		for {
			select {
			case <-ticker.C:
				spinner.Update()
				select {
				case tickChan <- msgtypes.SpinnerTickMsg(spinner.View()):
				case <-ctx.Done():
					return
				default:
					// Channel blocked, skip this tick to avoid blocking the spinner
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return spinner, tickChan
}

// addBracketsToSpinner adds colored brackets around spinner using gradient colors
func (s *Spinner) addBracketsToSpinner(spinnerText string) string {
	if spinnerText == "" {
		return ""
	}

	gradientColors := []string{
		"#00FFFF", // Cyan
		"#40E0D0", // Turquoise
		"#8A2BE2", // Blue Violet
		"#FF69B4", // Hot Pink
		"#FF1493", // Deep Pink
	}

	// Use a color based on the spinner content to create variation
	colorIndex := len(spinnerText) % len(gradientColors)
	bracketStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColors[colorIndex]))

	leftBracket := bracketStyle.Render("[  ")
	rightBracket := bracketStyle.Render("  ]")

	return leftBracket + spinnerText + rightBracket
}
