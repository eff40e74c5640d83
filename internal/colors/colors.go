package colors

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Base colors - Named colors for better readability
const (
	// Grayscale
	Black       = lipgloss.Color("#000000")
	DarkGrey    = lipgloss.Color("#606362")
	Grey        = lipgloss.Color("#737373")
	LightGrey   = lipgloss.Color("245")
	LighterGrey = lipgloss.Color("250")
	OffWhite    = lipgloss.Color("#a8a7a5")
	White       = lipgloss.Color("#ffffff")

	// Numbered greys for specific uses
	Grey240 = lipgloss.Color("240") // Dim/disabled text

	// Reds
	Red = lipgloss.Color("#FF5353")

	// Oranges & Yellows
	Orange = lipgloss.Color("214")
	Yellow = lipgloss.Color("#DBBD70")

	// Greens
	Green       = lipgloss.Color("34")
	GreenTerm   = lipgloss.Color("2")
	BrightGreen = lipgloss.Color("42")
	NeonGreen   = lipgloss.Color("#00FF00")
	Turquoise   = lipgloss.Color("86")

	// Blues
	DarkBlue     = lipgloss.Color("18")
	DeepBlue     = lipgloss.Color("39")
	Blue         = lipgloss.Color("63")
	LightishBlue = lipgloss.Color("75")
	LightBlue    = lipgloss.Color("81")

	// Pinks
	HotPink = lipgloss.Color("200")

	// Numbered colors for terminal compatibility
	BlackTerm = lipgloss.Color("0")
	WhiteTerm = lipgloss.Color("15")
)

// Semantic color names - Use these for specific UI elements
var (
	// Input field colors
	InputFocusedBorder = DeepBlue // Focused input border
	InputNormalBorder  = Grey240  // Normal input border
	InputLabelFg       = Orange   // Input label color
	InputRequiredStar  = Red      // Required field asterisk
	InputHintFg        = Grey240  // Input hint/annotation

	// Status colors
	SuccessColor = BrightGreen // Success states
	ErrorColor   = Red         // Error states
	WarningColor = Orange      // Warning states
	DimColor     = Grey240     // Dimmed/disabled text

	// Profile status colors
	ProfileActiveColor = GreenTerm // Active profile indicator
)

// Gradient colors for logo and decorative elements
var (
	GradientStart = "#5A56E0" // Purple
	GradientEnd   = "#EE6FF8" // Pink
)

// ApplyGradient applies a gradient color to the given text lines.
// Used for the application logo and decorative text.
func ApplyGradient(lines []string) []string {
	colorA, _ := colorful.Hex(GradientStart)
	colorB, _ := colorful.Hex(GradientEnd)

	var gradientLines []string

	for _, line := range lines {
		var gradientLine strings.Builder
		lineWidth := len(line)

		for i, char := range line {
			if char == ' ' {
				gradientLine.WriteRune(char)
			} else {
				var p float64
				if lineWidth == 1 {
					p = 0.5
				} else {
					p = float64(i) / float64(lineWidth-1)
				}

				c := colorA.BlendLuv(colorB, p).Hex()

				coloredChar := termenv.String(string(char)).
					Foreground(termenv.ColorProfile().Color(c)).
					String()
				gradientLine.WriteString(coloredChar)
			}
		}
		gradientLines = append(gradientLines, gradientLine.String())
	}

	return gradientLines
}
