package tui

import (
	"strings"

	"personix/internal/colors"
	"personix/internal/tui/widgets/common"

	"github.com/charmbracelet/lipgloss"
)

// KeybindingsZone shows the shortcuts available on the active screen.
type KeybindingsZone struct {
	width, height  int
	getKeyBindings func() []common.KeyBinding
}

func NewKeybindingsZone() *KeybindingsZone {
	return &KeybindingsZone{}
}

// SetSize sets the dimensions of the keybindings zone
func (k *KeybindingsZone) SetSize(width, height int) {
	k.width = width
	k.height = height
}

// SetKeyBindingsGetter sets the getter used to fetch the active screen's
// bindings at render time, so the zone always reflects the current screen.
func (k *KeybindingsZone) SetKeyBindingsGetter(getter func() []common.KeyBinding) {
	k.getKeyBindings = getter
}

// View renders the keybindings zone
func (k *KeybindingsZone) View() string {
	if k.width == 0 || k.getKeyBindings == nil {
		return ""
	}

	genericKeyStyle := lipgloss.NewStyle().
		Foreground(colors.LightBlue).
		Bold(true)

	screenKeyStyle := lipgloss.NewStyle().
		Foreground(colors.Yellow).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(colors.LightGrey)

	// Generic bindings first, then screen-specific ones
	var generic []common.KeyBinding
	var specific []common.KeyBinding
	for _, kb := range k.getKeyBindings() {
		if kb.Generic {
			generic = append(generic, kb)
		} else {
			specific = append(specific, kb)
		}
	}
	allBindings := append(generic, specific...)
	if len(allBindings) == 0 {
		return ""
	}

	const itemsPerColumn = 5
	var columns []string

	for i := 0; i < len(allBindings); i += itemsPerColumn {
		end := i + itemsPerColumn
		if end > len(allBindings) {
			end = len(allBindings)
		}

		// Pad keys to the longest key in this column
		var maxKeyLen int
		for j := i; j < end; j++ {
			if len(allBindings[j].Key) > maxKeyLen {
				maxKeyLen = len(allBindings[j].Key)
			}
		}

		var columnItems []string
		for j := i; j < end; j++ {
			kb := allBindings[j]
			keyText := lipgloss.NewStyle().
				Width(maxKeyLen).
				Align(lipgloss.Left).
				Render(kb.Key)

			keyStyle := screenKeyStyle
			if kb.Generic {
				keyStyle = genericKeyStyle
			}
			columnItems = append(columnItems, lipgloss.JoinHorizontal(lipgloss.Left,
				keyStyle.Render(keyText),
				descStyle.Render(" "+kb.Desc),
			))
		}

		columns = append(columns, strings.Join(columnItems, "\n"))
	}

	result := columns[0]
	for i := 1; i < len(columns); i++ {
		result = lipgloss.JoinHorizontal(lipgloss.Top, result, "    ", columns[i])
	}
	return result
}

// Ready returns whether the keybindings zone is ready to be displayed
func (k *KeybindingsZone) Ready() bool {
	return true
}
