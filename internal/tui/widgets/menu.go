package widgets

import (
	"errors"
	"strings"

	"personix/internal/colors"
	"personix/internal/msgtypes"
	"personix/internal/tui/widgets/common"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// errNoProfile is returned by service-backed screens when no connection
// profile has been activated yet.
var errNoProfile = errors.New("no hay un perfil activo; crea uno en la pantalla de perfiles")

func noProfileCmd() tea.Cmd {
	return func() tea.Msg { return msgtypes.ErrorMsg{Err: errNoProfile} }
}

type menuEntry struct {
	screen string
	label  string
	desc   string
}

// Menu is the landing screen: a list of every workflow the app offers.
type Menu struct {
	width, height int
	cursor        int
	entries       []menuEntry
}

func NewMenu() *Menu {
	return &Menu{
		entries: []menuEntry{
			{screen: "form", label: "Crear / actualizar persona", desc: "diligenciar el formulario y enviarlo"},
			{screen: "lookup", label: "Buscar persona", desc: "consultar un registro por documento"},
			{screen: "activity", label: "Actividad", desc: "revisar el registro de operaciones"},
			{screen: "query", label: "Consultas", desc: "preguntar en lenguaje natural"},
			{screen: "profiles", label: "Perfiles", desc: "administrar conexiones"},
		},
	}
}

func (m *Menu) GetName() string { return "menu" }

func (m *Menu) Title() string { return "Menú principal" }

func (m *Menu) Init() tea.Msg { return nil }

func (m *Menu) Reset() { m.cursor = 0 }

func (m *Menu) GetKeyBindings() []common.KeyBinding {
	return append(common.GenericKeyBindings(),
		common.KeyBinding{Key: "↑/↓", Desc: "mover"},
		common.KeyBinding{Key: "enter", Desc: "abrir"},
	)
}

func (m *Menu) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *Menu) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		target := m.entries[m.cursor].screen
		return func() tea.Msg { return msgtypes.SetScreenMsg{Screen: target} }
	}
	return nil
}

func (m *Menu) View() string {
	cursorStyle := lipgloss.NewStyle().Foreground(colors.DeepBlue).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colors.White)
	selectedStyle := lipgloss.NewStyle().Foreground(colors.DeepBlue).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(colors.DimColor)

	var rows []string
	for i, entry := range m.entries {
		cursor := "  "
		label := labelStyle.Render(entry.label)
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			label = selectedStyle.Render(entry.label)
		}
		rows = append(rows, cursor+label+"  "+descStyle.Render(entry.desc))
	}
	return strings.Join(rows, "\n")
}
