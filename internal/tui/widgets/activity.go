package widgets

import (
	"context"
	"fmt"
	"strings"

	"personix/internal/client"
	"personix/internal/colors"
	"personix/internal/common"
	"personix/internal/msgtypes"
	widgetcommon "personix/internal/tui/widgets/common"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var activityTypes = []string{"CREATE", "UPDATE", "DELETE"}

type activityResultMsg struct {
	records client.RecordSet
	err     error
}

func (activityResultMsg) TargetScreen() string { return "activity" }

// Activity is the audit trail screen: it searches the log service for
// operations recorded against the persona API.
type Activity struct {
	width, height int
	ctx           context.Context
	rest          *client.Rest

	form      *widgetcommon.Form
	documento *widgetcommon.TextField
	desde     *widgetcommon.TextField
	hasta     *widgetcommon.TextField
	selected  *common.Set[string]
	records   client.RecordSet
	loaded    bool
	searching bool
}

// NewActivity creates the activity log screen with every operation type
// preselected.
func NewActivity(ctx context.Context, rest *client.Rest) *Activity {
	a := &Activity{
		ctx:      ctx,
		rest:     rest,
		selected: common.NewSet(activityTypes),
	}
	a.documento = widgetcommon.NewTextField("Documento", "todos", false)
	a.desde = widgetcommon.NewTextField("Desde", "AAAA-MM-DD", false).WithHint("[AAAA-MM-DD]")
	a.hasta = widgetcommon.NewTextField("Hasta", "AAAA-MM-DD", false).WithHint("[AAAA-MM-DD]")
	a.form = widgetcommon.NewForm(a.documento, a.desde, a.hasta)
	return a
}

// SetRest swaps the service clients after a profile change.
func (a *Activity) SetRest(rest *client.Rest) {
	a.rest = rest
}

func (a *Activity) GetName() string { return "activity" }

func (a *Activity) Title() string { return "Actividad" }

func (a *Activity) Init() tea.Msg { return nil }

func (a *Activity) Reset() {
	a.records = nil
	a.loaded = false
	a.searching = false
	a.selected = common.NewSet(activityTypes)
	a.documento.SetValue("")
	a.desde.SetValue("")
	a.hasta.SetValue("")
	a.form.FocusFirst()
}

func (a *Activity) search() tea.Cmd {
	if a.searching {
		return nil
	}
	if a.rest == nil {
		return noProfileCmd()
	}
	a.searching = true

	filter := client.ActivityFilter{
		Tipos:       a.selected.ToOrderedSlice(),
		Documento:   a.documento.Value(),
		FechaInicio: a.desde.Value(),
		FechaFin:    a.hasta.Value(),
	}
	rest := a.rest
	ctx := a.ctx
	return msgtypes.ProcessWithSpinner(func() tea.Msg {
		records, err := rest.Activity.Search(ctx, filter)
		return activityResultMsg{records: records, err: err}
	})
}

func (a *Activity) GetKeyBindings() []widgetcommon.KeyBinding {
	return append(widgetcommon.GenericKeyBindings(),
		widgetcommon.KeyBinding{Key: "1/2/3", Desc: "alternar tipo"},
		widgetcommon.KeyBinding{Key: "tab", Desc: "siguiente filtro"},
		widgetcommon.KeyBinding{Key: "enter", Desc: "buscar"},
	)
}

func (a *Activity) SetSize(w, h int) {
	a.width = w
	a.height = h
}

// Update handles messages while the activity screen is active.
func (a *Activity) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case activityResultMsg:
		a.searching = false
		if msg.err != nil {
			return func() tea.Msg { return msgtypes.ErrorMsg{Err: msg.err} }
		}
		a.records = msg.records
		a.loaded = true
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "1", "2", "3":
			idx := int(msg.String()[0] - '1')
			a.selected.Toggle(activityTypes[idx])
			return nil
		case "tab", "down":
			a.form.NextInput()
			return nil
		case "shift+tab", "up":
			a.form.PrevInput()
			return nil
		case "enter":
			return a.search()
		}
	}

	return a.form.UpdateFocused(msg)
}

// View renders the activity screen
func (a *Activity) View() string {
	var b strings.Builder

	onStyle := lipgloss.NewStyle().
		Foreground(colors.BlackTerm).
		Background(colors.BrightGreen).
		Padding(0, 1)
	offStyle := lipgloss.NewStyle().
		Foreground(colors.DimColor).
		Padding(0, 1)

	var toggles []string
	for i, t := range activityTypes {
		label := fmt.Sprintf("%d %s", i+1, t)
		if a.selected.Contains(t) {
			toggles = append(toggles, onStyle.Render(label))
		} else {
			toggles = append(toggles, offStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(toggles, " "))
	b.WriteString("\n\n")

	b.WriteString(a.form.View())
	b.WriteString("\n\n")

	if a.loaded {
		if a.records.Empty() {
			dimStyle := lipgloss.NewStyle().Foreground(colors.DimColor)
			b.WriteString(dimStyle.Render("Sin actividad para los filtros seleccionados"))
		} else {
			b.WriteString(a.records.PrettyTable())
		}
		b.WriteString("\n")
	}

	return b.String()
}
