package widgets

import (
	"context"
	"strings"

	"personix/internal/client"
	"personix/internal/colors"
	"personix/internal/msgtypes"
	"personix/internal/tui/widgets/common"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type queryResultMsg struct {
	answer  string
	records client.RecordSet
	err     error
}

func (queryResultMsg) TargetScreen() string { return "query" }

// Query is the natural-language question screen backed by the query service.
type Query struct {
	width, height int
	ctx           context.Context
	rest          *client.Rest

	question *common.TextField
	answer   string
	records  client.RecordSet
	answered bool
	asking   bool
}

// NewQuery creates the query screen.
func NewQuery(ctx context.Context, rest *client.Rest) *Query {
	q := &Query{ctx: ctx, rest: rest}
	q.question = common.NewTextField("Pregunta", "ej. ¿cuántas personas se registraron hoy?", true)
	q.question.Focus()
	return q
}

// SetRest swaps the service clients after a profile change.
func (q *Query) SetRest(rest *client.Rest) {
	q.rest = rest
}

func (q *Query) GetName() string { return "query" }

func (q *Query) Title() string { return "Consultas" }

func (q *Query) Init() tea.Msg { return nil }

func (q *Query) Reset() {
	q.answer = ""
	q.records = nil
	q.answered = false
	q.asking = false
	q.question.SetValue("")
	q.question.Focus()
}

func (q *Query) ask() tea.Cmd {
	if q.asking {
		return nil
	}
	if q.rest == nil {
		return noProfileCmd()
	}
	question := q.question.Value()
	if question == "" {
		return nil
	}

	q.asking = true
	rest := q.rest
	ctx := q.ctx
	return msgtypes.ProcessWithSpinner(func() tea.Msg {
		answer, records, err := rest.Query.Ask(ctx, question)
		return queryResultMsg{answer: answer, records: records, err: err}
	})
}

func (q *Query) GetKeyBindings() []common.KeyBinding {
	return append(common.GenericKeyBindings(),
		common.KeyBinding{Key: "enter", Desc: "preguntar"},
	)
}

func (q *Query) SetSize(w, h int) {
	q.width = w
	q.height = h
}

// Update handles messages while the query screen is active.
func (q *Query) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case queryResultMsg:
		q.asking = false
		if msg.err != nil {
			return func() tea.Msg { return msgtypes.ErrorMsg{Err: msg.err} }
		}
		q.answer = msg.answer
		q.records = msg.records
		q.answered = true
		return nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return q.ask()
		}
	}

	return q.question.Update(msg)
}

// View renders the query screen
func (q *Query) View() string {
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(colors.InputLabelFg)
	b.WriteString(labelStyle.Render(q.question.Label()))
	b.WriteString("\n  ")
	b.WriteString(q.question.View())
	b.WriteString("\n\n")

	if q.answered {
		answerStyle := lipgloss.NewStyle().
			Foreground(colors.White).
			Width(q.width - 4)
		b.WriteString(answerStyle.Render(q.answer))
		b.WriteString("\n")

		if !q.records.Empty() {
			b.WriteString("\n")
			b.WriteString(q.records.PrettyTable())
			b.WriteString("\n")
		}
	}

	return b.String()
}
