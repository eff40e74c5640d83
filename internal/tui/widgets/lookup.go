package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"personix/internal/client"
	"personix/internal/colors"
	"personix/internal/database"
	log "personix/internal/logging"
	"personix/internal/msgtypes"
	"personix/internal/persona"
	"personix/internal/tui/widgets/common"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type lookupResultMsg struct {
	record *persona.ServerPersona
	err    error
}

func (lookupResultMsg) TargetScreen() string { return "lookup" }

type deleteResultMsg struct {
	id  string
	err error
}

func (deleteResultMsg) TargetScreen() string { return "lookup" }

// Lookup is the search screen: find a record by document number, inspect
// it, hand it to the form for update, copy it, or delete it. Results are
// never cached — every display comes from a fresh read.
type Lookup struct {
	width, height int
	ctx           context.Context
	rest          *client.Rest
	db            *database.Service

	docInput      *common.TextField
	record        *persona.ServerPersona
	confirmDelete bool
	searching     bool
}

// NewLookup creates the lookup screen.
func NewLookup(ctx context.Context, rest *client.Rest, db *database.Service) *Lookup {
	l := &Lookup{ctx: ctx, rest: rest, db: db}
	l.docInput = common.NewTextField("Número de documento", "ej. 12345678", true)
	l.docInput.Focus()
	l.refreshSuggestions()
	return l
}

// SetRest swaps the service clients after a profile change.
func (l *Lookup) SetRest(rest *client.Rest) {
	l.rest = rest
	l.refreshSuggestions()
}

func (l *Lookup) GetName() string { return "lookup" }

// InModal reports whether the delete confirmation prompt is open.
func (l *Lookup) InModal() bool { return l.confirmDelete }

func (l *Lookup) Title() string { return "Buscar persona" }

func (l *Lookup) Init() tea.Msg { return nil }

func (l *Lookup) Reset() {
	l.record = nil
	l.confirmDelete = false
	l.searching = false
	l.docInput.SetValue("")
	l.docInput.Focus()
	l.refreshSuggestions()
}

// Record returns the currently displayed record, nil when none.
func (l *Lookup) Record() *persona.ServerPersona { return l.record }

// refreshSuggestions offers the operator's recent lookups as completions.
func (l *Lookup) refreshSuggestions() {
	if l.db == nil {
		return
	}
	profile, err := l.db.GetActiveProfile()
	if err != nil || profile == nil {
		return
	}
	history, err := l.db.GetLookupHistory(profile.ID)
	if err != nil {
		log.Warn("Failed to load lookup history", zap.Error(err))
		return
	}
	l.docInput.SetSuggestions(history)
}

func (l *Lookup) search() tea.Cmd {
	if l.searching {
		return nil
	}
	if l.rest == nil {
		return noProfileCmd()
	}
	doc := l.docInput.Value()
	if !persona.ValidDocumentNumber(doc) {
		return func() tea.Msg {
			return msgtypes.ErrorMsg{Err: fmt.Errorf("El número de documento debe ser numérico y no mayor a 10 caracteres")}
		}
	}

	l.searching = true
	rest := l.rest
	ctx := l.ctx
	return msgtypes.ProcessWithSpinner(func() tea.Msg {
		record, err := rest.Personas.Get(ctx, doc)
		return lookupResultMsg{record: record, err: err}
	})
}

func (l *Lookup) deleteRecord() tea.Cmd {
	if l.record == nil {
		return nil
	}
	id := l.record.NumeroDocumento
	rest := l.rest
	ctx := l.ctx
	return msgtypes.ProcessWithSpinner(func() tea.Msg {
		err := rest.Personas.Delete(ctx, id)
		return deleteResultMsg{id: id, err: err}
	})
}

// recordAsRecord converts the typed record into the tabular display shape.
func recordAsRecord(p *persona.ServerPersona) client.Record {
	raw, err := json.Marshal(p)
	if err != nil {
		return client.Record{}
	}
	var rec client.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return client.Record{}
	}
	return rec
}

func (l *Lookup) GetKeyBindings() []common.KeyBinding {
	if l.confirmDelete {
		return append(common.GenericKeyBindings(),
			common.KeyBinding{Key: "y", Desc: "confirmar eliminación"},
			common.KeyBinding{Key: "n", Desc: "cancelar"},
		)
	}
	if l.record != nil {
		return append(common.GenericKeyBindings(),
			common.KeyBinding{Key: "e", Desc: "editar"},
			common.KeyBinding{Key: "ctrl+y", Desc: "copiar JSON"},
			common.KeyBinding{Key: "ctrl+d", Desc: "eliminar"},
			common.KeyBinding{Key: "enter", Desc: "nueva búsqueda"},
		)
	}
	return append(common.GenericKeyBindings(),
		common.KeyBinding{Key: "enter", Desc: "buscar"},
	)
}

func (l *Lookup) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Update handles messages while the lookup screen is active.
func (l *Lookup) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case lookupResultMsg:
		l.searching = false
		if msg.err != nil {
			l.record = nil
			err := msg.err
			if client.IsNotFound(err) {
				return func() tea.Msg {
					return msgtypes.ErrorMsg{Err: fmt.Errorf("No existe una persona con ese documento")}
				}
			}
			return func() tea.Msg { return msgtypes.ErrorMsg{Err: err} }
		}
		l.record = msg.record
		l.rememberLookup(msg.record.NumeroDocumento)
		return nil

	case deleteResultMsg:
		l.confirmDelete = false
		if msg.err != nil {
			return func() tea.Msg { return msgtypes.ErrorMsg{Err: msg.err} }
		}
		l.record = nil
		l.docInput.SetValue("")
		l.docInput.Focus()
		id := msg.id
		return func() tea.Msg {
			return msgtypes.InfoMsg{Message: fmt.Sprintf("Persona %s eliminada", id)}
		}

	case tea.KeyMsg:
		if l.confirmDelete {
			switch msg.String() {
			case "y", "Y":
				return l.deleteRecord()
			case "n", "N", "esc":
				l.confirmDelete = false
			}
			return nil
		}

		if l.record != nil {
			switch msg.String() {
			case "e":
				draft := l.record.ToDraft()
				return func() tea.Msg {
					return msgtypes.EditPersonaMsg{Draft: draft}
				}
			case "ctrl+y":
				return l.copyToClipboard()
			case "ctrl+d":
				l.confirmDelete = true
				return nil
			case "enter":
				l.record = nil
				l.docInput.SetValue("")
				l.docInput.Focus()
				l.refreshSuggestions()
				return nil
			}
			return nil
		}

		if msg.String() == "enter" {
			return l.search()
		}
	}

	return l.docInput.Update(msg)
}

func (l *Lookup) rememberLookup(doc string) {
	if l.db == nil {
		return
	}
	profile, err := l.db.GetActiveProfile()
	if err != nil || profile == nil {
		return
	}
	if err := l.db.AddLookupHistory(profile.ID, doc); err != nil {
		log.Warn("Failed to record lookup history", zap.Error(err))
	}
}

func (l *Lookup) copyToClipboard() tea.Cmd {
	if l.record == nil {
		return nil
	}
	rec := recordAsRecord(l.record)
	return func() tea.Msg {
		if err := clipboard.WriteAll(rec.PrettyJson()); err != nil {
			return msgtypes.ErrorMsg{Err: fmt.Errorf("no se pudo copiar al portapapeles: %v", err)}
		}
		return msgtypes.InfoMsg{Message: "JSON copiado al portapapeles"}
	}
}

// View renders the lookup screen
func (l *Lookup) View() string {
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(colors.InputLabelFg)
	b.WriteString(labelStyle.Render(l.docInput.Label()))
	b.WriteString("\n  ")
	b.WriteString(l.docInput.View())
	b.WriteString("\n\n")

	if l.record != nil {
		rec := recordAsRecord(l.record)
		b.WriteString(rec.PrettyTable())
		b.WriteString("\n")

		if l.confirmDelete {
			warnStyle := lipgloss.NewStyle().Foreground(colors.WarningColor).Bold(true)
			b.WriteString(warnStyle.Render(fmt.Sprintf("¿Eliminar a %s? (y/n)", l.record.FullName())))
			b.WriteString("\n")
		}
	}

	return b.String()
}
