package widgets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"personix/internal/client"
	"personix/internal/colors"
	log "personix/internal/logging"
	"personix/internal/msgtypes"
	"personix/internal/persona"
	"personix/internal/tui/widgets/common"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// SubmitState tracks where a form session is in its submission lifecycle.
// Exactly one submission is in flight between StateSubmitting and the
// terminal outcome; submit requests in any other state than StateIdle are
// ignored.
type SubmitState int

const (
	StateIdle SubmitState = iota
	StateValidating
	StateSubmitting
	StateVerifying
	StateDone
)

func (s SubmitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateVerifying:
		return "verifying"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// submitResultMsg carries the outcome of the write request.
type submitResultMsg struct {
	record *persona.ServerPersona
	err    error
}

func (submitResultMsg) TargetScreen() string { return "form" }

// verifyResultMsg carries the outcome of the read-back confirmation.
type verifyResultMsg struct {
	record *persona.ServerPersona
	err    error
}

func (verifyResultMsg) TargetScreen() string { return "form" }

// PersonaForm is the create/update form screen. It owns the draft for one
// form session; the draft survives failed submissions untouched and is
// discarded when the session ends.
type PersonaForm struct {
	width, height int
	ctx           context.Context
	rest          *client.Rest

	mode  persona.Mode
	state SubmitState

	form       *common.Form
	tipoField  *common.SelectField
	numField   *common.TextField
	nombre1    *common.TextField
	nombre2    *common.TextField
	apellidos  *common.TextField
	fecha      *common.TextField
	genero     *common.SelectField
	email      *common.TextField
	celular    *common.TextField
	fotoPath   *common.TextField
	formErrors []string
}

// NewPersonaForm creates the form screen in create mode.
func NewPersonaForm(ctx context.Context, rest *client.Rest) *PersonaForm {
	f := &PersonaForm{ctx: ctx, rest: rest}
	f.buildFields()
	return f
}

func (f *PersonaForm) buildFields() {
	f.tipoField = common.NewSelectField("Tipo de documento", persona.DocumentTypeCodes(), persona.DocumentTypeLabels(), true)
	f.numField = common.NewTextField("Número de documento", "ej. 12345678", true).WithHint("[numérico, máx 10]")
	f.nombre1 = common.NewTextField("Primer nombre", "", true)
	f.nombre2 = common.NewTextField("Segundo nombre", "opcional", false)
	f.apellidos = common.NewTextField("Apellidos", "", true)
	f.fecha = common.NewTextField("Fecha de nacimiento", "AAAA-MM-DD", true).WithHint("[AAAA-MM-DD]")
	f.genero = common.NewSelectField("Género", persona.GenderCodes(), persona.GenderLabels(), true)
	f.email = common.NewTextField("Email", "nombre@dominio.com", true)
	f.celular = common.NewTextField("Celular", "10 dígitos", true)
	f.fotoPath = common.NewTextField("Foto", "ruta del archivo, opcional", false).WithHint("[máx 2MB]")

	f.form = common.NewForm(
		f.tipoField,
		f.numField,
		f.nombre1,
		f.nombre2,
		f.apellidos,
		f.fecha,
		f.genero,
		f.email,
		f.celular,
		f.fotoPath,
	)
}

// SetRest swaps the service clients after a profile change.
func (f *PersonaForm) SetRest(rest *client.Rest) {
	f.rest = rest
}

func (f *PersonaForm) GetName() string { return "form" }

func (f *PersonaForm) Title() string {
	if f.mode.IsUpdate() {
		return "Actualizar persona"
	}
	return "Crear persona"
}

func (f *PersonaForm) Init() tea.Msg { return nil }

// Reset discards the draft and puts the form back into create mode.
func (f *PersonaForm) Reset() {
	f.mode = persona.ResolveMode("")
	f.state = StateIdle
	f.formErrors = nil
	f.buildFields()
}

// State returns the current submission state.
func (f *PersonaForm) State() SubmitState { return f.state }

// Mode returns the resolved create/update mode for this session.
func (f *PersonaForm) Mode() persona.Mode { return f.mode }

// LoadDraft enters update mode for an existing record. Identity fields
// become read-only: the document is the record's name, not its content.
func (f *PersonaForm) LoadDraft(d persona.Draft) {
	f.buildFields()
	f.mode = persona.ResolveMode(d.NumeroDocumento)
	f.state = StateIdle
	f.formErrors = nil

	f.tipoField.SetValue(d.TipoDocumento)
	f.numField.SetValue(d.NumeroDocumento)
	f.nombre1.SetValue(d.PrimerNombre)
	f.nombre2.SetValue(d.SegundoNombre)
	f.apellidos.SetValue(d.Apellidos)
	f.fecha.SetValue(d.FechaNacimiento)
	f.genero.SetValue(d.Genero)
	f.email.SetValue(d.Email)
	f.celular.SetValue(d.Celular)

	f.tipoField.SetReadOnly(f.mode.Immutable("tipo_documento"))
	f.numField.SetReadOnly(f.mode.Immutable("numero_documento"))
	f.form.FocusFirst()
}

// Draft assembles the current field values into a draft. The photo is read
// from disk here so validation sees the actual payload size.
func (f *PersonaForm) Draft() (persona.Draft, error) {
	d := persona.Draft{
		TipoDocumento:   f.tipoField.Value(),
		NumeroDocumento: f.numField.Value(),
		PrimerNombre:    f.nombre1.Value(),
		SegundoNombre:   f.nombre2.Value(),
		Apellidos:       f.apellidos.Value(),
		FechaNacimiento: f.fecha.Value(),
		Genero:          f.genero.Value(),
		Email:           f.email.Value(),
		Celular:         f.celular.Value(),
	}
	if path := f.fotoPath.Value(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return d, fmt.Errorf("no se pudo leer la foto: %v", err)
		}
		d.Foto = data
		// The server builds the stored photo URL from this name; local
		// directories must not leak into it.
		d.FotoFilename = filepath.Base(path)
	}
	return d, nil
}

// Submit runs the validation gate and, when the draft is clean, launches the
// write request. In any state other than StateIdle the call is a no-op: only
// one submission can be in flight per form session.
func (f *PersonaForm) Submit() tea.Cmd {
	if f.state != StateIdle {
		log.Debug("Submit ignored, session busy", zap.String("state", f.state.String()))
		return nil
	}
	if f.rest == nil {
		return noProfileCmd()
	}

	f.state = StateValidating
	draft, err := f.Draft()
	if err != nil {
		f.state = StateIdle
		f.formErrors = []string{err.Error()}
		return nil
	}
	if errs := persona.Validate(draft); len(errs) > 0 {
		// Draft stays intact; violations display in declaration order.
		f.state = StateIdle
		f.formErrors = errs
		return nil
	}

	f.formErrors = nil
	f.state = StateSubmitting
	mode := f.mode
	rest := f.rest
	ctx := f.ctx
	return msgtypes.ProcessWithSpinner(func() tea.Msg {
		record, err := rest.Personas.Submit(ctx, draft, mode)
		return submitResultMsg{record: record, err: err}
	})
}

// GetKeyBindings returns the bindings shown while the form is active.
func (f *PersonaForm) GetKeyBindings() []common.KeyBinding {
	submitDesc := "enviar"
	if f.mode.IsUpdate() {
		submitDesc = "actualizar"
	}
	return append(common.GenericKeyBindings(),
		common.KeyBinding{Key: "tab/↓", Desc: "siguiente campo"},
		common.KeyBinding{Key: "shift+tab/↑", Desc: "campo anterior"},
		common.KeyBinding{Key: "ctrl+s", Desc: submitDesc},
	)
}

func (f *PersonaForm) SetSize(w, h int) {
	f.width = w
	f.height = h
}

// Update handles messages while the form screen is active.
func (f *PersonaForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case submitResultMsg:
		return f.handleSubmitResult(msg)

	case verifyResultMsg:
		return f.handleVerifyResult(msg)

	case tea.KeyMsg:
		// While a submission is in flight the form is inert except for the
		// app-level keys handled above this screen.
		if f.state == StateSubmitting || f.state == StateVerifying {
			return nil
		}

		switch msg.String() {
		case "tab", "down":
			f.form.NextInput()
			return nil
		case "shift+tab", "up":
			f.form.PrevInput()
			return nil
		case "ctrl+s":
			return f.Submit()
		case "enter":
			// Enter advances; on the last field it submits.
			if f.form.Current() == len(f.form.Fields())-1 {
				return f.Submit()
			}
			f.form.NextInput()
			return nil
		}
	}

	return f.form.UpdateFocused(msg)
}

func (f *PersonaForm) handleSubmitResult(msg submitResultMsg) tea.Cmd {
	if f.state != StateSubmitting {
		log.Warn("Stale submit result ignored", zap.String("state", f.state.String()))
		return nil
	}

	if msg.err != nil {
		// Write failed. The draft is untouched so the operator can correct
		// and resubmit.
		f.state = StateIdle
		err := msg.err
		if verr, ok := err.(*client.ValidationError); ok {
			f.formErrors = verr.Messages()
			return nil
		}
		return func() tea.Msg {
			return msgtypes.ErrorMsg{Err: err}
		}
	}

	// Write accepted: confirm it landed with a read-back of the same
	// identifier before reporting success.
	f.state = StateVerifying
	id := f.numField.Value()
	rest := f.rest
	ctx := f.ctx
	return msgtypes.ProcessWithSpinner(func() tea.Msg {
		record, err := rest.Personas.Verify(ctx, id)
		return verifyResultMsg{record: record, err: err}
	})
}

func (f *PersonaForm) handleVerifyResult(msg verifyResultMsg) tea.Cmd {
	if f.state != StateVerifying {
		log.Warn("Stale verify result ignored", zap.String("state", f.state.String()))
		return nil
	}

	if msg.err != nil {
		// The write itself succeeded — only the confirmation read failed.
		// That is not overall success: stay on the form and say exactly
		// what happened.
		f.state = StateIdle
		err := msg.err
		return func() tea.Msg {
			return msgtypes.ErrorMsg{
				Err: fmt.Errorf("el registro fue guardado, pero no se pudo confirmar la escritura: %v", err),
			}
		}
	}

	f.state = StateDone
	action := "creada"
	if f.mode.IsUpdate() {
		action = "actualizada"
	}
	name := msg.record.FullName()
	f.Reset()

	return tea.Batch(
		func() tea.Msg {
			return msgtypes.InfoMsg{Message: fmt.Sprintf("Persona %s y verificada: %s", action, name)}
		},
		func() tea.Msg {
			return msgtypes.SetScreenMsg{Screen: "menu"}
		},
	)
}

// View renders the form screen
func (f *PersonaForm) View() string {
	var b strings.Builder

	b.WriteString(f.form.View())
	b.WriteString("\n\n")

	if len(f.formErrors) > 0 {
		errStyle := lipgloss.NewStyle().Foreground(colors.ErrorColor)
		b.WriteString(errStyle.Render(strings.Join(f.formErrors, "\n")))
		b.WriteString("\n\n")
	}

	b.WriteString(f.buttonView())
	return b.String()
}

func (f *PersonaForm) buttonView() string {
	label := "Enviar"
	if f.mode.IsUpdate() {
		label = "Actualizar"
	}

	switch f.state {
	case StateSubmitting, StateVerifying:
		busyStyle := lipgloss.NewStyle().
			Foreground(colors.DimColor).
			Padding(0, 2)
		return busyStyle.Render("Enviando…")
	default:
		buttonStyle := lipgloss.NewStyle().
			Foreground(colors.WhiteTerm).
			Background(colors.DeepBlue).
			Bold(true).
			Padding(0, 2)
		return buttonStyle.Render(label) + lipgloss.NewStyle().Foreground(colors.DimColor).Render("  ctrl+s")
	}
}
