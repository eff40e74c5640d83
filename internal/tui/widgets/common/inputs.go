package common

import (
	"strings"

	"personix/internal/colors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field is the common contract for form inputs.
type Field interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	Focus()
	Blur()
	Label() string
	Value() string
	SetValue(val string)
	ReadOnly() bool
	SetReadOnly(bool)
}

// TextField wraps textinput.Model with a label and form metadata.
type TextField struct {
	input    *textinput.Model
	label    string
	required bool
	readOnly bool
	hint     string
}

// NewTextField creates a text field with standard defaults.
func NewTextField(label, placeholder string, required bool) *TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = ""
	return &TextField{input: &ti, label: label, required: required}
}

// WithHint attaches a dimmed annotation rendered next to the label.
func (t *TextField) WithHint(hint string) *TextField {
	t.hint = hint
	return t
}

// SetSuggestions enables completion suggestions on the field.
// The right arrow accepts the current suggestion.
func (t *TextField) SetSuggestions(suggestions []string) {
	t.input.ShowSuggestions = len(suggestions) > 0
	t.input.SetSuggestions(suggestions)
}

// Update handles updates for the text field
func (t *TextField) Update(msg tea.Msg) tea.Cmd {
	if t.readOnly {
		return nil
	}

	// Right arrow accepts the current suggestion (instead of tab, which
	// moves between fields).
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyRight && t.input.ShowSuggestions && len(t.input.AvailableSuggestions()) > 0 {
			msg = tea.KeyMsg{Type: tea.KeyTab}
		}
	}

	var cmd tea.Cmd
	*t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *TextField) View() string {
	if t.readOnly {
		lockStyle := lipgloss.NewStyle().Foreground(colors.DimColor)
		return lockStyle.Render(t.input.Value() + "  (fijo)")
	}
	return t.input.View()
}

func (t *TextField) Focus() {
	if !t.readOnly {
		t.input.Focus()
	}
}

func (t *TextField) Blur() { t.input.Blur() }

func (t *TextField) Label() string { return t.label }

func (t *TextField) Value() string { return strings.TrimSpace(t.input.Value()) }

func (t *TextField) SetValue(val string) { t.input.SetValue(val) }

func (t *TextField) ReadOnly() bool { return t.readOnly }

func (t *TextField) SetReadOnly(ro bool) {
	t.readOnly = ro
	if ro {
		t.input.Blur()
	}
}

// Required reports whether the field must be filled.
func (t *TextField) Required() bool { return t.required }

// Hint returns the dimmed annotation text.
func (t *TextField) Hint() string { return t.hint }

// SelectField is an enumerated input cycled with the left/right keys.
// Options hold stable codes; labels are what the user sees.
type SelectField struct {
	label    string
	codes    []string
	labels   map[string]string
	index    int
	focused  bool
	readOnly bool
	required bool
}

// NewSelectField creates a select field. codes and labels run in parallel
// declaration order; the first option is preselected.
func NewSelectField(label string, codes []string, labels map[string]string, required bool) *SelectField {
	return &SelectField{
		label:    label,
		codes:    codes,
		labels:   labels,
		required: required,
	}
}

func (s *SelectField) Update(msg tea.Msg) tea.Cmd {
	if !s.focused || s.readOnly {
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "left", "h":
			s.index = (s.index - 1 + len(s.codes)) % len(s.codes)
		case "right", "l", " ":
			s.index = (s.index + 1) % len(s.codes)
		}
	}
	return nil
}

func (s *SelectField) View() string {
	if s.readOnly {
		lockStyle := lipgloss.NewStyle().Foreground(colors.DimColor)
		return lockStyle.Render(s.currentLabel() + "  (fijo)")
	}

	activeStyle := lipgloss.NewStyle().
		Foreground(colors.WhiteTerm).
		Background(colors.DarkBlue).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(colors.DimColor).
		Padding(0, 1)

	var parts []string
	for i, code := range s.codes {
		text := s.labels[code]
		if i == s.index && s.focused {
			parts = append(parts, activeStyle.Render(text))
		} else if i == s.index {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(text))
		} else {
			parts = append(parts, inactiveStyle.Render(text))
		}
	}
	return strings.Join(parts, " ")
}

func (s *SelectField) currentLabel() string {
	if len(s.codes) == 0 {
		return ""
	}
	return s.labels[s.codes[s.index]]
}

func (s *SelectField) Focus() { s.focused = true }

func (s *SelectField) Blur() { s.focused = false }

func (s *SelectField) Label() string { return s.label }

// Value returns the code of the selected option.
func (s *SelectField) Value() string {
	if len(s.codes) == 0 {
		return ""
	}
	return s.codes[s.index]
}

// SetValue selects the option with the given code. Unknown codes are ignored.
func (s *SelectField) SetValue(code string) {
	for i, c := range s.codes {
		if c == code {
			s.index = i
			return
		}
	}
}

func (s *SelectField) ReadOnly() bool { return s.readOnly }

func (s *SelectField) SetReadOnly(ro bool) { s.readOnly = ro }

// Required reports whether the field must be filled.
func (s *SelectField) Required() bool { return s.required }

// Form is an ordered collection of fields with one focused at a time.
type Form struct {
	fields  []Field
	current int
}

func NewForm(fields ...Field) *Form {
	f := &Form{fields: fields}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return f
}

// Fields returns the fields in declaration order.
func (f *Form) Fields() []Field { return f.fields }

// Current returns the index of the focused field.
func (f *Form) Current() int { return f.current }

// FocusedField returns the field holding focus, or nil for an empty form.
func (f *Form) FocusedField() Field {
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.current]
}

// NextInput moves focus to the next editable field, wrapping around.
func (f *Form) NextInput() {
	f.move(1)
}

// PrevInput moves focus to the previous editable field, wrapping around.
func (f *Form) PrevInput() {
	f.move(-1)
}

func (f *Form) move(delta int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.current].Blur()
	for i := 0; i < len(f.fields); i++ {
		f.current = (f.current + delta + len(f.fields)) % len(f.fields)
		if !f.fields[f.current].ReadOnly() {
			break
		}
	}
	f.fields[f.current].Focus()
}

// FocusFirst moves focus to the first editable field.
func (f *Form) FocusFirst() {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.current].Blur()
	f.current = 0
	if f.fields[f.current].ReadOnly() {
		f.move(1)
		return
	}
	f.fields[f.current].Focus()
}

// UpdateFocused forwards the message to the focused field.
func (f *Form) UpdateFocused(msg tea.Msg) tea.Cmd {
	field := f.FocusedField()
	if field == nil {
		return nil
	}
	return field.Update(msg)
}

// Blur removes focus from every field.
func (f *Form) Blur() {
	for _, field := range f.fields {
		field.Blur()
	}
}

// View renders labels and inputs in declaration order.
func (f *Form) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(colors.InputLabelFg)
	starStyle := lipgloss.NewStyle().Foreground(colors.InputRequiredStar)
	hintStyle := lipgloss.NewStyle().Foreground(colors.InputHintFg)
	cursorStyle := lipgloss.NewStyle().Foreground(colors.DeepBlue).Bold(true)

	var rows []string
	for i, field := range f.fields {
		label := labelStyle.Render(field.Label())
		if req, ok := field.(interface{ Required() bool }); ok && req.Required() {
			label += starStyle.Render("*")
		}
		if hinted, ok := field.(interface{ Hint() string }); ok && hinted.Hint() != "" {
			label += "  " + hintStyle.Render(hinted.Hint())
		}

		cursor := "  "
		if i == f.current {
			cursor = cursorStyle.Render("> ")
		}

		rows = append(rows, cursor+label)
		rows = append(rows, "    "+field.View())
	}
	return strings.Join(rows, "\n")
}

// Values returns the current field values keyed by label.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		values[field.Label()] = field.Value()
	}
	return values
}
