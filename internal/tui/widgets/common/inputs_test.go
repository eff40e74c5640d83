package common

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFormFocusSkipsReadOnlyFields(t *testing.T) {
	first := NewTextField("Uno", "", true)
	locked := NewTextField("Dos", "", true)
	locked.SetReadOnly(true)
	third := NewTextField("Tres", "", false)

	form := NewForm(first, locked, third)

	if form.Current() != 0 {
		t.Fatalf("expected focus on field 0, got %d", form.Current())
	}

	form.NextInput()
	if form.Current() != 2 {
		t.Errorf("expected focus to skip read-only field, got %d", form.Current())
	}

	form.NextInput()
	if form.Current() != 0 {
		t.Errorf("expected focus to wrap to field 0, got %d", form.Current())
	}

	form.PrevInput()
	if form.Current() != 2 {
		t.Errorf("expected reverse focus to skip read-only field, got %d", form.Current())
	}
}

func TestTextFieldReadOnlyIgnoresInput(t *testing.T) {
	field := NewTextField("Documento", "", true)
	field.SetValue("12345")
	field.SetReadOnly(true)
	field.Focus()

	field.Update(keyMsg("9"))

	if got := field.Value(); got != "12345" {
		t.Errorf("read-only field changed value to %q", got)
	}
}

func TestSelectFieldCyclesOptions(t *testing.T) {
	codes := []string{"M", "F", "NB", "NR"}
	labels := map[string]string{"M": "Masculino", "F": "Femenino", "NB": "No binario", "NR": "Prefiero no reportar"}
	field := NewSelectField("Género", codes, labels, true)
	field.Focus()

	if field.Value() != "M" {
		t.Fatalf("expected first option preselected, got %q", field.Value())
	}

	field.Update(tea.KeyMsg{Type: tea.KeyRight})
	if field.Value() != "F" {
		t.Errorf("expected F after right, got %q", field.Value())
	}

	field.Update(tea.KeyMsg{Type: tea.KeyLeft})
	field.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if field.Value() != "NR" {
		t.Errorf("expected wrap-around to NR, got %q", field.Value())
	}
}

func TestSelectFieldSetValueIgnoresUnknownCode(t *testing.T) {
	field := NewSelectField("Tipo", []string{"CC", "TI"}, map[string]string{"CC": "Cédula", "TI": "Tarjeta de identidad"}, true)
	field.SetValue("TI")
	if field.Value() != "TI" {
		t.Fatalf("expected TI, got %q", field.Value())
	}
	field.SetValue("XX")
	if field.Value() != "TI" {
		t.Errorf("unknown code should not change selection, got %q", field.Value())
	}
}
