package persona

import (
	"encoding/json"
	"testing"
)

func TestMarshalWireVocabulary(t *testing.T) {
	tests := []struct {
		name     string
		tipo     string
		genero   string
		wantTipo string
		wantGen  string
	}{
		{
			name:     "cedula masculino",
			tipo:     "CC",
			genero:   "M",
			wantTipo: "Cédula",
			wantGen:  "Masculino",
		},
		{
			name:     "tarjeta femenino",
			tipo:     "TI",
			genero:   "F",
			wantTipo: "Tarjeta de identidad",
			wantGen:  "Femenino",
		},
		{
			name:     "no binario",
			tipo:     "CC",
			genero:   "NB",
			wantTipo: "Cédula",
			wantGen:  "No binario",
		},
		{
			name:     "prefiero no reportar",
			tipo:     "CC",
			genero:   "NR",
			wantTipo: "Cédula",
			wantGen:  "Prefiero no reportar",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.TipoDocumento = tt.tipo
			d.Genero = tt.genero

			raw, err := d.MarshalWire()
			if err != nil {
				t.Fatalf("MarshalWire() error: %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if got["tipo_documento"] != tt.wantTipo {
				t.Errorf("tipo_documento = %v, want %q", got["tipo_documento"], tt.wantTipo)
			}
			if got["genero"] != tt.wantGen {
				t.Errorf("genero = %v, want %q", got["genero"], tt.wantGen)
			}
		})
	}
}

func TestMarshalWireFieldNames(t *testing.T) {
	d := validDraft()
	d.SegundoNombre = "María"

	raw, err := d.MarshalWire()
	if err != nil {
		t.Fatalf("MarshalWire() error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	for _, key := range []string{
		"tipo_documento", "numero_documento", "primer_nombre", "segundo_nombre",
		"apellidos", "fecha_nacimiento", "genero", "email", "celular",
	} {
		if _, ok := got[key]; !ok {
			t.Errorf("wire payload missing field %q", key)
		}
	}
	if got["numero_documento"] != "12345" {
		t.Errorf("numero_documento = %v, want 12345", got["numero_documento"])
	}
	if got["primer_nombre"] != "Ana" {
		t.Errorf("primer_nombre = %v, want Ana", got["primer_nombre"])
	}
}

func TestMarshalWireEmptyMiddleNameIsNull(t *testing.T) {
	d := validDraft()
	raw, err := d.MarshalWire()
	if err != nil {
		t.Fatalf("MarshalWire() error: %v", err)
	}
	var got map[string]json.RawMessage
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if string(got["segundo_nombre"]) != "null" {
		t.Errorf("segundo_nombre = %s, want null", got["segundo_nombre"])
	}
}

func TestMarshalWireUnknownCodes(t *testing.T) {
	d := validDraft()
	d.TipoDocumento = "XX"
	if _, err := d.MarshalWire(); err == nil {
		t.Error("MarshalWire() accepted unknown document type code")
	}

	d = validDraft()
	d.Genero = "zz"
	if _, err := d.MarshalWire(); err == nil {
		t.Error("MarshalWire() accepted unknown gender code")
	}
}

func TestServerPersonaToDraft(t *testing.T) {
	segundo := "María"
	p := ServerPersona{
		TipoDocumento:   DocumentTypeTarjetaIdentidad,
		NumeroDocumento: "987",
		PrimerNombre:    "Luz",
		SegundoNombre:   &segundo,
		Apellidos:       "Prieto Rendón",
		FechaNacimiento: "2001-05-20T00:00:00",
		Genero:          GenderNoBinario,
		Email:           "luz@example.co",
		Celular:         "3109998877",
	}

	d := p.ToDraft()
	if d.TipoDocumento != "TI" {
		t.Errorf("TipoDocumento = %q, want TI", d.TipoDocumento)
	}
	if d.Genero != "NB" {
		t.Errorf("Genero = %q, want NB", d.Genero)
	}
	if d.SegundoNombre != "María" {
		t.Errorf("SegundoNombre = %q, want María", d.SegundoNombre)
	}
	if d.FechaNacimiento != "2001-05-20" {
		t.Errorf("FechaNacimiento = %q, want date part only", d.FechaNacimiento)
	}
	if got := Validate(d); len(got) != 0 {
		t.Errorf("draft from server record not submittable: %v", got)
	}
}
