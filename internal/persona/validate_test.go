package persona

import (
	"reflect"
	"testing"
)

func validDraft() Draft {
	return Draft{
		TipoDocumento:   "CC",
		NumeroDocumento: "12345",
		PrimerNombre:    "Ana",
		Apellidos:       "Gómez",
		FechaNacimiento: "1990-01-01",
		Genero:          "F",
		Email:           "a@b.co",
		Celular:         "3001234567",
	}
}

func TestValidateDocumentNumber(t *testing.T) {
	tests := []struct {
		name    string
		num     string
		wantErr bool
	}{
		{
			name:    "exactly 10 digits",
			num:     "1234567890",
			wantErr: false,
		},
		{
			name:    "single digit",
			num:     "1",
			wantErr: false,
		},
		{
			name:    "11 digits",
			num:     "12345678901",
			wantErr: true,
		},
		{
			name:    "empty",
			num:     "",
			wantErr: true,
		},
		{
			name:    "non digit characters",
			num:     "12a45",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.NumeroDocumento = tt.num
			got := Validate(d)
			if tt.wantErr && len(got) == 0 {
				t.Errorf("Validate() accepted document number %q", tt.num)
			}
			if !tt.wantErr && len(got) != 0 {
				t.Errorf("Validate() rejected document number %q: %v", tt.num, got)
			}
		})
	}
}

func TestValidateAccumulatesInDeclarationOrder(t *testing.T) {
	d := validDraft()
	d.Email = "not-an-email"
	d.Celular = "300123456" // 9 digits

	want := []string{
		"El correo electrónico no es válido",
		"El número de celular debe tener exactamente 10 dígitos",
	}
	got := Validate(d)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() = %v, want %v", got, want)
	}

	// Deterministic: a second run over the same draft yields the same result.
	if again := Validate(d); !reflect.DeepEqual(again, got) {
		t.Errorf("Validate() not deterministic: %v vs %v", again, got)
	}
}

func TestValidateSinglePhoneViolation(t *testing.T) {
	d := validDraft()
	d.Celular = "300123456"
	got := Validate(d)
	if len(got) != 1 {
		t.Fatalf("Validate() returned %d messages, want 1: %v", len(got), got)
	}
	if got[0] != "El número de celular debe tener exactamente 10 dígitos" {
		t.Errorf("unexpected message: %q", got[0])
	}
}

func TestValidateFreshResultPerCall(t *testing.T) {
	bad := validDraft()
	bad.Celular = "x"
	first := Validate(bad)

	good := validDraft()
	if got := Validate(good); len(got) != 0 {
		t.Errorf("Validate() on valid draft = %v, want empty", got)
	}

	// Earlier results are unaffected by later calls.
	if len(first) != 1 {
		t.Errorf("previous result mutated: %v", first)
	}
}

func TestValidateNames(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr bool
	}{
		{
			name:    "valid draft",
			mutate:  func(d *Draft) {},
			wantErr: false,
		},
		{
			name:    "missing first name",
			mutate:  func(d *Draft) { d.PrimerNombre = "" },
			wantErr: true,
		},
		{
			name:    "numeric first name",
			mutate:  func(d *Draft) { d.PrimerNombre = "12345" },
			wantErr: true,
		},
		{
			name: "first name over 30 chars",
			mutate: func(d *Draft) {
				d.PrimerNombre = "Maximiliano Alejandro Fernando X"
			},
			wantErr: true,
		},
		{
			name:    "absent middle name is valid",
			mutate:  func(d *Draft) { d.SegundoNombre = "" },
			wantErr: false,
		},
		{
			name:    "numeric middle name",
			mutate:  func(d *Draft) { d.SegundoNombre = "99" },
			wantErr: true,
		},
		{
			name:    "missing last names",
			mutate:  func(d *Draft) { d.Apellidos = "" },
			wantErr: true,
		},
		{
			name:    "numeric last names",
			mutate:  func(d *Draft) { d.Apellidos = "123" },
			wantErr: true,
		},
		{
			name:    "missing birth date",
			mutate:  func(d *Draft) { d.FechaNacimiento = "" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			got := Validate(d)
			if tt.wantErr && len(got) == 0 {
				t.Error("Validate() accepted invalid draft")
			}
			if !tt.wantErr && len(got) != 0 {
				t.Errorf("Validate() rejected valid draft: %v", got)
			}
		})
	}
}

func TestValidatePhotoSize(t *testing.T) {
	d := validDraft()
	d.Foto = make([]byte, MaxFotoBytes)
	if got := Validate(d); len(got) != 0 {
		t.Errorf("Validate() rejected photo at exact limit: %v", got)
	}

	d.Foto = make([]byte, MaxFotoBytes+1)
	got := Validate(d)
	if len(got) != 1 || got[0] != "La imagen no debe superar los 2MB" {
		t.Errorf("Validate() = %v, want single photo size message", got)
	}
}

func TestValidDocumentNumber(t *testing.T) {
	if !ValidDocumentNumber("12345") {
		t.Error("ValidDocumentNumber rejected 12345")
	}
	if ValidDocumentNumber("") || ValidDocumentNumber("12345678901") || ValidDocumentNumber("abc") {
		t.Error("ValidDocumentNumber accepted invalid input")
	}
}
