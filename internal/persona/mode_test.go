package persona

import (
	"net/http"
	"testing"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantUpdate bool
		wantMethod string
		wantPath   string
	}{
		{
			name:       "empty identifier means create",
			id:         "",
			wantUpdate: false,
			wantMethod: http.MethodPost,
			wantPath:   "/personas/",
		},
		{
			name:       "identifier means update",
			id:         "12345",
			wantUpdate: true,
			wantMethod: http.MethodPut,
			wantPath:   "/personas/12345",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ResolveMode(tt.id)
			if m.IsUpdate() != tt.wantUpdate {
				t.Errorf("IsUpdate() = %v, want %v", m.IsUpdate(), tt.wantUpdate)
			}
			if m.Method() != tt.wantMethod {
				t.Errorf("Method() = %q, want %q", m.Method(), tt.wantMethod)
			}
			if m.Path() != tt.wantPath {
				t.Errorf("Path() = %q, want %q", m.Path(), tt.wantPath)
			}
		})
	}
}

func TestModeImmutableFields(t *testing.T) {
	update := ResolveMode("42")
	for _, field := range []string{"tipo_documento", "numero_documento"} {
		if !update.Immutable(field) {
			t.Errorf("update mode: %s should be immutable", field)
		}
	}
	if update.Immutable("primer_nombre") {
		t.Error("update mode: primer_nombre should stay editable")
	}

	create := ResolveMode("")
	if create.Immutable("numero_documento") {
		t.Error("create mode: no field should be immutable")
	}
}
