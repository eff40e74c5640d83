package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"personix/internal/config"
	"personix/internal/persona"
)

func testDraft() persona.Draft {
	return persona.Draft{
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

func serverRecord(doc string) string {
	return `{
		"id": "` + doc + `",
		"tipo_documento": "Cédula",
		"numero_documento": "` + doc + `",
		"primer_nombre": "Ana",
		"segundo_nombre": null,
		"apellidos": "Gómez",
		"fecha_nacimiento": "1990-01-01",
		"genero": "Femenino",
		"email": "a@b.co",
		"celular": "3001234567",
		"foto_url": null
	}`
}

func newTestRest(t *testing.T, handler http.Handler) (*Rest, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.ClientConfig{
		APIURL:      srv.URL + "/api",
		LogAPIURL:   srv.URL,
		QueryAPIURL: srv.URL,
		Timeout:     5 * time.Second,
	}
	rest, err := NewRest(cfg, "")
	if err != nil {
		t.Fatalf("NewRest() error: %v", err)
	}
	return rest, srv
}

func TestSubmitTargetsByMode(t *testing.T) {
	tests := []struct {
		name       string
		mode       persona.Mode
		wantMethod string
		wantPath   string
	}{
		{
			name:       "create posts to collection",
			mode:       persona.ResolveMode(""),
			wantMethod: http.MethodPost,
			wantPath:   "/api/personas/",
		},
		{
			name:       "update puts to identifier path",
			mode:       persona.ResolveMode("12345"),
			wantMethod: http.MethodPut,
			wantPath:   "/api/personas/12345",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", applicationJson)
				io.WriteString(w, serverRecord("12345"))
			}))

			if _, err := rest.Personas.Submit(context.Background(), testDraft(), tt.mode); err != nil {
				t.Fatalf("Submit() error: %v", err)
			}
			if gotMethod != tt.wantMethod {
				t.Errorf("method = %s, want %s", gotMethod, tt.wantMethod)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %s, want %s", gotPath, tt.wantPath)
			}
		})
	}
}

func TestSubmitMultipartBody(t *testing.T) {
	var personaPart map[string]any
	var fotoBytes []byte
	var fotoName string

	rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			t.Errorf("body is not multipart: %v", err)
		}
		if raw := r.FormValue("persona"); raw != "" {
			json.Unmarshal([]byte(raw), &personaPart)
		}
		if file, header, err := r.FormFile("foto"); err == nil {
			fotoBytes, _ = io.ReadAll(file)
			fotoName = header.Filename
			file.Close()
		}
		w.Header().Set("Content-Type", applicationJson)
		io.WriteString(w, serverRecord("12345"))
	}))

	d := testDraft()
	d.Foto = []byte{0xFF, 0xD8, 0xFF}
	d.FotoFilename = "ana.jpg"

	if _, err := rest.Personas.Create(context.Background(), d); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if personaPart["numero_documento"] != "12345" {
		t.Errorf("persona part numero_documento = %v", personaPart["numero_documento"])
	}
	if personaPart["tipo_documento"] != "Cédula" {
		t.Errorf("persona part tipo_documento = %v, want wire vocabulary", personaPart["tipo_documento"])
	}
	if personaPart["genero"] != "Femenino" {
		t.Errorf("persona part genero = %v, want wire vocabulary", personaPart["genero"])
	}
	if len(fotoBytes) != 3 || fotoName != "ana.jpg" {
		t.Errorf("foto part = %d bytes as %q, want 3 bytes as ana.jpg", len(fotoBytes), fotoName)
	}
}

func TestSubmitOmitsFotoPartWithoutPhoto(t *testing.T) {
	rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(4 << 20)
		if _, _, err := r.FormFile("foto"); err == nil {
			t.Error("foto part present on photo-less draft")
		}
		w.Header().Set("Content-Type", applicationJson)
		io.WriteString(w, serverRecord("12345"))
	}))
	if _, err := rest.Personas.Create(context.Background(), testDraft()); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
}

func TestSubmitErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(*testing.T, error)
	}{
		{
			name: "404 is api error not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				io.WriteString(w, `{"detail":"Persona no encontrada"}`)
			},
			check: func(t *testing.T, err error) {
				if !IsNotFound(err) {
					t.Errorf("want not-found APIError, got %v", err)
				}
				var apiErr *APIError
				errors.As(err, &apiErr)
				if apiErr.Detail != "Persona no encontrada" {
					t.Errorf("Detail = %q", apiErr.Detail)
				}
			},
		},
		{
			name: "422 normalizes field errors",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				io.WriteString(w, `{"detail":[{"loc":["body","persona","email"],"msg":"invalid"},{"loc":["body","persona","celular"],"msg":"invalid"}]}`)
			},
			check: func(t *testing.T, err error) {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("want ValidationError, got %v", err)
				}
				if len(vErr.Fields) != 2 || vErr.Fields[0].Field != "email" || vErr.Fields[1].Field != "celular" {
					t.Errorf("Fields = %v", vErr.Fields)
				}
			},
		},
		{
			name: "undecodable success body is decode error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, "<html>not json</html>")
			},
			check: func(t *testing.T, err error) {
				var dErr *DecodeError
				if !errors.As(err, &dErr) {
					t.Errorf("want DecodeError, got %v", err)
				}
			},
		},
		{
			name: "undecodable error body is decode error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				io.WriteString(w, "<html>gateway</html>")
			},
			check: func(t *testing.T, err error) {
				var dErr *DecodeError
				if !errors.As(err, &dErr) {
					t.Errorf("want DecodeError, got %v", err)
				}
			},
		},
		{
			name: "other status is server error with detail",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				io.WriteString(w, `{"detail":"boom"}`)
			},
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("want APIError, got %v", err)
				}
				if apiErr.StatusCode != 500 || apiErr.Detail != "boom" {
					t.Errorf("APIError = %+v", apiErr)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, _ := newTestRest(t, tt.handler)
			_, err := rest.Personas.Create(context.Background(), testDraft())
			if err == nil {
				t.Fatal("Create() succeeded, want error")
			}
			tt.check(t, err)
		})
	}
}

func TestNetworkErrorWhenNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // nothing is listening anymore

	cfg := &config.ClientConfig{APIURL: url + "/api", Timeout: 2 * time.Second}
	rest, err := NewRest(cfg, "")
	if err != nil {
		t.Fatalf("NewRest() error: %v", err)
	}
	_, err = rest.Personas.Get(context.Background(), "1")
	var nErr *NetworkError
	if !errors.As(err, &nErr) {
		t.Errorf("want NetworkError, got %v", err)
	}
}

func TestVerifyReadsBackSameIdentifier(t *testing.T) {
	var gets []string
	rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets = append(gets, r.URL.Path)
		}
		w.Header().Set("Content-Type", applicationJson)
		io.WriteString(w, serverRecord("12345"))
	}))

	if _, err := rest.Personas.Verify(context.Background(), "12345"); err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if len(gets) != 1 || gets[0] != "/api/personas/12345" {
		t.Errorf("verification reads = %v, want exactly one GET of /api/personas/12345", gets)
	}
}

func TestVerifyWrapsFailure(t *testing.T) {
	rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Persona no encontrada"}`)
	}))

	_, err := rest.Personas.Verify(context.Background(), "12345")
	if !IsVerifyError(err) {
		t.Fatalf("want VerifyError, got %v", err)
	}
	var vErr *VerifyError
	errors.As(err, &vErr)
	if vErr.ID != "12345" {
		t.Errorf("VerifyError.ID = %q", vErr.ID)
	}
}

func TestGetDecodesServerPersona(t *testing.T) {
	rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", applicationJson)
		io.WriteString(w, serverRecord("987"))
	}))

	p, err := rest.Personas.Get(context.Background(), "987")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if p.NumeroDocumento != "987" {
		t.Errorf("NumeroDocumento = %q", p.NumeroDocumento)
	}
	if p.TipoDocumento != persona.DocumentTypeCedula {
		t.Errorf("TipoDocumento = %q", p.TipoDocumento)
	}
}

func TestDelete(t *testing.T) {
	var gotMethod, gotPath string
	rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", applicationJson)
		io.WriteString(w, `{"message":"Persona eliminada exitosamente"}`)
	}))

	if err := rest.Personas.Delete(context.Background(), "555"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/personas/555" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rest.Personas.Get(ctx, "1")
	var nErr *NetworkError
	if !errors.As(err, &nErr) {
		t.Errorf("cancelled request: want NetworkError, got %v", err)
	}
}
