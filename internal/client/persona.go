package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"

	"personix/internal/logging"
	"personix/internal/persona"

	"go.uber.org/zap"
)

// PersonaAPI is the client for the Persona record endpoints.
type PersonaAPI struct {
	session *Session
}

// NewPersonaAPI returns the Persona resource client for the session.
func NewPersonaAPI(session *Session) *PersonaAPI {
	return &PersonaAPI{session: session}
}

func (api *PersonaAPI) url(path string) string {
	return api.session.Config().APIURL + path
}

// encodeMultipart builds the write request body: a "persona" part holding the
// JSON record in the server vocabulary and, if the draft carries one, a
// "foto" binary part.
func encodeMultipart(d persona.Draft) (io.Reader, string, error) {
	payload, err := d.MarshalWire()
	if err != nil {
		return nil, "", err
	}
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if err := w.WriteField("persona", string(payload)); err != nil {
		return nil, "", err
	}
	if d.HasFoto() {
		part, err := w.CreateFormFile("foto", d.FotoFilename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(d.Foto); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// Submit sends the write request for the draft. The mode decides everything
// request-shaped: POST to the collection for create, PUT to the identifier
// path for update. The returned record is the server-confirmed state.
func (api *PersonaAPI) Submit(ctx context.Context, d persona.Draft, mode persona.Mode) (*persona.ServerPersona, error) {
	body, contentType, err := encodeMultipart(d)
	if err != nil {
		return nil, err
	}
	method := mode.Method()
	url := api.url(mode.Path())

	logging.Info("Submitting persona",
		zap.String("method", method),
		zap.String("documento", d.NumeroDocumento),
		zap.Bool("update", mode.IsUpdate()),
		zap.Bool("with_photo", d.HasFoto()))

	raw, err := api.session.request(ctx, method, url, contentType, body)
	if err != nil {
		return nil, err
	}
	var p persona.ServerPersona
	if err := decodeInto(method, url, raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create writes a new record. Equivalent to Submit with an empty-identifier mode.
func (api *PersonaAPI) Create(ctx context.Context, d persona.Draft) (*persona.ServerPersona, error) {
	return api.Submit(ctx, d, persona.ResolveMode(""))
}

// Update overwrites the record identified by id.
func (api *PersonaAPI) Update(ctx context.Context, id string, d persona.Draft) (*persona.ServerPersona, error) {
	return api.Submit(ctx, d, persona.ResolveMode(id))
}

// Get reads the record with the given document number. 404 surfaces as an
// *APIError for which IsNotFound reports true.
func (api *PersonaAPI) Get(ctx context.Context, id string) (*persona.ServerPersona, error) {
	url := api.url("/personas/" + id)
	raw, err := api.session.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var p persona.ServerPersona
	if err := decodeInto("GET", url, raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the record with the given document number.
func (api *PersonaAPI) Delete(ctx context.Context, id string) error {
	url := api.url("/personas/" + id)
	logging.Info("Deleting persona", zap.String("documento", id))
	_, err := api.session.request(ctx, "DELETE", url, "", nil)
	return err
}

// Verify issues the read-after-write confirmation for a just-written record.
// Any failure is wrapped in *VerifyError so callers can report it distinctly
// from a write failure: the write itself already succeeded.
func (api *PersonaAPI) Verify(ctx context.Context, id string) (*persona.ServerPersona, error) {
	p, err := api.Get(ctx, id)
	if err != nil {
		logging.Warn("Read-after-write confirmation failed", zap.String("documento", id), zap.Error(err))
		return nil, &VerifyError{ID: id, Err: err}
	}
	logging.Debug("Write confirmed", zap.String("documento", id))
	return p, nil
}
