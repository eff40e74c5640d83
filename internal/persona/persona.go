package persona

import (
	"encoding/json"
	"fmt"
)

// DocumentType is the server-side vocabulary for identity document kinds.
type DocumentType string

// Gender is the server-side vocabulary for the gender field.
type Gender string

const (
	DocumentTypeCedula           DocumentType = "Cédula"
	DocumentTypeTarjetaIdentidad DocumentType = "Tarjeta de identidad"

	GenderMasculino         Gender = "Masculino"
	GenderFemenino          Gender = "Femenino"
	GenderNoBinario         Gender = "No binario"
	GenderPrefieroNoReporte Gender = "Prefiero no reportar"
)

// UI short codes. These never go over the wire — they are translated to the
// server vocabulary when a draft is serialized and back when a record is
// loaded into a form.
var documentTypeByCode = map[string]DocumentType{
	"CC": DocumentTypeCedula,
	"TI": DocumentTypeTarjetaIdentidad,
}

var genderByCode = map[string]Gender{
	"M":  GenderMasculino,
	"F":  GenderFemenino,
	"NB": GenderNoBinario,
	"NR": GenderPrefieroNoReporte,
}

// DocumentTypeFromCode translates a UI code ("CC", "TI") to the wire vocabulary.
func DocumentTypeFromCode(code string) (DocumentType, error) {
	if dt, ok := documentTypeByCode[code]; ok {
		return dt, nil
	}
	return "", fmt.Errorf("unknown document type code: %q", code)
}

// GenderFromCode translates a UI code ("M", "F", "NB", "NR") to the wire vocabulary.
func GenderFromCode(code string) (Gender, error) {
	if g, ok := genderByCode[code]; ok {
		return g, nil
	}
	return "", fmt.Errorf("unknown gender code: %q", code)
}

// CodeForDocumentType translates a wire value back to its UI code.
// Unknown values fall back to "CC" so a form can still be populated.
func CodeForDocumentType(dt DocumentType) string {
	for code, v := range documentTypeByCode {
		if v == dt {
			return code
		}
	}
	return "CC"
}

// CodeForGender translates a wire value back to its UI code.
func CodeForGender(g Gender) string {
	for code, v := range genderByCode {
		if v == g {
			return code
		}
	}
	return "NR"
}

// DocumentTypeCodes returns the valid UI codes for the document type field.
func DocumentTypeCodes() []string {
	return []string{"CC", "TI"}
}

// GenderCodes returns the valid UI codes for the gender field.
func GenderCodes() []string {
	return []string{"M", "F", "NB", "NR"}
}

// DocumentTypeLabels returns the display label for each document type UI code.
func DocumentTypeLabels() map[string]string {
	labels := make(map[string]string, len(documentTypeByCode))
	for code, v := range documentTypeByCode {
		labels[code] = string(v)
	}
	return labels
}

// GenderLabels returns the display label for each gender UI code.
func GenderLabels() map[string]string {
	labels := make(map[string]string, len(genderByCode))
	for code, v := range genderByCode {
		labels[code] = string(v)
	}
	return labels
}

// Draft is the in-memory, user-editable working copy of a Persona. Enumerated
// fields hold UI codes, not wire values. A draft lives for exactly one form
// session and is discarded when the session ends.
type Draft struct {
	TipoDocumento   string // UI code: CC, TI
	NumeroDocumento string
	PrimerNombre    string
	SegundoNombre   string // optional
	Apellidos       string
	FechaNacimiento string // ISO YYYY-MM-DD
	Genero          string // UI code: M, F, NB, NR
	Email           string
	Celular         string

	// Optional photo attachment read from disk by the form.
	Foto         []byte
	FotoFilename string
}

// wirePersona is the JSON object sent in the "persona" multipart part.
// Field names and enum vocabularies are the server contract.
type wirePersona struct {
	TipoDocumento   DocumentType `json:"tipo_documento"`
	NumeroDocumento string       `json:"numero_documento"`
	PrimerNombre    string       `json:"primer_nombre"`
	SegundoNombre   *string      `json:"segundo_nombre"`
	Apellidos       string       `json:"apellidos"`
	FechaNacimiento string       `json:"fecha_nacimiento"`
	Genero          Gender       `json:"genero"`
	Email           string       `json:"email"`
	Celular         string       `json:"celular"`
}

// MarshalWire serializes the draft into the server's JSON shape, translating
// UI codes to the wire vocabulary. An empty middle name is sent as null.
func (d Draft) MarshalWire() ([]byte, error) {
	dt, err := DocumentTypeFromCode(d.TipoDocumento)
	if err != nil {
		return nil, err
	}
	g, err := GenderFromCode(d.Genero)
	if err != nil {
		return nil, err
	}
	var segundo *string
	if d.SegundoNombre != "" {
		segundo = &d.SegundoNombre
	}
	return json.Marshal(wirePersona{
		TipoDocumento:   dt,
		NumeroDocumento: d.NumeroDocumento,
		PrimerNombre:    d.PrimerNombre,
		SegundoNombre:   segundo,
		Apellidos:       d.Apellidos,
		FechaNacimiento: d.FechaNacimiento,
		Genero:          g,
		Email:           d.Email,
		Celular:         d.Celular,
	})
}

// HasFoto reports whether the draft carries a photo attachment.
func (d Draft) HasFoto() bool {
	return len(d.Foto) > 0
}

// ServerPersona is the authoritative record shape returned by reads. It is
// never cached — every display is backed by a fresh read.
type ServerPersona struct {
	ID              json.Number  `json:"id"`
	TipoDocumento   DocumentType `json:"tipo_documento"`
	NumeroDocumento string       `json:"numero_documento"`
	PrimerNombre    string       `json:"primer_nombre"`
	SegundoNombre   *string      `json:"segundo_nombre"`
	Apellidos       string       `json:"apellidos"`
	FechaNacimiento string       `json:"fecha_nacimiento"`
	Genero          Gender       `json:"genero"`
	Email           string       `json:"email"`
	Celular         string       `json:"celular"`
	FotoURL         *string      `json:"foto_url"`
}

// ToDraft converts a server record into an editable draft, translating the
// wire vocabulary back into UI codes. Used when a form enters update mode.
func (p ServerPersona) ToDraft() Draft {
	var segundo string
	if p.SegundoNombre != nil {
		segundo = *p.SegundoNombre
	}
	// Server dates can arrive with a time component; keep the date part only.
	fecha := p.FechaNacimiento
	if len(fecha) > 10 {
		fecha = fecha[:10]
	}
	return Draft{
		TipoDocumento:   CodeForDocumentType(p.TipoDocumento),
		NumeroDocumento: p.NumeroDocumento,
		PrimerNombre:    p.PrimerNombre,
		SegundoNombre:   segundo,
		Apellidos:       p.Apellidos,
		FechaNacimiento: fecha,
		Genero:          CodeForGender(p.Genero),
		Email:           p.Email,
		Celular:         p.Celular,
	}
}

// FullName returns the display name for status messages and log entries.
func (p ServerPersona) FullName() string {
	return p.PrimerNombre + " " + p.Apellidos
}
