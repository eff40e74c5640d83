package persona

import "net/http"

// Mode captures whether a form session creates a new record or updates an
// existing one. It is resolved once when the session starts and passed by
// value to everything that needs it; nothing re-derives it from UI state.
type Mode struct {
	id string
}

// ResolveMode derives the session mode from the identifier supplied by the
// surrounding context. A non-empty identifier means update mode, which also
// freezes the identifying fields for the rest of the session.
func ResolveMode(id string) Mode {
	return Mode{id: id}
}

// IsUpdate reports whether the session modifies an existing record.
func (m Mode) IsUpdate() bool {
	return m.id != ""
}

// ID returns the document number being updated, or "" in create mode.
func (m Mode) ID() string {
	return m.id
}

// Method returns the HTTP method for the write request.
func (m Mode) Method() string {
	if m.IsUpdate() {
		return http.MethodPut
	}
	return http.MethodPost
}

// Path returns the write target below the API base: the collection path for
// create, the identifier-scoped path for update.
func (m Mode) Path() string {
	if m.IsUpdate() {
		return "/personas/" + m.id
	}
	return "/personas/"
}

// Immutable reports whether a field may not be edited in this session.
// Field keys are the wire names.
func (m Mode) Immutable(field string) bool {
	if !m.IsUpdate() {
		return false
	}
	return field == "tipo_documento" || field == "numero_documento"
}
