package client

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ActivityFilter narrows an activity log search. Zero values mean "no filter".
type ActivityFilter struct {
	Tipos       []string // operation kinds: CREATE, UPDATE, DELETE
	Documento   string   // exact document number match
	FechaInicio string   // inclusive lower bound, RFC 3339
	FechaFin    string   // inclusive upper bound, RFC 3339
}

func (f ActivityFilter) query() string {
	params := url.Values{}
	if len(f.Tipos) > 0 {
		params.Set("tipo", strings.Join(f.Tipos, ","))
	}
	if f.Documento != "" {
		params.Set("documento", f.Documento)
	}
	if f.FechaInicio != "" {
		params.Set("fecha_inicio", f.FechaInicio)
	}
	if f.FechaFin != "" {
		params.Set("fecha_fin", f.FechaFin)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// ActivityAPI is the client for the activity log service, which records one
// entry per CREATE/UPDATE/DELETE performed against the record API.
type ActivityAPI struct {
	session *Session
}

// NewActivityAPI returns the activity log client for the session.
func NewActivityAPI(session *Session) *ActivityAPI {
	return &ActivityAPI{session: session}
}

// Search fetches log entries matching the filter, newest first.
func (api *ActivityAPI) Search(ctx context.Context, filter ActivityFilter) (RecordSet, error) {
	base := api.session.Config().LogAPIURL
	if base == "" {
		return nil, errors.New("activity log service URL is not configured")
	}
	reqURL := base + "/logs/" + filter.query()
	raw, err := api.session.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	var logs RecordSet
	if err := decodeInto("GET", reqURL, raw, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
