package client

import (
	"context"
	"io"
	"net/http"
	"testing"
)

func TestActivitySearch(t *testing.T) {
	tests := []struct {
		name      string
		filter    ActivityFilter
		wantQuery map[string]string
	}{
		{
			name:      "no filters",
			filter:    ActivityFilter{},
			wantQuery: map[string]string{},
		},
		{
			name:   "types joined by comma",
			filter: ActivityFilter{Tipos: []string{"CREATE", "UPDATE"}},
			wantQuery: map[string]string{
				"tipo": "CREATE,UPDATE",
			},
		},
		{
			name: "all filters",
			filter: ActivityFilter{
				Tipos:       []string{"DELETE"},
				Documento:   "12345",
				FechaInicio: "2026-01-01T00:00:00Z",
				FechaFin:    "2026-01-31T23:59:59Z",
			},
			wantQuery: map[string]string{
				"tipo":         "DELETE",
				"documento":    "12345",
				"fecha_inicio": "2026-01-01T00:00:00Z",
				"fecha_fin":    "2026-01-31T23:59:59Z",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			var gotQuery map[string]string
			rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = map[string]string{}
				for k, v := range r.URL.Query() {
					gotQuery[k] = v[0]
				}
				w.Header().Set("Content-Type", applicationJson)
				io.WriteString(w, `[{"id":"x","tipo":"CREATE","documento":"12345","detalles":"Creación de persona: Ana Gómez","fecha":"2026-01-02T10:00:00"}]`)
			}))

			logs, err := rest.Activity.Search(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("Search() error: %v", err)
			}
			if gotPath != "/logs/" {
				t.Errorf("path = %q, want /logs/", gotPath)
			}
			for k, want := range tt.wantQuery {
				if gotQuery[k] != want {
					t.Errorf("query[%s] = %q, want %q", k, gotQuery[k], want)
				}
			}
			if len(gotQuery) != len(tt.wantQuery) {
				t.Errorf("query params = %v, want %v", gotQuery, tt.wantQuery)
			}
			if len(logs) != 1 || logs[0]["tipo"] != "CREATE" {
				t.Errorf("logs = %v", logs)
			}
		})
	}
}

func TestActivitySearchUnconfigured(t *testing.T) {
	rest, _ := newTestRest(t, http.NotFoundHandler())
	rest.Session.Config().LogAPIURL = ""
	if _, err := rest.Activity.Search(context.Background(), ActivityFilter{}); err == nil {
		t.Error("Search() succeeded without a configured log service URL")
	}
}
