package client

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
)

const openapiDoc = `{
	"openapi": "3.0.3",
	"info": {"title": "Personas API", "version": "1.2.0"},
	"paths": {}
}`

func TestSchemaLoadAndCache(t *testing.T) {
	var fetches atomic.Int32
	rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/openapi.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fetches.Add(1)
		w.Header().Set("Content-Type", applicationJson)
		io.WriteString(w, openapiDoc)
	}))
	rest.Schema = NewSchemaAPI(rest.Session, t.TempDir())

	doc, err := rest.Schema.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Info.Title != "Personas API" {
		t.Errorf("title = %q", doc.Info.Title)
	}

	// Second load is served from the msgpack cache.
	if _, err := rest.Schema.Load(context.Background()); err != nil {
		t.Fatalf("cached Load() error: %v", err)
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("fetches = %d, want 1", got)
	}
}

func TestSchemaCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{
			name:    "current version passes",
			version: "1.2.0",
			wantErr: false,
		},
		{
			name:    "too old fails",
			version: "0.9.0",
			wantErr: true,
		},
		{
			name:    "unparseable version tolerated",
			version: "dev",
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, _ := newTestRest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", applicationJson)
				io.WriteString(w, `{"openapi":"3.0.3","info":{"title":"Personas API","version":"`+tt.version+`"},"paths":{}}`)
			}))
			err := rest.Schema.CheckVersion(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
