package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"personix/internal/logging"

	"github.com/getkin/kin-openapi/openapi3"
	version "github.com/hashicorp/go-version"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// MinAPIVersion is the lowest record-API release this client is known to work
// against. Earlier releases lack the multipart photo part on writes.
const MinAPIVersion = "1.0.0"

// schemaCacheTTL bounds how long a cached contract document is trusted.
const schemaCacheTTL = 24 * time.Hour

// schemaCacheEntry is the on-disk shape of the cached document.
type schemaCacheEntry struct {
	FetchedAt time.Time `msgpack:"fetched_at"`
	APIURL    string    `msgpack:"api_url"`
	Raw       []byte    `msgpack:"raw"`
}

// SchemaAPI fetches the record API's OpenAPI contract document. The document
// is cached on disk so repeated launches do not refetch it; it is only used
// for inspection and the version gate, never as a source of record data.
type SchemaAPI struct {
	session   *Session
	cachePath string
}

// NewSchemaAPI returns the schema client for the session. cacheDir is the
// personix home directory; an empty string disables the on-disk cache.
func NewSchemaAPI(session *Session, cacheDir string) *SchemaAPI {
	cachePath := ""
	if cacheDir != "" {
		cachePath = filepath.Join(cacheDir, "schema.cache")
	}
	return &SchemaAPI{session: session, cachePath: cachePath}
}

// Load returns the parsed OpenAPI document, from the disk cache when fresh,
// otherwise from the service's /openapi.json endpoint.
func (api *SchemaAPI) Load(ctx context.Context) (*openapi3.T, error) {
	apiURL := api.session.Config().APIURL
	if raw, ok := api.readCache(apiURL); ok {
		doc, err := openapi3.NewLoader().LoadFromData(raw)
		if err == nil {
			logging.Debug("OpenAPI document loaded from cache", zap.String("path", api.cachePath))
			return doc, nil
		}
		logging.Warn("Cached OpenAPI document unusable, refetching", zap.Error(err))
	}

	reqURL := apiURL + "/openapi.json"
	raw, err := api.session.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	doc, err := openapi3.NewLoader().LoadFromData(raw)
	if err != nil {
		return nil, &DecodeError{Method: "GET", URL: reqURL, Err: err}
	}
	api.writeCache(apiURL, raw)
	return doc, nil
}

// CheckVersion loads the contract document and verifies the declared API
// version satisfies the minimum this client supports.
func (api *SchemaAPI) CheckVersion(ctx context.Context) error {
	doc, err := api.Load(ctx)
	if err != nil {
		return err
	}
	if doc.Info == nil || doc.Info.Version == "" {
		// Older deployments omit the version; treat as compatible.
		return nil
	}
	current, err := version.NewVersion(doc.Info.Version)
	if err != nil {
		logging.Warn("Unparseable API version", zap.String("version", doc.Info.Version))
		return nil
	}
	minimum := version.Must(version.NewVersion(MinAPIVersion))
	if current.LessThan(minimum) {
		return fmt.Errorf("record API version %s is older than the minimum supported %s",
			current, minimum)
	}
	return nil
}

func (api *SchemaAPI) readCache(apiURL string) ([]byte, bool) {
	if api.cachePath == "" {
		return nil, false
	}
	data, err := os.ReadFile(api.cachePath)
	if err != nil {
		return nil, false
	}
	var entry schemaCacheEntry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		logging.Warn("Corrupt schema cache", zap.String("path", api.cachePath), zap.Error(err))
		return nil, false
	}
	if entry.APIURL != apiURL || time.Since(entry.FetchedAt) > schemaCacheTTL {
		return nil, false
	}
	return entry.Raw, true
}

func (api *SchemaAPI) writeCache(apiURL string, raw []byte) {
	if api.cachePath == "" {
		return
	}
	entry := schemaCacheEntry{
		FetchedAt: time.Now().UTC(),
		APIURL:    apiURL,
		Raw:       raw,
	}
	data, err := msgpack.Marshal(entry)
	if err != nil {
		return
	}
	if err := os.WriteFile(api.cachePath, data, 0644); err != nil {
		logging.Warn("Failed to write schema cache", zap.String("path", api.cachePath), zap.Error(err))
	}
}
