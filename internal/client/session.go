package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"personix/internal/config"
	"personix/internal/logging"

	"go.uber.org/zap"
)

const applicationJson = "application/json"

// Session owns the HTTP client and base URLs for all Personas services.
// Every call takes a context so in-flight requests can be bounded by the
// caller; the client itself additionally enforces the configured timeout.
type Session struct {
	config *config.ClientConfig
	client *http.Client
}

// NewSession builds a session from a validated config.
func NewSession(cfg *config.ClientConfig) *Session {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.IdleConnTimeout = cfg.Timeout
	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
	return &Session{
		config: cfg,
		client: client,
	}
}

// Config returns the session configuration.
func (s *Session) Config() *config.ClientConfig {
	return s.config
}

// request performs one HTTP round trip and maps the outcome onto the error
// taxonomy. The returned bytes are the response body, already known to be
// valid JSON. The body is decoded before the status is branched on: an
// undecodable body is a DecodeError even for a 2xx status.
func (s *Session) request(ctx context.Context, method, url, contentType string, body io.Reader) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", applicationJson)
	req.Header.Set("User-Agent", s.config.UserAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	logging.Debug("Sending request", zap.String("method", method), zap.String("url", url))

	response, err := s.client.Do(req)
	if err != nil {
		logging.Warn("Transport failure", zap.String("method", method), zap.String("url", url), zap.Error(err))
		return nil, &NetworkError{Method: method, URL: url, Err: err}
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: url, Err: err}
	}

	// An empty body is tolerated only for 2xx responses without content.
	if len(raw) > 0 && !json.Valid(raw) {
		return nil, &DecodeError{Method: method, URL: url, Err: errInvalidJSON(raw)}
	}

	logging.Debug("Response received",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", response.StatusCode),
		zap.Int("body_bytes", len(raw)))

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		return raw, nil
	case response.StatusCode == http.StatusUnprocessableEntity:
		return nil, &ValidationError{
			Method: method,
			URL:    url,
			Fields: normalizeFieldErrors(raw),
		}
	default:
		return nil, &APIError{
			Method:     method,
			URL:        url,
			StatusCode: response.StatusCode,
			Detail:     detailMessage(raw),
		}
	}
}

// get is a convenience wrapper for body-less GETs.
func (s *Session) get(ctx context.Context, url string) ([]byte, error) {
	return s.request(ctx, http.MethodGet, url, "", nil)
}

// decodeInto unmarshals a response body into container, reporting a
// DecodeError on mismatch.
func decodeInto(method, url string, raw []byte, container any) error {
	if err := json.Unmarshal(raw, container); err != nil {
		return &DecodeError{Method: method, URL: url, Err: err}
	}
	return nil
}

type jsonSyntaxError struct {
	snippet string
}

func (e jsonSyntaxError) Error() string {
	return "body is not valid JSON: " + e.snippet
}

func errInvalidJSON(raw []byte) error {
	const max = 120
	snippet := string(raw)
	if len(snippet) > max {
		snippet = snippet[:max] + "…"
	}
	return jsonSyntaxError{snippet: snippet}
}
