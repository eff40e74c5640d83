package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Version is the personix release version, overridden by the build script.
var Version = "0.1.0-beta"

// ClientConfig holds everything needed to talk to the Personas services.
// Values come from the environment (optionally via a .env file loaded by
// godotenv in main) or from the active connection profile.
type ClientConfig struct {
	APIURL      string        // Base URL of the record API, e.g. http://localhost:8000/api
	LogAPIURL   string        // Base URL of the activity log service
	QueryAPIURL string        // Base URL of the natural-language query service
	Timeout     time.Duration // HTTP client timeout. Zero means the default is applied.
	UserAgent   string        // Custom User-Agent header. Empty means the default is applied.
}

// ConfigFunc modifies or validates a ClientConfig.
type ConfigFunc func(*ClientConfig) error

// Apply runs the given ConfigFuncs in order, stopping at the first error.
func (c *ClientConfig) Apply(fns ...ConfigFunc) error {
	for _, fn := range fns {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// Defaults is the standard validator chain applied before a session is built.
func Defaults() []ConfigFunc {
	return []ConfigFunc{
		withAPIURL,
		withTimeout(30 * time.Second),
		withUserAgent,
	}
}

// FromEnv builds a ClientConfig from environment variables and applies the
// default validator chain.
func FromEnv() (*ClientConfig, error) {
	cfg := &ClientConfig{
		APIURL:      os.Getenv("PERSONAS_API_URL"),
		LogAPIURL:   os.Getenv("PERSONAS_LOG_API_URL"),
		QueryAPIURL: os.Getenv("PERSONAS_QUERY_API_URL"),
	}
	if raw := os.Getenv("PERSONAS_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid PERSONAS_TIMEOUT_SECONDS: %q", raw)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if err := cfg.Apply(Defaults()...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withAPIURL validates the record API base URL and strips a trailing slash so
// paths can be joined uniformly.
func withAPIURL(cfg *ClientConfig) error {
	if cfg.APIURL == "" {
		return errors.New("record API URL cannot be empty (set PERSONAS_API_URL or pick a profile)")
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.LogAPIURL = strings.TrimRight(cfg.LogAPIURL, "/")
	cfg.QueryAPIURL = strings.TrimRight(cfg.QueryAPIURL, "/")
	return nil
}

// withTimeout returns a ConfigFunc that sets a default timeout if none is provided.
func withTimeout(timeout time.Duration) ConfigFunc {
	return func(cfg *ClientConfig) error {
		if cfg.Timeout == 0 {
			cfg.Timeout = timeout
		}
		return nil
	}
}

// withUserAgent sets a default User-Agent header if none is provided.
func withUserAgent(cfg *ClientConfig) error {
	if cfg.UserAgent == "" {
		cfg.UserAgent = fmt.Sprintf("personix-%s,os:%s,arch:%s", Version, runtime.GOOS, runtime.GOARCH)
	}
	return nil
}
