package database

import (
	"time"

	"personix/internal/client"
	"personix/internal/config"

	"gorm.io/gorm"
)

// Profile is a saved connection to one Personas deployment. Only one profile
// is active at a time; the active profile decides which services the app
// talks to.
type Profile struct {
	gorm.Model

	// Alias is a user-friendly name for the profile (max 20 characters)
	Alias string `json:"alias" gorm:"size:20"`

	// Endpoint is the base URL of the record API, e.g. http://localhost:8000/api
	Endpoint string `json:"endpoint" gorm:"not null"`

	// LogEndpoint is the base URL of the activity log service (optional)
	LogEndpoint string `json:"log_endpoint"`

	// QueryEndpoint is the base URL of the natural-language query service (optional)
	QueryEndpoint string `json:"query_endpoint"`

	// TimeoutSeconds bounds every request made through this profile (0 = default)
	TimeoutSeconds int64 `json:"timeout_seconds" gorm:"default:0"`

	// Active indicates if this profile is currently active (only one can be active)
	// Note: Database constraint ensures only one profile can be active at a time
	Active bool `json:"active" gorm:"default:false;index:idx_active_unique,where:active = true"`
}

// ProfileName returns the display name: the alias if set, the endpoint otherwise.
func (p *Profile) ProfileName() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Endpoint
}

// ClientConfig converts the profile into a client configuration.
func (p *Profile) ClientConfig() *config.ClientConfig {
	cfg := &config.ClientConfig{
		APIURL:      p.Endpoint,
		LogAPIURL:   p.LogEndpoint,
		QueryAPIURL: p.QueryEndpoint,
	}
	if p.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(p.TimeoutSeconds) * time.Second
	}
	return cfg
}

// RestFromProfile builds the service clients for this profile. cacheDir is
// the personix home directory used for the schema cache.
func (p *Profile) RestFromProfile(cacheDir string) (*client.Rest, error) {
	return client.NewRest(p.ClientConfig(), cacheDir)
}

// LookupHistory keeps the document numbers the operator recently opened, so
// the lookup screen can offer them as suggestions. It stores identifiers
// only — never record data.
type LookupHistory struct {
	gorm.Model

	// ProfileID ties the history entry to a connection profile
	ProfileID uint `json:"profile_id" gorm:"not null;constraint:OnDelete:CASCADE"`

	// Profile relationship
	Profile Profile `json:"profile" gorm:"foreignKey:ProfileID"`

	// Documento is the document number that was looked up
	Documento string `json:"documento" gorm:"not null;size:10;index"`
}
