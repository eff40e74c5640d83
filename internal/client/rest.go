package client

import "personix/internal/config"

// Rest bundles all service clients behind one session, mirroring how the
// app consumes them: one Rest per active connection profile.
type Rest struct {
	Session  *Session
	Personas *PersonaAPI
	Activity *ActivityAPI
	Query    *QueryAPI
	Schema   *SchemaAPI
}

// NewRest validates the config, builds the session and wires every resource
// client to it. cacheDir is the personix home directory used for the schema
// cache; empty disables caching.
func NewRest(cfg *config.ClientConfig, cacheDir string) (*Rest, error) {
	if err := cfg.Apply(config.Defaults()...); err != nil {
		return nil, err
	}
	session := NewSession(cfg)
	return &Rest{
		Session:  session,
		Personas: NewPersonaAPI(session),
		Activity: NewActivityAPI(session),
		Query:    NewQueryAPI(session),
		Schema:   NewSchemaAPI(session, cacheDir),
	}, nil
}
