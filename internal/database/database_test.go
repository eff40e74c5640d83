package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	service, err := NewWithDB(db)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { service.Close() })
	return service
}

func TestProfileLifecycle(t *testing.T) {
	service := newTestService(t)

	profile := &Profile{
		Alias:       "local",
		Endpoint:    "http://localhost:8000/api",
		LogEndpoint: "http://localhost:8002",
	}
	if err := service.CreateProfileAsActive(profile); err != nil {
		t.Fatalf("CreateProfileAsActive() error: %v", err)
	}

	active, err := service.GetActiveProfile()
	if err != nil {
		t.Fatalf("GetActiveProfile() error: %v", err)
	}
	if active == nil || active.Alias != "local" {
		t.Fatalf("active profile = %+v, want alias local", active)
	}

	// A second active profile displaces the first.
	second := &Profile{Alias: "staging", Endpoint: "http://staging:8000/api"}
	if err := service.CreateProfileAsActive(second); err != nil {
		t.Fatalf("CreateProfileAsActive() error: %v", err)
	}
	active, err = service.GetActiveProfile()
	if err != nil {
		t.Fatalf("GetActiveProfile() error: %v", err)
	}
	if active.Alias != "staging" {
		t.Errorf("active profile = %s, want staging", active.Alias)
	}

	profiles, err := service.GetAllProfiles()
	if err != nil {
		t.Fatalf("GetAllProfiles() error: %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("profiles = %d, want 2", len(profiles))
	}

	// Switch back by ID.
	if err := service.SetActiveProfile(profile.ID); err != nil {
		t.Fatalf("SetActiveProfile() error: %v", err)
	}
	active, _ = service.GetActiveProfile()
	if active.ID != profile.ID {
		t.Errorf("active profile ID = %d, want %d", active.ID, profile.ID)
	}
}

func TestGetActiveProfileEmpty(t *testing.T) {
	service := newTestService(t)
	active, err := service.GetActiveProfile()
	if err != nil {
		t.Fatalf("GetActiveProfile() error: %v", err)
	}
	if active != nil {
		t.Errorf("active profile = %+v, want nil", active)
	}
	has, err := service.HasActiveProfile()
	if err != nil || has {
		t.Errorf("HasActiveProfile() = %v, %v", has, err)
	}
}

func TestProfileClientConfig(t *testing.T) {
	p := &Profile{
		Endpoint:       "http://localhost:8000/api",
		LogEndpoint:    "http://localhost:8002",
		TimeoutSeconds: 10,
	}
	cfg := p.ClientConfig()
	if cfg.APIURL != p.Endpoint {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Timeout.Seconds() != 10 {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
}

func TestLookupHistory(t *testing.T) {
	service := newTestService(t)
	profile := &Profile{Alias: "local", Endpoint: "http://localhost:8000/api"}
	if err := service.CreateProfileAsActive(profile); err != nil {
		t.Fatalf("CreateProfileAsActive() error: %v", err)
	}

	for _, doc := range []string{"111", "222", "333"} {
		if err := service.AddLookupHistory(profile.ID, doc); err != nil {
			t.Fatalf("AddLookupHistory(%s) error: %v", doc, err)
		}
	}
	// Re-adding an existing number moves it to the front.
	if err := service.AddLookupHistory(profile.ID, "111"); err != nil {
		t.Fatalf("AddLookupHistory() error: %v", err)
	}

	docs, err := service.GetLookupHistory(profile.ID)
	if err != nil {
		t.Fatalf("GetLookupHistory() error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("history length = %d, want 3 (no duplicates)", len(docs))
	}
	if docs[0] != "111" {
		t.Errorf("newest entry = %s, want 111", docs[0])
	}
}
