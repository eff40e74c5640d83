package database

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	personixlog "personix/internal/logging"

	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxLookupHistory caps how many recent document numbers are kept per profile.
const maxLookupHistory = 20

type Service struct {
	db         *gorm.DB
	profileMux sync.Mutex // Protects profile activation operations
}

var (
	dbInstance *Service
)

func New() *Service {
	// Reuse Connection
	if dbInstance != nil {
		return dbInstance
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("failed to get user home directory: %v", err)
	}

	personixDir := filepath.Join(homeDir, ".personix")
	if err := os.MkdirAll(personixDir, 0755); err != nil {
		log.Fatalf("failed to create .personix directory: %v", err)
	}

	dbPath := filepath.Join(personixDir, "store.sqlite")

	conn := sqlite.Open(dbPath)
	db, err := gorm.Open(conn, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&Profile{}, &LookupHistory{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	dbInstance = &Service{
		db: db,
	}
	return dbInstance
}

// NewWithDB wraps an existing gorm connection. Used by tests with an
// in-memory sqlite database.
func NewWithDB(db *gorm.DB) (*Service, error) {
	if err := db.AutoMigrate(&Profile{}, &LookupHistory{}); err != nil {
		return nil, err
	}
	return &Service{db: db}, nil
}

// GetDB returns the database instance
func (s *Service) GetDB() *gorm.DB {
	return s.db
}

// Close closes the database connection
func (s *Service) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Profile operations

// CreateProfile creates a new profile in the database
func (s *Service) CreateProfile(profile *Profile) error {
	personixlog.Debug("Creating profile in database",
		zap.String("endpoint", profile.Endpoint),
		zap.String("alias", profile.Alias))
	return s.db.Create(profile).Error
}

// CreateProfileAsActive creates a new profile and sets it as active, deactivating all others
func (s *Service) CreateProfileAsActive(profile *Profile) error {
	// Lock to prevent concurrent profile activation
	s.profileMux.Lock()
	defer s.profileMux.Unlock()

	tx := s.db.Begin()

	// First, deactivate all existing profiles
	if err := tx.Model(&Profile{}).Where("active = ?", true).Update("active", false).Error; err != nil {
		tx.Rollback()
		return err
	}

	profile.Active = true

	if err := tx.Create(profile).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// GetProfile retrieves a profile by ID
func (s *Service) GetProfile(id uint64) (*Profile, error) {
	var profile Profile
	err := s.db.First(&profile, id).Error
	return &profile, err
}

// GetAllProfiles retrieves all profiles from the database
func (s *Service) GetAllProfiles() ([]Profile, error) {
	var profiles []Profile
	err := s.db.Find(&profiles).Error
	return profiles, err
}

// UpdateProfile updates an existing profile
func (s *Service) UpdateProfile(profile *Profile) error {
	return s.db.Save(profile).Error
}

// DeleteProfile deletes a profile by ID
func (s *Service) DeleteProfile(id uint) error {
	return s.db.Delete(&Profile{}, id).Error
}

// GetProfileByEndpoint retrieves a profile by endpoint
func (s *Service) GetProfileByEndpoint(endpoint string) (*Profile, error) {
	var profile Profile
	err := s.db.Where("endpoint = ?", endpoint).First(&profile).Error
	return &profile, err
}

// SetActiveProfile sets a profile as active and deactivates all others
func (s *Service) SetActiveProfile(id uint) error {
	// Lock to prevent concurrent profile activation
	s.profileMux.Lock()
	defer s.profileMux.Unlock()

	tx := s.db.Begin()

	if err := tx.Model(&Profile{}).Where("active = ?", true).Update("active", false).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&Profile{}).Where("id = ?", id).Update("active", true).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// GetActiveProfile retrieves the currently active profile
func (s *Service) GetActiveProfile() (*Profile, error) {
	var profile Profile
	err := s.db.Where("active = ?", true).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No active profile found - return nil profile with no error
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// HasActiveProfile checks if there is an active profile
func (s *Service) HasActiveProfile() (bool, error) {
	var count int64
	err := s.db.Model(&Profile{}).Where("active = ?", true).Count(&count).Error
	return count > 0, err
}

// Lookup history operations

// AddLookupHistory records a document number the operator opened, trimming
// the per-profile history to its cap. Duplicate numbers are moved to the
// front instead of stored twice.
func (s *Service) AddLookupHistory(profileID uint, documento string) error {
	// Drop an existing entry for the same number so it re-enters as newest
	if err := s.db.Unscoped().
		Where("profile_id = ? AND documento = ?", profileID, documento).
		Delete(&LookupHistory{}).Error; err != nil {
		return err
	}

	entry := &LookupHistory{ProfileID: profileID, Documento: documento}
	if err := s.db.Create(entry).Error; err != nil {
		return err
	}

	// Trim overflow, oldest first
	var overflow []LookupHistory
	if err := s.db.Where("profile_id = ?", profileID).
		Order("id DESC").Offset(maxLookupHistory).
		Find(&overflow).Error; err != nil {
		return err
	}
	for _, old := range overflow {
		if err := s.db.Unscoped().Delete(&LookupHistory{}, old.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetLookupHistory returns the recent document numbers for a profile,
// newest first.
func (s *Service) GetLookupHistory(profileID uint) ([]string, error) {
	var entries []LookupHistory
	err := s.db.Where("profile_id = ?", profileID).
		Order("id DESC").Limit(maxLookupHistory).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	docs := make([]string, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, e.Documento)
	}
	return docs, nil
}
