// Package store persists the domain entities with GORM and optionally
// mirrors writes to a remote backup.
package store

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/models"
)

var (
	ErrNotFound             = errors.New("not_found")
	ErrInvalidInput         = errors.New("invalid_input")
	ErrPropertyHasContracts = errors.New("property_has_contracts")
)

// Store wraps the database handle with all entity operations. Mirror, when
// set, receives a best-effort copy of every write; mirror failures are logged
// and never block or fail the local write.
type Store struct {
	DB     *gorm.DB
	Mirror Mirror
}

func New(db *gorm.DB) *Store { return &Store{DB: db} }

func (s *Store) mirrorSave(collection, id string, doc any) {
	if s.Mirror == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Mirror.SaveDocument(ctx, collection, id, doc); err != nil {
			log.Printf("mirror save %s/%s failed: %v", collection, id, err)
		}
	}()
}

func (s *Store) mirrorDelete(collection, id string) {
	if s.Mirror == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Mirror.DeleteDocument(ctx, collection, id); err != nil {
			log.Printf("mirror delete %s/%s failed: %v", collection, id, err)
		}
	}()
}

// GetSettings returns the singleton settings row, creating the default one
// on first access.
func (s *Store) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := s.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{Theme: "light", Notifications: true}
		if err := s.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings overwrites the singleton settings row.
func (s *Store) SaveSettings(in *models.Settings) (*models.Settings, error) {
	current, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	in.ID = current.ID
	if err := s.DB.Save(in).Error; err != nil {
		return nil, err
	}
	return in, nil
}
