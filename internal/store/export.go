package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/models"
)

// Snapshot is the full domain data set for backup and restore.
type Snapshot struct {
	Properties []models.Property `json:"properties"`
	Contracts  []models.Contract `json:"contracts"`
	Payments   []models.Payment  `json:"payments"`
	Settings   *models.Settings  `json:"settings,omitempty"`
	ExportedAt time.Time         `json:"exportedAt"`
}

// ExportAll collects every entity into a snapshot.
func (s *Store) ExportAll() (*Snapshot, error) {
	snap := &Snapshot{ExportedAt: time.Now().UTC()}
	var err error
	if snap.Properties, err = s.ListProperties(); err != nil {
		return nil, err
	}
	if snap.Contracts, err = s.ListContracts(); err != nil {
		return nil, err
	}
	if snap.Payments, err = s.ListPayments(); err != nil {
		return nil, err
	}
	if snap.Settings, err = s.GetSettings(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ImportAll replaces all domain data with the snapshot contents. The three
// entity collections must all be present (possibly empty); a snapshot missing
// one of them is rejected before anything is touched.
func (s *Store) ImportAll(snap *Snapshot) error {
	if snap == nil || snap.Properties == nil || snap.Contracts == nil || snap.Payments == nil {
		return fmt.Errorf("%w: snapshot must contain properties, contracts and payments", ErrInvalidInput)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Payment{}, &models.Contract{}, &models.Property{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		for i := range snap.Properties {
			if err := tx.Create(&snap.Properties[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Contracts {
			if err := tx.Create(&snap.Contracts[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Payments {
			if err := tx.Create(&snap.Payments[i]).Error; err != nil {
				return err
			}
		}
		if snap.Settings != nil {
			var current models.Settings
			if err := tx.First(&current).Error; err == nil {
				snap.Settings.ID = current.ID
			}
			if err := tx.Save(snap.Settings).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
