package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/models"
)

func (s *Store) ListProperties() ([]models.Property, error) {
	var props []models.Property
	if err := s.DB.Order("created_at").Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

func (s *Store) GetProperty(id string) (*models.Property, error) {
	var p models.Property
	err := s.DB.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) AddProperty(p *models.Property) error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: property type %q", ErrInvalidInput, p.Type)
	}
	if p.Address == "" || p.Size <= 0 {
		return fmt.Errorf("%w: address and positive size required", ErrInvalidInput)
	}
	if err := s.DB.Create(p).Error; err != nil {
		return err
	}
	s.mirrorSave("properties", p.ID, p)
	return nil
}

func (s *Store) UpdateProperty(p *models.Property) error {
	if _, err := s.GetProperty(p.ID); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: property type %q", ErrInvalidInput, p.Type)
	}
	if err := s.DB.Save(p).Error; err != nil {
		return err
	}
	s.mirrorSave("properties", p.ID, p)
	return nil
}

// DeleteProperty refuses to remove a property that still has contracts.
func (s *Store) DeleteProperty(id string) error {
	if _, err := s.GetProperty(id); err != nil {
		return err
	}
	var refs int64
	if err := s.DB.Model(&models.Contract{}).Where("property_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrPropertyHasContracts
	}
	if err := s.DB.Delete(&models.Property{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.mirrorDelete("properties", id)
	return nil
}
