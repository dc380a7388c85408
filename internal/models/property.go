package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyType classifies a rental property.
type PropertyType string

const (
	PropertyApartment  PropertyType = "departamento"
	PropertyHouse      PropertyType = "casa"
	PropertyOffice     PropertyType = "oficina"
	PropertyCommercial PropertyType = "local_comercial"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyOffice, PropertyCommercial:
		return true
	}
	return false
}

// Property is a rental unit owned by the landlord.
type Property struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	Type      PropertyType `gorm:"not null" json:"type"`
	Address   string       `gorm:"not null;index" json:"address"`
	Size      float64      `gorm:"not null" json:"size"` // superficie en m²
	IsDFL2    bool         `json:"isDFL2"`               // vivienda acogida al DFL-2
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (p *Property) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
