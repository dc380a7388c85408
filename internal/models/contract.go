package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdjustmentType selects how the rent is adjusted at each anniversary.
type AdjustmentType string

const (
	AdjustmentIPC   AdjustmentType = "IPC"
	AdjustmentUF    AdjustmentType = "UF"
	AdjustmentFixed AdjustmentType = "fixed"
)

func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentIPC, AdjustmentUF, AdjustmentFixed:
		return true
	}
	return false
}

// ContractStatus is the lifecycle state of a lease.
type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractTerminated ContractStatus = "terminated"
)

// LeaseType is the contractual duration model.
type LeaseType string

const (
	LeaseFixedTerm    LeaseType = "plazo_fijo"
	LeaseMonthToMonth LeaseType = "mes_a_mes"
	LeaseIndefinite   LeaseType = "indefinido"
)

func (t LeaseType) Valid() bool {
	switch t {
	case LeaseFixedTerm, LeaseMonthToMonth, LeaseIndefinite:
		return true
	}
	return false
}

// PetsPolicy governs pet tenancy in the lease clauses.
type PetsPolicy string

const (
	PetsAllowed    PetsPolicy = "permitidas"
	PetsRestricted PetsPolicy = "con_restriccion"
	PetsForbidden  PetsPolicy = "prohibidas"
)

func (p PetsPolicy) Valid() bool {
	switch p {
	case PetsAllowed, PetsRestricted, PetsForbidden:
		return true
	}
	return false
}

// Person holds the identification of a tenant or guarantor.
type Person struct {
	Name    string `json:"name"`
	RUT     string `json:"rut"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Contract is a lease binding a tenant to a property.
type Contract struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	PropertyID  string         `gorm:"not null;index;size:36" json:"propertyId"`
	Property    Property       `gorm:"foreignKey:PropertyID" json:"-"`
	Tenant      Person         `gorm:"embedded;embeddedPrefix:tenant_" json:"tenant"`
	Guarantor   Person         `gorm:"embedded;embeddedPrefix:guarantor_" json:"guarantor"`
	StartDate   time.Time      `gorm:"not null" json:"startDate"`
	EndDate     time.Time      `gorm:"not null" json:"endDate"`
	MonthlyRent float64        `gorm:"not null" json:"monthlyRent"`
	Currency    string         `gorm:"size:3;not null;default:'CLP'" json:"currency"`
	Adjustment  AdjustmentType `gorm:"not null;default:'IPC'" json:"adjustmentType"`
	Deposit     float64        `json:"deposit"`
	Status      ContractStatus `gorm:"not null;default:'active';index" json:"status"`
	LeaseType   LeaseType      `gorm:"not null;default:'plazo_fijo'" json:"leaseType"`
	Furnished   bool           `json:"furnished"`
	Sublease    bool           `json:"subleaseAllowed"`
	Pets        PetsPolicy     `gorm:"not null;default:'prohibidas'" json:"pets"`
	Inventory   string         `json:"inventory"` // texto libre del inventario anexo
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (c *Contract) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// HasGuarantor reports whether a guarantor was recorded on the lease.
func (c *Contract) HasGuarantor() bool { return c.Guarantor.Name != "" }

// AnniversaryDate is the contract start plus one year, when the annual
// adjustment becomes due.
func (c *Contract) AnniversaryDate() time.Time {
	return c.StartDate.AddDate(1, 0, 0)
}
