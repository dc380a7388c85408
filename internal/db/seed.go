package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SeedDemoData loads a small demo data set on an empty database. Contracts
// get their payment schedules generated like any user-created contract.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Property{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	st := store.New(db)
	properties := []models.Property{
		{Type: models.PropertyApartment, Address: "Av. Providencia 1234, Depto 501", Size: 65, IsDFL2: true},
		{Type: models.PropertyHouse, Address: "Los Aromos 567, La Florida", Size: 120, IsDFL2: true},
		{Type: models.PropertyApartment, Address: "Av. Italia 890, Depto 302", Size: 55, IsDFL2: true},
	}
	for i := range properties {
		if err := st.AddProperty(&properties[i]); err != nil {
			return err
		}
	}

	contracts := []models.Contract{
		{
			PropertyID: properties[0].ID,
			Tenant: models.Person{
				Name: "María González", RUT: "12.345.678-9",
				Email: "maria@ejemplo.com", Phone: "+56912345678",
				Address: "Av. Providencia 1234, Depto 501",
			},
			Guarantor: models.Person{
				Name: "Pedro González", RUT: "98.765.432-1",
				Email: "pedro@ejemplo.com", Phone: "+56987654321",
				Address: "San Diego 456",
			},
			StartDate:   date(2025, time.January, 1),
			EndDate:     date(2026, time.January, 1),
			MonthlyRent: 450000,
			Currency:    "CLP",
			Adjustment:  models.AdjustmentIPC,
			Deposit:     450000,
			LeaseType:   models.LeaseFixedTerm,
			Pets:        models.PetsForbidden,
		},
		{
			PropertyID: properties[1].ID,
			Tenant: models.Person{
				Name: "Juan Pérez", RUT: "15.678.234-5",
				Email: "juan@ejemplo.com", Phone: "+56956781234",
				Address: "Los Aromos 567, La Florida",
			},
			StartDate:   date(2024, time.September, 1),
			EndDate:     date(2025, time.September, 1),
			MonthlyRent: 650000,
			Currency:    "CLP",
			Adjustment:  models.AdjustmentUF,
			Deposit:     650000,
			LeaseType:   models.LeaseFixedTerm,
			Pets:        models.PetsRestricted,
		},
	}
	for i := range contracts {
		if err := st.AddContract(&contracts[i]); err != nil {
			return err
		}
	}
	return nil
}
