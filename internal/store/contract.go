package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/models"
	"github.com/nicsoto/ArriendoFacil/internal/schedule"
)

func (s *Store) ListContracts() ([]models.Contract, error) {
	var cs []models.Contract
	if err := s.DB.Order("created_at").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Store) ListActiveContracts() ([]models.Contract, error) {
	var cs []models.Contract
	if err := s.DB.Where("status = ?", models.ContractActive).Order("created_at").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Store) ListContractsByProperty(propertyID string) ([]models.Contract, error) {
	var cs []models.Contract
	if err := s.DB.Where("property_id = ?", propertyID).Order("created_at").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Store) GetContract(id string) (*models.Contract, error) {
	var c models.Contract
	err := s.DB.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) validateContract(c *models.Contract) error {
	if !c.StartDate.Before(c.EndDate) {
		return fmt.Errorf("%w: start date must precede end date", ErrInvalidInput)
	}
	if !c.Adjustment.Valid() {
		return fmt.Errorf("%w: adjustment type %q", ErrInvalidInput, c.Adjustment)
	}
	if !c.LeaseType.Valid() {
		return fmt.Errorf("%w: lease type %q", ErrInvalidInput, c.LeaseType)
	}
	if !c.Pets.Valid() {
		return fmt.Errorf("%w: pets policy %q", ErrInvalidInput, c.Pets)
	}
	if c.MonthlyRent <= 0 {
		return fmt.Errorf("%w: monthly rent must be positive", ErrInvalidInput)
	}
	return nil
}

// AddContract creates the contract together with its full monthly payment
// schedule in one transaction.
func (s *Store) AddContract(c *models.Contract) error {
	if err := s.validateContract(c); err != nil {
		return err
	}
	if _, err := s.GetProperty(c.PropertyID); err != nil {
		return fmt.Errorf("%w: property %s", ErrInvalidInput, c.PropertyID)
	}
	if c.Status == "" {
		c.Status = models.ContractActive
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		payments := schedule.Generate(c)
		for i := range payments {
			if err := tx.Create(&payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.mirrorSave("contracts", c.ID, c)
	return nil
}

func (s *Store) UpdateContract(c *models.Contract) error {
	if _, err := s.GetContract(c.ID); err != nil {
		return err
	}
	if err := s.validateContract(c); err != nil {
		return err
	}
	if err := s.DB.Save(c).Error; err != nil {
		return err
	}
	s.mirrorSave("contracts", c.ID, c)
	return nil
}

// TerminateContract marks the lease terminated without touching payments.
func (s *Store) TerminateContract(id string) (*models.Contract, error) {
	c, err := s.GetContract(id)
	if err != nil {
		return nil, err
	}
	c.Status = models.ContractTerminated
	if err := s.DB.Save(c).Error; err != nil {
		return nil, err
	}
	s.mirrorSave("contracts", c.ID, c)
	return c, nil
}

// DeleteContract removes the contract and cascades to its payments.
func (s *Store) DeleteContract(id string) error {
	if _, err := s.GetContract(id); err != nil {
		return err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Payment{}, "contract_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Contract{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.mirrorDelete("contracts", id)
	return nil
}
