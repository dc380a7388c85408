package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nicsoto/ArriendoFacil/internal/models"
)

func (s *Store) ListPayments() ([]models.Payment, error) {
	var ps []models.Payment
	if err := s.DB.Order("due_date").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *Store) ListPaymentsByContract(contractID string) ([]models.Payment, error) {
	var ps []models.Payment
	if err := s.DB.Where("contract_id = ?", contractID).Order("due_date").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *Store) GetPayment(id string) (*models.Payment, error) {
	var p models.Payment
	err := s.DB.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordPayment marks a payment paid with the given date and the amount
// actually received. A zero amount keeps the scheduled rent. Calling it again
// overwrites date and amount (last write wins). The amount is deliberately
// not checked against the scheduled rent: partial and over payments are
// allowed.
func (s *Store) RecordPayment(id string, paidDate time.Time, amount float64) (*models.Payment, error) {
	p, err := s.GetPayment(id)
	if err != nil {
		return nil, err
	}
	p.Status = models.PaymentPaid
	p.PaidDate = &paidDate
	if amount > 0 {
		p.Amount = amount
	}
	if err := s.DB.Save(p).Error; err != nil {
		return nil, err
	}
	s.mirrorSave("payments", p.ID, p)
	return p, nil
}
