package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus is the persisted state of a scheduled payment. Late and
// upcoming are derived from the due date at query time, never stored.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Payment is one monthly rent installment of a contract.
type Payment struct {
	ID         string        `gorm:"primaryKey;size:36" json:"id"`
	ContractID string        `gorm:"not null;index;size:36" json:"contractId"`
	Month      string        `gorm:"size:7;not null;index" json:"month"` // período YYYY-MM
	Amount     float64       `gorm:"not null" json:"amount"`
	DueDate    time.Time     `gorm:"not null" json:"dueDate"`
	PaidDate   *time.Time    `json:"paidDate"`
	Status     PaymentStatus `gorm:"not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
