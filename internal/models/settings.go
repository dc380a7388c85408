package models

import "time"

// Settings is the singleton installation record: UI theme plus the landlord
// profile stamped into generated documents.
type Settings struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Theme         string    `gorm:"not null;default:'light'" json:"theme"`
	Notifications bool      `gorm:"not null;default:true" json:"notifications"`
	LandlordName  string    `json:"landlordName"`
	LandlordRUT   string    `json:"landlordRut"`
	LandlordEmail string    `json:"landlordEmail"`
	LandlordPhone string    `json:"landlordPhone"`
	LandlordAddr  string    `json:"landlordAddress"`
	LandlordCity  string    `json:"landlordCity"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
