package donation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Donation records a gift. DonorName is free text and may be empty for
// anonymous gifts.
type Donation struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	DonorName    string    `gorm:"type:varchar(255)" json:"donor_name"`
	Amount       float64   `gorm:"not null" json:"amount"`
	DonationType string    `gorm:"type:varchar(100)" json:"donation_type"`
	DonationDate string    `gorm:"type:varchar(10);not null" json:"donation_date"`
	Notes        string    `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

type CreateDonationRequest struct {
	DonorName    string  `json:"donor_name"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	DonationType string  `json:"donation_type"`
	DonationDate string  `json:"donation_date" binding:"required"`
	Notes        string  `json:"notes"`
}

type UpdateDonationRequest struct {
	DonorName    string  `json:"donor_name"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	DonationType string  `json:"donation_type"`
	DonationDate string  `json:"donation_date" binding:"required"`
	Notes        string  `json:"notes"`
}

// Stats summarizes giving for the dashboard cards.
type Stats struct {
	MonthTotal float64 `json:"month_total"`
	YearTotal  float64 `json:"year_total"`
	DonorCount int64   `json:"donor_count"`
}
