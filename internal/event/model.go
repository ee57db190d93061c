package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a scheduled church activity. Date is a YYYY-MM-DD string
// and Time an optional HH:MM string. Status is derived on read and
// never stored.
type Event struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Date        string    `gorm:"type:varchar(10);not null" json:"date"`
	Time        string    `gorm:"type:varchar(5)" json:"time"`
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"-" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// DeriveStatus classifies the event relative to today's date.
func (e *Event) DeriveStatus(now time.Time) string {
	today := now.Format("2006-01-02")
	switch {
	case e.Date > today:
		return "upcoming"
	case e.Date == today:
		return "today"
	default:
		return "past"
	}
}

type CreateEventRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type UpdateEventRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}
