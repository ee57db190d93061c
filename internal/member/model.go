package member

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a person in the church directory. Dates travel as plain
// YYYY-MM-DD strings, matching what the dashboard forms submit.
type Member struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Gender    string    `gorm:"type:varchar(20)" json:"gender"`
	Ministry  string    `gorm:"type:varchar(100)" json:"ministry"`
	Birthday  string    `gorm:"type:varchar(10)" json:"birthday"`
	JoinDate  string    `gorm:"type:varchar(10)" json:"join_date"`
	Status    string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = "active"
	}
	return nil
}

type CreateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	Ministry string `json:"ministry"`
	Birthday string `json:"birthday"`
	JoinDate string `json:"join_date"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

type UpdateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	Ministry string `json:"ministry"`
	Birthday string `json:"birthday"`
	JoinDate string `json:"join_date"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}
