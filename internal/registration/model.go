package registration

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracepoint/church-admin-backend/internal/event"
	"github.com/gracepoint/church-admin-backend/internal/member"
)

// Registration links a member to an event. The pair is unique; a
// member cannot be registered twice for the same event. Deleting the
// member or the event cascades to its registrations.
type Registration struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID  string         `gorm:"type:uuid;not null;uniqueIndex:idx_member_event" json:"member_id"`
	EventID   string         `gorm:"type:uuid;not null;uniqueIndex:idx_member_event" json:"event_id"`
	Member    *member.Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
	Event     *event.Event   `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type CreateRegistrationRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	EventID  string `json:"eventId" binding:"required"`
}

// registrationRow is the flat shape the join query scans into.
type registrationRow struct {
	ID          string    `json:"-"`
	MemberID    string    `json:"-"`
	EventID     string    `json:"-"`
	CreatedAt   time.Time `json:"-"`
	MemberName  string    `json:"-"`
	MemberEmail string    `json:"-"`
	EventName   string    `json:"-"`
	EventDate   string    `json:"-"`
}

// RegistrationDetail is the API listing shape, with the member and
// event embedded the way the frontend renders them.
type RegistrationDetail struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Member    MemberSummary `json:"member"`
	Event     EventSummary  `json:"event"`
}

type MemberSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EventSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

func (row registrationRow) toDetail() RegistrationDetail {
	return RegistrationDetail{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		Member:    MemberSummary{ID: row.MemberID, Name: row.MemberName, Email: row.MemberEmail},
		Event:     EventSummary{ID: row.EventID, Name: row.EventName, Date: row.EventDate},
	}
}
