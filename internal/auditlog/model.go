package auditlog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Action constants, one set per resource kind. Keeping these as a closed
// vocabulary (rather than freeform strings) is what lets consumers of the
// audit stream switch on the action exhaustively.
const (
	ActionLogin             = "LOGIN"
	ActionSetup             = "SETUP"
	ActionUserCreated       = "USER_CREATED"
	ActionUserUpdated       = "USER_UPDATED"
	ActionUserDeleted       = "USER_DELETED"
	ActionMemberCreated     = "MEMBER_CREATED"
	ActionMemberUpdated     = "MEMBER_UPDATED"
	ActionMemberDeleted     = "MEMBER_DELETED"
	ActionEventCreated      = "EVENT_CREATED"
	ActionEventUpdated      = "EVENT_UPDATED"
	ActionEventDeleted      = "EVENT_DELETED"
	ActionRegistrationAdded = "REGISTRATION_CREATED"
	ActionRegistrationGone  = "REGISTRATION_DELETED"
	ActionDonationCreated   = "DONATION_CREATED"
	ActionDonationUpdated   = "DONATION_UPDATED"
	ActionDonationDeleted   = "DONATION_DELETED"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *string        `gorm:"type:uuid;index" json:"user_id"` // nullable (e.g. failed login)
	Action     string         `gorm:"size:100;not null;index" json:"action"`
	Resource   string         `gorm:"size:50;index" json:"resource"`
	ResourceID string         `gorm:"size:64" json:"resource_id"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress  string         `gorm:"size:45" json:"ip_address"`
	Status     string         `gorm:"size:20;not null;index" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// PaginatedAuditLogs represents a page of the audit trail
type PaginatedAuditLogs struct {
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
