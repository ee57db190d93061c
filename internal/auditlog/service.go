package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"math"

	"github.com/gracepoint/church-admin-backend/utils"
	"gorm.io/datatypes"
)

type Service interface {
	LogAction(ctx context.Context, userID *string, action, resource, resourceID string, details map[string]interface{}, ip, status string) error
	GetAuditLogs(ctx context.Context, action, status string, page, limit int) (*PaginatedAuditLogs, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction records one audit entry and, when the Kafka stream is enabled,
// mirrors it onto the audit topic. Audit failures never fail the request.
func (s *service) LogAction(ctx context.Context, userID *string, action, resource, resourceID string, details map[string]interface{}, ip, status string) error {
	if details == nil {
		details = map[string]interface{}{}
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    datatypes.JSON(detailsJSON),
		IPAddress:  ip,
		Status:     status,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to write audit log %s: %v", action, err)
		return err
	}

	if payload, err := json.Marshal(entry); err == nil {
		utils.PublishAuditEvent(ctx, action, payload)
	}

	return nil
}

func (s *service) GetAuditLogs(ctx context.Context, action, status string, page, limit int) (*PaginatedAuditLogs, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := s.repo.List(ctx, action, status, page, limit)
	if err != nil {
		return nil, err
	}

	return &PaginatedAuditLogs{
		Data:       logs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
