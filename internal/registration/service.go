package registration

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gracepoint/church-admin-backend/internal/auditlog"
	"github.com/gracepoint/church-admin-backend/internal/event"
	"github.com/gracepoint/church-admin-backend/internal/member"
)

var (
	ErrMemberNotFound = errors.New("member does not exist")
	ErrEventNotFound  = errors.New("event does not exist")
)

type Service interface {
	Create(ctx context.Context, req CreateRegistrationRequest, actorID, ip string) (*Registration, error)
	List(ctx context.Context) ([]RegistrationDetail, error)
	Delete(ctx context.Context, id string, actorID, ip string) error
}

type service struct {
	repo     Repository
	members  member.Repository
	events   event.Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, members member.Repository, events event.Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, members: members, events: events, auditSvc: auditSvc}
}

func (s *service) Create(ctx context.Context, req CreateRegistrationRequest, actorID, ip string) (*Registration, error) {
	if _, err := s.members.FindByID(ctx, req.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if _, err := s.events.FindByID(ctx, req.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	reg := &Registration{MemberID: req.MemberID, EventID: req.EventID}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionRegistrationAdded, "registration", reg.ID,
		map[string]interface{}{"member_id": reg.MemberID, "event_id": reg.EventID}, ip, auditlog.StatusSuccess)
	return reg, nil
}

func (s *service) List(ctx context.Context) ([]RegistrationDetail, error) {
	return s.repo.ListDetailed(ctx)
}

func (s *service) Delete(ctx context.Context, id string, actorID, ip string) error {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionRegistrationGone, "registration", reg.ID,
		map[string]interface{}{"member_id": reg.MemberID, "event_id": reg.EventID}, ip, auditlog.StatusSuccess)
	return nil
}
