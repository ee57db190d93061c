package member

import (
	"context"

	"github.com/gracepoint/church-admin-backend/internal/auditlog"
)

type Service interface {
	Create(ctx context.Context, req CreateMemberRequest, actorID, ip string) (*Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Update(ctx context.Context, id string, req UpdateMemberRequest, actorID, ip string) (*Member, error)
	Delete(ctx context.Context, id string, actorID, ip string) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) Create(ctx context.Context, req CreateMemberRequest, actorID, ip string) (*Member, error) {
	m := &Member{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Ministry: req.Ministry,
		Birthday: req.Birthday,
		JoinDate: req.JoinDate,
		Status:   req.Status,
		Notes:    req.Notes,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionMemberCreated, "member", m.ID,
		map[string]interface{}{"name": m.Name}, ip, auditlog.StatusSuccess)
	return m, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateMemberRequest, actorID, ip string) (*Member, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Name = req.Name
	m.Email = req.Email
	m.Phone = req.Phone
	m.Gender = req.Gender
	m.Ministry = req.Ministry
	m.Birthday = req.Birthday
	m.JoinDate = req.JoinDate
	m.Status = req.Status
	m.Notes = req.Notes
	if m.Status == "" {
		m.Status = "active"
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionMemberUpdated, "member", m.ID,
		map[string]interface{}{"name": m.Name}, ip, auditlog.StatusSuccess)
	return m, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID, ip string) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionMemberDeleted, "member", m.ID,
		map[string]interface{}{"name": m.Name}, ip, auditlog.StatusSuccess)
	return nil
}
