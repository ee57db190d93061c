package event

import (
	"context"
	"time"

	"github.com/gracepoint/church-admin-backend/internal/auditlog"
)

type Service interface {
	Create(ctx context.Context, req CreateEventRequest, actorID, ip string) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, id string, req UpdateEventRequest, actorID, ip string) (*Event, error)
	Delete(ctx context.Context, id string, actorID, ip string) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) Create(ctx context.Context, req CreateEventRequest, actorID, ip string) (*Event, error) {
	e := &Event{
		Name:        req.Name,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	e.Status = e.DeriveStatus(time.Now())
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionEventCreated, "event", e.ID,
		map[string]interface{}{"name": e.Name, "date": e.Date}, ip, auditlog.StatusSuccess)
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Event, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Status = e.DeriveStatus(time.Now())
	return e, nil
}

func (s *service) List(ctx context.Context) ([]Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range events {
		events[i].Status = events[i].DeriveStatus(now)
	}
	return events, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEventRequest, actorID, ip string) (*Event, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Name = req.Name
	e.Date = req.Date
	e.Time = req.Time
	e.Location = req.Location
	e.Description = req.Description
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	e.Status = e.DeriveStatus(time.Now())
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionEventUpdated, "event", e.ID,
		map[string]interface{}{"name": e.Name, "date": e.Date}, ip, auditlog.StatusSuccess)
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID, ip string) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionEventDeleted, "event", e.ID,
		map[string]interface{}{"name": e.Name}, ip, auditlog.StatusSuccess)
	return nil
}
