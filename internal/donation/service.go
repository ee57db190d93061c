package donation

import (
	"context"
	"time"

	"github.com/gracepoint/church-admin-backend/internal/auditlog"
)

type Service interface {
	Create(ctx context.Context, req CreateDonationRequest, actorID, ip string) (*Donation, error)
	GetByID(ctx context.Context, id string) (*Donation, error)
	List(ctx context.Context) ([]Donation, error)
	Update(ctx context.Context, id string, req UpdateDonationRequest, actorID, ip string) (*Donation, error)
	Delete(ctx context.Context, id string, actorID, ip string) error
	Stats(ctx context.Context) (*Stats, error)
	Export(ctx context.Context, format string) ([]byte, string, string, error)
	Receipt(ctx context.Context, id string) ([]byte, string, error)
}

type service struct {
	repo     Repository
	exporter Exporter
	auditSvc auditlog.Service
}

func NewService(repo Repository, exporter Exporter, auditSvc auditlog.Service) Service {
	return &service{repo: repo, exporter: exporter, auditSvc: auditSvc}
}

func (s *service) Create(ctx context.Context, req CreateDonationRequest, actorID, ip string) (*Donation, error) {
	d := &Donation{
		DonorName:    req.DonorName,
		Amount:       req.Amount,
		DonationType: req.DonationType,
		DonationDate: req.DonationDate,
		Notes:        req.Notes,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionDonationCreated, "donation", d.ID,
		map[string]interface{}{"donor_name": d.DonorName, "amount": d.Amount}, ip, auditlog.StatusSuccess)
	return d, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Donation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Donation, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateDonationRequest, actorID, ip string) (*Donation, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.DonorName = req.DonorName
	d.Amount = req.Amount
	d.DonationType = req.DonationType
	d.DonationDate = req.DonationDate
	d.Notes = req.Notes
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionDonationUpdated, "donation", d.ID,
		map[string]interface{}{"donor_name": d.DonorName, "amount": d.Amount}, ip, auditlog.StatusSuccess)
	return d, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID, ip string) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionDonationDeleted, "donation", d.ID,
		map[string]interface{}{"donor_name": d.DonorName, "amount": d.Amount}, ip, auditlog.StatusSuccess)
	return nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx, time.Now())
}

func (s *service) Export(ctx context.Context, format string) ([]byte, string, string, error) {
	donations, err := s.repo.List(ctx)
	if err != nil {
		return nil, "", "", err
	}
	return s.exporter.Export(format, donations)
}

func (s *service) Receipt(ctx context.Context, id string) ([]byte, string, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.exporter.Receipt(d)
}
