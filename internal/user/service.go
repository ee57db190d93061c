package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/gracepoint/church-admin-backend/internal/auditlog"
)

type Service interface {
	Create(ctx context.Context, req CreateUserRequest, actorID, ip string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id string, req UpdateUserRequest, actorID, ip string) (*User, error)
	Delete(ctx context.Context, id, actorID, ip string) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest, actorID, ip string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionUserCreated, "user", u.ID,
		map[string]interface{}{"email": u.Email, "role": u.Role}, ip, auditlog.StatusSuccess)
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest, actorID, ip string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Role != "" {
		u.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionUserUpdated, "user", u.ID,
		map[string]interface{}{"email": u.Email, "role": u.Role}, ip, auditlog.StatusSuccess)
	return u, nil
}

func (s *service) Delete(ctx context.Context, id, actorID, ip string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &actorID, auditlog.ActionUserDeleted, "user", id,
		nil, ip, auditlog.StatusSuccess)
	return nil
}
