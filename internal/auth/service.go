package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gracepoint/church-admin-backend/internal/auditlog"
	"github.com/gracepoint/church-admin-backend/internal/token"
	"github.com/gracepoint/church-admin-backend/internal/user"
	"github.com/gracepoint/church-admin-backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSetupCompleted     = errors.New("setup already completed")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
	ErrUnknownEmail       = errors.New("no account with that email")
)

type LoginInput struct {
	Email    string
	Password string
}

type SetupInput struct {
	Email    string
	Password string
	Name     string
}

type Service interface {
	Login(ctx context.Context, in LoginInput, ip string) (string, *user.User, error)
	Setup(ctx context.Context, in SetupInput, ip string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

type service struct {
	users    user.Repository
	tokens   *token.Service
	auditSvc auditlog.Service
}

func NewService(users user.Repository, tokens *token.Service, auditSvc auditlog.Service) Service {
	return &service{users: users, tokens: tokens, auditSvc: auditSvc}
}

// Login exchanges credentials for a session token. Unknown email and wrong
// password produce the same error so the response does not reveal which
// accounts exist.
func (s *service) Login(ctx context.Context, in LoginInput, ip string) (string, *user.User, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.auditSvc.LogAction(ctx, nil, auditlog.ActionLogin, "auth", "",
				map[string]interface{}{"email": in.Email, "error": "unknown email"}, ip, auditlog.StatusFailure)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		s.auditSvc.LogAction(ctx, &u.ID, auditlog.ActionLogin, "auth", "",
			map[string]interface{}{"email": in.Email, "error": "wrong password"}, ip, auditlog.StatusFailure)
		return "", nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		return "", nil, err
	}

	s.auditSvc.LogAction(ctx, &u.ID, auditlog.ActionLogin, "auth", "",
		map[string]interface{}{"email": u.Email}, ip, auditlog.StatusSuccess)
	return tok, u, nil
}

// Setup bootstraps the first admin account. Refused once any user exists.
func (s *service) Setup(ctx context.Context, in SetupInput, ip string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSetupCompleted
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &user.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         user.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &admin.ID, auditlog.ActionSetup, "auth", admin.ID,
		map[string]interface{}{"email": admin.Email}, ip, auditlog.StatusSuccess)
	return nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	resetToken := generateSecureToken()
	key := fmt.Sprintf("reset_token:%s", resetToken)
	if err := utils.SetToken(key, u.ID, 15*time.Minute); err != nil {
		return errors.New("could not save reset token")
	}

	if err := utils.SendResetLink(u.Email, resetToken); err != nil {
		return errors.New("failed to send email")
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	key := fmt.Sprintf("reset_token:%s", resetToken)
	userID, err := utils.GetToken(key)
	if err != nil {
		return ErrResetTokenInvalid
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	if err := s.users.Update(ctx, u); err != nil {
		return errors.New("failed to update password")
	}

	_ = utils.DeleteToken(key)
	return nil
}

func generateSecureToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
