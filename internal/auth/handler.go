package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracepoint/church-admin-backend/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type setupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login - POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	tok, u, err := h.Service.Login(c.Request.Context(), LoginInput{Email: req.Email, Password: req.Password}, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		log.Printf("Login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tok,
		"user":  gin.H{"id": u.ID, "email": u.Email, "name": u.Name},
	})
}

// Setup - POST /auth/setup; creates the first admin, only on an empty users table.
func (h *Handler) Setup(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	err := h.Service.Setup(c.Request.Context(), SetupInput(req), middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrSetupCompleted) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Setup already completed"})
			return
		}
		log.Printf("Setup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Setup failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Admin user created successfully"})
}

// ForgotPassword - POST /auth/forgot-password
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if err := h.Service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, ErrUnknownEmail) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No account with that email"})
			return
		}
		log.Printf("Forgot password error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not send reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent"})
}

// ResetPassword - POST /auth/reset-password
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token and new password are required"})
		return
	}

	if err := h.Service.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, ErrResetTokenInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset token"})
			return
		}
		log.Printf("Reset password error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
