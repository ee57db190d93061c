package registration

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gracepoint/church-admin-backend/middleware"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ListRegistrations(c *gin.Context) {
	regs, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registrations"})
		return
	}
	c.JSON(http.StatusOK, regs)
}

func (h *Handler) CreateRegistration(c *gin.Context) {
	var req CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "memberId and eventId are required"})
		return
	}
	actorID := middleware.GetUserID(c)
	reg, err := h.svc.Create(c.Request.Context(), req, actorID, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) || errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "This member is already registered for this event"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create registration"})
		return
	}
	c.JSON(http.StatusCreated, reg)
}

func (h *Handler) DeleteRegistration(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), actorID, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete registration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration deleted successfully"})
}
