package donation

import (
	"errors"
	"fmt"
	"log"
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

func (h *Handler) ListDonations(c *gin.Context) {
	donations, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donations"})
		return
	}
	c.JSON(http.StatusOK, donations)
}

func (h *Handler) GetDonation(c *gin.Context) {
	d, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donation"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDonation(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a positive amount and donation_date are required"})
		return
	}
	actorID := middleware.GetUserID(c)
	d, err := h.svc.Create(c.Request.Context(), req, actorID, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create donation"})
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDonation(c *gin.Context) {
	var req UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a positive amount and donation_date are required"})
		return
	}
	actorID := middleware.GetUserID(c)
	d, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, actorID, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update donation"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDonation(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), actorID, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete donation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Donation deleted successfully"})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donation stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ExportDonations(c *gin.Context) {
	format := c.DefaultQuery("format", FormatCSV)
	data, filename, contentType, err := h.svc.Export(c.Request.Context(), format)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported export format, use csv or xlsx"})
			return
		}
		log.Printf("donation export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export donations"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) DownloadReceipt(c *gin.Context) {
	data, filename, err := h.svc.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate receipt"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
