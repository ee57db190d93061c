package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetRegistrationsByMonth(c *gin.Context) {
	year := h.yearParam(c)
	buckets, err := h.svc.RegistrationsByMonth(c.Request.Context(), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "months": buckets})
}

func (h *Handler) GetDonationsByMonth(c *gin.Context) {
	year := h.yearParam(c)
	buckets, err := h.svc.DonationsByMonth(c.Request.Context(), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "months": buckets})
}

func (h *Handler) GetYears(c *gin.Context) {
	years, err := h.svc.Years(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch years"})
		return
	}
	c.JSON(http.StatusOK, years)
}

func (h *Handler) GetUpcomingEvents(c *gin.Context) {
	events, err := h.svc.UpcomingEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch upcoming events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) GetUpcomingBirthdays(c *gin.Context) {
	members, err := h.svc.UpcomingBirthdays(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch upcoming birthdays"})
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handler) yearParam(c *gin.Context) int {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		return time.Now().Year()
	}
	return year
}
