package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gracepoint/church-admin-backend/config"
	"github.com/gracepoint/church-admin-backend/internal/auditlog"
	"github.com/gracepoint/church-admin-backend/internal/auth"
	"github.com/gracepoint/church-admin-backend/internal/dashboard"
	"github.com/gracepoint/church-admin-backend/internal/donation"
	"github.com/gracepoint/church-admin-backend/internal/event"
	"github.com/gracepoint/church-admin-backend/internal/member"
	"github.com/gracepoint/church-admin-backend/internal/registration"
	"github.com/gracepoint/church-admin-backend/internal/token"
	"github.com/gracepoint/church-admin-backend/internal/user"
	"github.com/gracepoint/church-admin-backend/middleware"
)

// Setup wires repositories, services and handlers and registers every
// route on the router.
func Setup(router *gin.Engine, cfg *config.Config, db *gorm.DB) {
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	tokens := token.NewService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	userRepo := user.NewRepository(db)
	userSvc := user.NewService(userRepo, auditSvc)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userRepo, tokens, auditSvc)
	authHandler := auth.NewHandler(authSvc)

	memberRepo := member.NewRepository(db)
	memberSvc := member.NewService(memberRepo, auditSvc)
	memberHandler := member.NewHandler(memberSvc)

	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, auditSvc)
	eventHandler := event.NewHandler(eventSvc)

	regRepo := registration.NewRepository(db)
	regSvc := registration.NewService(regRepo, memberRepo, eventRepo, auditSvc)
	regHandler := registration.NewHandler(regSvc)

	donationRepo := donation.NewRepository(db)
	donationSvc := donation.NewService(donationRepo, donation.NewExporter(), auditSvc)
	donationHandler := donation.NewHandler(donationSvc)

	dashboardSvc := dashboard.NewService(memberRepo, eventRepo, regRepo, donationRepo)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimiter())
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/setup", authHandler.Setup)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		users := protected.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		members := protected.Group("/members")
		{
			members.GET("", memberHandler.ListMembers)
			members.GET("/:id", memberHandler.GetMember)
			members.POST("", memberHandler.CreateMember)
			members.PUT("/:id", memberHandler.UpdateMember)
			members.DELETE("/:id", memberHandler.DeleteMember)
		}

		events := protected.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("", eventHandler.CreateEvent)
			events.PUT("/:id", eventHandler.UpdateEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
		}

		registrations := protected.Group("/registrations")
		{
			registrations.GET("", regHandler.ListRegistrations)
			registrations.POST("", regHandler.CreateRegistration)
			registrations.DELETE("/:id", regHandler.DeleteRegistration)
		}

		donations := protected.Group("/donations")
		{
			donations.GET("", donationHandler.ListDonations)
			donations.GET("/stats", donationHandler.GetStats)
			donations.GET("/export", donationHandler.ExportDonations)
			donations.GET("/:id", donationHandler.GetDonation)
			donations.GET("/:id/receipt", donationHandler.DownloadReceipt)
			donations.POST("", donationHandler.CreateDonation)
			donations.PUT("/:id", donationHandler.UpdateDonation)
			donations.DELETE("/:id", donationHandler.DeleteDonation)
		}

		dash := protected.Group("/dashboard")
		{
			dash.GET("/summary", dashboardHandler.GetSummary)
			dash.GET("/registrations-by-month", dashboardHandler.GetRegistrationsByMonth)
			dash.GET("/donations-by-month", dashboardHandler.GetDonationsByMonth)
			dash.GET("/years", dashboardHandler.GetYears)
			dash.GET("/upcoming-events", dashboardHandler.GetUpcomingEvents)
			dash.GET("/upcoming-birthdays", dashboardHandler.GetUpcomingBirthdays)
		}

		protected.GET("/auditlogs", auditHandler.GetAuditLogs)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"database":  "postgres",
		})
	})

	// Everything else falls through to the SPA shell.
	router.NoRoute(func(c *gin.Context) {
		requested := filepath.Join(cfg.PublicDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		index := filepath.Join(cfg.PublicDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "index.html not found"})
			return
		}
		c.File(index)
	})
}
