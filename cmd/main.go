package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/gracepoint/church-admin-backend/config"
	"github.com/gracepoint/church-admin-backend/database"
	"github.com/gracepoint/church-admin-backend/internal/auditlog"
	"github.com/gracepoint/church-admin-backend/internal/donation"
	"github.com/gracepoint/church-admin-backend/internal/event"
	"github.com/gracepoint/church-admin-backend/internal/member"
	"github.com/gracepoint/church-admin-backend/internal/registration"
	"github.com/gracepoint/church-admin-backend/internal/user"
	"github.com/gracepoint/church-admin-backend/middleware"
	"github.com/gracepoint/church-admin-backend/routes"
	"github.com/gracepoint/church-admin-backend/utils"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)

	if err := db.AutoMigrate(
		&user.User{},
		&member.Member{},
		&event.Event{},
		&registration.Registration{},
		&donation.Donation{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("Redis unavailable, password reset disabled: %v", err)
	}
	utils.InitializeKafka(cfg)
	defer utils.CloseKafka()
	utils.InitMailer(cfg)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.AuditMiddleware())

	routes.Setup(router, cfg, db)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
