package handlers

import (
	"gorm.io/gorm"

	"github.com/dmedina-dev/consultorio-backend/internal/config"
	"github.com/dmedina-dev/consultorio-backend/internal/database"
	"github.com/dmedina-dev/consultorio-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewHealthHandler(cfg *config.Config, db *gorm.DB) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db}
}

// Root answers GET / with the app identity.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{
		App:     h.cfg.AppName,
		Version: h.cfg.AppVersion,
		Status:  "running",
	})
}

// Check answers GET /health, including a database ping.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "not configured"
	} else if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:  "healthy",
		Message: "Service is up and running",
		DB:      dbStatus,
	})
}
