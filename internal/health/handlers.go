package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers exposes the liveness endpoint.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

type dependency struct {
	Status string `json:"status"`
}

type healthBody struct {
	Status       string                `json:"status"`
	Dependencies map[string]dependency `json:"dependencies"`
}

// Check handles GET /health by pinging the database and Redis. Overall
// status is "ok" only when the database answers; Redis is optional (the
// dashboard degrades without it).
func (h *Handlers) Check(c *fiber.Ctx) error {
	body := healthBody{
		Status:       "ok",
		Dependencies: map[string]dependency{},
	}

	dbStatus := "disconnected"
	if h.DB != nil {
		if sqlDB, err := h.DB.DB(); err == nil && sqlDB.Ping() == nil {
			dbStatus = "connected"
		}
	}
	body.Dependencies["database"] = dependency{Status: dbStatus}
	if dbStatus != "connected" {
		body.Status = "issue"
	}

	redisStatus := "disconnected"
	if h.Rdb != nil && h.Rdb.Ping(c.Context()).Err() == nil {
		redisStatus = "connected"
	}
	body.Dependencies["redis"] = dependency{Status: redisStatus}

	code := fiber.StatusOK
	if body.Status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(body)
}
