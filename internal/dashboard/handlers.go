package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"backoffice-backend/internal/middleware"
	"backoffice-backend/internal/pkg/response"
)

// Handlers bundles dashboard handlers.
type Handlers struct {
	Service *Service
}

// GetSummary GET /api/v1/dashboard/summary
func (h *Handlers) GetSummary(c *fiber.Ctx) error {
	summary, err := h.Service.GetSummary(c.Context())
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("dashboard summary failed")
		return response.Internal(c)
	}
	return response.Success(c, "Summary fetched successfully", summary)
}
