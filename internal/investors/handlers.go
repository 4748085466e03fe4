package investors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"backoffice-backend/internal/middleware"
	"backoffice-backend/internal/pkg/response"
	"backoffice-backend/internal/pkg/validation"
)

// Handlers bundles investor handlers.
type Handlers struct {
	Service *Service
}

type createRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	RiskProfile string `json:"risk_profile"`
}

type updateRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	RiskProfile *string `json:"risk_profile"`
}

// CreateInvestor POST /api/v1/investors
func (h *Handlers) CreateInvestor(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "name is required")
	}
	investor, err := h.Service.Create(c.Context(), CreateInput(req))
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("create investor failed")
		return response.Internal(c)
	}
	return response.SuccessCreated(c, "Investor created successfully", investor)
}

// GetInvestor GET /api/v1/investors/:id
func (h *Handlers) GetInvestor(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	investor, err := h.Service.Get(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("get investor failed")
		return response.Internal(c)
	}
	if investor == nil {
		return response.NotFound(c, "Investor not found")
	}
	return response.Success(c, "Investor fetched successfully", investor)
}

// ListInvestors GET /api/v1/investors
func (h *Handlers) ListInvestors(c *fiber.Ctx) error {
	list, err := h.Service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list investors failed")
		return response.Internal(c)
	}
	return response.Success(c, "Investors fetched successfully", list)
}

// UpdateInvestor PATCH /api/v1/investors/:id
func (h *Handlers) UpdateInvestor(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	investor, err := h.Service.Update(c.Context(), id, UpdateInput(req))
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("update investor failed")
		return response.Internal(c)
	}
	if investor == nil {
		return response.NotFound(c, "Investor not found")
	}
	return response.Success(c, "Investor updated successfully", investor)
}

// DeleteInvestor DELETE /api/v1/investors/:id
func (h *Handlers) DeleteInvestor(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	deleted, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrInvestorInUse) {
			return response.Conflict(c, err.Error())
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("delete investor failed")
		return response.Internal(c)
	}
	if !deleted {
		return response.NotFound(c, "Investor not found")
	}
	return response.Success(c, "Investor deleted successfully", nil)
}
