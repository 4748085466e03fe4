package funds

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"backoffice-backend/internal/middleware"
	"backoffice-backend/internal/pkg/response"
	"backoffice-backend/internal/pkg/validation"
)

// Handlers bundles fund handlers.
type Handlers struct {
	Service *Service
}

type createRequest struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
	Currency string `json:"currency"`
}

type updateRequest struct {
	Name     *string `json:"name"`
	Strategy *string `json:"strategy"`
}

// CreateFund POST /api/v1/funds
func (h *Handlers) CreateFund(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "name is required")
	}
	fund, err := h.Service.Create(c.Context(), CreateInput(req))
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("create fund failed")
		return response.Internal(c)
	}
	return response.SuccessCreated(c, "Fund created successfully", fund)
}

// GetFund GET /api/v1/funds/:id
func (h *Handlers) GetFund(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	fund, err := h.Service.Get(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("get fund failed")
		return response.Internal(c)
	}
	if fund == nil {
		return response.NotFound(c, "Fund not found")
	}
	return response.Success(c, "Fund fetched successfully", fund)
}

// ListFunds GET /api/v1/funds
func (h *Handlers) ListFunds(c *fiber.Ctx) error {
	list, err := h.Service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list funds failed")
		return response.Internal(c)
	}
	return response.Success(c, "Funds fetched successfully", list)
}

// UpdateFund PATCH /api/v1/funds/:id
func (h *Handlers) UpdateFund(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	fund, err := h.Service.Update(c.Context(), id, UpdateInput(req))
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("update fund failed")
		return response.Internal(c)
	}
	if fund == nil {
		return response.NotFound(c, "Fund not found")
	}
	return response.Success(c, "Fund updated successfully", fund)
}

// DeleteFund DELETE /api/v1/funds/:id
func (h *Handlers) DeleteFund(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	deleted, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFundInUse) {
			return response.Conflict(c, err.Error())
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("delete fund failed")
		return response.Internal(c)
	}
	if !deleted {
		return response.NotFound(c, "Fund not found")
	}
	return response.Success(c, "Fund deleted successfully", nil)
}
