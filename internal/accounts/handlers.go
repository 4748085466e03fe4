package accounts

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"backoffice-backend/internal/domain"
	"backoffice-backend/internal/middleware"
	"backoffice-backend/internal/pkg/response"
	"backoffice-backend/internal/pkg/validation"
)

// Handlers bundles account handlers.
type Handlers struct {
	Service *Service
}

type createRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	OpeningBalance string `json:"opening_balance"`
}

type renameRequest struct {
	Name string `json:"name"`
}

// CreateAccount POST /api/v1/accounts
func (h *Handlers) CreateAccount(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "name is required")
	}
	if !validation.IsValidAccountType(req.Type) {
		return response.BadRequest(c, "type must be one of: asset, liability, equity, revenue, expense")
	}
	opening := decimal.Zero
	if req.OpeningBalance != "" {
		var err error
		if opening, err = validation.ParseMoney(req.OpeningBalance); err != nil {
			return response.BadRequest(c, err.Error())
		}
	}

	account, err := h.Service.Create(c.Context(), CreateInput{
		Name:           req.Name,
		Type:           domain.AccountType(req.Type),
		OpeningBalance: opening,
	})
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("create account failed")
		return response.Internal(c)
	}
	return response.SuccessCreated(c, "Account created successfully", account)
}

// GetAccount GET /api/v1/accounts/:id
func (h *Handlers) GetAccount(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	account, err := h.Service.Get(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("get account failed")
		return response.Internal(c)
	}
	if account == nil {
		return response.NotFound(c, "Account not found")
	}
	return response.Success(c, "Account fetched successfully", account)
}

// ListAccounts GET /api/v1/accounts
func (h *Handlers) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.Service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list accounts failed")
		return response.Internal(c)
	}
	return response.Success(c, "Accounts fetched successfully", accounts)
}

// RenameAccount PATCH /api/v1/accounts/:id
func (h *Handlers) RenameAccount(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var req renameRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return response.BadRequest(c, "name is required")
	}
	account, err := h.Service.Rename(c.Context(), id, req.Name)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("rename account failed")
		return response.Internal(c)
	}
	if account == nil {
		return response.NotFound(c, "Account not found")
	}
	return response.Success(c, "Account updated successfully", account)
}

// DeleteAccount DELETE /api/v1/accounts/:id
func (h *Handlers) DeleteAccount(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	deleted, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("delete account failed")
		return response.Internal(c)
	}
	if !deleted {
		return response.NotFound(c, "Account not found")
	}
	return response.Success(c, "Account and its transactions deleted successfully", nil)
}
