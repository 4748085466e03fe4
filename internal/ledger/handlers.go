package ledger

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"backoffice-backend/internal/domain"
	"backoffice-backend/internal/middleware"
	"backoffice-backend/internal/pkg/response"
	"backoffice-backend/internal/pkg/validation"
)

// Handlers bundles transaction handlers.
type Handlers struct {
	Service *Service
}

type createRequest struct {
	AccountID   uint   `json:"account_id"`
	Side        string `json:"side"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Reference   string `json:"reference"`
}

type updateRequest struct {
	AccountID   *uint   `json:"account_id"`
	Side        *string `json:"side"`
	Amount      *string `json:"amount"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Reference   *string `json:"reference"`
}

// CreateTransaction POST /api/v1/transactions
func (h *Handlers) CreateTransaction(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.AccountID == 0 {
		return response.BadRequest(c, "account_id is required")
	}
	if !validation.IsValidSide(req.Side) {
		return response.BadRequest(c, "side must be one of: debit, credit")
	}
	amount, err := validation.ParseAmount(req.Amount)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	date, err := validation.ParseDate(req.Date)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	trn, err := h.Service.Create(c.Context(), CreateInput{
		AccountID:   req.AccountID,
		Side:        domain.Side(req.Side),
		Amount:      amount,
		Date:        date,
		Description: req.Description,
		Reference:   req.Reference,
	})
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("create transaction failed")
		return response.Internal(c)
	}
	return response.SuccessCreated(c, "Transaction created successfully", trn)
}

// UpdateTransaction PATCH /api/v1/transactions/:id
func (h *Handlers) UpdateTransaction(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	in := UpdateInput{
		Description: req.Description,
		Reference:   req.Reference,
	}
	if req.AccountID != nil {
		if *req.AccountID == 0 {
			return response.BadRequest(c, "account_id must be a positive integer")
		}
		in.AccountID = req.AccountID
	}
	if req.Side != nil {
		if !validation.IsValidSide(*req.Side) {
			return response.BadRequest(c, "side must be one of: debit, credit")
		}
		side := domain.Side(*req.Side)
		in.Side = &side
	}
	if req.Amount != nil {
		var amount decimal.Decimal
		if amount, err = validation.ParseAmount(*req.Amount); err != nil {
			return response.BadRequest(c, err.Error())
		}
		in.Amount = &amount
	}
	if req.Date != nil {
		var date datatypes.Date
		if date, err = validation.ParseDate(*req.Date); err != nil {
			return response.BadRequest(c, err.Error())
		}
		in.Date = &date
	}

	trn, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("update transaction failed")
		return response.Internal(c)
	}
	if trn == nil {
		return response.NotFound(c, "Transaction not found")
	}
	return response.Success(c, "Transaction updated successfully", trn)
}

// DeleteTransaction DELETE /api/v1/transactions/:id
func (h *Handlers) DeleteTransaction(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	deleted, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("delete transaction failed")
		return response.Internal(c)
	}
	if !deleted {
		return response.NotFound(c, "Transaction not found")
	}
	return response.Success(c, "Transaction deleted successfully", nil)
}

// GetTransaction GET /api/v1/transactions/:id
func (h *Handlers) GetTransaction(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	trn, err := h.Service.Get(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("get transaction failed")
		return response.Internal(c)
	}
	if trn == nil {
		return response.NotFound(c, "Transaction not found")
	}
	return response.Success(c, "Transaction fetched successfully", trn)
}

// ListTransactions GET /api/v1/transactions?account_id=N
func (h *Handlers) ListTransactions(c *fiber.Ctx) error {
	accountID, err := validation.ParseID(c.Query("account_id"))
	if err != nil {
		return response.BadRequest(c, "account_id query parameter is required")
	}
	trns, err := h.Service.ListByAccount(c.Context(), accountID)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list transactions failed")
		return response.Internal(c)
	}
	return response.Success(c, "Transactions fetched successfully", trns)
}
