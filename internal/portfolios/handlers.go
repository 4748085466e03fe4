package portfolios

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"backoffice-backend/internal/middleware"
	"backoffice-backend/internal/pkg/response"
	"backoffice-backend/internal/pkg/validation"
)

// Handlers bundles portfolio handlers.
type Handlers struct {
	Service *Service
}

type createRequest struct {
	Name        string `json:"name"`
	InvestorID  uint   `json:"investor_id"`
	FundID      uint   `json:"fund_id"`
	CashBalance string `json:"cash_balance"`
}

type updateRequest struct {
	Name        *string `json:"name"`
	CashBalance *string `json:"cash_balance"`
	ReturnRate  *string `json:"return_rate"`
}

// CreatePortfolio POST /api/v1/portfolios
func (h *Handlers) CreatePortfolio(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "name is required")
	}
	if req.InvestorID == 0 || req.FundID == 0 {
		return response.BadRequest(c, "investor_id and fund_id are required")
	}
	cash := decimal.Zero
	if req.CashBalance != "" {
		var err error
		if cash, err = validation.ParseMoney(req.CashBalance); err != nil {
			return response.BadRequest(c, err.Error())
		}
	}

	portfolio, err := h.Service.Create(c.Context(), CreateInput{
		Name:        req.Name,
		InvestorID:  req.InvestorID,
		FundID:      req.FundID,
		CashBalance: cash,
	})
	if err != nil {
		if errors.Is(err, ErrInvestorNotFound) || errors.Is(err, ErrFundNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("create portfolio failed")
		return response.Internal(c)
	}
	return response.SuccessCreated(c, "Portfolio created successfully", portfolio)
}

// GetPortfolio GET /api/v1/portfolios/:id
func (h *Handlers) GetPortfolio(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	portfolio, err := h.Service.Get(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("get portfolio failed")
		return response.Internal(c)
	}
	if portfolio == nil {
		return response.NotFound(c, "Portfolio not found")
	}
	return response.Success(c, "Portfolio fetched successfully", portfolio)
}

// ListPortfolios GET /api/v1/portfolios?fund_id=N&investor_id=N
func (h *Handlers) ListPortfolios(c *fiber.Ctx) error {
	var filter ListFilter
	if raw := c.Query("fund_id"); raw != "" {
		id, err := validation.ParseID(raw)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		filter.FundID = id
	}
	if raw := c.Query("investor_id"); raw != "" {
		id, err := validation.ParseID(raw)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		filter.InvestorID = id
	}
	list, err := h.Service.List(c.Context(), filter)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list portfolios failed")
		return response.Internal(c)
	}
	return response.Success(c, "Portfolios fetched successfully", list)
}

// UpdatePortfolio PATCH /api/v1/portfolios/:id
func (h *Handlers) UpdatePortfolio(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	in := UpdateInput{Name: req.Name}
	if req.CashBalance != nil {
		var cash decimal.Decimal
		if cash, err = validation.ParseMoney(*req.CashBalance); err != nil {
			return response.BadRequest(c, err.Error())
		}
		in.CashBalance = &cash
	}
	if req.ReturnRate != nil {
		rate, err := decimal.NewFromString(*req.ReturnRate)
		if err != nil {
			return response.BadRequest(c, "return_rate must be a decimal")
		}
		in.ReturnRate = &rate
	}

	portfolio, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("update portfolio failed")
		return response.Internal(c)
	}
	if portfolio == nil {
		return response.NotFound(c, "Portfolio not found")
	}
	return response.Success(c, "Portfolio updated successfully", portfolio)
}

// DeletePortfolio DELETE /api/v1/portfolios/:id
func (h *Handlers) DeletePortfolio(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	deleted, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("delete portfolio failed")
		return response.Internal(c)
	}
	if !deleted {
		return response.NotFound(c, "Portfolio not found")
	}
	return response.Success(c, "Portfolio and its assets deleted successfully", nil)
}
