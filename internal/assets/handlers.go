package assets

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

// Handlers bundles asset handlers.
type Handlers struct {
	Service *Service
}

type createRequest struct {
	PortfolioID uint   `json:"portfolio_id"`
	Symbol      string `json:"symbol"`
	Category    string `json:"category"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	CostBasis   string `json:"cost_basis"`
	AcquiredOn  string `json:"acquired_on"`
}

type updateRequest struct {
	PortfolioID *uint   `json:"portfolio_id"`
	Symbol      *string `json:"symbol"`
	Category    *string `json:"category"`
	Quantity    *string `json:"quantity"`
	UnitPrice   *string `json:"unit_price"`
	CostBasis   *string `json:"cost_basis"`
	AcquiredOn  *string `json:"acquired_on"`
}

// CreateAsset POST /api/v1/assets
func (h *Handlers) CreateAsset(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.PortfolioID == 0 {
		return response.BadRequest(c, "portfolio_id is required")
	}
	if req.Symbol == "" {
		return response.BadRequest(c, "symbol is required")
	}
	if !validation.IsValidAssetCategory(req.Category) {
		return response.BadRequest(c, "category must be one of: equity, bond, cash, commodity, real_estate, other")
	}
	quantity, err := validation.ParseQuantity(req.Quantity)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	unitPrice, err := validation.ParseMoney(req.UnitPrice)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	costBasis, err := validation.ParseMoney(req.CostBasis)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	acquiredOn, err := validation.ParseDate(req.AcquiredOn)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	asset, err := h.Service.Create(c.Context(), CreateInput{
		PortfolioID: req.PortfolioID,
		Symbol:      req.Symbol,
		Category:    domain.AssetCategory(req.Category),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CostBasis:   costBasis,
		AcquiredOn:  acquiredOn,
	})
	if err != nil {
		if errors.Is(err, ErrPortfolioNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("create asset failed")
		return response.Internal(c)
	}
	return response.SuccessCreated(c, "Asset created successfully", asset)
}

// UpdateAsset PATCH /api/v1/assets/:id
func (h *Handlers) UpdateAsset(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	in := UpdateInput{Symbol: req.Symbol}
	if req.PortfolioID != nil {
		if *req.PortfolioID == 0 {
			return response.BadRequest(c, "portfolio_id must be a positive integer")
		}
		in.PortfolioID = req.PortfolioID
	}
	if req.Category != nil {
		if !validation.IsValidAssetCategory(*req.Category) {
			return response.BadRequest(c, "category must be one of: equity, bond, cash, commodity, real_estate, other")
		}
		cat := domain.AssetCategory(*req.Category)
		in.Category = &cat
	}
	if req.Quantity != nil {
		var quantity decimal.Decimal
		if quantity, err = validation.ParseQuantity(*req.Quantity); err != nil {
			return response.BadRequest(c, err.Error())
		}
		in.Quantity = &quantity
	}
	if req.UnitPrice != nil {
		var unitPrice decimal.Decimal
		if unitPrice, err = validation.ParseMoney(*req.UnitPrice); err != nil {
			return response.BadRequest(c, err.Error())
		}
		in.UnitPrice = &unitPrice
	}
	if req.CostBasis != nil {
		var costBasis decimal.Decimal
		if costBasis, err = validation.ParseMoney(*req.CostBasis); err != nil {
			return response.BadRequest(c, err.Error())
		}
		in.CostBasis = &costBasis
	}
	if req.AcquiredOn != nil {
		var acquiredOn datatypes.Date
		if acquiredOn, err = validation.ParseDate(*req.AcquiredOn); err != nil {
			return response.BadRequest(c, err.Error())
		}
		in.AcquiredOn = &acquiredOn
	}

	asset, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, ErrPortfolioNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("update asset failed")
		return response.Internal(c)
	}
	if asset == nil {
		return response.NotFound(c, "Asset not found")
	}
	return response.Success(c, "Asset updated successfully", asset)
}

// DeleteAsset DELETE /api/v1/assets/:id
func (h *Handlers) DeleteAsset(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	deleted, err := h.Service.Delete(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("delete asset failed")
		return response.Internal(c)
	}
	if !deleted {
		return response.NotFound(c, "Asset not found")
	}
	return response.Success(c, "Asset deleted successfully", nil)
}

// GetAsset GET /api/v1/assets/:id
func (h *Handlers) GetAsset(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	asset, err := h.Service.Get(c.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("get asset failed")
		return response.Internal(c)
	}
	if asset == nil {
		return response.NotFound(c, "Asset not found")
	}
	return response.Success(c, "Asset fetched successfully", asset)
}

// ListAssets GET /api/v1/assets?portfolio_id=N
func (h *Handlers) ListAssets(c *fiber.Ctx) error {
	portfolioID, err := validation.ParseID(c.Query("portfolio_id"))
	if err != nil {
		return response.BadRequest(c, "portfolio_id query parameter is required")
	}
	list, err := h.Service.ListByPortfolio(c.Context(), portfolioID)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list assets failed")
		return response.Internal(c)
	}
	return response.Success(c, "Assets fetched successfully", list)
}
