package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backoffice-backend/internal/domain"
)

func setupAssetsHandlerTest(t *testing.T) (*fiber.App, *Service, *gorm.DB) {
	svc, db := setupAssetsTest(t)
	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Post("/api/v1/assets", h.CreateAsset)
	app.Delete("/api/v1/assets/:id", h.DeleteAsset)
	return app, svc, db
}

func TestCreateAsset_OK(t *testing.T) {
	app, _, db := setupAssetsHandlerTest(t)
	portfolio := newPortfolio(t, db)

	body, _ := json.Marshal(map[string]interface{}{
		"portfolio_id": portfolio.ID,
		"symbol":       "ACME",
		"category":     "equity",
		"quantity":     "10",
		"unit_price":   "25.00",
		"cost_basis":   "240.00",
		"acquired_on":  "2023-06-01",
	})
	req := httptest.NewRequest("POST", "/api/v1/assets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var reloaded domain.Portfolio
	require.NoError(t, db.First(&reloaded, portfolio.ID).Error)
	assert.True(t, reloaded.TotalValue.Equal(decimal.RequireFromString("250.00")))
}

func TestCreateAsset_InvalidCategory(t *testing.T) {
	app, _, db := setupAssetsHandlerTest(t)
	portfolio := newPortfolio(t, db)

	body, _ := json.Marshal(map[string]interface{}{
		"portfolio_id": portfolio.ID,
		"symbol":       "ACME",
		"category":     "crypto",
		"quantity":     "10",
		"unit_price":   "25.00",
		"cost_basis":   "240.00",
		"acquired_on":  "2023-06-01",
	})
	req := httptest.NewRequest("POST", "/api/v1/assets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteAsset_RecomputesViaHTTP(t *testing.T) {
	app, svc, db := setupAssetsHandlerTest(t)
	portfolio := newPortfolio(t, db)
	asset := createAsset(t, svc, portfolio.ID, "ACME", "10", "25.00")

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/assets/%d", asset.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assertTotal(t, db, portfolio.ID, "0")
}
