package app

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"backoffice-backend/internal/accounts"
	"backoffice-backend/internal/assets"
	"backoffice-backend/internal/config"
	"backoffice-backend/internal/dashboard"
	"backoffice-backend/internal/database"
	"backoffice-backend/internal/funds"
	"backoffice-backend/internal/health"
	"backoffice-backend/internal/investors"
	"backoffice-backend/internal/ledger"
	"backoffice-backend/internal/middleware"
	"backoffice-backend/internal/portfolios"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. DB and Redis handles are returned for startup checks and
// shutdown.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedSuffix: cfg.FrontendURLEndsWith}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/health", healthHandlers.Check)

	// db may be nil when DATABASE_URL is unset (e.g. smoke tests); only the
	// health route is mounted then.
	if db != nil {
		api := app.Group("/api/v1", middleware.RequireAdminKey(cfg.AdminKeyHash))

		accountHandlers := &accounts.Handlers{Service: &accounts.Service{DB: db}}
		accountGroup := api.Group("/accounts")
		accountGroup.Post("/", accountHandlers.CreateAccount)
		accountGroup.Get("/", accountHandlers.ListAccounts)
		accountGroup.Get("/:id", accountHandlers.GetAccount)
		accountGroup.Patch("/:id", accountHandlers.RenameAccount)
		accountGroup.Delete("/:id", accountHandlers.DeleteAccount)

		ledgerHandlers := &ledger.Handlers{Service: &ledger.Service{DB: db}}
		txGroup := api.Group("/transactions")
		txGroup.Post("/", ledgerHandlers.CreateTransaction)
		txGroup.Get("/", ledgerHandlers.ListTransactions)
		txGroup.Get("/:id", ledgerHandlers.GetTransaction)
		txGroup.Patch("/:id", ledgerHandlers.UpdateTransaction)
		txGroup.Delete("/:id", ledgerHandlers.DeleteTransaction)

		fundHandlers := &funds.Handlers{Service: &funds.Service{DB: db}}
		fundGroup := api.Group("/funds")
		fundGroup.Post("/", fundHandlers.CreateFund)
		fundGroup.Get("/", fundHandlers.ListFunds)
		fundGroup.Get("/:id", fundHandlers.GetFund)
		fundGroup.Patch("/:id", fundHandlers.UpdateFund)
		fundGroup.Delete("/:id", fundHandlers.DeleteFund)

		investorHandlers := &investors.Handlers{Service: &investors.Service{DB: db}}
		investorGroup := api.Group("/investors")
		investorGroup.Post("/", investorHandlers.CreateInvestor)
		investorGroup.Get("/", investorHandlers.ListInvestors)
		investorGroup.Get("/:id", investorHandlers.GetInvestor)
		investorGroup.Patch("/:id", investorHandlers.UpdateInvestor)
		investorGroup.Delete("/:id", investorHandlers.DeleteInvestor)

		portfolioHandlers := &portfolios.Handlers{Service: &portfolios.Service{DB: db}}
		portfolioGroup := api.Group("/portfolios")
		portfolioGroup.Post("/", portfolioHandlers.CreatePortfolio)
		portfolioGroup.Get("/", portfolioHandlers.ListPortfolios)
		portfolioGroup.Get("/:id", portfolioHandlers.GetPortfolio)
		portfolioGroup.Patch("/:id", portfolioHandlers.UpdatePortfolio)
		portfolioGroup.Delete("/:id", portfolioHandlers.DeletePortfolio)

		assetHandlers := &assets.Handlers{Service: &assets.Service{DB: db}}
		assetGroup := api.Group("/assets")
		assetGroup.Post("/", assetHandlers.CreateAsset)
		assetGroup.Get("/", assetHandlers.ListAssets)
		assetGroup.Get("/:id", assetHandlers.GetAsset)
		assetGroup.Patch("/:id", assetHandlers.UpdateAsset)
		assetGroup.Delete("/:id", assetHandlers.DeleteAsset)

		dashboardHandlers := &dashboard.Handlers{Service: &dashboard.Service{
			DB:  db,
			Rdb: rdb,
			TTL: time.Duration(cfg.DashboardCacheTTL) * time.Second,
		}}
		api.Get("/dashboard/summary", dashboardHandlers.GetSummary)
	}

	return app, db, rdb, nil
}
