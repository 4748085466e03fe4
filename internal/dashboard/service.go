package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice-backend/internal/domain"
)

const cacheKey = "dashboard:summary"
const defaultTTL = 30 * time.Second

// Summary is the read-side aggregation shown on the admin landing page. It is
// derived entirely from current rows and carries no consistency obligation of
// its own, so a short cache window is acceptable.
type Summary struct {
	Accounts       int64                      `json:"accounts"`
	Transactions   int64                      `json:"transactions"`
	Funds          int64                      `json:"funds"`
	Investors      int64                      `json:"investors"`
	Portfolios     int64                      `json:"portfolios"`
	Assets         int64                      `json:"assets"`
	BalancesByType map[string]decimal.Decimal `json:"balances_by_type"`
	TotalManaged   decimal.Decimal            `json:"total_managed"`
}

// Service computes the summary from SQL and caches it in Redis. A nil or
// unreachable Redis degrades to uncached reads rather than failing the
// request.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
	TTL time.Duration
}

// GetSummary returns the cached summary when fresh, otherwise recomputes and
// repopulates the cache.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	if s.Rdb != nil {
		if raw, err := s.Rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached Summary
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.Rdb != nil {
		ttl := s.TTL
		if ttl <= 0 {
			ttl = defaultTTL
		}
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.Rdb.Set(ctx, cacheKey, raw, ttl).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary; callers may use it after bulk imports.
func (s *Service) Invalidate(ctx context.Context) {
	if s.Rdb != nil {
		_ = s.Rdb.Del(ctx, cacheKey).Err()
	}
}

func (s *Service) compute(ctx context.Context) (*Summary, error) {
	db := s.DB.WithContext(ctx)
	summary := &Summary{BalancesByType: map[string]decimal.Decimal{}}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&domain.Account{}, &summary.Accounts},
		{&domain.Transaction{}, &summary.Transactions},
		{&domain.Fund{}, &summary.Funds},
		{&domain.Investor{}, &summary.Investors},
		{&domain.Portfolio{}, &summary.Portfolios},
		{&domain.Asset{}, &summary.Assets},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var byType []struct {
		Type  string
		Total decimal.Decimal
	}
	if err := db.Model(&domain.Account{}).
		Select("type AS type, COALESCE(SUM(balance), 0) AS total").
		Group("type").
		Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, row := range byType {
		summary.BalancesByType[row.Type] = row.Total
	}

	row := db.Model(&domain.Portfolio{}).
		Select("COALESCE(SUM(total_value), 0)").
		Row()
	if err := row.Scan(&summary.TotalManaged); err != nil {
		return nil, err
	}

	return summary, nil
}
