package analytics

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/domain/analytics"
	"github.com/storefront/backend/internal/domain/shared"
)

// AnalyticsService answers reporting queries over the daily rollup store.
// Summaries are folded in process from the per-day documents; no
// aggregation is pushed down to the store.
type AnalyticsService struct {
	statRepo analytics.DailyStatRepository
	now      func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(statRepo analytics.DailyStatRepository) *AnalyticsService {
	return &AnalyticsService{
		statRepo: statRepo,
		now:      time.Now,
	}
}

// Summary folds the rollups for a named period ending today
func (s *AnalyticsService) Summary(ctx context.Context, period string) (*analytics.Summary, error) {
	p, err := analytics.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	from, to := p.Range(s.now())
	return s.summarize(ctx, from, to)
}

// Range folds the rollups for an explicit date range
func (s *AnalyticsService) Range(ctx context.Context, from, to time.Time) (*analytics.Summary, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "End date cannot be before start date")
	}
	return s.summarize(ctx, analytics.Day(from), analytics.Day(to))
}

// RecordVisit increments today's traffic counter
func (s *AnalyticsService) RecordVisit(ctx context.Context) error {
	return s.statRepo.RecordTraffic(ctx, s.now(), 1)
}

func (s *AnalyticsService) summarize(ctx context.Context, from, to time.Time) (*analytics.Summary, error) {
	days, err := s.statRepo.FindRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary := analytics.Summarize(from, to, days)
	return &summary, nil
}
