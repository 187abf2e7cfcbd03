package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderDelta is the per-order increment applied to a day document
type OrderDelta struct {
	Occurred      time.Time
	Amount        decimal.Decimal
	City          string
	PaymentMethod string
	NewCustomer   bool
	Products      []ProductStat
}

// DailyStatRepository defines the analytics document store.
// Writes are upserts keyed by calendar day; reads fetch every document in
// a date range for in-process folding.
type DailyStatRepository interface {
	RecordOrder(ctx context.Context, delta OrderDelta) error
	RecordCancellation(ctx context.Context, occurred time.Time) error
	RecordTraffic(ctx context.Context, day time.Time, visits int64) error
	FindRange(ctx context.Context, from, to time.Time) ([]DailyStat, error)
}
