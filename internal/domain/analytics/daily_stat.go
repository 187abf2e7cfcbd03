package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStat is a per-product breakdown entry within a daily rollup
type ProductStat struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// LocationStat is a per-city breakdown entry within a daily rollup
type LocationStat struct {
	City   string `json:"city"`
	Orders int64  `json:"orders"`
}

// DailyStat is one rollup document per calendar day. Date is truncated to
// UTC midnight; the store upserts by date so concurrent writers increment
// the same document.
type DailyStat struct {
	Date            time.Time        `json:"date"`
	Sales           decimal.Decimal  `json:"sales"`
	Orders          int64            `json:"orders"`
	CancelledOrders int64            `json:"cancelled_orders"`
	NewCustomers    int64            `json:"new_customers"`
	Traffic         int64            `json:"traffic"`
	Products        []ProductStat    `json:"products"`
	Locations       []LocationStat   `json:"locations"`
	PaymentMethods  map[string]int64 `json:"payment_methods"`
}

// Day truncates a timestamp to UTC midnight, the key for daily rollups
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
