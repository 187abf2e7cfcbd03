package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// TopN is how many entries ranked lists (best sellers, top locations) keep
const TopN = 5

// Period is a named reporting window
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod parses a named period
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily":
		return PeriodDaily, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	case "yearly":
		return PeriodYearly, nil
	}
	return "", shared.NewDomainError("INVALID_PERIOD", "Period must be one of daily, weekly, monthly, yearly")
}

// Range resolves the period to a [from, to] day range ending at now
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	to := Day(now)
	switch p {
	case PeriodWeekly:
		return to.AddDate(0, 0, -6), to
	case PeriodMonthly:
		return to.AddDate(0, -1, 1), to
	case PeriodYearly:
		return to.AddDate(-1, 0, 1), to
	default:
		return to, to
	}
}

// Summary is the in-process fold of a range of daily rollups
type Summary struct {
	From            time.Time        `json:"from"`
	To              time.Time        `json:"to"`
	Sales           decimal.Decimal  `json:"sales"`
	Orders          int64            `json:"orders"`
	CancelledOrders int64            `json:"cancelled_orders"`
	NewCustomers    int64            `json:"new_customers"`
	Traffic         int64            `json:"traffic"`
	BestSellers     []ProductStat    `json:"best_sellers"`
	TopLocations    []LocationStat   `json:"top_locations"`
	PaymentMethods  map[string]int64 `json:"payment_methods"`
}

// Summarize folds a range of day documents into a single summary:
// counters are summed, breakdowns merged by key, and the ranked lists
// truncated to the top five by descending metric. Every call re-aggregates
// from scratch; nothing here streams.
func Summarize(from, to time.Time, days []DailyStat) Summary {
	s := Summary{
		From:           Day(from),
		To:             Day(to),
		Sales:          decimal.Zero,
		PaymentMethods: make(map[string]int64),
	}

	products := make(map[string]*ProductStat)
	locations := make(map[string]*LocationStat)

	for _, day := range days {
		s.Sales = s.Sales.Add(day.Sales)
		s.Orders += day.Orders
		s.CancelledOrders += day.CancelledOrders
		s.NewCustomers += day.NewCustomers
		s.Traffic += day.Traffic

		for _, p := range day.Products {
			if existing, ok := products[p.ProductID]; ok {
				existing.Quantity += p.Quantity
				existing.Revenue = existing.Revenue.Add(p.Revenue)
			} else {
				copied := p
				products[p.ProductID] = &copied
			}
		}

		for _, l := range day.Locations {
			if existing, ok := locations[l.City]; ok {
				existing.Orders += l.Orders
			} else {
				copied := l
				locations[l.City] = &copied
			}
		}

		for method, count := range day.PaymentMethods {
			s.PaymentMethods[method] += count
		}
	}

	s.BestSellers = rankProducts(products)
	s.TopLocations = rankLocations(locations)

	return s
}

func rankProducts(products map[string]*ProductStat) []ProductStat {
	ranked := make([]ProductStat, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, *p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	return ranked
}

func rankLocations(locations map[string]*LocationStat) []LocationStat {
	ranked := make([]LocationStat, 0, len(locations))
	for _, l := range locations {
		ranked = append(ranked, *l)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Orders != ranked[j].Orders {
			return ranked[i].Orders > ranked[j].Orders
		}
		return ranked[i].City < ranked[j].City
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	return ranked
}
