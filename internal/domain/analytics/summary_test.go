package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestDay(t *testing.T) {
	ts := time.Date(2026, 8, 29, 15, 42, 7, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), Day(ts))

	// Non-UTC timestamps are converted before truncation
	loc := time.FixedZone("UTC+9", 9*3600)
	late := time.Date(2026, 8, 30, 5, 0, 0, 0, loc) // 2026-08-29T20:00Z
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), Day(late))
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"daily", PeriodDaily, false},
		{"", PeriodDaily, false},
		{"Weekly", PeriodWeekly, false},
		{"MONTHLY", PeriodMonthly, false},
		{"yearly", PeriodYearly, false},
		{"quarterly", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_Range(t *testing.T) {
	now := time.Date(2026, 8, 29, 13, 0, 0, 0, time.UTC)

	from, to := PeriodDaily.Range(now)
	assert.Equal(t, day("2026-08-29"), from)
	assert.Equal(t, day("2026-08-29"), to)

	from, to = PeriodWeekly.Range(now)
	assert.Equal(t, day("2026-08-23"), from)
	assert.Equal(t, day("2026-08-29"), to)

	from, _ = PeriodMonthly.Range(now)
	assert.Equal(t, day("2026-07-30"), from)

	from, _ = PeriodYearly.Range(now)
	assert.Equal(t, day("2025-08-30"), from)
}

func TestSummarize(t *testing.T) {
	t.Run("empty range yields a zero summary", func(t *testing.T) {
		s := Summarize(day("2026-08-01"), day("2026-08-07"), nil)

		assert.True(t, s.Sales.IsZero())
		assert.Zero(t, s.Orders)
		assert.Empty(t, s.BestSellers)
		assert.Empty(t, s.TopLocations)
		assert.Empty(t, s.PaymentMethods)
	})

	t.Run("sums counters across days", func(t *testing.T) {
		days := []DailyStat{
			{
				Date:            day("2026-08-01"),
				Sales:           decimal.NewFromFloat(100.50),
				Orders:          3,
				CancelledOrders: 1,
				NewCustomers:    2,
				Traffic:         40,
			},
			{
				Date:         day("2026-08-02"),
				Sales:        decimal.NewFromFloat(49.50),
				Orders:       2,
				NewCustomers: 1,
				Traffic:      25,
			},
		}

		s := Summarize(day("2026-08-01"), day("2026-08-02"), days)

		assert.True(t, s.Sales.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, int64(5), s.Orders)
		assert.Equal(t, int64(1), s.CancelledOrders)
		assert.Equal(t, int64(3), s.NewCustomers)
		assert.Equal(t, int64(65), s.Traffic)
	})

	t.Run("merges product breakdowns by product", func(t *testing.T) {
		days := []DailyStat{
			{
				Date: day("2026-08-01"),
				Products: []ProductStat{
					{ProductID: "p1", Name: "Widget", Quantity: 3, Revenue: decimal.NewFromInt(30)},
					{ProductID: "p2", Name: "Gadget", Quantity: 1, Revenue: decimal.NewFromInt(5)},
				},
			},
			{
				Date: day("2026-08-02"),
				Products: []ProductStat{
					{ProductID: "p1", Name: "Widget", Quantity: 2, Revenue: decimal.NewFromInt(20)},
				},
			},
		}

		s := Summarize(day("2026-08-01"), day("2026-08-02"), days)

		require.Len(t, s.BestSellers, 2)
		assert.Equal(t, "p1", s.BestSellers[0].ProductID)
		assert.Equal(t, int64(5), s.BestSellers[0].Quantity)
		assert.True(t, s.BestSellers[0].Revenue.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "p2", s.BestSellers[1].ProductID)
	})

	t.Run("truncates ranked lists to the top five", func(t *testing.T) {
		stat := DailyStat{Date: day("2026-08-01")}
		for i := 0; i < 8; i++ {
			stat.Products = append(stat.Products, ProductStat{
				ProductID: fmt.Sprintf("p%d", i),
				Quantity:  int64(i + 1),
				Revenue:   decimal.NewFromInt(int64(i)),
			})
			stat.Locations = append(stat.Locations, LocationStat{
				City:   fmt.Sprintf("city-%d", i),
				Orders: int64(i + 1),
			})
		}

		s := Summarize(day("2026-08-01"), day("2026-08-01"), []DailyStat{stat})

		require.Len(t, s.BestSellers, TopN)
		assert.Equal(t, "p7", s.BestSellers[0].ProductID)
		assert.Equal(t, "p3", s.BestSellers[TopN-1].ProductID)

		require.Len(t, s.TopLocations, TopN)
		assert.Equal(t, "city-7", s.TopLocations[0].City)
	})

	t.Run("ties rank deterministically", func(t *testing.T) {
		stat := DailyStat{
			Date: day("2026-08-01"),
			Products: []ProductStat{
				{ProductID: "b", Quantity: 2},
				{ProductID: "a", Quantity: 2},
			},
		}

		s := Summarize(day("2026-08-01"), day("2026-08-01"), []DailyStat{stat})

		require.Len(t, s.BestSellers, 2)
		assert.Equal(t, "a", s.BestSellers[0].ProductID)
		assert.Equal(t, "b", s.BestSellers[1].ProductID)
	})

	t.Run("merges payment method counts", func(t *testing.T) {
		days := []DailyStat{
			{Date: day("2026-08-01"), PaymentMethods: map[string]int64{"cod": 3}},
			{Date: day("2026-08-02"), PaymentMethods: map[string]int64{"cod": 2}},
		}

		s := Summarize(day("2026-08-01"), day("2026-08-02"), days)
		assert.Equal(t, int64(5), s.PaymentMethods["cod"])
	})
}
