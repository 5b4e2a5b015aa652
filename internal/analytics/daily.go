// Package analytics implements the trading performance statistics engine:
// daily aggregation, equity/drawdown curves, streak detection, consistency
// scoring, period-scoped re-baselined views, and calendar-bounded rollups.
//
// Every function is a pure computation over an immutable snapshot of the
// trade list: no I/O, no global state, identical inputs produce identical
// outputs. Only CLOSED trades participate in any statistic.
package analytics

import (
	"sort"

	"tradestats/internal/models"
)

// DailyBucket holds the per-day aggregate of closed trades sharing an
// effective date. WinCount + LossCount may be less than TradeCount: trades
// with exactly zero P&L count toward neither.
type DailyBucket struct {
	PnL        float64
	TradeCount int
	WinCount   int
	LossCount  int
}

// Aggregate groups closed trades by effective date. Open trades and records
// without a usable date are skipped rather than aborting the computation.
// Summation is commutative, so input order does not matter; consumers must
// iterate the buckets via SortedDates.
func Aggregate(trades []models.Trade) map[string]DailyBucket {
	buckets := make(map[string]DailyBucket)
	for i := range trades {
		t := &trades[i]
		if !t.IsClosed() {
			continue
		}
		date := t.EffectiveDate()
		if !ValidDate(date) {
			continue
		}
		b := buckets[date]
		b.PnL += t.PnL
		b.TradeCount++
		switch {
		case t.PnL > 0:
			b.WinCount++
		case t.PnL < 0:
			b.LossCount++
		}
		buckets[date] = b
	}
	return buckets
}

// SortedDates returns the bucket keys in ascending order. Plain string sort
// is correct because dates are zero-padded YYYY-MM-DD.
func SortedDates(buckets map[string]DailyBucket) []string {
	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
