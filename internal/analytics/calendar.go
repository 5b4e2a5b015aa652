package analytics

import (
	"time"

	"tradestats/internal/models"
)

// Calendar-grid placement intentionally uses each trade's opening date, not
// its effective/close date: the grid answers "when did I put the position
// on", while the period resolver answers "when was the P&L realized". The
// two conventions live behind separately named functions and are never
// merged.

// WeekSummary holds a Sunday-Saturday week's totals, clamped to the
// displayed month. TradingDays counts distinct dates with at least one
// trade inside the clamped range.
type WeekSummary struct {
	Start       string // clamped range start, YYYY-MM-DD
	End         string // clamped range end, YYYY-MM-DD
	Saturday    string // identifying Saturday of the physical week
	PnL         float64
	TradeCount  int
	TradingDays int
}

// WeekTotals sums closed trades opened within the Sunday-Saturday week
// identified by its Saturday, with both ends clamped to the displayed
// month. A week straddling a month boundary therefore reports different
// totals depending on which month's grid is asking.
func WeekTotals(saturday time.Time, year int, month time.Month, trades []models.Trade) WeekSummary {
	saturday = Midnight(saturday)
	sunday := saturday.AddDate(0, 0, -6)
	first, last := MonthBounds(year, month)

	ws := WeekSummary{Saturday: FormatDate(saturday)}
	start, end, ok := clampRange(sunday, saturday, first, last)
	if !ok {
		return ws
	}
	ws.Start = FormatDate(start)
	ws.End = FormatDate(end)

	lo, hi := ws.Start, ws.End
	seen := make(map[string]struct{})
	for i := range trades {
		t := &trades[i]
		if !t.IsClosed() || !ValidDate(t.Date) {
			continue
		}
		if t.Date < lo || t.Date > hi {
			continue
		}
		ws.PnL += t.PnL
		ws.TradeCount++
		seen[t.Date] = struct{}{}
	}
	ws.TradingDays = len(seen)
	return ws
}

// MonthView is the data behind a month's calendar grid: per-day buckets
// keyed by opening date plus one WeekSummary per grid row.
type MonthView struct {
	Year  int
	Month time.Month
	Days  map[string]DailyBucket
	Weeks []WeekSummary
}

// ComputeMonthView assembles the calendar grid for a month. Week rows are
// identified by their Saturdays, starting with the week containing the 1st.
// The trailing "phantom" week — the block that begins after the month's
// last day but fills the grid's empty trailing cells — is clamped to the
// same month and included only when it has at least one trading day.
func ComputeMonthView(year int, month time.Month, trades []models.Trade) MonthView {
	first, last := MonthBounds(year, month)

	mv := MonthView{
		Year:  year,
		Month: month,
		Days:  make(map[string]DailyBucket),
	}

	lo, hi := FormatDate(first), FormatDate(last)
	for i := range trades {
		t := &trades[i]
		if !t.IsClosed() || !ValidDate(t.Date) {
			continue
		}
		if t.Date < lo || t.Date > hi {
			continue
		}
		b := mv.Days[t.Date]
		b.PnL += t.PnL
		b.TradeCount++
		switch {
		case t.PnL > 0:
			b.WinCount++
		case t.PnL < 0:
			b.LossCount++
		}
		mv.Days[t.Date] = b
	}

	// First Saturday on or after the month's first day.
	saturday := first.AddDate(0, 0, (6-int(first.Weekday())+7)%7)
	for !saturday.AddDate(0, 0, -6).After(last) {
		mv.Weeks = append(mv.Weeks, WeekTotals(saturday, year, month, trades))
		saturday = saturday.AddDate(0, 0, 7)
	}

	// Phantom week: the trailing block that begins after the month's last
	// day. Clamped to the same month it can only carry data when a trading
	// day survives the clamp, so it never borrows from the next month.
	if phantom := WeekTotals(saturday, year, month, trades); phantom.TradingDays > 0 {
		mv.Weeks = append(mv.Weeks, phantom)
	}
	return mv
}
