package analytics

import (
	"sort"
	"time"

	"tradestats/internal/models"
)

// Period selects the time window of a filtered equity view.
type Period string

const (
	PeriodAll    Period = "all"
	PeriodYTD    Period = "ytd"
	PeriodMTD    Period = "mtd"
	PeriodWTD    Period = "wtd"
	PeriodCustom Period = "custom"
)

// CustomKind discriminates the three custom window styles.
type CustomKind string

const (
	CustomDateRange  CustomKind = "dateRange"
	CustomDaysBack   CustomKind = "daysBack"
	CustomTradesBack CustomKind = "tradesBack"
)

// CustomFilter describes a custom period window. Exactly one of the three
// styles applies, selected by Kind. A DaysBack or TradesBack of zero means
// "show nothing", not "no filter".
type CustomFilter struct {
	Kind       CustomKind
	Start      string // dateRange: inclusive YYYY-MM-DD
	End        string // dateRange: inclusive YYYY-MM-DD
	DaysBack   int
	TradesBack int
}

// Filters narrows the displayed trade set. AssetTypes is an OR-match (empty
// means all); Tags is an AND-match (the trade must carry every tag).
// Filters narrow only the displayed curve, never the equity baseline.
type Filters struct {
	Tags       []string
	AssetTypes []models.AssetType
}

func (f Filters) matches(t *models.Trade) bool {
	if len(f.AssetTypes) > 0 {
		found := false
		for _, at := range f.AssetTypes {
			if t.AssetType == at {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return t.HasAllTags(f.Tags)
}

// PeriodView is a period-scoped, re-baselined equity view. StartingEquity is
// the account balance at the start of the window, reconstructed by replaying
// every unfiltered closed trade dated before it — an empty window still
// reports this baseline so charts render a flat line at the true balance.
type PeriodView struct {
	Points         []EquityPoint
	Trades         []models.Trade // the selected trades, effective-date order
	RangeStart     string
	RangeEnd       string
	StartingEquity float64
	TradeCount     int
}

// ResolvePeriod selects the trades matching the period and filters, computes
// the equity baseline at the window start from the unfiltered closed set,
// and builds the re-baselined curve. The wtd period emits one point per
// trade so same-day trades stay individually visible; every other period
// aggregates per day. now is passed explicitly so results are reproducible.
func ResolvePeriod(trades []models.Trade, period Period, filters Filters, custom *CustomFilter, startingEquity float64, now time.Time) PeriodView {
	closed := models.ClosedTrades(trades)

	filtered := make([]models.Trade, 0, len(closed))
	for i := range closed {
		if filters.matches(&closed[i]) {
			filtered = append(filtered, closed[i])
		}
	}

	if period == PeriodCustom && custom != nil && custom.Kind == CustomTradesBack {
		return resolveTradesBack(closed, filtered, custom.TradesBack, startingEquity, now)
	}

	windowStart, windowEnd, hasWindow := periodWindow(period, custom, now)

	selected := filtered
	if hasWindow {
		selected = make([]models.Trade, 0, len(filtered))
		for i := range filtered {
			eff := filtered[i].EffectiveDate()
			if !ValidDate(eff) {
				continue
			}
			if eff >= windowStart && (windowEnd == "" || eff <= windowEnd) {
				selected = append(selected, filtered[i])
			}
		}
	}

	baseline := startingEquity
	if hasWindow {
		baseline += sumBefore(closed, windowStart)
	}

	ordered := make([]models.Trade, len(selected))
	copy(ordered, selected)
	sortByEffective(ordered)

	view := PeriodView{
		Trades:         ordered,
		StartingEquity: baseline,
		TradeCount:     len(selected),
	}
	if period == PeriodWTD {
		view.Points = perTradeCurve(selected, baseline)
	} else {
		buckets := Aggregate(selected)
		view.Points = ComputeEquityCurve(SortedDates(buckets), buckets, baseline).Points
	}
	view.RangeStart, view.RangeEnd = displayRange(period, custom, selected, windowStart, now)
	return view
}

// periodWindow returns the inclusive [start, end] date strings for the
// period. hasWindow is false for "all". An empty end means open-ended.
// A daysBack of zero yields a window starting tomorrow: nothing matches and
// every prior trade counts into the baseline.
func periodWindow(period Period, custom *CustomFilter, now time.Time) (start, end string, hasWindow bool) {
	today := Midnight(now)
	switch period {
	case PeriodYTD:
		return FormatDate(time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())), "", true
	case PeriodMTD:
		return FormatDate(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())), "", true
	case PeriodWTD:
		return FormatDate(MostRecentSunday(today)), "", true
	case PeriodCustom:
		if custom == nil {
			return "", "", false
		}
		switch custom.Kind {
		case CustomDateRange:
			return custom.Start, custom.End, true
		case CustomDaysBack:
			if custom.DaysBack <= 0 {
				return FormatDate(today.AddDate(0, 0, 1)), "", true
			}
			return FormatDate(today.AddDate(0, 0, -(custom.DaysBack - 1))), "", true
		}
	}
	return "", "", false
}

// sumBefore totals the P&L of closed trades whose effective date is strictly
// before the cutoff. Malformed dates are skipped.
func sumBefore(closed []models.Trade, cutoff string) float64 {
	var sum float64
	for i := range closed {
		eff := closed[i].EffectiveDate()
		if ValidDate(eff) && eff < cutoff {
			sum += closed[i].PnL
		}
	}
	return sum
}

// resolveTradesBack takes the N most recent filtered trades. The window is
// defined by trade count, not a date boundary, so the baseline replays every
// unfiltered trade that is not among the selected N — membership by ID.
func resolveTradesBack(closed, filtered []models.Trade, n int, startingEquity float64, now time.Time) PeriodView {
	sortByEffective(filtered)
	if n < 0 {
		n = 0
	}
	if n > len(filtered) {
		n = len(filtered)
	}
	selected := filtered[len(filtered)-n:]

	inWindow := make(map[string]struct{}, len(selected))
	for i := range selected {
		inWindow[selected[i].ID] = struct{}{}
	}

	baseline := startingEquity
	for i := range closed {
		if _, ok := inWindow[closed[i].ID]; !ok {
			baseline += closed[i].PnL
		}
	}

	view := PeriodView{
		Trades:         selected,
		StartingEquity: baseline,
		TradeCount:     len(selected),
	}
	buckets := Aggregate(selected)
	view.Points = ComputeEquityCurve(SortedDates(buckets), buckets, baseline).Points
	view.RangeStart, view.RangeEnd = selectionRange(selected, now)
	return view
}

// perTradeCurve emits one equity point per trade in effective-date order,
// with the same peak/drawdown tracking as the daily curve.
func perTradeCurve(trades []models.Trade, baseline float64) []EquityPoint {
	ordered := make([]models.Trade, len(trades))
	copy(ordered, trades)
	sortByEffective(ordered)

	points := make([]EquityPoint, 0, len(ordered))
	equity := baseline
	peak := baseline
	for i := range ordered {
		t := &ordered[i]
		equity += t.PnL
		if equity > peak {
			peak = equity
		}
		drawdown := peak - equity
		ddPercent := 0.0
		if drawdown > 0 && peak > 0 {
			ddPercent = drawdown / peak * 100
		}
		p := EquityPoint{
			Date:            t.EffectiveDate(),
			PnL:             t.PnL,
			Cumulative:      equity,
			Drawdown:        drawdown,
			DrawdownPercent: ddPercent,
			TradeCount:      1,
		}
		switch {
		case t.PnL > 0:
			p.WinCount = 1
		case t.PnL < 0:
			p.LossCount = 1
		}
		points = append(points, p)
	}
	return points
}

// sortByEffective orders trades ascending by effective date, then the
// intraday time marker, then ID for a stable tiebreak.
func sortByEffective(trades []models.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		di, dj := trades[i].EffectiveDate(), trades[j].EffectiveDate()
		if di != dj {
			return di < dj
		}
		if trades[i].Time != trades[j].Time {
			return trades[i].Time < trades[j].Time
		}
		return trades[i].ID < trades[j].ID
	})
}

// displayRange computes the chart date range for the period. The end is
// padded one day past "today" (or the last trade) so the final point is not
// clipped at the chart edge.
func displayRange(period Period, custom *CustomFilter, selected []models.Trade, windowStart string, now time.Time) (string, string) {
	today := Midnight(now)
	dayAfter := FormatDate(today.AddDate(0, 0, 1))
	switch period {
	case PeriodYTD, PeriodMTD, PeriodWTD:
		return windowStart, dayAfter
	case PeriodCustom:
		if custom == nil {
			break
		}
		switch custom.Kind {
		case CustomDateRange:
			if end, err := ParseDate(custom.End); err == nil {
				return custom.Start, FormatDate(end.AddDate(0, 0, 1))
			}
			return custom.Start, custom.End
		case CustomDaysBack:
			if custom.DaysBack <= 0 {
				return FormatDate(today.AddDate(0, 0, -1)), dayAfter
			}
			return windowStart, dayAfter
		}
	}
	return selectionRange(selected, now)
}

// selectionRange pads the selected trades' effective-date span by one day on
// each side. An empty selection frames "today".
func selectionRange(selected []models.Trade, now time.Time) (string, string) {
	today := Midnight(now)
	if len(selected) == 0 {
		return FormatDate(today.AddDate(0, 0, -1)), FormatDate(today.AddDate(0, 0, 1))
	}
	first, last := selected[0].EffectiveDate(), selected[0].EffectiveDate()
	for i := range selected {
		eff := selected[i].EffectiveDate()
		if eff < first {
			first = eff
		}
		if eff > last {
			last = eff
		}
	}
	start, end := first, last
	if t, err := ParseDate(first); err == nil {
		start = FormatDate(t.AddDate(0, 0, -1))
	}
	if t, err := ParseDate(last); err == nil {
		end = FormatDate(t.AddDate(0, 0, 1))
	}
	return start, end
}
