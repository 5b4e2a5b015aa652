package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"tradestats/internal/models"
)

// pnlSliceGen generates a series of daily P&L values, including zero days.
func pnlSliceGen(maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, gen.OneGenOf(
		gen.Float64Range(-500, 500),
		gen.Const(0.0),
	)).Map(func(pnls []float64) []float64 {
		for i, v := range pnls {
			// Round to cents so sums stay exactly representable enough
			// for tolerance-based comparison.
			pnls[i] = math.Round(v*100) / 100
		}
		return pnls
	})
}

// tradesFromPnLs builds one closed trade per value, one per calendar day.
func tradesFromPnLs(pnls []float64) []models.Trade {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)
	trades := make([]models.Trade, 0, len(pnls))
	for i, pnl := range pnls {
		trades = append(trades, models.Trade{
			ID:        "p" + FormatDate(base.AddDate(0, 0, i)),
			Date:      FormatDate(base.AddDate(0, 0, i)),
			Ticker:    "SPY",
			Direction: models.Long,
			AssetType: models.AssetStock,
			PnL:       pnl,
			Status:    models.TradeClosed,
		})
	}
	return trades
}

// TestProperty_EquityCurveAccumulation tests that each point's cumulative
// equity equals the baseline plus the running P&L sum.
func TestProperty_EquityCurveAccumulation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("Cumulative equity is baseline plus running sum", prop.ForAll(
		func(pnls []float64, baseline float64) bool {
			buckets := Aggregate(tradesFromPnLs(pnls))
			curve := ComputeEquityCurve(SortedDates(buckets), buckets, baseline)

			running := baseline
			for _, p := range curve.Points {
				running += p.PnL
				if math.Abs(p.Cumulative-running) > 1e-6 {
					return false
				}
			}
			return true
		},
		pnlSliceGen(40),
		gen.Float64Range(0, 100000),
	))

	properties.TestingRun(t)
}

// TestProperty_DrawdownIdentity tests that drawdown is always the exact gap
// to the running peak, never negative, and that the reported max matches the
// worst point.
func TestProperty_DrawdownIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("Drawdown equals peak minus equity and is non-negative", prop.ForAll(
		func(pnls []float64, baseline float64) bool {
			buckets := Aggregate(tradesFromPnLs(pnls))
			curve := ComputeEquityCurve(SortedDates(buckets), buckets, baseline)

			peak := baseline
			worst := 0.0
			for _, p := range curve.Points {
				if p.Cumulative > peak {
					peak = p.Cumulative
				}
				dd := peak - p.Cumulative
				if math.Abs(p.Drawdown-dd) > 1e-6 || p.Drawdown < 0 {
					return false
				}
				if dd > worst {
					worst = dd
				}
			}
			return math.Abs(curve.MaxDrawdown-worst) <= 1e-6
		},
		pnlSliceGen(40),
		gen.Float64Range(0, 100000),
	))

	properties.TestingRun(t)
}

// TestProperty_ConsistencyScoreBounds tests that the consistency score stays
// in [0, 100] with each sub-score in [0, 25], for arbitrary inputs and
// arbitrary (possibly degenerate) targets.
func TestProperty_ConsistencyScoreBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	knownGrades := map[string]bool{"A+": true, "A": true, "B": true, "C": true, "D": true, "F": true}

	properties.Property("Score is within [0, 100] and grade is defined", prop.ForAll(
		func(winRate, pf, dd, target float64, streak int) bool {
			settings := models.ConsistencySettings{
				WinRateTarget:      target,
				ProfitFactorTarget: target / 30,
				MaxDrawdownLimit:   target / 2,
				StreakTarget:       float64(int(target) % 12),
			}
			sc := ScoreConsistency(winRate, pf, dd, streak, settings)

			for _, sub := range []float64{sc.WinRateScore, sc.ProfitFactorScore, sc.DrawdownScore, sc.StreakScore} {
				if sub < 0 || sub > 25 {
					return false
				}
			}
			return sc.Score >= 0 && sc.Score <= 100 && knownGrades[sc.Grade]
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 50),
		gen.Float64Range(0, 100),
		gen.Float64Range(-10, 90),
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}

// TestProperty_StreakBounds tests structural streak invariants over any
// daily P&L series.
func TestProperty_StreakBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("Streak lengths never exceed the trading-day count", prop.ForAll(
		func(pnls []float64) bool {
			buckets := Aggregate(tradesFromPnLs(pnls))
			dates := SortedDates(buckets)
			s := ComputeStreaks(dates, buckets)

			n := len(dates)
			if s.LongestWinStreak > n || s.LongestLossStreak > n || s.Current > n {
				return false
			}
			switch s.CurrentType {
			case StreakWin:
				return s.Current >= 1 && s.Current <= s.LongestWinStreak
			case StreakLoss:
				return s.Current >= 1 && s.Current <= s.LongestLossStreak
			default:
				return s.Current == 0
			}
		},
		pnlSliceGen(40),
	))

	properties.TestingRun(t)
}

// TestProperty_TradesBackBaselineConservation tests that re-baselining never
// loses P&L: the baseline plus the displayed trades always reconstructs the
// all-time final equity.
func TestProperty_TradesBackBaselineConservation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	now := time.Date(2026, time.August, 27, 12, 0, 0, 0, time.Local)

	properties.Property("Baseline plus window P&L equals total equity", prop.ForAll(
		func(pnls []float64, n int, start float64) bool {
			trades := tradesFromPnLs(pnls)
			custom := &CustomFilter{Kind: CustomTradesBack, TradesBack: n}
			view := ResolvePeriod(trades, PeriodCustom, Filters{}, custom, start, now)

			total := start
			for _, pnl := range pnls {
				total += pnl
			}
			final := view.StartingEquity
			for i := range view.Trades {
				final += view.Trades[i].PnL
			}
			return math.Abs(final-total) <= 1e-6
		},
		pnlSliceGen(30),
		gen.IntRange(0, 40),
		gen.Float64Range(0, 100000),
	))

	properties.TestingRun(t)
}

// TestProperty_WeekClampPartition tests that a straddling week's two clamped
// halves partition its trades exactly.
func TestProperty_WeekClampPartition(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	// The week 2026-03-29 .. 2026-04-04 straddles March into April.
	saturday := time.Date(2026, time.April, 4, 0, 0, 0, 0, time.Local)

	properties.Property("Month clamps partition a straddling week", prop.ForAll(
		func(pnls []float64, offsets []int) bool {
			trades := make([]models.Trade, 0, len(pnls))
			base := time.Date(2026, time.March, 29, 0, 0, 0, 0, time.Local)
			for i, pnl := range pnls {
				day := 0
				if len(offsets) > 0 {
					day = offsets[i%len(offsets)] % 7
				}
				trades = append(trades, models.Trade{
					ID:        "w" + twoDigits(i),
					Date:      FormatDate(base.AddDate(0, 0, day)),
					Ticker:    "SPY",
					Direction: models.Long,
					AssetType: models.AssetStock,
					PnL:       pnl,
					Status:    models.TradeClosed,
				})
			}

			march := WeekTotals(saturday, 2026, time.March, trades)
			april := WeekTotals(saturday, 2026, time.April, trades)

			var total float64
			for _, pnl := range pnls {
				total += pnl
			}
			if march.TradeCount+april.TradeCount != len(trades) {
				return false
			}
			return math.Abs(march.PnL+april.PnL-total) <= 1e-6
		},
		pnlSliceGen(20),
		gen.SliceOfN(20, gen.IntRange(0, 6)),
	))

	properties.TestingRun(t)
}
