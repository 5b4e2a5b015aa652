package analytics

import (
	"math"

	"tradestats/internal/models"
)

// Sentinel values for otherwise-undefined ratios. Ratios with a zero
// denominator resolve to a large finite value instead of +Inf so the output
// stays bounded and JSON-serializable.
const (
	// ProfitFactorCap is reported when there are winning trades and zero
	// gross loss.
	ProfitFactorCap = 10.0
	// RecoveryFactorCap is reported when net P&L is positive and no
	// drawdown ever occurred.
	RecoveryFactorCap = 10.0
	// tradingDaysPerYear annualizes the Sharpe-like ratio.
	tradingDaysPerYear = 252
)

// Summary is the scalar statistics bundle computed over a closed-trade set.
// All fields are plain data; an empty trade set yields the zero value with
// an empty Curve rather than an error.
type Summary struct {
	TotalTrades int
	Wins        int
	Losses      int
	BreakEven   int
	WinRate     float64 // percent of closed trades with positive P&L

	GrossProfit float64
	GrossLoss   float64 // positive magnitude
	NetPnL      float64

	ProfitFactor float64
	Expectancy   float64 // net P&L per trade
	AvgWin       float64
	AvgLoss      float64 // positive magnitude
	LargestWin   float64
	LargestLoss  float64 // positive magnitude

	TradingDays    int
	AvgDailyPnL    float64
	SharpeRatio    float64 // annualized mean/stddev of daily P&L
	RecoveryFactor float64 // net P&L over max drawdown

	Curve   EquityCurve
	Streaks Streaks
}

// Summarize computes the full statistics bundle from a raw trade list.
// Open trades are excluded; the input is never mutated.
func Summarize(trades []models.Trade, startingEquity float64) Summary {
	closed := models.ClosedTrades(trades)

	var s Summary
	for i := range closed {
		t := &closed[i]
		s.TotalTrades++
		s.NetPnL += t.PnL
		switch {
		case t.PnL > 0:
			s.Wins++
			s.GrossProfit += t.PnL
			if t.PnL > s.LargestWin {
				s.LargestWin = t.PnL
			}
		case t.PnL < 0:
			s.Losses++
			s.GrossLoss += -t.PnL
			if -t.PnL > s.LargestLoss {
				s.LargestLoss = -t.PnL
			}
		default:
			s.BreakEven++
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
		s.Expectancy = s.NetPnL / float64(s.TotalTrades)
	}
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.ProfitFactor = profitFactor(s.GrossProfit, s.GrossLoss)

	buckets := Aggregate(closed)
	dates := SortedDates(buckets)
	s.TradingDays = len(dates)
	if s.TradingDays > 0 {
		s.AvgDailyPnL = s.NetPnL / float64(s.TradingDays)
	}
	s.SharpeRatio = sharpeRatio(dates, buckets)

	s.Curve = ComputeEquityCurve(dates, buckets, startingEquity)
	s.Streaks = ComputeStreaks(dates, buckets)
	s.RecoveryFactor = recoveryFactor(s.NetPnL, s.Curve.MaxDrawdown)

	return s
}

// profitFactor is gross profit over gross loss. With wins and no losses it
// returns ProfitFactorCap; with no trades at all it returns 0.
func profitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss > 0 {
		return grossProfit / grossLoss
	}
	if grossProfit > 0 {
		return ProfitFactorCap
	}
	return 0
}

// recoveryFactor is net P&L over max drawdown. With positive net and no
// drawdown it returns RecoveryFactorCap; otherwise-undefined cases are 0.
func recoveryFactor(netPnL, maxDrawdown float64) float64 {
	if maxDrawdown > 0 {
		return netPnL / maxDrawdown
	}
	if netPnL > 0 {
		return RecoveryFactorCap
	}
	return 0
}

// sharpeRatio is the mean daily P&L over its population standard deviation,
// annualized by the square root of the trading-day count per year. Fewer
// than two trading days, or a flat series, yields 0.
func sharpeRatio(sortedDates []string, buckets map[string]DailyBucket) float64 {
	n := len(sortedDates)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, d := range sortedDates {
		sum += buckets[d].PnL
	}
	mean := sum / float64(n)

	var variance float64
	for _, d := range sortedDates {
		diff := buckets[d].PnL - mean
		variance += diff * diff
	}
	variance /= float64(n)
	if variance == 0 {
		return 0
	}
	return mean / math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
}
