package analytics

import (
	"math"
	"testing"

	"tradestats/internal/models"
)

func TestSummarizeBasics(t *testing.T) {
	trades := []models.Trade{
		closedTrade("t1", "2026-01-05", "", 100),
		closedTrade("t2", "2026-01-06", "", -50),
		closedTrade("t3", "2026-01-07", "", 0),
		closedTrade("t4", "2026-01-07", "", 150),
		openTrade("t5", "2026-01-08"),
	}

	s := Summarize(trades, 1000)
	if s.TotalTrades != 4 {
		t.Errorf("open trades must be excluded: %d", s.TotalTrades)
	}
	if s.Wins != 2 || s.Losses != 1 || s.BreakEven != 1 {
		t.Errorf("counts: %d/%d/%d", s.Wins, s.Losses, s.BreakEven)
	}
	if s.WinRate != 50 {
		t.Errorf("win rate: %v", s.WinRate)
	}
	if s.GrossProfit != 250 || s.GrossLoss != 50 || s.NetPnL != 200 {
		t.Errorf("gross: %v/%v net %v", s.GrossProfit, s.GrossLoss, s.NetPnL)
	}
	if s.ProfitFactor != 5 {
		t.Errorf("profit factor: %v", s.ProfitFactor)
	}
	if s.Expectancy != 50 {
		t.Errorf("expectancy: %v", s.Expectancy)
	}
	if s.AvgWin != 125 || s.AvgLoss != 50 {
		t.Errorf("avg win/loss: %v/%v", s.AvgWin, s.AvgLoss)
	}
	if s.LargestWin != 150 || s.LargestLoss != 50 {
		t.Errorf("largest win/loss: %v/%v", s.LargestWin, s.LargestLoss)
	}
	if s.TradingDays != 3 {
		t.Errorf("trading days: %d", s.TradingDays)
	}
	if s.Curve.Points[len(s.Curve.Points)-1].Cumulative != 1200 {
		t.Errorf("final equity: %v", s.Curve.Points[len(s.Curve.Points)-1].Cumulative)
	}
}

func TestSummarizeProfitFactorSentinel(t *testing.T) {
	// 3 winning trades, no losses: the documented sentinel, not +Inf.
	trades := []models.Trade{
		closedTrade("t1", "2026-01-05", "", 100),
		closedTrade("t2", "2026-01-06", "", 100),
		closedTrade("t3", "2026-01-07", "", 100),
	}
	s := Summarize(trades, 0)
	if s.ProfitFactor != ProfitFactorCap {
		t.Errorf("profit factor sentinel: %v", s.ProfitFactor)
	}
	if math.IsInf(s.ProfitFactor, 0) || math.IsNaN(s.ProfitFactor) {
		t.Errorf("profit factor must be finite: %v", s.ProfitFactor)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 1000)
	if s.TotalTrades != 0 || s.NetPnL != 0 || s.ProfitFactor != 0 {
		t.Errorf("empty set must zero out: %+v", s)
	}
	if len(s.Curve.Points) != 0 {
		t.Errorf("empty curve expected")
	}
	if s.SharpeRatio != 0 || s.RecoveryFactor != 0 {
		t.Errorf("empty ratios: %v / %v", s.SharpeRatio, s.RecoveryFactor)
	}
}

func TestSharpeRatioEdgeCases(t *testing.T) {
	oneDay := []models.Trade{closedTrade("t1", "2026-01-05", "", 100)}
	if s := Summarize(oneDay, 0); s.SharpeRatio != 0 {
		t.Errorf("sharpe with one day: %v", s.SharpeRatio)
	}

	flat := []models.Trade{
		closedTrade("t1", "2026-01-05", "", 100),
		closedTrade("t2", "2026-01-06", "", 100),
	}
	if s := Summarize(flat, 0); s.SharpeRatio != 0 {
		t.Errorf("sharpe with zero variance: %v", s.SharpeRatio)
	}

	varied := []models.Trade{
		closedTrade("t1", "2026-01-05", "", 100),
		closedTrade("t2", "2026-01-06", "", -50),
		closedTrade("t3", "2026-01-07", "", 80),
	}
	if s := Summarize(varied, 0); s.SharpeRatio <= 0 {
		t.Errorf("sharpe for a profitable varied series should be positive: %v", s.SharpeRatio)
	}
}

func TestRecoveryFactor(t *testing.T) {
	// Net +150 with a 50 drawdown: recovery factor 3.
	trades := []models.Trade{
		closedTrade("t1", "2026-01-05", "", 100),
		closedTrade("t2", "2026-01-06", "", -50),
		closedTrade("t3", "2026-01-07", "", 100),
	}
	s := Summarize(trades, 0)
	if s.RecoveryFactor != 3 {
		t.Errorf("recovery factor: %v", s.RecoveryFactor)
	}

	// Positive net and no drawdown: sentinel.
	up := []models.Trade{
		closedTrade("t1", "2026-01-05", "", 100),
		closedTrade("t2", "2026-01-06", "", 100),
	}
	if s := Summarize(up, 0); s.RecoveryFactor != RecoveryFactorCap {
		t.Errorf("recovery factor sentinel: %v", s.RecoveryFactor)
	}
}
