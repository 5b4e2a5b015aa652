package analytics

// EquityPoint is one step of the equity curve. Points exist only for dates
// that carry at least one trade; quiet calendar days produce no point.
type EquityPoint struct {
	Date            string
	PnL             float64
	Cumulative      float64
	Drawdown        float64
	DrawdownPercent float64
	TradeCount      int
	WinCount        int
	LossCount       int
}

// EquityCurve is the canonical equity/drawdown view over a bucketed series.
// MaxDrawdown tracks the single worst episode by absolute distance from the
// high-water mark; the percentage is derived from that same episode so a
// small or negative early peak cannot distort the ranking.
type EquityCurve struct {
	Points             []EquityPoint
	Peak               float64
	MaxDrawdown        float64
	MaxDrawdownPercent float64
	MaxDrawdownStart   string
	MaxDrawdownEnd     string
}

// ComputeEquityCurve walks the daily buckets in ascending date order,
// maintaining running equity, high-water mark, and drawdown. A new high-water
// mark closes the current drawdown episode; episodes are ranked by absolute
// drawdown. When the peak is zero or negative the drawdown percentage is
// defined as 0 rather than a division artifact.
func ComputeEquityCurve(sortedDates []string, buckets map[string]DailyBucket, startingEquity float64) EquityCurve {
	curve := EquityCurve{
		Points: make([]EquityPoint, 0, len(sortedDates)),
		Peak:   startingEquity,
	}

	equity := startingEquity
	peak := startingEquity
	episodeStart := ""

	for _, date := range sortedDates {
		b, ok := buckets[date]
		if !ok {
			continue
		}
		equity += b.PnL
		if equity > peak {
			peak = equity
			episodeStart = ""
		}

		drawdown := peak - equity
		ddPercent := 0.0
		if drawdown > 0 && peak > 0 {
			ddPercent = drawdown / peak * 100
		}
		if drawdown > 0 && episodeStart == "" {
			episodeStart = date
		}
		if drawdown > curve.MaxDrawdown {
			curve.MaxDrawdown = drawdown
			curve.MaxDrawdownPercent = ddPercent
			curve.MaxDrawdownStart = episodeStart
			curve.MaxDrawdownEnd = date
		}

		curve.Points = append(curve.Points, EquityPoint{
			Date:            date,
			PnL:             b.PnL,
			Cumulative:      equity,
			Drawdown:        drawdown,
			DrawdownPercent: ddPercent,
			TradeCount:      b.TradeCount,
			WinCount:        b.WinCount,
			LossCount:       b.LossCount,
		})
	}

	curve.Peak = peak
	return curve
}
