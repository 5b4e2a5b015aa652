package analytics

import "fmt"

// MetricKind identifies a dashboard metric.
type MetricKind string

const (
	MetricNetPnL         MetricKind = "net_pnl"
	MetricWinRate        MetricKind = "win_rate"
	MetricProfitFactor   MetricKind = "profit_factor"
	MetricExpectancy     MetricKind = "expectancy"
	MetricSharpe         MetricKind = "sharpe"
	MetricRecoveryFactor MetricKind = "recovery_factor"
	MetricMaxDrawdown    MetricKind = "max_drawdown"
	MetricAvgWin         MetricKind = "avg_win"
	MetricAvgLoss        MetricKind = "avg_loss"
	MetricTradeCount     MetricKind = "trade_count"
)

// Tier classifies a metric value for display.
type Tier string

const (
	TierGood    Tier = "good"
	TierNeutral Tier = "neutral"
	TierBad     Tier = "bad"
)

// Metric couples a metric kind with its value, formatting, and
// classification logic. Each is a pure function of the Summary.
type Metric struct {
	Kind     MetricKind
	Label    string
	Compute  func(Summary) float64
	Format   func(float64) string
	Classify func(float64) Tier
}

var registry = map[MetricKind]Metric{}

// Register adds a metric to the registry, replacing any existing entry for
// the same kind.
func Register(m Metric) {
	registry[m.Kind] = m
}

// Lookup returns the metric for a kind.
func Lookup(kind MetricKind) (Metric, bool) {
	m, ok := registry[kind]
	return m, ok
}

// AllMetrics returns the registered metric kinds in display order. Kinds
// registered after init are appended at the end.
func AllMetrics() []Metric {
	out := make([]Metric, 0, len(registry))
	for _, kind := range metricOrder {
		if m, ok := registry[kind]; ok {
			out = append(out, m)
		}
	}
	for kind, m := range registry {
		if !containsKind(metricOrder, kind) {
			out = append(out, m)
		}
	}
	return out
}

var metricOrder = []MetricKind{
	MetricNetPnL, MetricWinRate, MetricProfitFactor, MetricExpectancy,
	MetricSharpe, MetricRecoveryFactor, MetricMaxDrawdown,
	MetricAvgWin, MetricAvgLoss, MetricTradeCount,
}

func containsKind(kinds []MetricKind, k MetricKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func currency(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func percent(v float64) string { return fmt.Sprintf("%.1f%%", v) }
func ratio(v float64) string   { return fmt.Sprintf("%.2f", v) }
func count(v float64) string   { return fmt.Sprintf("%.0f", v) }

func signTier(v float64) Tier {
	switch {
	case v > 0:
		return TierGood
	case v < 0:
		return TierBad
	}
	return TierNeutral
}

func thresholdTier(good, bad float64) func(float64) Tier {
	return func(v float64) Tier {
		switch {
		case v >= good:
			return TierGood
		case v < bad:
			return TierBad
		}
		return TierNeutral
	}
}

func init() {
	Register(Metric{MetricNetPnL, "Net P&L",
		func(s Summary) float64 { return s.NetPnL }, currency, signTier})
	Register(Metric{MetricWinRate, "Win Rate",
		func(s Summary) float64 { return s.WinRate }, percent, thresholdTier(50, 40)})
	Register(Metric{MetricProfitFactor, "Profit Factor",
		func(s Summary) float64 { return s.ProfitFactor }, ratio, thresholdTier(1.5, 1)})
	Register(Metric{MetricExpectancy, "Expectancy",
		func(s Summary) float64 { return s.Expectancy }, currency, signTier})
	Register(Metric{MetricSharpe, "Sharpe Ratio",
		func(s Summary) float64 { return s.SharpeRatio }, ratio, thresholdTier(1, 0)})
	Register(Metric{MetricRecoveryFactor, "Recovery Factor",
		func(s Summary) float64 { return s.RecoveryFactor }, ratio, thresholdTier(2, 1)})
	Register(Metric{MetricMaxDrawdown, "Max Drawdown",
		func(s Summary) float64 { return s.Curve.MaxDrawdown }, currency,
		func(v float64) Tier {
			if v == 0 {
				return TierGood
			}
			return TierBad
		}})
	Register(Metric{MetricAvgWin, "Avg Win",
		func(s Summary) float64 { return s.AvgWin }, currency, signTier})
	Register(Metric{MetricAvgLoss, "Avg Loss",
		func(s Summary) float64 { return s.AvgLoss }, currency,
		func(v float64) Tier {
			if v > 0 {
				return TierBad
			}
			return TierNeutral
		}})
	Register(Metric{MetricTradeCount, "Trades",
		func(s Summary) float64 { return float64(s.TotalTrades) }, count,
		func(float64) Tier { return TierNeutral }})
}
