package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tradestats/internal/analytics"
	"tradestats/internal/store"
)

// addStatsCommand adds the performance statistics command.
func addStatsCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show performance statistics",
		Long: `Compute the full statistics bundle over the journal's closed trades:
win rate, profit factor, expectancy, Sharpe ratio, recovery factor,
drawdowns, streaks, and the consistency score.`,
		Example: `  tradestats stats
  tradestats stats --period ytd
  tradestats stats --tags breakout --asset STOCK`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Store not initialized.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			period, custom, filters, err := periodFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}
			settings, err := app.Store.GetSettings(ctx)
			if err != nil {
				app.Logger.Warn().Err(err).Msg("Failed to load settings, using config defaults")
				settings = app.Config.Settings()
			}

			now := time.Now()
			view := analytics.ResolvePeriod(trades, period, filters, custom, settings.StartingEquity, now)
			summary := analytics.Summarize(view.Trades, view.StartingEquity)
			score := analytics.ScoreConsistency(
				summary.WinRate, summary.ProfitFactor,
				summary.Curve.MaxDrawdownPercent, summary.Streaks.LongestWinStreak,
				settings.Consistency)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"summary":     summary,
					"consistency": score,
					"period":      view,
				})
			}

			output.Bold("Performance — %s to %s", view.RangeStart, view.RangeEnd)
			output.Println()

			table := NewTable(output, "Metric", "Value")
			for _, m := range analytics.AllMetrics() {
				v := m.Compute(summary)
				cell := m.Format(v)
				switch m.Classify(v) {
				case analytics.TierGood:
					cell = output.Green(cell)
				case analytics.TierBad:
					cell = output.Red(cell)
				}
				table.AddRow(m.Label, cell)
			}
			table.Render()
			output.Println()

			output.Bold("Streaks")
			output.Printf("  Current:       %d (%s)\n", summary.Streaks.Current, summary.Streaks.CurrentType)
			output.Printf("  Longest win:   %d days\n", summary.Streaks.LongestWinStreak)
			output.Printf("  Longest loss:  %d days\n", summary.Streaks.LongestLossStreak)
			output.Println()

			output.Bold("Consistency Score: %d/100 (%s)", score.Score, score.Grade)
			output.Printf("  Win rate:       %5.1f / 25\n", score.WinRateScore)
			output.Printf("  Profit factor:  %5.1f / 25\n", score.ProfitFactorScore)
			output.Printf("  Drawdown:       %5.1f / 25\n", score.DrawdownScore)
			output.Printf("  Win streak:     %5.1f / 25\n", score.StreakScore)
			return nil
		},
	}

	addPeriodFlags(cmd)
	rootCmd.AddCommand(cmd)
}
