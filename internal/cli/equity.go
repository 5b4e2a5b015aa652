package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradestats/internal/analytics"
	"tradestats/internal/store"
)

// addEquityCommand adds the equity curve command.
func addEquityCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the equity curve",
		Long: `Display the period-scoped equity curve.

The curve starts from the account balance at the beginning of the window,
reconstructed by replaying all prior trades — tag and asset filters narrow
only the displayed curve, never the baseline.`,
		Example: `  tradestats equity
  tradestats equity --period mtd
  tradestats equity --days-back 30 --tags breakout`,
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

			view := analytics.ResolvePeriod(trades, period, filters, custom, settings.StartingEquity, time.Now())

			if output.IsJSON() {
				return output.JSON(view)
			}

			output.Bold("Equity — %s to %s", view.RangeStart, view.RangeEnd)
			output.Printf("  Starting equity: %s  (%d trades)\n\n", FormatCurrency(view.StartingEquity), view.TradeCount)

			if len(view.Points) == 0 {
				output.Info("No trades in this window; equity holds flat at %s.", FormatCurrency(view.StartingEquity))
				return nil
			}

			table := NewTable(output, "Date", "P&L", "Equity", "Drawdown", "DD%", "Trades")
			for _, p := range view.Points {
				table.AddRow(
					p.Date,
					output.FormatPnL(p.PnL),
					FormatCurrency(p.Cumulative),
					FormatCurrency(p.Drawdown),
					FormatRatio(p.DrawdownPercent),
					fmt.Sprintf("%d", p.TradeCount),
				)
			}
			table.Render()
			return nil
		},
	}

	addPeriodFlags(cmd)
	rootCmd.AddCommand(cmd)
}
