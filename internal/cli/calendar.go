package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradestats/internal/analytics"
	"tradestats/internal/models"
	"tradestats/internal/store"
)

// addCalendarCommand adds the calendar month view command.
func addCalendarCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show the month calendar rollup",
		Long: `Display per-day totals and Sunday-Saturday week totals for a month.

Trades are placed by their opening date. Week totals are clamped to the
displayed month, so a week straddling a month boundary reports only the
days that belong to this month.`,
		Example: `  tradestats calendar
  tradestats calendar 2026-08`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Store not initialized.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			now := time.Now()
			year, month := now.Year(), now.Month()
			if len(args) == 1 {
				parsed, err := time.Parse("2006-01", args[0])
				if err != nil {
					output.Error("Invalid month %q, expected YYYY-MM", args[0])
					return err
				}
				year, month = parsed.Year(), parsed.Month()
			}

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{Status: models.TradeClosed})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			view := analytics.ComputeMonthView(year, month, trades)

			if output.IsJSON() {
				return output.JSON(view)
			}

			output.Bold("%s %d", month, year)
			output.Println()

			if len(view.Days) == 0 {
				output.Info("No closed trades in this month.")
				return nil
			}

			dayTable := NewTable(output, "Date", "P&L", "Trades", "W/L")
			for _, date := range analytics.SortedDates(view.Days) {
				b := view.Days[date]
				dayTable.AddRow(
					date,
					output.FormatPnL(b.PnL),
					fmt.Sprintf("%d", b.TradeCount),
					fmt.Sprintf("%d/%d", b.WinCount, b.LossCount),
				)
			}
			dayTable.Render()
			output.Println()

			output.Bold("Weeks")
			weekTable := NewTable(output, "Range", "P&L", "Trades", "Days")
			for _, w := range view.Weeks {
				rangeLabel := "-"
				if w.Start != "" {
					rangeLabel = w.Start + " → " + w.End
				}
				weekTable.AddRow(
					rangeLabel,
					output.FormatPnL(w.PnL),
					fmt.Sprintf("%d", w.TradeCount),
					fmt.Sprintf("%d", w.TradingDays),
				)
			}
			weekTable.Render()
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
