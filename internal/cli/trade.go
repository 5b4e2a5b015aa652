package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradestats/internal/analytics"
	"tradestats/internal/logging"
	"tradestats/internal/models"
	"tradestats/internal/store"
)

// addTradeCommands adds journal trade management commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade journal management",
		Long:  "Record, close, list, and delete journal trades.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeCloseCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ticker>",
		Short: "Record a new trade",
		Long: `Record a new trade in the journal.

Without --exit the trade is recorded OPEN and excluded from statistics
until closed. With --exit and --pnl it is recorded CLOSED immediately.`,
		Example: `  tradestats trade add AAPL --entry 182.50 --size 100 --date 2026-08-20
  tradestats trade add ES --asset FUTURES --direction SHORT --entry 5600 --exit 5570 --pnl 1500 --tags breakout,a-setup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Store not initialized.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			closeDate, _ := cmd.Flags().GetString("close-date")
			tradeTime, _ := cmd.Flags().GetString("time")
			direction, _ := cmd.Flags().GetString("direction")
			asset, _ := cmd.Flags().GetString("asset")
			entry, _ := cmd.Flags().GetFloat64("entry")
			exit, _ := cmd.Flags().GetFloat64("exit")
			size, _ := cmd.Flags().GetFloat64("size")
			pnl, _ := cmd.Flags().GetFloat64("pnl")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			notes, _ := cmd.Flags().GetString("notes")

			if date == "" {
				date = analytics.FormatDate(time.Now())
			}
			if !analytics.ValidDate(date) {
				output.Error("Invalid date %q, expected YYYY-MM-DD", date)
				return fmt.Errorf("invalid date: %s", date)
			}

			trade := &models.Trade{
				ID:         newTradeID(),
				Date:       date,
				Time:       tradeTime,
				Ticker:     strings.ToUpper(args[0]),
				Direction:  models.Direction(strings.ToUpper(direction)),
				AssetType:  models.AssetType(strings.ToUpper(asset)),
				EntryPrice: entry,
				Size:       size,
				Status:     models.TradeOpen,
				Tags:       tags,
				Notes:      notes,
			}
			if cmd.Flags().Changed("exit") {
				trade.ExitPrice = exit
				trade.PnL = pnl
				trade.Status = models.TradeClosed
				trade.CloseDate = closeDate
				if trade.CloseDate == "" {
					trade.CloseDate = date
				}
			}

			if err := app.Store.SaveTrade(ctx, trade); err != nil {
				output.Error("Failed to save trade: %v", err)
				return err
			}
			logging.LogTrade(app.Logger, trade.ID, trade.Ticker, string(trade.Status), trade.PnL)

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade %s recorded (%s)", trade.ID, trade.Status)
			return nil
		},
	}

	cmd.Flags().String("date", "", "open date YYYY-MM-DD (default: today)")
	cmd.Flags().String("close-date", "", "close date YYYY-MM-DD (default: open date)")
	cmd.Flags().String("time", "", "intraday time marker HH:MM")
	cmd.Flags().String("direction", "LONG", "trade direction (LONG, SHORT)")
	cmd.Flags().String("asset", "STOCK", "asset type (STOCK, OPTIONS, FUTURES, FOREX, CRYPTO)")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("exit", 0, "exit price (marks the trade CLOSED)")
	cmd.Flags().Float64("size", 0, "position size")
	cmd.Flags().Float64("pnl", 0, "realized P&L")
	cmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	cmd.Flags().String("notes", "", "freeform notes")

	return cmd
}

func newTradeCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close <trade-id>",
		Short: "Close an open trade",
		Long:  "Close an open trade, recording close date, exit price, and realized P&L.",
		Example: `  tradestats trade close T1724130000 --exit 185.00 --pnl 250
  tradestats trade close T1724130000 --exit 185.00 --pnl 250 --date 2026-08-22`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Store not initialized.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			closeDate, _ := cmd.Flags().GetString("date")
			exit, _ := cmd.Flags().GetFloat64("exit")
			pnl, _ := cmd.Flags().GetFloat64("pnl")

			if closeDate == "" {
				closeDate = analytics.FormatDate(time.Now())
			}
			if !analytics.ValidDate(closeDate) {
				output.Error("Invalid date %q, expected YYYY-MM-DD", closeDate)
				return fmt.Errorf("invalid date: %s", closeDate)
			}

			if err := app.Store.CloseTrade(ctx, args[0], closeDate, exit, pnl); err != nil {
				output.Error("Failed to close trade: %v", err)
				return err
			}
			output.Success("✓ Trade %s closed: %s", args[0], output.FormatPnL(pnl))
			return nil
		},
	}

	cmd.Flags().String("date", "", "close date YYYY-MM-DD (default: today)")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().Float64("pnl", 0, "realized P&L")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal trades",
		Example: `  tradestats trade list
  tradestats trade list --status OPEN
  tradestats trade list --ticker AAPL --tags momentum`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Store not initialized.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			ticker, _ := cmd.Flags().GetString("ticker")
			status, _ := cmd.Flags().GetString("status")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			limit, _ := cmd.Flags().GetInt("limit")

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				Ticker: strings.ToUpper(ticker),
				Status: models.TradeStatus(strings.ToUpper(status)),
				Tags:   tags,
				Limit:  limit,
			})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades found.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Ticker", "Dir", "Asset", "Size", "P&L", "Status", "Tags")
			for i := range trades {
				t := &trades[i]
				pnl := "-"
				if t.IsClosed() {
					pnl = output.FormatPnL(t.PnL)
				}
				table.AddRow(
					t.ID,
					t.EffectiveDate(),
					t.Ticker,
					string(t.Direction),
					string(t.AssetType),
					fmt.Sprintf("%g", t.Size),
					pnl,
					string(t.Status),
					TruncateString(strings.Join(t.Tags, ","), 24),
				)
			}
			table.Render()
			output.Println()
			output.Dim("%d trades", len(trades))
			return nil
		},
	}

	cmd.Flags().String("ticker", "", "filter by ticker")
	cmd.Flags().String("status", "", "filter by status (OPEN, CLOSED)")
	cmd.Flags().StringSlice("tags", nil, "filter by tags (trade must carry all)")
	cmd.Flags().Int("limit", 0, "maximum number of trades")

	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Store not initialized.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.Store.DeleteTrade(ctx, args[0]); err != nil {
				output.Error("Failed to delete trade: %v", err)
				return err
			}
			output.Success("✓ Trade %s deleted", args[0])
			return nil
		},
	}
}

func newTradeID() string {
	return fmt.Sprintf("T%d", time.Now().UnixNano()/1e6)
}
