package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// addSettingsCommands adds settings management commands.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Engine settings management",
		Long:  "View and change starting equity and consistency score targets.",
	}

	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current engine settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Store not initialized.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			settings, err := app.Store.GetSettings(ctx)
			if err != nil {
				output.Error("Failed to load settings: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(settings)
			}

			output.Bold("Engine Settings")
			output.Printf("  Starting equity:       %s\n", FormatCurrency(settings.StartingEquity))
			output.Printf("  Win rate target:       %.0f%%\n", settings.Consistency.WinRateTarget)
			output.Printf("  Profit factor target:  %.1f\n", settings.Consistency.ProfitFactorTarget)
			output.Printf("  Max drawdown limit:    %.0f%%\n", settings.Consistency.MaxDrawdownLimit)
			output.Printf("  Win streak target:     %.0f days\n", settings.Consistency.StreakTarget)
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change engine settings",
		Example: `  tradestats settings set --starting-equity 25000
  tradestats settings set --win-rate-target 55 --streak-target 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Store not initialized.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			settings, err := app.Store.GetSettings(ctx)
			if err != nil {
				output.Error("Failed to load settings: %v", err)
				return err
			}

			if cmd.Flags().Changed("starting-equity") {
				settings.StartingEquity, _ = cmd.Flags().GetFloat64("starting-equity")
			}
			if cmd.Flags().Changed("win-rate-target") {
				settings.Consistency.WinRateTarget, _ = cmd.Flags().GetFloat64("win-rate-target")
			}
			if cmd.Flags().Changed("profit-factor-target") {
				settings.Consistency.ProfitFactorTarget, _ = cmd.Flags().GetFloat64("profit-factor-target")
			}
			if cmd.Flags().Changed("max-drawdown-limit") {
				settings.Consistency.MaxDrawdownLimit, _ = cmd.Flags().GetFloat64("max-drawdown-limit")
			}
			if cmd.Flags().Changed("streak-target") {
				settings.Consistency.StreakTarget, _ = cmd.Flags().GetFloat64("streak-target")
			}

			if err := app.Store.SaveSettings(ctx, settings); err != nil {
				output.Error("Failed to save settings: %v", err)
				return err
			}
			output.Success("✓ Settings saved")
			return nil
		},
	}

	cmd.Flags().Float64("starting-equity", 0, "account starting equity")
	cmd.Flags().Float64("win-rate-target", 0, "win rate target (percent)")
	cmd.Flags().Float64("profit-factor-target", 0, "profit factor target")
	cmd.Flags().Float64("max-drawdown-limit", 0, "max drawdown limit (percent)")
	cmd.Flags().Float64("streak-target", 0, "win streak target (days)")

	return cmd
}
