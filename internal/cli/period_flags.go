package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tradestats/internal/analytics"
	"tradestats/internal/models"
)

// addPeriodFlags registers the shared period/filter flags used by the stats
// and equity commands.
func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().String("period", "all", "period (all, ytd, mtd, wtd)")
	cmd.Flags().String("from", "", "custom range start YYYY-MM-DD")
	cmd.Flags().String("to", "", "custom range end YYYY-MM-DD")
	cmd.Flags().Int("days-back", -1, "last N days (0 shows nothing)")
	cmd.Flags().Int("trades-back", -1, "last N trades (0 shows nothing)")
	cmd.Flags().StringSlice("tags", nil, "filter by tags (trade must carry all)")
	cmd.Flags().StringSlice("asset", nil, "filter by asset types (any match)")
}

// periodFromFlags translates the shared flags into engine arguments. The
// custom window flags take precedence over --period.
func periodFromFlags(cmd *cobra.Command) (analytics.Period, *analytics.CustomFilter, analytics.Filters, error) {
	period, _ := cmd.Flags().GetString("period")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	daysBack, _ := cmd.Flags().GetInt("days-back")
	tradesBack, _ := cmd.Flags().GetInt("trades-back")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	assets, _ := cmd.Flags().GetStringSlice("asset")

	filters := analytics.Filters{Tags: tags}
	for _, a := range assets {
		filters.AssetTypes = append(filters.AssetTypes, models.AssetType(strings.ToUpper(a)))
	}

	var custom *analytics.CustomFilter
	switch {
	case cmd.Flags().Changed("trades-back"):
		custom = &analytics.CustomFilter{Kind: analytics.CustomTradesBack, TradesBack: tradesBack}
	case cmd.Flags().Changed("days-back"):
		custom = &analytics.CustomFilter{Kind: analytics.CustomDaysBack, DaysBack: daysBack}
	case from != "" || to != "":
		if !analytics.ValidDate(from) || !analytics.ValidDate(to) {
			return "", nil, filters, fmt.Errorf("custom range requires --from and --to as YYYY-MM-DD")
		}
		custom = &analytics.CustomFilter{Kind: analytics.CustomDateRange, Start: from, End: to}
	}
	if custom != nil {
		return analytics.PeriodCustom, custom, filters, nil
	}

	switch analytics.Period(period) {
	case analytics.PeriodAll, analytics.PeriodYTD, analytics.PeriodMTD, analytics.PeriodWTD:
		return analytics.Period(period), nil, filters, nil
	}
	return "", nil, filters, fmt.Errorf("unknown period %q", period)
}
