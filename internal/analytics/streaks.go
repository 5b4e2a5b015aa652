package analytics

// StreakType classifies the streak the account is currently on.
type StreakType string

const (
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"
	StreakNone StreakType = "none"
)

// Streaks holds win/loss streak statistics over the daily series. A day
// contributes by its net daily P&L sign, not per-trade signs; a zero day
// breaks any running streak without counting as either.
type Streaks struct {
	Current           int
	CurrentType       StreakType
	LongestWinStreak  int
	LongestLossStreak int
}

// ComputeStreaks scans the ordered daily buckets for the longest win and
// loss streaks, then walks backward from the most recent day to find the
// current streak. "Consecutive" means adjacent in the sorted series, not
// adjacent calendar days.
func ComputeStreaks(sortedDates []string, buckets map[string]DailyBucket) Streaks {
	s := Streaks{CurrentType: StreakNone}
	if len(sortedDates) == 0 {
		return s
	}

	winRun, lossRun := 0, 0
	for _, date := range sortedDates {
		pnl := buckets[date].PnL
		switch {
		case pnl > 0:
			winRun++
			lossRun = 0
		case pnl < 0:
			lossRun++
			winRun = 0
		default:
			winRun = 0
			lossRun = 0
		}
		if winRun > s.LongestWinStreak {
			s.LongestWinStreak = winRun
		}
		if lossRun > s.LongestLossStreak {
			s.LongestLossStreak = lossRun
		}
	}

	last := buckets[sortedDates[len(sortedDates)-1]].PnL
	if last == 0 {
		return s
	}
	if last > 0 {
		s.CurrentType = StreakWin
	} else {
		s.CurrentType = StreakLoss
	}
	for i := len(sortedDates) - 1; i >= 0; i-- {
		pnl := buckets[sortedDates[i]].PnL
		if (s.CurrentType == StreakWin && pnl > 0) || (s.CurrentType == StreakLoss && pnl < 0) {
			s.Current++
			continue
		}
		break
	}
	return s
}
