package analytics

import (
	"math"

	"tradestats/internal/models"
)

// ConsistencyScore is the composite 0-100 score built from four sub-scores,
// each normalized against a user-configurable target and capped at 25.
type ConsistencyScore struct {
	Score             int
	Grade             string
	WinRateScore      float64
	ProfitFactorScore float64
	DrawdownScore     float64
	StreakScore       float64
}

// ScoreConsistency combines win rate, profit factor, max drawdown percent,
// and longest win streak into a single score. Win rate, profit factor, and
// streak scale up toward their targets; drawdown penalizes away from its
// limit and floors at 0. Non-positive targets fall back to defaults so a
// bad settings row cannot divide by zero.
func ScoreConsistency(winRate, profitFactor, maxDrawdownPercent float64, longestWinStreak int, settings models.ConsistencySettings) ConsistencyScore {
	settings = sanitizeTargets(settings)

	sc := ConsistencyScore{
		WinRateScore:      math.Min(winRate/settings.WinRateTarget*25, 25),
		ProfitFactorScore: math.Min(profitFactor/settings.ProfitFactorTarget*25, 25),
		DrawdownScore:     math.Max(25-maxDrawdownPercent/settings.MaxDrawdownLimit*25, 0),
		StreakScore:       math.Min(float64(longestWinStreak)/settings.StreakTarget*25, 25),
	}
	if sc.WinRateScore < 0 {
		sc.WinRateScore = 0
	}
	if sc.ProfitFactorScore < 0 {
		sc.ProfitFactorScore = 0
	}
	if sc.StreakScore < 0 {
		sc.StreakScore = 0
	}

	sc.Score = int(math.Round(sc.WinRateScore + sc.ProfitFactorScore + sc.DrawdownScore + sc.StreakScore))
	if sc.Score > 100 {
		sc.Score = 100
	}
	if sc.Score < 0 {
		sc.Score = 0
	}
	sc.Grade = GradeFor(sc.Score)
	return sc
}

func sanitizeTargets(s models.ConsistencySettings) models.ConsistencySettings {
	def := models.DefaultConsistencySettings()
	if s.WinRateTarget <= 0 {
		s.WinRateTarget = def.WinRateTarget
	}
	if s.ProfitFactorTarget <= 0 {
		s.ProfitFactorTarget = def.ProfitFactorTarget
	}
	if s.MaxDrawdownLimit <= 0 {
		s.MaxDrawdownLimit = def.MaxDrawdownLimit
	}
	if s.StreakTarget <= 0 {
		s.StreakTarget = def.StreakTarget
	}
	return s
}

// gradeSteps maps score thresholds to letter grades. The ladder is
// monotonic and covers the full 0-100 range.
var gradeSteps = []struct {
	min   int
	grade string
}{
	{90, "A+"},
	{80, "A"},
	{65, "B"},
	{50, "C"},
	{30, "D"},
	{0, "F"},
}

// GradeFor maps a consistency score to its letter grade.
func GradeFor(score int) string {
	for _, step := range gradeSteps {
		if score >= step.min {
			return step.grade
		}
	}
	return "F"
}
