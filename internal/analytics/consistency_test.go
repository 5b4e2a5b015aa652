package analytics

import (
	"testing"

	"tradestats/internal/models"
)

func TestScoreConsistencySubScores(t *testing.T) {
	settings := models.DefaultConsistencySettings() // 60 / 2 / 25 / 10

	sc := ScoreConsistency(30, 1, 12.5, 5, settings)
	if sc.WinRateScore != 12.5 {
		t.Errorf("win rate score: %v", sc.WinRateScore)
	}
	if sc.ProfitFactorScore != 12.5 {
		t.Errorf("profit factor score: %v", sc.ProfitFactorScore)
	}
	if sc.DrawdownScore != 12.5 {
		t.Errorf("drawdown score: %v", sc.DrawdownScore)
	}
	if sc.StreakScore != 12.5 {
		t.Errorf("streak score: %v", sc.StreakScore)
	}
	if sc.Score != 50 || sc.Grade != "C" {
		t.Errorf("total: %d %s", sc.Score, sc.Grade)
	}
}

func TestScoreConsistencyCaps(t *testing.T) {
	settings := models.DefaultConsistencySettings()

	sc := ScoreConsistency(100, 50, 0, 100, settings)
	if sc.WinRateScore != 25 || sc.ProfitFactorScore != 25 || sc.DrawdownScore != 25 || sc.StreakScore != 25 {
		t.Errorf("sub-scores must cap at 25: %+v", sc)
	}
	if sc.Score != 100 || sc.Grade != "A+" {
		t.Errorf("perfect score: %d %s", sc.Score, sc.Grade)
	}
}

func TestScoreConsistencyDrawdownFloor(t *testing.T) {
	settings := models.DefaultConsistencySettings()

	sc := ScoreConsistency(0, 0, 90, 0, settings)
	if sc.DrawdownScore != 0 {
		t.Errorf("drawdown score must floor at 0: %v", sc.DrawdownScore)
	}
	if sc.Score != 0 || sc.Grade != "F" {
		t.Errorf("worst score: %d %s", sc.Score, sc.Grade)
	}
}

func TestScoreConsistencyBadTargetsFallBack(t *testing.T) {
	// Non-positive targets must not divide by zero.
	sc := ScoreConsistency(60, 2, 10, 10, models.ConsistencySettings{})
	if sc.Score <= 0 || sc.Score > 100 {
		t.Errorf("score with zero targets: %d", sc.Score)
	}
}

func TestGradeLadderMonotonicExhaustive(t *testing.T) {
	last := ""
	for score := 0; score <= 100; score++ {
		grade := GradeFor(score)
		if grade == "" {
			t.Fatalf("no grade for score %d", score)
		}
		last = grade
	}
	if last != "A+" {
		t.Errorf("grade at 100: %s", last)
	}
	if GradeFor(0) != "F" {
		t.Errorf("grade at 0: %s", GradeFor(0))
	}
	if GradeFor(89) != "A" || GradeFor(90) != "A+" {
		t.Errorf("A+ boundary: %s / %s", GradeFor(89), GradeFor(90))
	}
}
