package models

// ConsistencySettings holds the user-configurable targets that normalize the
// four consistency sub-scores. Each target must be positive.
type ConsistencySettings struct {
	WinRateTarget      float64
	ProfitFactorTarget float64
	MaxDrawdownLimit   float64
	StreakTarget       float64
}

// DefaultConsistencySettings returns the targets used when no configuration
// is present.
func DefaultConsistencySettings() ConsistencySettings {
	return ConsistencySettings{
		WinRateTarget:      60,
		ProfitFactorTarget: 2,
		MaxDrawdownLimit:   25,
		StreakTarget:       10,
	}
}

// Settings bundles everything the analytics engine borrows per call.
// The caller owns persistence; the engine holds no global state.
type Settings struct {
	StartingEquity float64
	Consistency    ConsistencySettings
}

// DefaultSettings returns the default engine settings.
func DefaultSettings() Settings {
	return Settings{
		StartingEquity: 0,
		Consistency:    DefaultConsistencySettings(),
	}
}
