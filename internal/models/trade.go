// Package models defines the core domain types for the trading journal.
package models

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	TradeOpen   TradeStatus = "OPEN"
	TradeClosed TradeStatus = "CLOSED"
)

// Direction represents the side of a trade.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// AssetType represents the instrument class of a trade.
type AssetType string

const (
	AssetStock   AssetType = "STOCK"
	AssetOptions AssetType = "OPTIONS"
	AssetFutures AssetType = "FUTURES"
	AssetForex   AssetType = "FOREX"
	AssetCrypto  AssetType = "CRYPTO"
)

// Trade represents a single journal entry for a position.
//
// Dates are naive local calendar dates in YYYY-MM-DD form; Time is an
// optional intraday marker used only for same-day ordering (lexicographic).
// PnL is meaningful only once Status is CLOSED — open trades are excluded
// from every statistic until closed.
type Trade struct {
	ID         string
	Date       string // open date, YYYY-MM-DD
	CloseDate  string // empty while open
	Time       string // optional HH:MM marker
	Ticker     string
	Direction  Direction
	AssetType  AssetType
	EntryPrice float64
	ExitPrice  float64
	Size       float64
	PnL        float64
	Status     TradeStatus
	Tags       []string
	Notes      string
}

// EffectiveDate returns the date used for realized-P&L filtering and
// aggregation: the close date when present, the open date otherwise.
func (t *Trade) EffectiveDate() string {
	if t.CloseDate != "" {
		return t.CloseDate
	}
	return t.Date
}

// IsClosed reports whether the trade participates in performance math.
func (t *Trade) IsClosed() bool {
	return t.Status == TradeClosed
}

// HasTag reports whether the trade carries the given tag.
func (t *Trade) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// HasAllTags reports whether the trade carries every tag in the set.
// An empty set matches every trade.
func (t *Trade) HasAllTags(tags []string) bool {
	for _, tg := range tags {
		if !t.HasTag(tg) {
			return false
		}
	}
	return true
}

// Tag represents a user-defined label attached to trades.
type Tag struct {
	ID    string
	Name  string
	Color string
}

// ClosedTrades filters a trade list down to closed trades.
// The input slice is not modified.
func ClosedTrades(trades []Trade) []Trade {
	closed := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			closed = append(closed, t)
		}
	}
	return closed
}
