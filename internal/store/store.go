// Package store provides trade persistence interfaces and implementations.
package store

import (
	"context"

	"tradestats/internal/models"
)

// TradeStore defines the persistence interface the analytics engine is fed
// from. Implementations return immutable snapshots; callers never mutate
// returned slices in place.
type TradeStore interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.Trade) error
	GetTrade(ctx context.Context, id string) (*models.Trade, error)
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	CloseTrade(ctx context.Context, id, closeDate string, exitPrice, pnl float64) error
	DeleteTrade(ctx context.Context, id string) error

	// Tags
	SaveTag(ctx context.Context, tag *models.Tag) error
	ListTags(ctx context.Context) ([]models.Tag, error)

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades. Zero values mean "no
// constraint". Dates compare against the trade's opening date; period-level
// effective-date filtering belongs to the analytics engine, not the store.
type TradeFilter struct {
	Ticker     string
	Status     models.TradeStatus
	AssetTypes []models.AssetType
	Tags       []string // AND-match
	StartDate  string   // inclusive, YYYY-MM-DD
	EndDate    string   // inclusive, YYYY-MM-DD
	Limit      int
}
