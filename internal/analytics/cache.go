package analytics

import (
	"fmt"
	"sync"
	"time"

	"tradestats/internal/models"
)

// ViewCache memoizes resolved period views keyed on a trade-list version
// and the filter parameters. Full recomputation is cheap enough that the
// cache is purely an optimization for callers re-rendering on every filter
// change; correctness never depends on it. Call Invalidate whenever the
// underlying trade list changes.
type ViewCache struct {
	mu    sync.Mutex
	views map[string]PeriodView
}

// NewViewCache creates an empty cache.
func NewViewCache() *ViewCache {
	return &ViewCache{views: make(map[string]PeriodView)}
}

// Invalidate drops all cached views. Call after any trade mutation.
func (c *ViewCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = make(map[string]PeriodView)
}

// Resolve returns the cached view for the parameters, computing and storing
// it on a miss. now is truncated to the calendar day for the key, since the
// engine's windows have daily resolution.
func (c *ViewCache) Resolve(trades []models.Trade, period Period, filters Filters, custom *CustomFilter, startingEquity float64, now time.Time) PeriodView {
	key := cacheKey(period, filters, custom, startingEquity, now)

	c.mu.Lock()
	view, ok := c.views[key]
	c.mu.Unlock()
	if ok {
		return view
	}

	view = ResolvePeriod(trades, period, filters, custom, startingEquity, now)

	c.mu.Lock()
	c.views[key] = view
	c.mu.Unlock()
	return view
}

func cacheKey(period Period, filters Filters, custom *CustomFilter, startingEquity float64, now time.Time) string {
	customKey := ""
	if custom != nil {
		customKey = fmt.Sprintf("%s|%s|%s|%d|%d",
			custom.Kind, custom.Start, custom.End, custom.DaysBack, custom.TradesBack)
	}
	return fmt.Sprintf("%s|%v|%v|%s|%g|%s",
		period, filters.Tags, filters.AssetTypes, customKey, startingEquity,
		FormatDate(Midnight(now)))
}
