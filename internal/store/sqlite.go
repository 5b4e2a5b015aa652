package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	apperrors "tradestats/internal/errors"
	"tradestats/internal/models"
)

// SQLiteStore implements TradeStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based trade store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		close_date TEXT,
		time TEXT,
		ticker TEXT NOT NULL,
		direction TEXT NOT NULL,
		asset_type TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL,
		size REAL NOT NULL,
		pnl REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'OPEN',
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_close_date ON trades(close_date);
	CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);

	CREATE TABLE IF NOT EXISTS tags (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		color TEXT
	);

	CREATE TABLE IF NOT EXISTS trade_tags (
		trade_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		UNIQUE(trade_id, tag),
		FOREIGN KEY (trade_id) REFERENCES trades(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_trade_tags_tag ON trade_tags(tag);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value REAL NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveTrade inserts or replaces a trade and its tag links.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	if trade.ID == "" {
		return apperrors.NewValidationError("id", trade.ID, "trade id is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, "begin save trade")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades
		(id, date, close_date, time, ticker, direction, asset_type,
		 entry_price, exit_price, size, pnl, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.ID, trade.Date, nullString(trade.CloseDate), nullString(trade.Time),
		trade.Ticker, string(trade.Direction), string(trade.AssetType),
		trade.EntryPrice, trade.ExitPrice, trade.Size, trade.PnL,
		string(trade.Status), nullString(trade.Notes))
	if err != nil {
		return apperrors.Wrap(err, "insert trade")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM trade_tags WHERE trade_id = ?`, trade.ID); err != nil {
		return apperrors.Wrap(err, "clear trade tags")
	}
	for _, tag := range trade.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO trade_tags (trade_id, tag) VALUES (?, ?)`, trade.ID, tag); err != nil {
			return apperrors.Wrap(err, "insert trade tag")
		}
	}
	return tx.Commit()
}

// GetTrade fetches a single trade by ID.
func (s *SQLiteStore) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	trades, err := s.queryTrades(ctx, `WHERE t.id = ?`, []interface{}{id}, 1)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, apperrors.ErrTradeNotFound
	}
	return &trades[0], nil
}

// GetTrades fetches trades matching the filter, ordered by opening date then
// intraday time.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	var conds []string
	var args []interface{}

	if filter.Ticker != "" {
		conds = append(conds, "t.ticker = ?")
		args = append(args, filter.Ticker)
	}
	if filter.Status != "" {
		conds = append(conds, "t.status = ?")
		args = append(args, string(filter.Status))
	}
	if len(filter.AssetTypes) > 0 {
		placeholders := strings.Repeat("?,", len(filter.AssetTypes))
		conds = append(conds, fmt.Sprintf("t.asset_type IN (%s)", placeholders[:len(placeholders)-1]))
		for _, at := range filter.AssetTypes {
			args = append(args, string(at))
		}
	}
	if filter.StartDate != "" {
		conds = append(conds, "t.date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		conds = append(conds, "t.date <= ?")
		args = append(args, filter.EndDate)
	}
	for _, tag := range filter.Tags {
		conds = append(conds, "EXISTS (SELECT 1 FROM trade_tags tt WHERE tt.trade_id = t.id AND tt.tag = ?)")
		args = append(args, tag)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	return s.queryTrades(ctx, where, args, filter.Limit)
}

func (s *SQLiteStore) queryTrades(ctx context.Context, where string, args []interface{}, limit int) ([]models.Trade, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.date, t.close_date, t.time, t.ticker, t.direction,
		       t.asset_type, t.entry_price, t.exit_price, t.size, t.pnl,
		       t.status, t.notes
		FROM trades t %s
		ORDER BY t.date ASC, t.time ASC, t.id ASC`, where)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "query trades")
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var closeDate, tradeTime, notes sql.NullString
		var exitPrice sql.NullFloat64
		if err := rows.Scan(&t.ID, &t.Date, &closeDate, &tradeTime, &t.Ticker,
			&t.Direction, &t.AssetType, &t.EntryPrice, &exitPrice, &t.Size,
			&t.PnL, &t.Status, &notes); err != nil {
			return nil, apperrors.Wrap(err, "scan trade")
		}
		t.CloseDate = closeDate.String
		t.Time = tradeTime.String
		t.Notes = notes.String
		t.ExitPrice = exitPrice.Float64
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "iterate trades")
	}

	if err := s.attachTags(ctx, trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (s *SQLiteStore) attachTags(ctx context.Context, trades []models.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	index := make(map[string]int, len(trades))
	ids := make([]interface{}, len(trades))
	placeholders := make([]string, len(trades))
	for i := range trades {
		index[trades[i].ID] = i
		ids[i] = trades[i].ID
		placeholders[i] = "?"
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT trade_id, tag FROM trade_tags WHERE trade_id IN (%s) ORDER BY tag`,
		strings.Join(placeholders, ",")), ids...)
	if err != nil {
		return apperrors.Wrap(err, "query trade tags")
	}
	defer rows.Close()

	for rows.Next() {
		var tradeID, tag string
		if err := rows.Scan(&tradeID, &tag); err != nil {
			return apperrors.Wrap(err, "scan trade tag")
		}
		if i, ok := index[tradeID]; ok {
			trades[i].Tags = append(trades[i].Tags, tag)
		}
	}
	return rows.Err()
}

// CloseTrade records the close of an open trade: sets the close date, exit
// price, and realized P&L, and flips the status to CLOSED. This is the only
// mutation the analytics engine cares about.
func (s *SQLiteStore) CloseTrade(ctx context.Context, id, closeDate string, exitPrice, pnl float64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE trades
		SET close_date = ?, exit_price = ?, pnl = ?, status = ?
		WHERE id = ? AND status = ?`,
		closeDate, exitPrice, pnl, string(models.TradeClosed), id, string(models.TradeOpen))
	if err != nil {
		return apperrors.Wrap(err, "close trade")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "close trade result")
	}
	if n == 0 {
		if _, err := s.GetTrade(ctx, id); err != nil {
			return apperrors.ErrTradeNotFound
		}
		return apperrors.ErrTradeAlreadyClosed
	}
	return nil
}

// DeleteTrade removes a trade and, through the cascade, its tag links.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "delete trade")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}

// SaveTag inserts or updates a tag definition.
func (s *SQLiteStore) SaveTag(ctx context.Context, tag *models.Tag) error {
	if tag.Name == "" {
		return apperrors.NewValidationError("name", tag.Name, "tag name is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO tags (id, name, color) VALUES (?, ?, ?)`,
		tag.ID, tag.Name, tag.Color)
	return apperrors.Wrap(err, "save tag")
}

// ListTags returns all tag definitions ordered by name.
func (s *SQLiteStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM tags ORDER BY name`)
	if err != nil {
		return nil, apperrors.Wrap(err, "query tags")
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		var color sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &color); err != nil {
			return nil, apperrors.Wrap(err, "scan tag")
		}
		t.Color = color.String
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Settings keys in the settings table.
const (
	settingStartingEquity     = "starting_equity"
	settingWinRateTarget      = "win_rate_target"
	settingProfitFactorTarget = "profit_factor_target"
	settingMaxDrawdownLimit   = "max_drawdown_limit"
	settingStreakTarget       = "streak_target"
)

// GetSettings loads engine settings, falling back to defaults for any
// missing key.
func (s *SQLiteStore) GetSettings(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return settings, apperrors.Wrap(err, "query settings")
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return settings, apperrors.Wrap(err, "scan setting")
		}
		switch key {
		case settingStartingEquity:
			settings.StartingEquity = value
		case settingWinRateTarget:
			settings.Consistency.WinRateTarget = value
		case settingProfitFactorTarget:
			settings.Consistency.ProfitFactorTarget = value
		case settingMaxDrawdownLimit:
			settings.Consistency.MaxDrawdownLimit = value
		case settingStreakTarget:
			settings.Consistency.StreakTarget = value
		}
	}
	return settings, rows.Err()
}

// SaveSettings persists engine settings.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, "begin save settings")
	}
	defer tx.Rollback()

	pairs := map[string]float64{
		settingStartingEquity:     settings.StartingEquity,
		settingWinRateTarget:      settings.Consistency.WinRateTarget,
		settingProfitFactorTarget: settings.Consistency.ProfitFactorTarget,
		settingMaxDrawdownLimit:   settings.Consistency.MaxDrawdownLimit,
		settingStreakTarget:       settings.Consistency.StreakTarget,
	}
	for key, value := range pairs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
			return apperrors.Wrap(err, "save setting "+key)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
