package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "tradebook/internal/errors"
	"tradebook/internal/models"
)

// SQLiteStore implements TradeRepository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based trade repository.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table for completed trades with their computed economics
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		symbol TEXT NOT NULL,
		exchange TEXT NOT NULL,
		segment TEXT NOT NULL,
		direction TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL,
		charges REAL NOT NULL,
		pnl REAL NOT NULL,
		roi REAL,
		strategy TEXT,
		mood TEXT,
		notes TEXT,
		screenshots TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Journal notes table
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		trade_id TEXT,
		date DATE NOT NULL,
		content TEXT NOT NULL,
		tags TEXT,
		mood TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_trades_timestamp ON trades(timestamp);
	CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades(strategy);
	CREATE INDEX IF NOT EXISTS idx_notes_date ON notes(date);
	CREATE INDEX IF NOT EXISTS idx_notes_trade ON notes(trade_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTrade saves a trade. Edits are full replacements of the row.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	screenshots, _ := json.Marshal(trade.Screenshots)

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades (id, timestamp, symbol, exchange, segment, direction, quantity, entry_price, exit_price, charges, pnl, roi, strategy, mood, notes, screenshots, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.ID, trade.Timestamp, trade.Symbol, trade.Exchange, trade.Segment, trade.Direction, trade.Quantity, trade.EntryPrice, trade.ExitPrice, trade.Charges, trade.PnL, trade.ROI, trade.Strategy, trade.Mood, trade.Notes, string(screenshots), trade.CreatedAt, trade.UpdatedAt)
	if err != nil {
		return apperrors.NewStoreError("save_trade", err)
	}
	return nil
}

// ListTrades retrieves trades in chronological order.
func (s *SQLiteStore) ListTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT id, timestamp, symbol, exchange, segment, direction, quantity, entry_price, exit_price, charges, pnl, roi, strategy, mood, notes, screenshots, created_at, updated_at FROM trades WHERE 1=1"
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, filter.Strategy)
	}
	if filter.Segment != "" {
		query += " AND segment = ?"
		args = append(args, filter.Segment)
	}
	if !filter.StartDate.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY timestamp ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("list_trades", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var screenshotsJSON string

		if err := rows.Scan(&t.ID, &t.Timestamp, &t.Symbol, &t.Exchange, &t.Segment, &t.Direction, &t.Quantity, &t.EntryPrice, &t.ExitPrice, &t.Charges, &t.PnL, &t.ROI, &t.Strategy, &t.Mood, &t.Notes, &screenshotsJSON, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		json.Unmarshal([]byte(screenshotsJSON), &t.Screenshots)
		trades = append(trades, t)
	}

	return trades, rows.Err()
}

// SaveNote saves a journal note.
func (s *SQLiteStore) SaveNote(ctx context.Context, note *models.Note) error {
	tags, _ := json.Marshal(note.Tags)
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO notes (id, trade_id, date, content, tags, mood, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, note.ID, note.TradeID, note.Date, note.Content, string(tags), note.Mood, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return apperrors.NewStoreError("save_note", err)
	}
	return nil
}

// ListNotes retrieves journal notes, most recent first.
func (s *SQLiteStore) ListNotes(ctx context.Context, filter NoteFilter) ([]models.Note, error) {
	query := "SELECT id, trade_id, date, content, tags, mood, created_at, updated_at FROM notes WHERE 1=1"
	args := []interface{}{}

	if filter.TradeID != "" {
		query += " AND trade_id = ?"
		args = append(args, filter.TradeID)
	}
	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("list_notes", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		var tagsJSON string
		if err := rows.Scan(&n.ID, &n.TradeID, &n.Date, &n.Content, &tagsJSON, &n.Mood, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		json.Unmarshal([]byte(tagsJSON), &n.Tags)
		notes = append(notes, n)
	}

	return notes, rows.Err()
}
