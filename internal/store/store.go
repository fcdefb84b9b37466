// Package store provides trade persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"tradebook/internal/models"
)

// TradeRepository defines the persistence interface consumed by the CLI.
// The computation engine never touches storage directly; callers fetch a
// snapshot of trades and hand it to the analytics.
type TradeRepository interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.Trade) error
	ListTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)

	// Journal notes
	SaveNote(ctx context.Context, note *models.Note) error
	ListNotes(ctx context.Context, filter NoteFilter) ([]models.Note, error)

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	Symbol    string
	Strategy  string
	Segment   models.Segment
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// NoteFilter represents filters for querying journal notes.
type NoteFilter struct {
	TradeID   string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
