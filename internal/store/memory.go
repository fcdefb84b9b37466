package store

import (
	"context"
	"sort"
	"sync"

	"tradebook/internal/models"
)

// MemoryStore implements TradeRepository in memory. It backs tests and
// is the fallback when the SQLite store cannot be opened.
type MemoryStore struct {
	mu     sync.RWMutex
	trades map[string]models.Trade
	notes  map[string]models.Note
}

// NewMemoryStore creates a new in-memory trade repository.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trades: make(map[string]models.Trade),
		notes:  make(map[string]models.Note),
	}
}

// SaveTrade saves a trade, replacing any existing trade with the same ID.
func (m *MemoryStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades[trade.ID] = *trade
	return nil
}

// ListTrades retrieves trades in chronological order.
func (m *MemoryStore) ListTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var trades []models.Trade
	for _, t := range m.trades {
		if filter.Symbol != "" && t.Symbol != filter.Symbol {
			continue
		}
		if filter.Strategy != "" && t.Strategy != filter.Strategy {
			continue
		}
		if filter.Segment != "" && t.Segment != filter.Segment {
			continue
		}
		if !filter.StartDate.IsZero() && t.Timestamp.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && t.Timestamp.After(filter.EndDate) {
			continue
		}
		trades = append(trades, t)
	}

	sort.Slice(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})

	if filter.Limit > 0 && len(trades) > filter.Limit {
		trades = trades[:filter.Limit]
	}
	return trades, nil
}

// SaveNote saves a journal note.
func (m *MemoryStore) SaveNote(ctx context.Context, note *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[note.ID] = *note
	return nil
}

// ListNotes retrieves journal notes, most recent first.
func (m *MemoryStore) ListNotes(ctx context.Context, filter NoteFilter) ([]models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var notes []models.Note
	for _, n := range m.notes {
		if filter.TradeID != "" && n.TradeID != filter.TradeID {
			continue
		}
		if !filter.StartDate.IsZero() && n.Date.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && n.Date.After(filter.EndDate) {
			continue
		}
		notes = append(notes, n)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Date.After(notes[j].Date)
	})

	if filter.Limit > 0 && len(notes) > filter.Limit {
		notes = notes[:filter.Limit]
	}
	return notes, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
