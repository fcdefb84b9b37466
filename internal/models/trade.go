// Package models defines the core data types shared across the application.
package models

import "time"

// Exchange represents a stock exchange.
type Exchange string

const (
	NSE Exchange = "NSE"
	BSE Exchange = "BSE"
)

// Segment represents a market segment with its own charge rules.
type Segment string

const (
	SegmentEquityDelivery Segment = "equity-delivery"
	SegmentEquityIntraday Segment = "equity-intraday"
	SegmentFutures        Segment = "futures"
	SegmentOptions        Segment = "options"
)

// Direction represents the side of a trade.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Trade represents a completed trade with its computed economics.
type Trade struct {
	ID          string
	Timestamp   time.Time
	Symbol      string
	Exchange    Exchange
	Segment     Segment
	Direction   Direction
	Quantity    int
	EntryPrice  float64
	ExitPrice   float64
	Charges     float64
	PnL         float64
	ROI         float64
	Strategy    string
	Mood        string
	Notes       string
	Screenshots []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Note represents a trading journal note, optionally attached to a trade.
type Note struct {
	ID        string
	TradeID   string
	Date      time.Time
	Content   string
	Tags      []string
	Mood      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
