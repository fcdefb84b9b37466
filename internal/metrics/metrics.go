// Package metrics derives single-trade P&L and ROI from trade inputs.
package metrics

import (
	"math"

	"tradebook/internal/charges"
	"tradebook/internal/models"
)

// Input holds the raw fields of a single trade.
type Input struct {
	Segment    models.Segment
	Exchange   models.Exchange
	EntryPrice float64
	ExitPrice  float64
	Quantity   float64
	Direction  models.Direction
}

// Result holds the computed economics of a single trade.
type Result struct {
	PnL          float64
	TotalCharges float64
	ROI          float64
}

// Calculator computes trade metrics on top of the charge calculator.
// It is stateless and safe for concurrent use.
type Calculator struct {
	charges *charges.Calculator
}

// NewCalculator creates a new trade metrics calculator.
func NewCalculator(ch *charges.Calculator) *Calculator {
	return &Calculator{charges: ch}
}

// Compute computes net P&L, total charges and ROI for a trade.
// All returned values are finite; invalid inputs are coerced the same
// way the charge calculator coerces them.
func (c *Calculator) Compute(in Input) Result {
	entry := normalizePrice(in.EntryPrice)
	exit := normalizePrice(in.ExitPrice)
	qty := normalizeQuantity(in.Quantity)

	totalCharges := c.charges.TotalCharges(in.Segment, in.Exchange, entry, exit, float64(qty), in.Direction)

	var gross float64
	if in.Direction == models.DirectionShort {
		gross = (entry - exit) * float64(qty)
	} else {
		gross = (exit - entry) * float64(qty)
	}
	pnl := gross - totalCharges

	invested := entry * float64(qty)
	if in.Direction == models.DirectionShort {
		invested = exit * float64(qty)
	}

	roi := 0.0
	if invested > 0 {
		roi = pnl / invested * 100
	}

	return Result{
		PnL:          finiteOrZero(pnl),
		TotalCharges: finiteOrZero(totalCharges),
		ROI:          finiteOrZero(roi),
	}
}

func normalizePrice(price float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

func normalizeQuantity(quantity float64) int {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return 1
	}
	if quantity != math.Trunc(quantity) {
		return 1
	}
	return int(quantity)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
