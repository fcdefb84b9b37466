package charges

import (
	"math"

	"github.com/rs/zerolog"

	"tradebook/internal/models"
)

// Calculator computes total transaction costs from the fee schedule.
// It is stateless and safe for concurrent use.
type Calculator struct {
	logger zerolog.Logger
}

// NewCalculator creates a new charge calculator.
func NewCalculator(logger zerolog.Logger) *Calculator {
	return &Calculator{logger: logger}
}

// Breakdown holds the individual charge components of a trade.
type Breakdown struct {
	Brokerage   float64
	STT         float64
	ExchangeTxn float64
	SEBIFee     float64
	StampDuty   float64
	GST         float64
	Total       float64
}

// TotalCharges computes the total transaction cost for a trade.
// Inputs are normalized before any arithmetic, so the result is always
// finite and non-negative. An unknown segment yields zero charges.
func (c *Calculator) TotalCharges(segment models.Segment, exchange models.Exchange, entryPrice, exitPrice, quantity float64, direction models.Direction) float64 {
	return c.Compute(segment, exchange, entryPrice, exitPrice, quantity, direction).Total
}

// Compute computes the full charge breakdown for a trade.
func (c *Calculator) Compute(segment models.Segment, exchange models.Exchange, entryPrice, exitPrice, quantity float64, direction models.Direction) Breakdown {
	sched, ok := scheduleFor(segment)
	if !ok {
		c.logger.Warn().
			Str("segment", string(segment)).
			Msg("Unknown segment, charges default to zero")
		return Breakdown{}
	}

	entryPrice = normalizePrice(entryPrice)
	exitPrice = normalizePrice(exitPrice)
	qty := normalizeQuantity(quantity)

	entryValue := entryPrice * float64(qty)
	exitValue := exitPrice * float64(qty)
	tradedValue := entryValue + exitValue

	var b Breakdown

	switch sched.Brokerage.Type {
	case BrokerageFlat:
		b.Brokerage = sched.Brokerage.Flat
	case BrokeragePercent:
		b.Brokerage = tradedValue * sched.Brokerage.Rate
	case BrokerageFlatOrPercent:
		b.Brokerage = math.Min(sched.Brokerage.Flat, tradedValue*sched.Brokerage.Rate)
	}

	switch sched.STTSide {
	case STTBothSides:
		b.STT = tradedValue * sched.STTRate
	case STTSellSide:
		b.STT = exitValue * sched.STTRate
	case STTSellSideShortOnly:
		if direction == models.DirectionShort {
			b.STT = exitValue * sched.STTRate
		}
	}

	b.ExchangeTxn = tradedValue * c.exchangeRate(sched, exchange)
	b.SEBIFee = tradedValue / crore * sched.SEBIFeePerCrore
	b.StampDuty = entryValue * sched.StampDutyRate

	// GST applies to brokerage, SEBI fee and the exchange transaction
	// charge. STT and stamp duty are outside the GST base.
	b.GST = (b.Brokerage + b.SEBIFee + b.ExchangeTxn) * sched.GSTRate

	b.Total = roundPaise(b.Brokerage + b.STT + b.ExchangeTxn + b.SEBIFee + b.StampDuty + b.GST)
	return b
}

// exchangeRate resolves the exchange transaction rate, falling back to
// the BSE rate for unrecognized exchanges.
func (c *Calculator) exchangeRate(sched FeeSchedule, exchange models.Exchange) float64 {
	if rate, ok := sched.ExchangeTxnRate[exchange]; ok {
		return rate
	}
	return sched.ExchangeTxnRate[models.BSE]
}

// normalizePrice coerces invalid prices to zero. Callers are live input
// forms, so a wrong-but-numeric result beats a NaN propagating into P&L.
func normalizePrice(price float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

// normalizeQuantity coerces invalid quantities to one.
func normalizeQuantity(quantity float64) int {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return 1
	}
	if quantity != math.Trunc(quantity) {
		return 1
	}
	return int(quantity)
}

// roundPaise rounds to two decimal places, half-up.
func roundPaise(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}
