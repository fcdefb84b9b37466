package charges

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"tradebook/internal/models"
)

// segmentGen generates one of the supported segments.
func segmentGen() gopter.Gen {
	segments := AllSegments()
	return gen.IntRange(0, len(segments)-1).Map(func(i int) models.Segment {
		return segments[i]
	})
}

// directionGen generates a trade direction.
func directionGen() gopter.Gen {
	return gen.Bool().Map(func(long bool) models.Direction {
		if long {
			return models.DirectionLong
		}
		return models.DirectionShort
	})
}

// exchangeGen generates an exchange, including unrecognized ones to
// exercise the BSE fallback.
func exchangeGen() gopter.Gen {
	exchanges := []models.Exchange{models.NSE, models.BSE, models.Exchange("MCX"), models.Exchange("")}
	return gen.IntRange(0, len(exchanges)-1).Map(func(i int) models.Exchange {
		return exchanges[i]
	})
}

// hostilePriceGen generates prices including NaN, infinities and
// negative values.
func hostilePriceGen() gopter.Gen {
	return gen.OneGenOf(
		gen.Const(math.NaN()),
		gen.Const(math.Inf(1)),
		gen.Const(math.Inf(-1)),
		gen.Float64Range(-100000, 0),
		gen.Float64Range(0, 100000),
	)
}

// hostileQuantityGen generates quantities including NaN, infinities,
// zero, negatives and fractional values.
func hostileQuantityGen() gopter.Gen {
	return gen.OneGenOf(
		gen.Const(math.NaN()),
		gen.Const(math.Inf(1)),
		gen.Float64Range(-1000, 0),
		gen.Float64Range(0.1, 0.9),
		gen.Float64Range(1, 10000).Map(math.Trunc),
	)
}

// TestProperty_ChargesAlwaysFiniteAndNonNegative tests that the total
// charge is finite and >= 0 for any input, however malformed.
func TestProperty_ChargesAlwaysFiniteAndNonNegative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)
	calc := NewCalculator(zerolog.Nop())

	properties.Property("Total charges are finite and non-negative", prop.ForAll(
		func(segment models.Segment, exchange models.Exchange, direction models.Direction, entry, exit, qty float64) bool {
			total := calc.TotalCharges(segment, exchange, entry, exit, qty, direction)
			return !math.IsNaN(total) && !math.IsInf(total, 0) && total >= 0
		},
		segmentGen(),
		exchangeGen(),
		directionGen(),
		hostilePriceGen(),
		hostilePriceGen(),
		hostileQuantityGen(),
	))

	properties.TestingRun(t)
}

// TestProperty_BreakdownComponentsSumToTotal tests that the rounded sum
// of the individual components equals the reported total.
func TestProperty_BreakdownComponentsSumToTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)
	calc := NewCalculator(zerolog.Nop())

	properties.Property("Breakdown components sum to total", prop.ForAll(
		func(segment models.Segment, direction models.Direction, entry, exit float64, qty int) bool {
			b := calc.Compute(segment, models.NSE, entry, exit, float64(qty), direction)
			sum := b.Brokerage + b.STT + b.ExchangeTxn + b.SEBIFee + b.StampDuty + b.GST
			return math.Abs(roundPaise(sum)-b.Total) < 1e-9
		},
		segmentGen(),
		directionGen(),
		gen.Float64Range(0.05, 50000),
		gen.Float64Range(0.05, 50000),
		gen.IntRange(1, 10000),
	))

	properties.TestingRun(t)
}

// TestProperty_ChargesMonotonicInQuantity tests that doubling a valid
// quantity never decreases total charges.
func TestProperty_ChargesMonotonicInQuantity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)
	calc := NewCalculator(zerolog.Nop())

	properties.Property("Doubling quantity never lowers charges", prop.ForAll(
		func(segment models.Segment, direction models.Direction, entry, exit float64, qty int) bool {
			once := calc.TotalCharges(segment, models.NSE, entry, exit, float64(qty), direction)
			twice := calc.TotalCharges(segment, models.NSE, entry, exit, float64(qty*2), direction)
			return twice >= once
		},
		segmentGen(),
		directionGen(),
		gen.Float64Range(0.05, 50000),
		gen.Float64Range(0.05, 50000),
		gen.IntRange(1, 5000),
	))

	properties.TestingRun(t)
}

// TestProperty_UnknownExchangeMatchesBSE tests that any unrecognized
// exchange is charged at the BSE transaction rate.
func TestProperty_UnknownExchangeMatchesBSE(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)
	calc := NewCalculator(zerolog.Nop())

	properties.Property("Unknown exchange is charged at BSE rates", prop.ForAll(
		func(segment models.Segment, direction models.Direction, entry, exit float64, qty int) bool {
			unknown := calc.Compute(segment, models.Exchange("MCX"), entry, exit, float64(qty), direction)
			bse := calc.Compute(segment, models.BSE, entry, exit, float64(qty), direction)
			return unknown == bse
		},
		segmentGen(),
		directionGen(),
		gen.Float64Range(0.05, 50000),
		gen.Float64Range(0.05, 50000),
		gen.IntRange(1, 10000),
	))

	properties.TestingRun(t)
}
