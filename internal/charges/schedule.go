// Package charges computes transaction costs for Indian market trades.
package charges

import (
	"tradebook/internal/models"
)

// BrokerageType identifies how a segment's brokerage is computed.
type BrokerageType string

const (
	// BrokerageFlat charges a fixed amount per executed order.
	BrokerageFlat BrokerageType = "FLAT"
	// BrokeragePercent charges a rate on total traded value.
	BrokeragePercent BrokerageType = "PERCENT"
	// BrokerageFlatOrPercent charges the lesser of a flat amount and a
	// rate on total traded value.
	BrokerageFlatOrPercent BrokerageType = "FLAT_OR_PERCENT"
)

// BrokerageRule describes a segment's brokerage computation.
type BrokerageRule struct {
	Type BrokerageType
	Flat float64
	Rate float64
}

// STTSide identifies which side(s) of a trade STT applies to.
type STTSide string

const (
	// STTBothSides taxes entry and exit value.
	STTBothSides STTSide = "BOTH"
	// STTSellSide taxes exit value only.
	STTSellSide STTSide = "SELL"
	// STTSellSideShortOnly taxes exit value, and only for short trades.
	// This mirrors the simplification that option STT applies to the
	// sell/write leg.
	STTSellSideShortOnly STTSide = "SELL_SHORT_ONLY"
)

// FeeSchedule holds the charge rules for one market segment.
// All rates are fractions, not percentages.
type FeeSchedule struct {
	Segment         models.Segment
	Brokerage       BrokerageRule
	STTRate         float64
	STTSide         STTSide
	ExchangeTxnRate map[models.Exchange]float64
	SEBIFeePerCrore float64
	StampDutyRate   float64
	GSTRate         float64
}

const (
	gstRate         = 0.18
	sebiFeePerCrore = 10.0
	crore           = 1e7
)

// scheduleFor returns the fee schedule for a segment. The switch is
// exhaustive over the supported segments; anything else reports false.
func scheduleFor(segment models.Segment) (FeeSchedule, bool) {
	switch segment {
	case models.SegmentEquityDelivery:
		return FeeSchedule{
			Segment:   models.SegmentEquityDelivery,
			Brokerage: BrokerageRule{Type: BrokerageFlat, Flat: 0},
			STTRate:   0.001,
			STTSide:   STTBothSides,
			ExchangeTxnRate: map[models.Exchange]float64{
				models.NSE: 0.0000297,
				models.BSE: 0.0000375,
			},
			SEBIFeePerCrore: sebiFeePerCrore,
			StampDutyRate:   0.00015,
			GSTRate:         gstRate,
		}, true
	case models.SegmentEquityIntraday:
		return FeeSchedule{
			Segment:   models.SegmentEquityIntraday,
			Brokerage: BrokerageRule{Type: BrokerageFlatOrPercent, Flat: 20, Rate: 0.0003},
			STTRate:   0.00025,
			STTSide:   STTSellSide,
			ExchangeTxnRate: map[models.Exchange]float64{
				models.NSE: 0.0000297,
				models.BSE: 0.0000375,
			},
			SEBIFeePerCrore: sebiFeePerCrore,
			StampDutyRate:   0.00003,
			GSTRate:         gstRate,
		}, true
	case models.SegmentFutures:
		return FeeSchedule{
			Segment:   models.SegmentFutures,
			Brokerage: BrokerageRule{Type: BrokerageFlatOrPercent, Flat: 20, Rate: 0.0003},
			STTRate:   0.000125,
			STTSide:   STTSellSide,
			ExchangeTxnRate: map[models.Exchange]float64{
				models.NSE: 0.0000173,
				models.BSE: 0,
			},
			SEBIFeePerCrore: sebiFeePerCrore,
			StampDutyRate:   0.00002,
			GSTRate:         gstRate,
		}, true
	case models.SegmentOptions:
		// Options brokerage is always a flat per-order amount, even
		// though the published schedule nominally allows lesser-of.
		return FeeSchedule{
			Segment:   models.SegmentOptions,
			Brokerage: BrokerageRule{Type: BrokerageFlat, Flat: 20},
			STTRate:   0.000625,
			STTSide:   STTSellSideShortOnly,
			ExchangeTxnRate: map[models.Exchange]float64{
				models.NSE: 0.0003503,
				models.BSE: 0.000325,
			},
			SEBIFeePerCrore: sebiFeePerCrore,
			StampDutyRate:   0.00003,
			GSTRate:         gstRate,
		}, true
	default:
		return FeeSchedule{}, false
	}
}

// AllSegments returns the supported market segments.
func AllSegments() []models.Segment {
	return []models.Segment{
		models.SegmentEquityDelivery,
		models.SegmentEquityIntraday,
		models.SegmentFutures,
		models.SegmentOptions,
	}
}
