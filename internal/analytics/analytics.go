// Package analytics computes aggregate statistics over collections of trades.
package analytics

import (
	"math"

	"tradebook/internal/models"
)

// Pattern flags a recognizable behavior in a trade history.
type Pattern string

const (
	PatternGoodRiskReward    Pattern = "good-risk-reward"
	PatternConsecutiveLosses Pattern = "consecutive-losses"
	PatternStrongWinStreak   Pattern = "strong-win-streak"
)

const (
	// A strategy needs this many trades before its win rate counts.
	minStrategySample = 3
	// Each side needs this many trades before risk/reward is judged.
	minRiskRewardSample = 4
	lossStreakFlagAt    = 4
	winStreakFlagAt     = 5
)

// StrategyStats holds per-strategy aggregates.
type StrategyStats struct {
	Strategy string
	Trades   int
	Wins     int
	Losses   int
	TotalPnL float64
	WinRate  float64
}

// Streaks holds consecutive win/loss runs over a trade sequence.
// Current is signed: positive for an ongoing win streak, negative for
// an ongoing loss streak.
type Streaks struct {
	MaxWin  int
	MaxLoss int
	Current int
}

// Report holds the full analytics result for a set of trades.
type Report struct {
	TotalTrades  int
	Wins         int
	Losses       int
	WinRate      float64
	GrossProfit  float64
	GrossLoss    float64
	NetPnL       float64
	AvgWin       float64
	AvgLoss      float64
	LargestWin   float64
	LargestLoss  float64
	Expectancy   float64
	ProfitFactor float64
	Strategies   []StrategyStats
	BestStrategy *StrategyStats
	Streaks      Streaks
	Patterns     []Pattern
}

// Compute computes the analytics report over the given trades.
// Trades are expected in chronological order; the streak and
// best-strategy results depend on it. An empty slice yields a zeroed
// report rather than an error.
func Compute(trades []models.Trade) Report {
	report := Report{}
	if len(trades) == 0 {
		return report
	}

	byStrategy := make(map[string]*StrategyStats)
	var strategyOrder []string

	winStreak, lossStreak := 0, 0

	for _, t := range trades {
		report.TotalTrades++
		report.NetPnL += t.PnL

		if t.PnL > 0 {
			report.Wins++
			report.GrossProfit += t.PnL
			if t.PnL > report.LargestWin {
				report.LargestWin = t.PnL
			}
			winStreak++
			lossStreak = 0
			if winStreak > report.Streaks.MaxWin {
				report.Streaks.MaxWin = winStreak
			}
			report.Streaks.Current = winStreak
		} else {
			report.Losses++
			report.GrossLoss += t.PnL
			if t.PnL < report.LargestLoss {
				report.LargestLoss = t.PnL
			}
			lossStreak++
			winStreak = 0
			if lossStreak > report.Streaks.MaxLoss {
				report.Streaks.MaxLoss = lossStreak
			}
			report.Streaks.Current = -lossStreak
		}

		strategy := t.Strategy
		if strategy == "" {
			strategy = "Manual"
		}
		stats, ok := byStrategy[strategy]
		if !ok {
			stats = &StrategyStats{Strategy: strategy}
			byStrategy[strategy] = stats
			strategyOrder = append(strategyOrder, strategy)
		}
		stats.Trades++
		stats.TotalPnL += t.PnL
		if t.PnL > 0 {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}

	report.WinRate = float64(report.Wins) / float64(report.TotalTrades) * 100
	report.Expectancy = report.NetPnL / float64(report.TotalTrades)

	if report.Wins > 0 {
		report.AvgWin = report.GrossProfit / float64(report.Wins)
	}
	if report.Losses > 0 {
		report.AvgLoss = report.GrossLoss / float64(report.Losses)
	}

	if report.GrossLoss != 0 {
		report.ProfitFactor = report.GrossProfit / -report.GrossLoss
	} else if report.GrossProfit > 0 {
		report.ProfitFactor = math.Inf(1)
	}

	// Encounter order keeps best-strategy ties deterministic: first wins.
	for _, name := range strategyOrder {
		stats := byStrategy[name]
		stats.WinRate = float64(stats.Wins) / float64(stats.Trades) * 100
		report.Strategies = append(report.Strategies, *stats)

		if stats.Trades < minStrategySample {
			continue
		}
		if report.BestStrategy == nil || stats.WinRate > report.BestStrategy.WinRate {
			copied := *stats
			report.BestStrategy = &copied
		}
	}

	report.Patterns = detectPatterns(report)
	return report
}

// detectPatterns flags qualitative behaviors in the aggregate stats.
func detectPatterns(r Report) []Pattern {
	var patterns []Pattern

	if r.Wins >= minRiskRewardSample && r.Losses >= minRiskRewardSample {
		if r.AvgWin > 2*-r.AvgLoss {
			patterns = append(patterns, PatternGoodRiskReward)
		}
	}
	if r.Streaks.MaxLoss >= lossStreakFlagAt {
		patterns = append(patterns, PatternConsecutiveLosses)
	}
	if r.Streaks.MaxWin >= winStreakFlagAt {
		patterns = append(patterns, PatternStrongWinStreak)
	}

	return patterns
}
