package analytics

import (
	"math"
	"testing"

	"tradebook/internal/models"
)

// tradesWithPnL builds a chronological trade slice from raw P&L values.
func tradesWithPnL(pnls ...float64) []models.Trade {
	trades := make([]models.Trade, len(pnls))
	for i, p := range pnls {
		trades[i] = models.Trade{PnL: p, Strategy: "Breakout"}
	}
	return trades
}

func TestEmptyTradesYieldZeroedReport(t *testing.T) {
	r := Compute(nil)

	if r.TotalTrades != 0 || r.Wins != 0 || r.Losses != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero", r.TotalTrades, r.Wins, r.Losses)
	}
	if r.WinRate != 0 || r.ProfitFactor != 0 || r.Expectancy != 0 {
		t.Errorf("rates = %v/%v/%v, want all zero", r.WinRate, r.ProfitFactor, r.Expectancy)
	}
	if r.BestStrategy != nil {
		t.Errorf("BestStrategy = %+v, want nil", r.BestStrategy)
	}
	if len(r.Patterns) != 0 {
		t.Errorf("Patterns = %v, want none", r.Patterns)
	}
}

func TestStreakTracking(t *testing.T) {
	r := Compute(tradesWithPnL(10, 20, -5, -5, -5, -5, 15))

	if r.Streaks.MaxWin != 2 {
		t.Errorf("MaxWin = %d, want 2", r.Streaks.MaxWin)
	}
	if r.Streaks.MaxLoss != 4 {
		t.Errorf("MaxLoss = %d, want 4", r.Streaks.MaxLoss)
	}
	if r.Streaks.Current != 1 {
		t.Errorf("Current = %d, want +1", r.Streaks.Current)
	}
}

func TestCurrentStreakIsNegativeAfterLosses(t *testing.T) {
	r := Compute(tradesWithPnL(10, -5, -5, -5))

	if r.Streaks.Current != -3 {
		t.Errorf("Current = %d, want -3", r.Streaks.Current)
	}
}

func TestBreakevenCountsAsLoss(t *testing.T) {
	r := Compute(tradesWithPnL(0))

	if r.Wins != 0 || r.Losses != 1 {
		t.Errorf("wins/losses = %d/%d, want 0/1 (breakeven is a loss)", r.Wins, r.Losses)
	}
	if r.Streaks.Current != -1 {
		t.Errorf("Current = %d, want -1", r.Streaks.Current)
	}
}

func TestProfitFactor(t *testing.T) {
	cases := []struct {
		name string
		pnls []float64
		want float64
	}{
		{"wins and losses", []float64{100, 200, -50, -100}, 2.0},
		{"only losses", []float64{-50, -100}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Compute(tradesWithPnL(tc.pnls...))
			if r.ProfitFactor != tc.want {
				t.Errorf("ProfitFactor = %v, want %v", r.ProfitFactor, tc.want)
			}
		})
	}
}

func TestProfitFactorInfiniteWithNoLosses(t *testing.T) {
	r := Compute(tradesWithPnL(100, 200))

	if !math.IsInf(r.ProfitFactor, 1) {
		t.Errorf("ProfitFactor = %v, want +Inf", r.ProfitFactor)
	}
}

func TestAveragesAndLargest(t *testing.T) {
	r := Compute(tradesWithPnL(100, 300, -50, -150))

	if r.AvgWin != 200 {
		t.Errorf("AvgWin = %v, want 200", r.AvgWin)
	}
	if r.AvgLoss != -100 {
		t.Errorf("AvgLoss = %v, want -100", r.AvgLoss)
	}
	if r.LargestWin != 300 {
		t.Errorf("LargestWin = %v, want 300", r.LargestWin)
	}
	if r.LargestLoss != -150 {
		t.Errorf("LargestLoss = %v, want -150", r.LargestLoss)
	}
	if r.Expectancy != 50 {
		t.Errorf("Expectancy = %v, want 50", r.Expectancy)
	}
}

func TestBestStrategyRequiresMinimumSample(t *testing.T) {
	trades := []models.Trade{
		// Perfect record but only two trades.
		{PnL: 100, Strategy: "Scalp"},
		{PnL: 100, Strategy: "Scalp"},
		// Worse win rate, but enough trades to qualify.
		{PnL: 50, Strategy: "Swing"},
		{PnL: 50, Strategy: "Swing"},
		{PnL: -20, Strategy: "Swing"},
	}

	r := Compute(trades)
	if r.BestStrategy == nil {
		t.Fatal("BestStrategy = nil, want Swing")
	}
	if r.BestStrategy.Strategy != "Swing" {
		t.Errorf("BestStrategy = %q, want Swing (Scalp has too few trades)", r.BestStrategy.Strategy)
	}
}

func TestBestStrategyTieGoesToFirstEncountered(t *testing.T) {
	trades := []models.Trade{
		{PnL: 10, Strategy: "Alpha"},
		{PnL: 10, Strategy: "Alpha"},
		{PnL: -5, Strategy: "Alpha"},
		{PnL: 10, Strategy: "Beta"},
		{PnL: 10, Strategy: "Beta"},
		{PnL: -5, Strategy: "Beta"},
	}

	r := Compute(trades)
	if r.BestStrategy == nil {
		t.Fatal("BestStrategy = nil")
	}
	if r.BestStrategy.Strategy != "Alpha" {
		t.Errorf("BestStrategy = %q, want Alpha on equal win rates", r.BestStrategy.Strategy)
	}
}

func TestEmptyStrategyNameBecomesManual(t *testing.T) {
	r := Compute([]models.Trade{{PnL: 10}, {PnL: -5}})

	if len(r.Strategies) != 1 {
		t.Fatalf("Strategies = %d entries, want 1", len(r.Strategies))
	}
	if r.Strategies[0].Strategy != "Manual" {
		t.Errorf("Strategy name = %q, want Manual", r.Strategies[0].Strategy)
	}
}

func TestStrategyOrderFollowsFirstTrade(t *testing.T) {
	trades := []models.Trade{
		{PnL: 10, Strategy: "Zeta"},
		{PnL: 10, Strategy: "Alpha"},
		{PnL: 10, Strategy: "Zeta"},
	}

	r := Compute(trades)
	if len(r.Strategies) != 2 {
		t.Fatalf("Strategies = %d entries, want 2", len(r.Strategies))
	}
	if r.Strategies[0].Strategy != "Zeta" || r.Strategies[1].Strategy != "Alpha" {
		t.Errorf("Strategy order = [%s %s], want [Zeta Alpha]",
			r.Strategies[0].Strategy, r.Strategies[1].Strategy)
	}
}

func TestPatternDetection(t *testing.T) {
	cases := []struct {
		name string
		pnls []float64
		want map[Pattern]bool
	}{
		{
			name: "good risk reward",
			pnls: []float64{300, 300, 300, 300, -100, -100, -100, -100},
			want: map[Pattern]bool{PatternGoodRiskReward: true, PatternConsecutiveLosses: true},
		},
		{
			name: "risk reward too thin",
			pnls: []float64{150, 150, 150, 150, -100, -100, -100, -100},
			want: map[Pattern]bool{PatternConsecutiveLosses: true},
		},
		{
			name: "too few losses for risk reward",
			pnls: []float64{300, 300, 300, 300, -100, -100, -100},
			want: map[Pattern]bool{},
		},
		{
			name: "strong win streak",
			pnls: []float64{10, 10, 10, 10, 10},
			want: map[Pattern]bool{PatternStrongWinStreak: true},
		},
		{
			name: "loss streak below threshold",
			pnls: []float64{-10, -10, -10, 10},
			want: map[Pattern]bool{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Compute(tradesWithPnL(tc.pnls...))

			got := make(map[Pattern]bool, len(r.Patterns))
			for _, p := range r.Patterns {
				got[p] = true
			}
			for _, p := range []Pattern{PatternGoodRiskReward, PatternConsecutiveLosses, PatternStrongWinStreak} {
				if got[p] != tc.want[p] {
					t.Errorf("pattern %s present=%v, want %v", p, got[p], tc.want[p])
				}
			}
		})
	}
}
