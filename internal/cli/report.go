package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tradebook/internal/analytics"
	"tradebook/internal/store"
	"tradebook/pkg/utils"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Strategy analytics over your trade history",
		Long: `Compute aggregate analytics over recorded trades.

Includes win rate, profit factor, streaks, per-strategy performance and
pattern flags (risk/reward quality, loss runs, win streaks).`,
		Example: `  tradebook report
  tradebook report --period weekly
  tradebook report --strategy "breakout"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			period, _ := cmd.Flags().GetString("period")
			strategy, _ := cmd.Flags().GetString("strategy")

			filter := store.TradeFilter{Strategy: strategy}
			now := time.Now()
			switch period {
			case "daily":
				filter.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			case "weekly":
				filter.StartDate = now.AddDate(0, 0, -7)
			case "monthly":
				filter.StartDate = now.AddDate(0, -1, 0)
			}

			trades, err := app.Store.ListTrades(ctx, filter)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			report := analytics.Compute(trades)

			if output.IsJSON() {
				return output.JSON(report)
			}

			if report.TotalTrades == 0 {
				output.Info("No trades found for this period.")
				return nil
			}

			output.Bold("Performance Report")
			if !filter.StartDate.IsZero() {
				output.Printf("  %s to %s\n", FormatDate(filter.StartDate), FormatDate(now))
			}
			output.Println()

			output.Bold("Summary")
			output.Printf("  Total Trades:     %d\n", report.TotalTrades)
			output.Printf("  Winning Trades:   %d (%.0f%%)\n", report.Wins, report.WinRate)
			output.Printf("  Losing Trades:    %d (%.0f%%)\n", report.Losses, 100-report.WinRate)
			output.Printf("  Gross Profit:     %s\n", output.Green(utils.FormatIndianCurrency(report.GrossProfit)))
			output.Printf("  Gross Loss:       %s\n", output.Red(utils.FormatIndianCurrency(report.GrossLoss)))
			output.Printf("  Net P&L:          %s\n", output.FormatPnL(report.NetPnL))
			output.Println()

			output.Bold("Performance Metrics")
			output.Printf("  Win Rate:         %.1f%%\n", report.WinRate)
			output.Printf("  Profit Factor:    %s\n", FormatProfitFactor(report.ProfitFactor))
			output.Printf("  Avg Win:          %s\n", utils.FormatIndianCurrency(report.AvgWin))
			output.Printf("  Avg Loss:         %s\n", utils.FormatIndianCurrency(report.AvgLoss))
			output.Printf("  Largest Win:      %s\n", utils.FormatIndianCurrency(report.LargestWin))
			output.Printf("  Largest Loss:     %s\n", utils.FormatIndianCurrency(report.LargestLoss))
			output.Printf("  Expectancy:       %s\n", utils.FormatIndianCurrency(report.Expectancy))
			output.Println()

			output.Bold("Streaks")
			output.Printf("  Max Win Streak:   %d\n", report.Streaks.MaxWin)
			output.Printf("  Max Loss Streak:  %d\n", report.Streaks.MaxLoss)
			current := "none"
			if report.Streaks.Current > 0 {
				current = output.Green(fmt.Sprintf("%d winning", report.Streaks.Current))
			} else if report.Streaks.Current < 0 {
				current = output.Red(fmt.Sprintf("%d losing", -report.Streaks.Current))
			}
			output.Printf("  Current:          %s\n", current)
			output.Println()

			if len(report.Strategies) > 0 {
				output.Bold("By Strategy")
				table := NewTable(output, "Strategy", "Trades", "Win Rate", "P&L")
				for _, s := range report.Strategies {
					table.AddRow(
						TruncateString(s.Strategy, 20),
						strconv.Itoa(s.Trades),
						utils.FormatPercent(s.WinRate),
						output.FormatPnL(s.TotalPnL),
					)
				}
				table.Render()
				output.Println()
			}

			if report.BestStrategy != nil {
				output.Printf("  Best Strategy: %s (%.0f%% win rate over %d trades)\n",
					report.BestStrategy.Strategy, report.BestStrategy.WinRate, report.BestStrategy.Trades)
				output.Println()
			}

			if len(report.Patterns) > 0 {
				output.Bold("Patterns")
				for _, p := range report.Patterns {
					switch p {
					case analytics.PatternGoodRiskReward:
						output.Success("  ✓ Good risk/reward: average win more than twice average loss")
					case analytics.PatternConsecutiveLosses:
						output.Warning("  ! Consecutive losses: review your setups after a losing run")
					case analytics.PatternStrongWinStreak:
						output.Success("  ✓ Strong win streak in this period")
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().String("period", "", "report period (daily, weekly, monthly; default all time)")
	cmd.Flags().String("strategy", "", "filter by strategy")

	return cmd
}
