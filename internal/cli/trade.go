package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	apperrors "tradebook/internal/errors"
	"tradebook/internal/logging"
	"tradebook/internal/metrics"
	"tradebook/internal/models"
	"tradebook/internal/store"
)

// addTradeCommands adds trade recording commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Record and review trades",
		Long:  "Record trades with computed charges, P&L and ROI, and review your history.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeExportCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Record a trade",
		Long: `Record a completed trade.

Charges, net P&L and ROI are computed from the entry/exit prices and the
segment's fee schedule before the trade is saved.`,
		Example: `  tradebook trade add RELIANCE --entry 2440 --exit 2465 --qty 10
  tradebook trade add NIFTY24DEC19500CE --segment options --direction short --entry 120 --exit 95 --qty 75 --strategy "theta decay"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			symbol := args[0]
			segment, _ := cmd.Flags().GetString("segment")
			exchange, _ := cmd.Flags().GetString("exchange")
			entry, _ := cmd.Flags().GetFloat64("entry")
			exit, _ := cmd.Flags().GetFloat64("exit")
			qty, _ := cmd.Flags().GetFloat64("qty")
			direction, _ := cmd.Flags().GetString("direction")
			strategy, _ := cmd.Flags().GetString("strategy")
			mood, _ := cmd.Flags().GetString("mood")
			notes, _ := cmd.Flags().GetString("notes")
			id, _ := cmd.Flags().GetString("id")

			if segment == "" {
				segment = app.Config.Trading.DefaultSegment
			}
			if exchange == "" {
				exchange = app.Config.Trading.DefaultExchange
			}

			if direction != string(models.DirectionLong) && direction != string(models.DirectionShort) {
				err := apperrors.NewValidationError("direction", direction, "must be long or short")
				output.Error("%v", err)
				return err
			}

			result := app.Metrics.Compute(metrics.Input{
				Segment:    models.Segment(segment),
				Exchange:   models.Exchange(exchange),
				EntryPrice: entry,
				ExitPrice:  exit,
				Quantity:   qty,
				Direction:  models.Direction(direction),
			})

			now := time.Now()
			if id == "" {
				id = fmt.Sprintf("T-%d", now.UnixNano())
			}

			quantity := int(qty)
			if quantity <= 0 {
				quantity = 1
			}

			trade := &models.Trade{
				ID:         id,
				Timestamp:  now,
				Symbol:     symbol,
				Exchange:   models.Exchange(exchange),
				Segment:    models.Segment(segment),
				Direction:  models.Direction(direction),
				Quantity:   quantity,
				EntryPrice: entry,
				ExitPrice:  exit,
				Charges:    result.TotalCharges,
				PnL:        result.PnL,
				ROI:        result.ROI,
				Strategy:   strategy,
				Mood:       mood,
				Notes:      notes,
				CreatedAt:  now,
				UpdatedAt:  now,
			}

			if err := app.Store.SaveTrade(ctx, trade); err != nil {
				output.Error("Failed to save trade: %v", err)
				return err
			}

			logging.LogTrade(app.Logger, symbol, direction, quantity, result.PnL)

			if output.IsJSON() {
				return output.JSON(trade)
			}

			output.Success("✓ Trade recorded: %s", id)
			output.Println()
			output.Printf("  Charges:  %s\n", FormatPrice(result.TotalCharges))
			output.Printf("  Net P&L:  %s\n", output.FormatPnL(result.PnL))
			output.Printf("  ROI:      %s\n", output.FormatPercent(result.ROI))

			return nil
		},
	}

	cmd.Flags().String("segment", "", "market segment (equity-delivery, equity-intraday, futures, options)")
	cmd.Flags().String("exchange", "", "exchange (NSE, BSE)")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().Float64("qty", 1, "quantity")
	cmd.Flags().String("direction", "long", "trade direction (long, short)")
	cmd.Flags().String("strategy", "", "strategy name")
	cmd.Flags().String("mood", "", "mood while trading")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().String("id", "", "trade ID (re-saving an existing ID replaces the trade)")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			symbol, _ := cmd.Flags().GetString("symbol")
			strategy, _ := cmd.Flags().GetString("strategy")
			limit, _ := cmd.Flags().GetInt("limit")

			trades, err := app.Store.ListTrades(ctx, store.TradeFilter{
				Symbol:   symbol,
				Strategy: strategy,
				Limit:    limit,
			})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			var totalPnL float64
			table := NewTable(output, "Date", "Symbol", "Dir", "Qty", "Entry", "Exit", "Charges", "P&L", "Strategy")
			for _, t := range trades {
				totalPnL += t.PnL
				table.AddRow(
					FormatDate(t.Timestamp),
					t.Symbol,
					string(t.Direction),
					strconv.Itoa(t.Quantity),
					FormatPrice(t.EntryPrice),
					FormatPrice(t.ExitPrice),
					FormatPrice(t.Charges),
					output.FormatPnL(t.PnL),
					TruncateString(t.Strategy, 15),
				)
			}
			table.Render()

			output.Println()
			output.Printf("  %d trades, total P&L: %s\n", len(trades), output.FormatPnL(totalPnL))

			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("strategy", "", "filter by strategy")
	cmd.Flags().Int("limit", 0, "maximum number of trades")

	return cmd
}

func newTradeExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export trades to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := app.Store.ListTrades(ctx, store.TradeFilter{})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				output.Error("Failed to create file: %v", err)
				return err
			}
			defer f.Close()

			writer := csv.NewWriter(f)
			defer writer.Flush()

			writer.Write([]string{"id", "timestamp", "symbol", "exchange", "segment", "direction", "quantity", "entry_price", "exit_price", "charges", "pnl", "roi", "strategy"})
			for _, t := range trades {
				writer.Write([]string{
					t.ID,
					t.Timestamp.Format(time.RFC3339),
					t.Symbol,
					string(t.Exchange),
					string(t.Segment),
					string(t.Direction),
					strconv.Itoa(t.Quantity),
					fmt.Sprintf("%.2f", t.EntryPrice),
					fmt.Sprintf("%.2f", t.ExitPrice),
					fmt.Sprintf("%.2f", t.Charges),
					fmt.Sprintf("%.2f", t.PnL),
					fmt.Sprintf("%.2f", t.ROI),
					t.Strategy,
				})
			}

			output.Success("✓ Exported %d trades to %s", len(trades), args[0])
			return nil
		},
	}

	return cmd
}
