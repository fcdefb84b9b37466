package cli

import (
	"github.com/spf13/cobra"

	"tradebook/internal/models"
	"tradebook/pkg/utils"
)

func newChargesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charges",
		Short: "Estimate transaction charges for a trade",
		Long: `Estimate the full charge breakdown for a trade before or after taking it.

Covers brokerage, STT, exchange transaction charge, SEBI fee, stamp duty
and GST per the segment's fee schedule.`,
		Example: `  tradebook charges --segment equity-intraday --entry 100 --exit 102 --qty 50
  tradebook charges --segment options --direction short --entry 120 --exit 95 --qty 75 --exchange NSE`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			segment, _ := cmd.Flags().GetString("segment")
			exchange, _ := cmd.Flags().GetString("exchange")
			entry, _ := cmd.Flags().GetFloat64("entry")
			exit, _ := cmd.Flags().GetFloat64("exit")
			qty, _ := cmd.Flags().GetFloat64("qty")
			direction, _ := cmd.Flags().GetString("direction")

			if segment == "" {
				segment = app.Config.Trading.DefaultSegment
			}
			if exchange == "" {
				exchange = app.Config.Trading.DefaultExchange
			}

			b := app.Charges.Compute(
				models.Segment(segment),
				models.Exchange(exchange),
				entry, exit, qty,
				models.Direction(direction),
			)

			if output.IsJSON() {
				return output.JSON(map[string]float64{
					"brokerage":    b.Brokerage,
					"stt":          b.STT,
					"exchange_txn": b.ExchangeTxn,
					"sebi_fee":     b.SEBIFee,
					"stamp_duty":   b.StampDuty,
					"gst":          b.GST,
					"total":        b.Total,
				})
			}

			output.Bold("Charge Estimate - %s on %s", segment, exchange)
			output.Println()

			table := NewTable(output, "Component", "Amount")
			table.AddRow("Brokerage", utils.FormatIndianCurrency(b.Brokerage))
			table.AddRow("STT", utils.FormatIndianCurrency(b.STT))
			table.AddRow("Exchange Txn", utils.FormatIndianCurrency(b.ExchangeTxn))
			table.AddRow("SEBI Fee", utils.FormatIndianCurrency(b.SEBIFee))
			table.AddRow("Stamp Duty", utils.FormatIndianCurrency(b.StampDuty))
			table.AddRow("GST", utils.FormatIndianCurrency(b.GST))
			table.Render()

			output.Println()
			output.Printf("  Total: %s\n", utils.FormatIndianCurrency(b.Total))

			return nil
		},
	}

	cmd.Flags().String("segment", "", "market segment (equity-delivery, equity-intraday, futures, options)")
	cmd.Flags().String("exchange", "", "exchange (NSE, BSE)")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().Float64("qty", 1, "quantity")
	cmd.Flags().String("direction", "long", "trade direction (long, short)")

	return cmd
}
