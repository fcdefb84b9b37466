package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tradebook/internal/charges"
	"tradebook/internal/config"
	"tradebook/internal/logging"
	"tradebook/internal/metrics"
	"tradebook/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-01-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.TradeRepository
	Charges *charges.Calculator
	Metrics *metrics.Calculator
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	chargeCalc := charges.NewCalculator(logger)
	app := &App{
		Config:  cfg,
		Logger:  logger,
		Charges: chargeCalc,
		Metrics: metrics.NewCalculator(chargeCalc),
	}

	// The CLI degrades to an in-memory store rather than failing hard;
	// charge estimation and reports over piped data still work.
	dataStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, data will not persist")
		app.Store = store.NewMemoryStore()
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Database.Path).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "tradebook",
		Short: "Tradebook - trading journal with exact charge accounting",
		Long: `Tradebook is a trading journal for the Indian stock market.

It computes brokerage, STT, exchange charges, SEBI fees, stamp duty and GST
for every trade, derives net P&L and ROI, and reports strategy analytics
(win rate, profit factor, streaks) over your trade history.

Use 'tradebook help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/tradebook)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newChargesCmd(app))
	addTradeCommands(rootCmd, app)
	addNoteCommands(rootCmd, app)
	rootCmd.AddCommand(newReportCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Tradebook v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Trading Defaults")
			output.Printf("  Exchange:  %s\n", app.Config.Trading.DefaultExchange)
			output.Printf("  Segment:   %s\n", app.Config.Trading.DefaultSegment)
			output.Println()
			output.Bold("Database")
			output.Printf("  Path:      %s\n", app.Config.Database.Path)
			output.Println()
			output.Bold("Logging")
			output.Printf("  Level:     %s\n", app.Config.Logging.Level)
			output.Printf("  Console:   %v\n", app.Config.Logging.Console)
			output.Printf("  File:      %v\n", app.Config.Logging.File)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}
