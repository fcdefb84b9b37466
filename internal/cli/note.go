package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradebook/internal/models"
	"tradebook/internal/store"
)

// addNoteCommands adds journal note commands.
func addNoteCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Journal notes",
		Long:  "Record and review free-form journal notes, optionally attached to trades.",
	}

	cmd.AddCommand(newNoteAddCmd(app))
	cmd.AddCommand(newNoteListCmd(app))

	rootCmd.AddCommand(cmd)
}

func newNoteAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Add a journal note",
		Example: `  tradebook note add "Forced the second entry, should have waited for retest"
  tradebook note add "Clean execution" --trade T-1700000000 --mood calm --tags discipline,patience`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			tradeID, _ := cmd.Flags().GetString("trade")
			mood, _ := cmd.Flags().GetString("mood")
			tagsFlag, _ := cmd.Flags().GetString("tags")

			var tags []string
			if tagsFlag != "" {
				tags = strings.Split(tagsFlag, ",")
			}

			now := time.Now()
			note := &models.Note{
				ID:        fmt.Sprintf("N-%d", now.UnixNano()),
				TradeID:   tradeID,
				Date:      now,
				Content:   args[0],
				Tags:      tags,
				Mood:      mood,
				CreatedAt: now,
				UpdatedAt: now,
			}

			if err := app.Store.SaveNote(ctx, note); err != nil {
				output.Error("Failed to save note: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(note)
			}
			output.Success("✓ Note saved: %s", note.ID)
			return nil
		},
	}

	cmd.Flags().String("trade", "", "attach the note to a trade ID")
	cmd.Flags().String("mood", "", "mood while writing")
	cmd.Flags().String("tags", "", "comma-separated tags")

	return cmd
}

func newNoteListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			tradeID, _ := cmd.Flags().GetString("trade")
			limit, _ := cmd.Flags().GetInt("limit")

			notes, err := app.Store.ListNotes(ctx, store.NoteFilter{
				TradeID: tradeID,
				Limit:   limit,
			})
			if err != nil {
				output.Error("Failed to fetch notes: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(notes)
			}

			if len(notes) == 0 {
				output.Info("No notes found.")
				return nil
			}

			table := NewTable(output, "Date", "Trade", "Mood", "Content")
			for _, n := range notes {
				table.AddRow(
					FormatDate(n.Date),
					TruncateString(n.TradeID, 12),
					n.Mood,
					TruncateString(n.Content, 50),
				)
			}
			table.Render()

			return nil
		},
	}

	cmd.Flags().String("trade", "", "filter by trade ID")
	cmd.Flags().Int("limit", 50, "maximum number of notes")

	return cmd
}
