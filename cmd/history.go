package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/tango/internal/logger"
	"github.com/abhisek/tango/internal/ui/layout"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		last, _ := cmd.Flags().GetInt("last")
		if last <= 0 {
			return fmt.Errorf("--last must be positive")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, closeLog := tuiLogger(cfg)
		defer closeLog()

		b, err := openBackend(cmd, cfg, logger.Component(log, "cli"))
		if err != nil {
			return err
		}
		defer b.Close()

		records, err := b.History.RecentSessions(cmd.Context(), cfg.User, last)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No sessions yet.")
			return nil
		}

		width := 100
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}

		header := fmt.Sprintf("%-16s  %-7s  %-9s  %-18s  %6s  %7s  %4s",
			"Started", "Source", "Mode", "Topic", "Time", "Score", "Acc")
		fmt.Fprintln(out, runewidth.Truncate(header, width, ""))
		fmt.Fprintln(out, strings.Repeat("─", min(width, runewidth.StringWidth(header))))

		for _, r := range records {
			topic := runewidth.FillRight(runewidth.Truncate(r.TopicID, 18, "..."), 18)
			score := fmt.Sprintf("%d/%d", r.Correct, r.ItemCount)
			line := fmt.Sprintf("%-16s  %-7s  %-9s  %s  %6s  %7s  %3d%%",
				r.StartedAt.Local().Format("2006-01-02 15:04"), r.Source, r.Mode, topic,
				layout.FormatClock(r.DurationSeconds), score, r.Accuracy())
			switch {
			case r.EndedAt == nil:
				line += "  (unfinished)"
			case r.TimeUp:
				line += "  (time up)"
			}
			fmt.Fprintln(out, runewidth.Truncate(line, width, "..."))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("last", 10, "Number of sessions to show")
}
