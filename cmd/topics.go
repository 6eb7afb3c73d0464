package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/logger"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics available for study",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		topics, err := b.Content.Topics(cmd.Context())
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(topics) == 0 {
			fmt.Fprintln(out, "No topics yet. Add some with: tango import <deck.json>")
			return nil
		}

		fmt.Fprintf(out, "%-24s  %-32s  %5s\n", "ID", "Name", "Items")
		fmt.Fprintln(out, strings.Repeat("─", 65))
		total := 0
		for _, t := range topics {
			name := runewidth.FillRight(runewidth.Truncate(t.Name, 32, "..."), 32)
			fmt.Fprintf(out, "%-24s  %s  %5d\n", t.ID, name, t.ItemCount)
			total += t.ItemCount
		}
		fmt.Fprintf(out, "\n%d topics, %d items\n", len(topics), total)
		return nil
	},
}
