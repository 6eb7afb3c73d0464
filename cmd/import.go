package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/deck"
)

var importCmd = &cobra.Command{
	Use:   "import <deck.json>...",
	Short: "Import vocabulary decks into the local database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.ContentRepo()
		out := cmd.OutOrStdout()
		total := 0
		for _, path := range args {
			d, err := deck.Load(path)
			if err != nil {
				return err
			}
			n, err := repo.ImportTopic(cmd.Context(), d.TopicInfo(), d.Topic.Description, d.Items)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			fmt.Fprintf(out, "%-24s  %4d items  (%s)\n", d.Topic.ID, n, path)
			total += n
		}
		fmt.Fprintf(out, "\n%d items imported from %d decks\n", total, len(args))
		return nil
	},
}
