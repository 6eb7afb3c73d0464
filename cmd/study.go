package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/session"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start a study session directly",
	Example: `  tango study --topic animals --mode quiz
  tango study --source review
  tango study --source test --topics animals,food --count 30 --time-limit 300`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, title, err := studyConfig(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, &cfg, title)
	},
}

func init() {
	studyCmd.Flags().String("source", "", "Item source: topic, review or test (default topic when --topic is set, else review)")
	studyCmd.Flags().String("topic", "", "Topic id for --source topic")
	studyCmd.Flags().StringSlice("topics", nil, "Topic ids to draw a test from (default all)")
	studyCmd.Flags().Int("count", 0, "Number of items in a test (default from config)")
	studyCmd.Flags().String("mode", "", "Study mode: flashcard, quiz or typing (default from config)")
	studyCmd.Flags().Int("time-limit", -1, "Time limit in seconds, 0 for a stopwatch (default from config)")
}

// studyConfig builds a session configuration from flags, falling back to
// the config file for anything unset.
func studyConfig(cmd *cobra.Command) (session.Config, string, error) {
	fileCfg, err := loadConfig(cmd)
	if err != nil {
		return session.Config{}, "", err
	}

	flags := cmd.Flags()
	topic, _ := flags.GetString("topic")
	topics, _ := flags.GetStringSlice("topics")
	count, _ := flags.GetInt("count")
	modeName, _ := flags.GetString("mode")
	limit, _ := flags.GetInt("time-limit")
	sourceName, _ := flags.GetString("source")

	if sourceName == "" {
		sourceName = string(session.SourceReview)
		if topic != "" {
			sourceName = string(session.SourceTopic)
		}
	}
	source, err := session.ParseSource(sourceName)
	if err != nil {
		return session.Config{}, "", err
	}
	if source == session.SourceTopic && topic == "" {
		return session.Config{}, "", fmt.Errorf("--topic is required for --source topic")
	}

	if modeName == "" {
		modeName = fileCfg.Study.Mode
	}
	mode, err := session.ParseMode(modeName)
	if err != nil {
		return session.Config{}, "", err
	}

	if limit < 0 {
		limit = fileCfg.Study.TimeLimit
	}
	if count <= 0 {
		count = fileCfg.Study.TestCount
	}

	cfg := session.Config{
		Source:    source,
		TopicID:   topic,
		TopicIDs:  topics,
		Count:     count,
		Mode:      mode,
		TimeLimit: limit,
	}

	var title string
	switch source {
	case session.SourceTopic:
		title = topic
	case session.SourceReview:
		title = "Review"
	case session.SourceTest:
		title = "Test"
		if len(topics) > 0 {
			title += ": " + strings.Join(topics, ", ")
		}
	}
	return cfg, title, nil
}
