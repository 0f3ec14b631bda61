package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/polish/internal/config"
	"github.com/zjrosen/polish/internal/infrastructure/sqlite"
	"github.com/zjrosen/polish/internal/session"
)

var (
	historyLimit      int
	historySession    string
	historyPruneAfter time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent archived cleanings",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"maximum number of entries to show")
	historyCmd.Flags().StringVar(&historySession, "session", "",
		"only show cleanings from the given session ID")
	historyCmd.Flags().DurationVar(&historyPruneAfter, "prune-older-than", 0,
		"delete archived cleanings older than this duration (e.g. 720h) instead of listing")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := cfg.Archive.Path
	if path == "" {
		path = config.DefaultArchivePath()
	}

	db, err := sqlite.NewDB(path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := db.CleaningRepository()

	if historyPruneAfter > 0 {
		cutoff := time.Now().Add(-historyPruneAfter)
		deleted, err := repo.DeleteBefore(cutoff)
		if err != nil {
			return fmt.Errorf("pruning cleanings: %w", err)
		}
		cmd.Printf("pruned %d archived cleanings older than %s\n", deleted, historyPruneAfter)
		return nil
	}

	var records []session.Record
	if historySession != "" {
		records, err = repo.ForSession(historySession)
	} else {
		records, err = repo.Recent(historyLimit)
	}
	if err != nil {
		return fmt.Errorf("listing cleanings: %w", err)
	}
	if len(records) == 0 {
		cmd.Println("no archived cleanings")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s  %s  (%s)\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.ID, rec.Duration)
		cmd.Printf("  in:  %s\n", summarize(rec.Input))
		cmd.Printf("  out: %s\n", summarize(rec.Output))
	}
	return nil
}

// summarize flattens text to a single trimmed line capped at 80 runes.
func summarize(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > 80 {
		return string(runes[:77]) + "..."
	}
	return text
}
