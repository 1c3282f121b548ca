package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewArchiveCmd creates the archive sweep command.
func NewArchiveCmd(a *app) *cobra.Command {
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Move aged snapshot files into cold storage",
		Long:  `Move the content files of archived snapshots older than the threshold from data/current into data/archives and rewrite their recorded paths. Safe to re-run.`,
		Run: func(cmd *cobra.Command, args []string) {
			days, _ := cmd.Flags().GetInt("days")
			if err := runArchive(a, days); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	archiveCmd.Flags().Int("days", 0, "age threshold in days (default from config, 30)")
	return archiveCmd
}

func runArchive(a *app, days int) error {
	cfg, cat, _, err := a.open()
	if err != nil {
		return err
	}
	if days <= 0 {
		days = cfg.Archive.DefaultDays
	}

	fmt.Printf("🗄️  Archiving snapshot files older than %d days...\n", days)

	moved, err := cat.Archive(days)
	if err != nil {
		return fmt.Errorf("archive failed: %w", err)
	}

	fmt.Printf("✅ %d files moved to cold storage\n", moved)
	return nil
}
