package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCleanupCmd creates the temp-file and artifact pruning command.
func NewCleanupCmd(a *app) *cobra.Command {
	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove temp files and prune old analysis artifacts",
		Long:  `Sweep the data tree for leftover temporary files, keep only the newest artifacts of each analysis kind, and rebuild the index.`,
		Run: func(cmd *cobra.Command, args []string) {
			keep, _ := cmd.Flags().GetInt("keep")
			if err := runCleanup(a, keep); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	cleanupCmd.Flags().Int("keep", 0, "artifacts to keep per analysis kind (default from config, 5)")
	return cleanupCmd
}

func runCleanup(a *app, keep int) error {
	cfg, cat, _, err := a.open()
	if err != nil {
		return err
	}
	if keep <= 0 {
		keep = cfg.Cleanup.KeepPerKind
	}

	fmt.Printf("🧹 Cleaning up (keeping %d artifacts per kind)...\n", keep)

	res, err := cat.Cleanup(keep)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	fmt.Printf("✅ Removed %d temp files and %d old artifacts\n", res.TempRemoved, res.ArtifactsRemoved)
	return nil
}
