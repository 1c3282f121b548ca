package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRebuildCmd creates the index rebuild command.
func NewRebuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Reconstruct the index from the directory tree",
		Long:  `Discard the current index and rebuild it by scanning on-disk filenames. Use when the index is missing, corrupt, or suspected wrong. Run organize first on a legacy flat tree.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runRebuild(a); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
}

func runRebuild(a *app) error {
	_, cat, _, err := a.open()
	if err != nil {
		return err
	}

	fmt.Println("🔧 Rebuilding index from the directory tree...")

	doc, err := cat.Rebuild()
	if err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	fmt.Printf("✅ Index rebuilt: %d snapshots, %d podcasts\n", len(doc.Snapshots), len(doc.Podcasts))
	return nil
}
