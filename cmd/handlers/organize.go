package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewOrganizeCmd creates the legacy-tree migration command.
func NewOrganizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "organize",
		Short: "Migrate a flat legacy tree into the managed layout",
		Long:  `Move snapshot files from the flat data directory into data/current, analysis artifacts into their per-kind directories, and chart images into data/visualizations, then rebuild the index. Existing files are never overwritten.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runOrganize(a); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
}

func runOrganize(a *app) error {
	_, cat, _, err := a.open()
	if err != nil {
		return err
	}

	fmt.Println("📦 Organizing the directory tree...")

	res, err := cat.Organize()
	if err != nil {
		return fmt.Errorf("organize failed: %w", err)
	}

	fmt.Printf("✅ Moved %d data files, %d analysis artifacts, %d visualizations\n",
		res.DataMoved, res.AnalysisMoved, res.VisualizationsMoved)
	return nil
}
