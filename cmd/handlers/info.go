package handlers

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"quantumwatch/internal/core"
)

// NewInfoCmd creates the catalog information command.
func NewInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show catalog statistics",
		Long:  `Display snapshot, analysis, and podcast counts plus the dates of the most recent analysis artifacts.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runInfo(a); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
}

func runInfo(a *app) error {
	_, cat, _, err := a.open()
	if err != nil {
		return err
	}

	stats := cat.Stats()

	fmt.Println(titleStyle.Render("📊 Catalog"))
	fmt.Println(renderTable(
		[]string{"", "Count"},
		[][]string{
			{"Data snapshots", strconv.Itoa(stats.TotalSnapshots)},
			{"  current", strconv.Itoa(stats.CurrentSnapshots)},
			{"  archived", strconv.Itoa(stats.ArchivedSnapshots)},
			{"Analysis results", strconv.Itoa(stats.TotalAnalysisResults)},
			{"Podcasts", strconv.Itoa(stats.TotalPodcasts)},
		},
	))

	fmt.Println()
	fmt.Println(titleStyle.Render("🕑 Latest analyses"))
	rows := make([][]string, 0, len(core.AnalysisKinds))
	for _, kind := range core.AnalysisKinds {
		date := stats.AnalysisMetrics[kind]
		if date == "" {
			date = "none"
		}
		rows = append(rows, []string{string(kind), date})
	}
	fmt.Println(renderTable([]string{"Kind", "Date"}, rows))

	if !stats.LastUpdated.IsZero() {
		fmt.Println()
		fmt.Println(dimStyle.Render("Index last updated: " + stats.LastUpdated.Format("2006-01-02 15:04:05")))
	}

	return nil
}
