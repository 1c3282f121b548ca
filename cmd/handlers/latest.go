package handlers

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quantumwatch/internal/catalog"
	"quantumwatch/internal/core"
)

// NewLatestCmd creates the latest-artifact lookup command. The bot and
// notification jobs shell out to these subcommands to locate files, so both
// print a single path on stdout.
func NewLatestCmd(a *app) *cobra.Command {
	latestCmd := &cobra.Command{
		Use:   "latest",
		Short: "Locate the most recent data or analysis file",
	}

	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Print the path of the most recent snapshot file",
		Run: func(cmd *cobra.Command, args []string) {
			format, _ := cmd.Flags().GetString("format")
			if err := runLatestData(a, format); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	dataCmd.Flags().String("format", "json", "content format (json or csv)")

	analysisCmd := &cobra.Command{
		Use:   "analysis",
		Short: "Print the path of the most recent analysis artifact",
		Run: func(cmd *cobra.Command, args []string) {
			kind, _ := cmd.Flags().GetString("kind")
			date, _ := cmd.Flags().GetString("date")
			if err := runLatestAnalysis(a, kind, date); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	analysisCmd.Flags().String("kind", string(core.KindDailyDigest), "analysis kind (daily_digest, weekly_summary, or monthly_report)")
	analysisCmd.Flags().String("date", "", "exact date (YYYY-MM-DD); most recent when omitted")

	latestCmd.AddCommand(dataCmd)
	latestCmd.AddCommand(analysisCmd)
	return latestCmd
}

func runLatestData(a *app, format string) error {
	f := core.ContentFormat(format)
	if f != core.FormatJSON && f != core.FormatCSV {
		return fmt.Errorf("unknown format %q: use json or csv", format)
	}

	_, cat, _, err := a.open()
	if err != nil {
		return err
	}

	path, err := cat.LatestSnapshotPath(f)
	if errors.Is(err, catalog.ErrNoSnapshots) {
		return fmt.Errorf("no snapshots in the catalog")
	}
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

func runLatestAnalysis(a *app, kind, date string) error {
	k := core.AnalysisKind(kind)
	if !k.Valid() {
		return fmt.Errorf("unknown analysis kind %q", kind)
	}

	_, cat, _, err := a.open()
	if err != nil {
		return err
	}

	path, err := cat.LatestAnalysis(k, date)
	if errors.Is(err, catalog.ErrNoAnalysis) {
		if date != "" {
			return fmt.Errorf("no %s artifact for %s", kind, date)
		}
		return fmt.Errorf("no %s artifacts in the catalog", kind)
	}
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}
