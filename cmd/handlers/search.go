package handlers

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the keyword search command.
func NewSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search stored snapshots by keyword",
		Long:  `Scan the JSON content of every indexed snapshot for items whose title or summary contains the keyword, case-insensitively.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runSearch(a, args[0]); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
}

func runSearch(a *app, keyword string) error {
	_, cat, _, err := a.open()
	if err != nil {
		return err
	}

	fmt.Printf("🔍 Searching snapshots for %q...\n", keyword)

	results := cat.SearchByKeyword(keyword)
	if len(results) == 0 {
		fmt.Println("No matches found")
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{string(res.SnapshotID), res.Date, strconv.Itoa(len(res.Matches))})
	}
	fmt.Println(renderTable([]string{"Snapshot", "Date", "Matches"}, rows))

	for _, res := range results {
		fmt.Println()
		fmt.Println(titleStyle.Render(fmt.Sprintf("📄 %s (%d matches)", res.SnapshotID, len(res.Matches))))
		limit := len(res.Matches)
		if limit > 5 {
			limit = 5
		}
		for _, item := range res.Matches[:limit] {
			fmt.Printf("  - %s\n", item.Title)
		}
		if len(res.Matches) > limit {
			fmt.Println(dimStyle.Render(fmt.Sprintf("  ... and %d more", len(res.Matches)-limit)))
		}
	}

	return nil
}
