package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sitesmith/internal/application"
	"sitesmith/internal/application/commands"
	"sitesmith/internal/domain"
)

var (
	materializeClipboard bool
	materializeSelect    string
)

var materializeCmd = &cobra.Command{
	Use:   "materialize [outline-file]",
	Short: "Create the entities described by an outline",
	Long: `Parse an outline and create its entries in the content store.
Entries whose title already exists are skipped and their existing ID is
reused; children are linked to their parents after every entry has an ID.

Examples:
  sitesmith-cli materialize structure.txt
  sitesmith-cli materialize --kind menu --clipboard
  sitesmith-cli materialize --select 0,2,3 structure.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := targetKind()
		if err != nil {
			return err
		}
		text, err := readOutline(args, materializeClipboard)
		if err != nil {
			return err
		}

		nodes, skipped := domain.ParseOutline(text)
		printSkipped(skipped)

		if materializeSelect != "" {
			nodes, err = selectNodes(nodes, materializeSelect)
			if err != nil {
				return err
			}
		}
		if len(nodes) == 0 {
			fmt.Println("Nothing to materialize.")
			return nil
		}

		matCmd := commands.NewMaterializeCommand(storeFor(kind), nodes)
		report, err := matCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

func selectNodes(nodes []domain.Node, sel string) ([]domain.Node, error) {
	wanted := make(map[int]bool)
	for _, part := range strings.Split(sel, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		wanted[idx] = true
	}

	var selected []domain.Node
	for _, n := range nodes {
		if wanted[n.Index] {
			selected = append(selected, n)
		}
	}
	if len(selected) == 0 {
		return nil, application.ErrEmptySelection
	}
	return selected, nil
}

func printReport(report *commands.MaterializeResult) {
	for _, r := range report.Created {
		fmt.Printf("created  #%-4d %s\n", r.ID, r.Title)
	}
	for _, r := range report.Skipped {
		fmt.Printf("skipped  #%-4d %s (already exists)\n", r.ID, r.Title)
	}
	for _, r := range report.Failed {
		fmt.Printf("failed   %s: %s\n", r.Title, r.Reason)
	}
	fmt.Println(report.Message)
}

func init() {
	rootCmd.AddCommand(materializeCmd)
	materializeCmd.Flags().BoolVar(&materializeClipboard, "clipboard", false, "read the outline from the clipboard")
	materializeCmd.Flags().StringVar(&materializeSelect, "select", "", "comma-separated node indices to materialize")
}
