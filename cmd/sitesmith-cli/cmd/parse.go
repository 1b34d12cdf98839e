package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitesmith/internal/domain"
)

var parseClipboard bool

var parseCmd = &cobra.Command{
	Use:   "parse [outline-file]",
	Short: "Parse an outline and show the resolved hierarchy",
	Long: `Parse an indented bullet outline and print each node with its
index, level, and resolved parent index. Useful for checking what
materialize would do.

Examples:
  sitesmith-cli parse structure.txt
  cat structure.txt | sitesmith-cli parse -
  sitesmith-cli parse --clipboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readOutline(args, parseClipboard)
		if err != nil {
			return err
		}

		nodes, skipped := domain.ParseOutline(text)
		printSkipped(skipped)

		if len(nodes) == 0 {
			fmt.Println("No nodes parsed.")
			return nil
		}

		for _, n := range nodes {
			parent := "-"
			if !n.IsRoot() {
				parent = fmt.Sprintf("%d", n.ParentIndex)
			}
			fmt.Printf("%3d  level=%d  parent=%-3s %s %v\n",
				n.Index, n.Level, parent, n.Title, n.Attrs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseClipboard, "clipboard", false, "read the outline from the clipboard")
}
