package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sitesmith/internal/application"
	"sitesmith/internal/application/commands"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the stored content tree",
	Long: `Display the stored page hierarchy (or the menu with --kind menu).

Example:
  sitesmith-cli tree
  sitesmith-cli tree --kind menu`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := targetKind()
		if err != nil {
			return err
		}

		treeCmd := commands.NewTreeCommand(storeFor(kind))
		roots, err := treeCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if len(roots) == 0 {
			fmt.Println("Empty.")
			return nil
		}

		for _, root := range roots {
			printTree(root, 0)
		}
		return nil
	},
}

func printTree(node *application.TreeNode, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s#%d %s\n", indent, node.ID, node.Title)
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
