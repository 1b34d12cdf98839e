package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitesmith/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored entities flat",
	Long: `List stored pages with their slugs, or menu items with their page
links (--kind menu).

Example:
  sitesmith-cli list
  sitesmith-cli list --kind menu`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := targetKind()
		if err != nil {
			return err
		}

		if kind == domain.KindMenu {
			items, err := db.Menu().ListItems()
			if err != nil {
				return err
			}
			for _, m := range items {
				link := "-"
				switch {
				case m.PageID != 0:
					link = fmt.Sprintf("page #%d", m.PageID)
				case m.URL != "":
					link = m.URL
				}
				fmt.Printf("#%-4d %-30s %-10s parent #%d\n", m.ID, m.Title, link, m.ParentID)
			}
			return nil
		}

		pages, err := db.Pages().ListPages()
		if err != nil {
			return err
		}
		for _, p := range pages {
			fmt.Printf("#%-4d %-30s /%-20s parent #%d\n", p.ID, p.Title, p.Slug, p.ParentID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
