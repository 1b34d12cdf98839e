package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sitesmith/internal/adapters/openai"
	"sitesmith/internal/application/commands"
	"sitesmith/internal/config"
	"sitesmith/internal/domain"
)

var generateMaterialize bool

var generateCmd = &cobra.Command{
	Use:   "generate <goal>",
	Short: "Ask the assistant for a site structure outline",
	Long: `Ask the AI assistant for a site structure and print the suggested
outline. With --materialize the suggestion is written straight into the
content store instead.

Examples:
  sitesmith-cli generate "a bakery with online ordering"
  sitesmith-cli generate --kind menu "main navigation for the bakery"
  sitesmith-cli generate --materialize "a small consultancy site"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := targetKind()
		if err != nil {
			return err
		}

		assistant := openai.NewAssistant(config.APIKey(),
			openai.WithModel(config.Model()),
			openai.WithBaseURL(config.BaseURL()),
		)
		if !assistant.IsAvailable() {
			return fmt.Errorf("OPENAI_API_KEY is not set")
		}

		ctx := context.Background()
		genCmd := commands.NewGenerateCommand(assistant, args[0], kind)
		result, err := genCmd.Execute(ctx)
		if err != nil {
			return err
		}
		printSkipped(result.SkippedLines)

		if result.Empty() {
			fmt.Println("The assistant had no suggestion.")
			return nil
		}

		if !generateMaterialize {
			fmt.Print(domain.FormatOutline(result.Nodes))
			return nil
		}

		matCmd := commands.NewMaterializeCommand(storeFor(kind), result.Nodes)
		report, err := matCmd.Execute(ctx)
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&generateMaterialize, "materialize", false, "materialize the suggestion immediately")
}
