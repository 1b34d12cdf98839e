package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"sitesmith/internal/adapters/sqlite"
	"sitesmith/internal/config"
	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

var (
	dbPath   string
	kindName string
	db       *sqlite.DB
)

var rootCmd = &cobra.Command{
	Use:   "sitesmith-cli",
	Short: "CLI for AI-assisted site structure scaffolding",
	Long: `sitesmith-cli plans site structures with an AI assistant and
materializes them into a local content store.

A structure is exchanged as an indented bullet outline, one entry per line:

  - About Us (slug: about-us)
    - Our Team (slug: our-team)

The generate command asks the assistant for such an outline; parse and
materialize consume one from a file, stdin, or the clipboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		db, err = sqlite.Open(dbPath)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DatabasePath(), "path to the content database")
	rootCmd.PersistentFlags().StringVarP(&kindName, "kind", "k", "pages", "content kind: pages or menu")
}

func targetKind() (domain.Kind, error) {
	kind, ok := domain.ParseKind(kindName)
	if !ok {
		return kind, fmt.Errorf("invalid kind %q (expected pages or menu)", kindName)
	}
	return kind, nil
}

func storeFor(kind domain.Kind) ports.ContentStore {
	if kind == domain.KindMenu {
		return db.Menu()
	}
	return db.Pages()
}

// readOutline returns the outline text from the first argument (a file
// path, or "-" for stdin), or from the system clipboard.
func readOutline(args []string, fromClipboard bool) (string, error) {
	if fromClipboard {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		return text, nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("an outline file is required (or - for stdin, or --clipboard)")
	}
	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read outline: %w", err)
	}
	return string(data), nil
}

func printSkipped(skipped []string) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%d malformed line(s) skipped:\n", len(skipped))
	for _, line := range skipped {
		fmt.Fprintf(os.Stderr, "  %s\n", strings.TrimRight(line, "\r\n"))
	}
}
