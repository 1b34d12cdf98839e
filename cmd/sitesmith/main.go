package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"sitesmith/internal/adapters/openai"
	"sitesmith/internal/adapters/sqlite"
	"sitesmith/internal/adapters/tui"
	"sitesmith/internal/config"
	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

func main() {
	dbFlag := flag.String("db", config.DatabasePath(), "path to the content database")
	kindFlag := flag.String("kind", "pages", "content kind: pages or menu")
	clipFlag := flag.Bool("clipboard", false, "review an outline from the clipboard instead of generating one")
	flag.Parse()

	kind, ok := domain.ParseKind(*kindFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid kind %q (expected pages or menu)\n", *kindFlag)
		os.Exit(1)
	}

	db, err := sqlite.Open(*dbFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var store ports.ContentStore = db.Pages()
	if kind == domain.KindMenu {
		store = db.Menu()
	}

	var app *tui.App
	if *clipFlag {
		text, err := clipboard.ReadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read clipboard: %v\n", err)
			os.Exit(1)
		}
		nodes, skipped := domain.ParseOutline(text)
		app = tui.NewReviewApp(store, kind, nodes, skipped)
	} else {
		goal := flag.Arg(0)
		if goal == "" {
			fmt.Fprintln(os.Stderr, "usage: sitesmith [flags] <goal>")
			os.Exit(1)
		}
		assistant := openai.NewAssistant(config.APIKey(),
			openai.WithModel(config.Model()),
			openai.WithBaseURL(config.BaseURL()),
		)
		if !assistant.IsAvailable() {
			fmt.Fprintln(os.Stderr, "OPENAI_API_KEY is not set")
			os.Exit(1)
		}
		app = tui.NewGenerateApp(store, assistant, goal, kind)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
