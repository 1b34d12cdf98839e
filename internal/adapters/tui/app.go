package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"sitesmith/internal/adapters/tui/views"
	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

// App is the main TUI application model: a single review/materialize flow.
type App struct {
	review *views.ReviewModel

	width  int
	height int
}

// NewGenerateApp creates a TUI that asks the assistant for a structure
// suggestion and reviews it.
func NewGenerateApp(store ports.ContentStore, assistant ports.Assistant, goal string, kind domain.Kind) *App {
	return &App{
		review: views.NewReviewModel(store, assistant, goal, kind),
	}
}

// NewReviewApp creates a TUI over an already-parsed outline.
func NewReviewApp(store ports.ContentStore, kind domain.Kind, nodes []domain.Node, skipped []string) *App {
	return &App{
		review: views.NewReviewModelWithNodes(store, kind, nodes, skipped),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.review.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
		a.height = size.Height
		a.review.SetSize(size.Width, size.Height)
		return a, nil
	}

	_, cmd := a.review.Update(msg)
	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	return a.review.View()
}
