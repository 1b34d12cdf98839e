package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"sitesmith/internal/adapters/tui/styles"
	"sitesmith/internal/application/commands"
	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

// ReviewState represents the state of the review view
type ReviewState int

const (
	ReviewLoading ReviewState = iota
	ReviewSelect
	ReviewReport
	ReviewError
)

// ReviewKeyMap defines key bindings for the review view
type ReviewKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	All         key.Binding
	None        key.Binding
	Materialize key.Binding
	Quit        key.Binding
}

var ReviewKeys = ReviewKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	All: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select all"),
	),
	None: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "select none"),
	),
	Materialize: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "materialize"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SuggestionsMsg delivers a parsed suggestion to the view
type SuggestionsMsg struct {
	Nodes        []domain.Node
	SkippedLines []string
}

// FetchErrMsg signals that the assistant call failed
type FetchErrMsg struct{ Err error }

// MaterializedMsg delivers the materialization report
type MaterializedMsg struct{ Result *commands.MaterializeResult }

// MaterializeErrMsg signals that materialization was rejected up front
type MaterializeErrMsg struct{ Err error }

// ReviewModel drives the generate → review selection → materialize flow.
type ReviewModel struct {
	store     ports.ContentStore
	assistant ports.Assistant
	goal      string
	kind      domain.Kind

	state    ReviewState
	nodes    []domain.Node
	selected map[int]bool // node Index -> selected
	skipped  []string
	cursor   int
	result   *commands.MaterializeResult
	err      error
	spinner  spinner.Model

	width  int
	height int
}

// NewReviewModel creates a review view that asks the assistant for a
// structure suggestion on Init.
func NewReviewModel(store ports.ContentStore, assistant ports.Assistant, goal string, kind domain.Kind) *ReviewModel {
	m := newReviewModel(store, kind)
	m.assistant = assistant
	m.goal = goal
	m.state = ReviewLoading
	return m
}

// NewReviewModelWithNodes creates a review view over an already-parsed
// outline (from a file or the clipboard).
func NewReviewModelWithNodes(store ports.ContentStore, kind domain.Kind, nodes []domain.Node, skipped []string) *ReviewModel {
	m := newReviewModel(store, kind)
	m.setNodes(nodes, skipped)
	return m
}

func newReviewModel(store ports.ContentStore, kind domain.Kind) *ReviewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &ReviewModel{
		store:    store,
		kind:     kind,
		spinner:  s,
		selected: make(map[int]bool),
		state:    ReviewSelect,
	}
}

func (m *ReviewModel) setNodes(nodes []domain.Node, skipped []string) {
	m.nodes = nodes
	m.skipped = skipped
	m.selected = make(map[int]bool, len(nodes))
	for _, n := range nodes {
		m.selected[n.Index] = true
	}
	m.cursor = 0
	m.state = ReviewSelect
}

// SetSize updates the view dimensions
func (m *ReviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init initializes the review view
func (m *ReviewModel) Init() tea.Cmd {
	if m.state == ReviewLoading {
		return tea.Batch(m.spinner.Tick, m.fetchSuggestion())
	}
	return nil
}

func (m *ReviewModel) fetchSuggestion() tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewGenerateCommand(m.assistant, m.goal, m.kind)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return FetchErrMsg{Err: err}
		}
		return SuggestionsMsg{Nodes: result.Nodes, SkippedLines: result.SkippedLines}
	}
}

func (m *ReviewModel) materialize() tea.Cmd {
	var picked []domain.Node
	for _, n := range m.nodes {
		if m.selected[n.Index] {
			picked = append(picked, n)
		}
	}

	return func() tea.Msg {
		cmd := commands.NewMaterializeCommand(m.store, picked)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return MaterializeErrMsg{Err: err}
		}
		return MaterializedMsg{Result: result}
	}
}

// Update handles messages for the review view
func (m *ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state == ReviewLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case SuggestionsMsg:
		if len(msg.Nodes) == 0 {
			m.err = fmt.Errorf("the assistant had no suggestion")
			m.state = ReviewError
			return m, nil
		}
		m.setNodes(msg.Nodes, msg.SkippedLines)
		return m, nil

	case FetchErrMsg:
		m.err = msg.Err
		m.state = ReviewError
		return m, nil

	case MaterializedMsg:
		m.result = msg.Result
		m.state = ReviewReport
		return m, nil

	case MaterializeErrMsg:
		m.err = msg.Err
		m.state = ReviewError
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *ReviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, ReviewKeys.Quit) {
		return m, tea.Quit
	}
	if m.state != ReviewSelect {
		return m, nil
	}

	switch {
	case key.Matches(msg, ReviewKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, ReviewKeys.Down):
		if m.cursor < len(m.nodes)-1 {
			m.cursor++
		}
	case key.Matches(msg, ReviewKeys.Toggle):
		idx := m.nodes[m.cursor].Index
		m.selected[idx] = !m.selected[idx]
	case key.Matches(msg, ReviewKeys.All):
		for _, n := range m.nodes {
			m.selected[n.Index] = true
		}
	case key.Matches(msg, ReviewKeys.None):
		for _, n := range m.nodes {
			m.selected[n.Index] = false
		}
	case key.Matches(msg, ReviewKeys.Materialize):
		if m.countSelected() == 0 {
			return m, nil
		}
		return m, m.materialize()
	}

	return m, nil
}

func (m *ReviewModel) countSelected() int {
	count := 0
	for _, on := range m.selected {
		if on {
			count++
		}
	}
	return count
}

// View renders the review view
func (m *ReviewModel) View() string {
	var sb strings.Builder

	switch m.state {
	case ReviewLoading:
		sb.WriteString(styles.Title.Render("Generating structure"))
		sb.WriteByte('\n')
		fmt.Fprintf(&sb, "%s asking the assistant about %q...\n", m.spinner.View(), m.goal)

	case ReviewSelect:
		sb.WriteString(styles.Title.Render(fmt.Sprintf("Suggested %s structure", m.kind)))
		sb.WriteByte('\n')
		for i, n := range m.nodes {
			sb.WriteString(m.renderRow(i, n))
			sb.WriteByte('\n')
		}
		if len(m.skipped) > 0 {
			sb.WriteByte('\n')
			sb.WriteString(styles.Subtitle.Render(
				fmt.Sprintf("%d malformed line(s) ignored", len(m.skipped))))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
		sb.WriteString(m.statusBar())

	case ReviewReport:
		sb.WriteString(styles.Title.Render("Materialization report"))
		sb.WriteByte('\n')
		for _, r := range m.result.Created {
			sb.WriteString(styles.Created.Render(fmt.Sprintf("created  #%d  %s", r.ID, r.Title)))
			sb.WriteByte('\n')
		}
		for _, r := range m.result.Skipped {
			sb.WriteString(styles.SkippedRow.Render(fmt.Sprintf("skipped  #%d  %s (already exists)", r.ID, r.Title)))
			sb.WriteByte('\n')
		}
		for _, r := range m.result.Failed {
			sb.WriteString(styles.FailedRow.Render(fmt.Sprintf("failed   %s: %s", r.Title, r.Reason)))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
		sb.WriteString(styles.Success.Render(m.result.Message))
		sb.WriteString("\n\n")
		sb.WriteString(styles.Subtitle.Render("q quit"))

	case ReviewError:
		sb.WriteString(styles.ErrorMsg.Render("Error"))
		sb.WriteByte('\n')
		if m.err != nil {
			sb.WriteString(m.err.Error())
		}
		sb.WriteString("\n\n")
		sb.WriteString(styles.Subtitle.Render("q quit"))
	}

	return styles.App.Render(sb.String())
}

func (m *ReviewModel) renderRow(i int, n domain.Node) string {
	check := "[ ]"
	if m.selected[n.Index] {
		check = "[x]"
	}

	indent := strings.Repeat("  ", n.Level)
	attrs := ""
	if len(n.Attrs) > 0 {
		pairs := make([]string, 0, len(n.Attrs))
		for k, v := range n.Attrs {
			pairs = append(pairs, fmt.Sprintf("%s: %s", k, v))
		}
		attrs = " " + styles.Attrs.Render("("+strings.Join(pairs, ", ")+")")
	}

	row := fmt.Sprintf("%s %s%s%s", styles.Checkbox.Render(check), indent, n.Title, attrs)
	if i == m.cursor {
		return styles.RowSelected.Render(fmt.Sprintf("%s %s%s", check, indent, n.Title))
	}
	if !m.selected[n.Index] {
		return styles.RowDeselected.Render(fmt.Sprintf("%s %s%s", check, indent, n.Title))
	}
	return row
}

func (m *ReviewModel) statusBar() string {
	help := []string{
		styles.StatusKey.Render("space") + "toggle",
		styles.StatusKey.Render("a") + "all",
		styles.StatusKey.Render("n") + "none",
		styles.StatusKey.Render("enter") + "materialize",
		styles.StatusKey.Render("q") + "quit",
	}
	summary := fmt.Sprintf("  %d/%d selected", m.countSelected(), len(m.nodes))
	return styles.StatusBar.Render(strings.Join(help, " ") + summary)
}
