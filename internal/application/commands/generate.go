package commands

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"sitesmith/internal/application"
	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

// sentinelNone is the reserved reply meaning "no suggestion". It is treated
// exactly like an empty completion: zero nodes, not an error.
const sentinelNone = "NONE"

// GenerateResult contains the parsed suggestion for a structure goal
type GenerateResult struct {
	Nodes        []domain.Node
	SkippedLines []string // raw lines the parser rejected, for diagnostics
	Raw          string   // the assistant's unprocessed reply
	Message      string
}

// Empty reports whether the assistant had nothing to suggest.
func (r *GenerateResult) Empty() bool {
	return len(r.Nodes) == 0
}

// GenerateCommand asks the assistant for a site structure and parses the
// reply into outline nodes.
type GenerateCommand struct {
	assistant ports.Assistant
	Goal      string
	Kind      domain.Kind
}

// NewGenerateCommand creates a new GenerateCommand
func NewGenerateCommand(assistant ports.Assistant, goal string, kind domain.Kind) *GenerateCommand {
	return &GenerateCommand{
		assistant: assistant,
		Goal:      goal,
		Kind:      kind,
	}
}

// Validate checks if the generate operation is valid
func (c *GenerateCommand) Validate() error {
	if c.assistant == nil {
		return &application.ValidationError{
			Field:   "assistant",
			Message: "assistant is required",
		}
	}
	if strings.TrimSpace(c.Goal) == "" {
		return &application.ValidationError{
			Field:   "goal",
			Message: "goal is required",
		}
	}
	return nil
}

// Execute runs the generate command
func (c *GenerateCommand) Execute(ctx context.Context) (*GenerateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	raw, err := c.assistant.SuggestOutline(buildOutlinePrompt(c.Goal, c.Kind))
	if err != nil {
		return nil, fmt.Errorf("assistant: %w", err)
	}

	text := stripCodeFences(raw)
	if text == "" || strings.EqualFold(text, sentinelNone) {
		return &GenerateResult{Raw: raw, Message: "no suggestion"}, nil
	}

	nodes, skipped := domain.ParseOutline(text)
	return &GenerateResult{
		Nodes:        nodes,
		SkippedLines: skipped,
		Raw:          raw,
		Message:      fmt.Sprintf("%d nodes suggested", len(nodes)),
	}, nil
}

func buildOutlinePrompt(goal string, kind domain.Kind) string {
	var target string
	switch kind {
	case domain.KindMenu:
		target = `a navigation menu for the site. Use the attribute "page"
to name the page a menu entry links to, or "custom" with a URL for external
links.`
	default:
		target = `the page hierarchy for the site. Give every page a "slug"
attribute (lowercase, hyphenated).`
	}

	return fmt.Sprintf(`You are planning %s

Site description: %s

Reply with ONLY an indented bullet list, one entry per line:

- Title (key: value)
  - Child Title (key: value)

Rules:
- Indent children by exactly 2 spaces per level.
- Every line needs a trailing parenthetical with at least one key: value pair.
- Do not wrap the list in markdown code blocks.
- If you cannot suggest anything useful, reply with the single word NONE.`,
		target, goal)
}

var codeFenceRe = regexp.MustCompile("```[a-z]*\\n?")

// stripCodeFences removes markdown code fences the assistant sometimes
// wraps replies in, despite instructions.
func stripCodeFences(raw string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))
}
