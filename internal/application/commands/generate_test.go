package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sitesmith/internal/domain"
)

// fakeAssistant returns a canned reply or error.
type fakeAssistant struct {
	reply      string
	err        error
	lastPrompt string
}

func (a *fakeAssistant) SuggestOutline(prompt string) (string, error) {
	a.lastPrompt = prompt
	return a.reply, a.err
}

func (a *fakeAssistant) IsAvailable() bool { return true }

func TestGenerateCommand_Execute(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantNodes int
		wantEmpty bool
	}{
		{
			name:      "plain outline",
			reply:     "- Home (slug: home)\n  - News (slug: news)",
			wantNodes: 2,
		},
		{
			name:      "fenced outline",
			reply:     "```\n- Home (slug: home)\n```",
			wantNodes: 1,
		},
		{
			name:      "sentinel NONE",
			reply:     "NONE",
			wantEmpty: true,
		},
		{
			name:      "sentinel lowercase with whitespace",
			reply:     "  none\n",
			wantEmpty: true,
		},
		{
			name:      "empty reply",
			reply:     "",
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assistant := &fakeAssistant{reply: tt.reply}
			cmd := NewGenerateCommand(assistant, "a bakery site", domain.KindPages)

			result, err := cmd.Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantEmpty {
				if !result.Empty() {
					t.Errorf("expected empty result, got %d nodes", len(result.Nodes))
				}
				return
			}
			if len(result.Nodes) != tt.wantNodes {
				t.Errorf("expected %d nodes, got %d", tt.wantNodes, len(result.Nodes))
			}
		})
	}
}

func TestGenerateCommand_AssistantError(t *testing.T) {
	assistant := &fakeAssistant{err: errors.New("api down")}
	cmd := NewGenerateCommand(assistant, "a bakery site", domain.KindPages)

	_, err := cmd.Execute(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "api down") {
		t.Errorf("expected wrapped assistant error, got %q", err.Error())
	}
}

func TestGenerateCommand_PromptMentionsGoalAndKind(t *testing.T) {
	assistant := &fakeAssistant{reply: "NONE"}
	cmd := NewGenerateCommand(assistant, "a pottery studio", domain.KindMenu)

	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(assistant.lastPrompt, "a pottery studio") {
		t.Errorf("prompt does not mention the goal:\n%s", assistant.lastPrompt)
	}
	if !strings.Contains(assistant.lastPrompt, "navigation menu") {
		t.Errorf("prompt does not mention the menu kind:\n%s", assistant.lastPrompt)
	}
	if !strings.Contains(assistant.lastPrompt, "NONE") {
		t.Errorf("prompt does not explain the sentinel:\n%s", assistant.lastPrompt)
	}
}

func TestGenerateCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		assistant *fakeAssistant
		goal      string
		wantErr   string
	}{
		{
			name:      "valid",
			assistant: &fakeAssistant{},
			goal:      "a bakery",
		},
		{
			name:    "missing assistant",
			goal:    "a bakery",
			wantErr: "assistant is required",
		},
		{
			name:      "blank goal",
			assistant: &fakeAssistant{},
			goal:      "   ",
			wantErr:   "goal is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &GenerateCommand{Goal: tt.goal, Kind: domain.KindPages}
			if tt.assistant != nil {
				cmd.assistant = tt.assistant
			}
			err := cmd.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
