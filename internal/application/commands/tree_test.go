package commands

import (
	"context"
	"testing"

	"sitesmith/internal/ports"
)

func TestTreeCommand_Execute(t *testing.T) {
	store := newFakeStore()
	homeID, err := store.Create(ports.Entry{Title: "Home"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ports.Entry{Title: "News"}, homeID); err != nil {
		t.Fatal(err)
	}

	roots, err := NewTreeCommand(store).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if roots[0].Title != "Home" {
		t.Errorf("expected Home root, got %q", roots[0].Title)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Title != "News" {
		t.Errorf("expected News under Home, got %+v", roots[0].Children)
	}
}

func TestTreeCommand_MissingStore(t *testing.T) {
	if _, err := NewTreeCommand(nil).Execute(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
