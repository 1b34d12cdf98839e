package commands

import (
	"context"
	"fmt"

	"sitesmith/internal/application"
	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

// TreeCommand builds the stored content tree for rendering.
type TreeCommand struct {
	store ports.ContentStore
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(store ports.ContentStore) *TreeCommand {
	return &TreeCommand{store: store}
}

// Execute returns the root nodes of the stored content tree.
func (c *TreeCommand) Execute(ctx context.Context) ([]*domain.TreeNode, error) {
	if c.store == nil {
		return nil, &application.ValidationError{
			Field:   "store",
			Message: "content store is required",
		}
	}

	entities, err := c.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	return domain.BuildTree(entities), nil
}
