package application

import "sitesmith/internal/domain"

// Re-export domain types for use by adapters
type (
	Node     = domain.Node
	Entity   = domain.Entity
	Page     = domain.Page
	MenuItem = domain.MenuItem
	TreeNode = domain.TreeNode
	Kind     = domain.Kind
)

const (
	KindPages = domain.KindPages
	KindMenu  = domain.KindMenu
)

// ParseOutline parses an indented bullet outline into flat nodes.
func ParseOutline(raw string) ([]Node, []string) {
	return domain.ParseOutline(raw)
}

// BuildTree groups entities under their parents and returns the roots.
func BuildTree(entities []Entity) []*TreeNode {
	return domain.BuildTree(entities)
}
