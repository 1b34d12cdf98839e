package ports

import "sitesmith/internal/domain"

// Entry holds the attributes of an entity about to be created. Attrs carry
// the outline's parenthetical key/value pairs (slug, page, type, ...).
type Entry struct {
	Title string
	Attrs map[string]string
}

// ContentStore is the destination a parsed outline is materialized into.
// The store assigns IDs at creation time; parent links are set separately,
// which is why materialization needs two passes.
type ContentStore interface {
	// FindByTitle looks up an entity by exact title match.
	// Returns 0 with a nil error when nothing matches.
	FindByTitle(title string) (int64, error)

	// Create stores a new entity under parentID (0 for root) and returns
	// the assigned ID.
	Create(entry Entry, parentID int64) (int64, error)

	// SetParent re-links an existing entity under a new parent.
	SetParent(id, parentID int64) error

	// List returns every stored entity, for tree rendering.
	List() ([]domain.Entity, error)
}
