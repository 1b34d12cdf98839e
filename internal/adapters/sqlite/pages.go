package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

// PageStore implements ports.ContentStore over the pages table.
// Title matching is exact and case-sensitive: that is the deduplication
// policy, not an accident.
type PageStore struct {
	db *sql.DB
}

// Ensure PageStore implements ContentStore
var _ ports.ContentStore = (*PageStore)(nil)

// FindByTitle looks up a page by exact title. Returns 0 when absent.
func (s *PageStore) FindByTitle(title string) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		"SELECT id FROM pages WHERE title = ? ORDER BY id LIMIT 1",
		title,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find page: %w", err)
	}
	return id, nil
}

// Create inserts a page under parentID (0 for root) and returns its ID.
// The slug comes from the entry's "slug" attribute, derived from the title
// when absent.
func (s *PageStore) Create(entry ports.Entry, parentID int64) (int64, error) {
	slug := entry.Attrs["slug"]
	if slug == "" {
		slug = domain.Slugify(entry.Title)
	}

	res, err := s.db.Exec(
		"INSERT INTO pages (title, slug, parent_id, created_at) VALUES (?, ?, ?, ?)",
		entry.Title, slug, parentID, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert page: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert page: %w", err)
	}
	return id, nil
}

// SetParent re-links a page under a new parent.
func (s *PageStore) SetParent(id, parentID int64) error {
	res, err := s.db.Exec(
		"UPDATE pages SET parent_id = ? WHERE id = ?",
		parentID, id,
	)
	if err != nil {
		return fmt.Errorf("update page parent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update page parent: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no such page: %d", id)
	}
	return nil
}

// List returns every stored page as a generic entity.
func (s *PageStore) List() ([]domain.Entity, error) {
	rows, err := s.db.Query("SELECT id, title, parent_id FROM pages ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var entities []domain.Entity
	for rows.Next() {
		var e domain.Entity
		if err := rows.Scan(&e.ID, &e.Title, &e.ParentID); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// ListPages returns every stored page with its slug.
func (s *PageStore) ListPages() ([]domain.Page, error) {
	rows, err := s.db.Query(
		"SELECT id, title, slug, parent_id, created_at FROM pages ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.Page
	for rows.Next() {
		var p domain.Page
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.ParentID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// FindBySlug looks up a page ID by slug. Returns 0 when absent.
func (s *PageStore) FindBySlug(slug string) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		"SELECT id FROM pages WHERE slug = ? ORDER BY id LIMIT 1",
		slug,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find page by slug: %w", err)
	}
	return id, nil
}
