package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

// MenuStore implements ports.ContentStore over the menu_items table.
//
// A menu entry with a "page" attribute is linked to the stored page whose
// slug (or, failing that, exact title) matches; a "custom" attribute is
// kept as a literal URL.
type MenuStore struct {
	db *sql.DB
}

// Ensure MenuStore implements ContentStore
var _ ports.ContentStore = (*MenuStore)(nil)

// FindByTitle looks up a menu item by exact title. Returns 0 when absent.
func (s *MenuStore) FindByTitle(title string) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		"SELECT id FROM menu_items WHERE title = ? ORDER BY id LIMIT 1",
		title,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find menu item: %w", err)
	}
	return id, nil
}

// Create inserts a menu item under parentID (0 for root) and returns its ID.
func (s *MenuStore) Create(entry ports.Entry, parentID int64) (int64, error) {
	pageID, err := s.resolvePage(entry.Attrs["page"])
	if err != nil {
		return 0, err
	}

	res, err := s.db.Exec(
		"INSERT INTO menu_items (title, page_id, url, parent_id, created_at) VALUES (?, ?, ?, ?, ?)",
		entry.Title, pageID, entry.Attrs["custom"], parentID, time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert menu item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert menu item: %w", err)
	}
	return id, nil
}

// resolvePage maps a "page" attribute to a stored page ID, trying slug
// first, then exact title. An unknown reference yields 0, not an error:
// the menu entry is still worth creating.
func (s *MenuStore) resolvePage(ref string) (int64, error) {
	if ref == "" {
		return 0, nil
	}

	pages := &PageStore{db: s.db}
	id, err := pages.FindBySlug(ref)
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return id, nil
	}
	return pages.FindByTitle(ref)
}

// SetParent re-links a menu item under a new parent.
func (s *MenuStore) SetParent(id, parentID int64) error {
	res, err := s.db.Exec(
		"UPDATE menu_items SET parent_id = ? WHERE id = ?",
		parentID, id,
	)
	if err != nil {
		return fmt.Errorf("update menu item parent: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update menu item parent: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no such menu item: %d", id)
	}
	return nil
}

// List returns every stored menu item as a generic entity.
func (s *MenuStore) List() ([]domain.Entity, error) {
	rows, err := s.db.Query("SELECT id, title, parent_id FROM menu_items ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var entities []domain.Entity
	for rows.Next() {
		var e domain.Entity
		if err := rows.Scan(&e.ID, &e.Title, &e.ParentID); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// ListItems returns every stored menu item with its page link and URL.
func (s *MenuStore) ListItems() ([]domain.MenuItem, error) {
	rows, err := s.db.Query(
		"SELECT id, title, page_id, url, parent_id, created_at FROM menu_items ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Title, &m.PageID, &m.URL, &m.ParentID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
