package sqlite

import (
	"path/filepath"
	"testing"

	"sitesmith/internal/ports"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPageStore_CreateAndFind(t *testing.T) {
	pages := openTestDB(t).Pages()

	id, err := pages.Create(ports.Entry{
		Title: "About Us",
		Attrs: map[string]string{"slug": "about-us"},
	}, 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero ID")
	}

	found, err := pages.FindByTitle("About Us")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != id {
		t.Errorf("expected ID %d, got %d", id, found)
	}
}

func TestPageStore_FindByTitle_Absent(t *testing.T) {
	pages := openTestDB(t).Pages()

	id, err := pages.FindByTitle("Nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Errorf("expected 0 for absent title, got %d", id)
	}
}

func TestPageStore_FindByTitle_CaseSensitive(t *testing.T) {
	pages := openTestDB(t).Pages()

	if _, err := pages.Create(ports.Entry{Title: "About Us"}, 0); err != nil {
		t.Fatal(err)
	}

	id, err := pages.FindByTitle("about us")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Errorf("title matching must be case-sensitive, got ID %d", id)
	}
}

func TestPageStore_SlugDerivedFromTitle(t *testing.T) {
	db := openTestDB(t)
	pages := db.Pages()

	if _, err := pages.Create(ports.Entry{Title: "FAQ & Help"}, 0); err != nil {
		t.Fatal(err)
	}

	stored, err := pages.ListPages()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 page, got %d", len(stored))
	}
	if stored[0].Slug != "faq-help" {
		t.Errorf("expected derived slug faq-help, got %q", stored[0].Slug)
	}
}

func TestPageStore_SetParent(t *testing.T) {
	pages := openTestDB(t).Pages()

	parentID, err := pages.Create(ports.Entry{Title: "Home"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	childID, err := pages.Create(ports.Entry{Title: "News"}, 0)
	if err != nil {
		t.Fatal(err)
	}

	if err := pages.SetParent(childID, parentID); err != nil {
		t.Fatalf("set parent: %v", err)
	}

	entities, err := pages.List()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entities {
		if e.ID == childID && e.ParentID != parentID {
			t.Errorf("expected parent %d, got %d", parentID, e.ParentID)
		}
	}
}

func TestPageStore_SetParent_MissingRow(t *testing.T) {
	pages := openTestDB(t).Pages()

	if err := pages.SetParent(42, 1); err == nil {
		t.Fatal("expected error for missing page, got nil")
	}
}

func TestMenuStore_PageLinking(t *testing.T) {
	db := openTestDB(t)
	pages := db.Pages()
	menu := db.Menu()

	pageID, err := pages.Create(ports.Entry{
		Title: "About Us",
		Attrs: map[string]string{"slug": "about-us"},
	}, 0)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		attrs      map[string]string
		wantPageID int64
	}{
		{"links by slug", map[string]string{"page": "about-us"}, pageID},
		{"links by title", map[string]string{"page": "About Us"}, pageID},
		{"unknown reference yields no link", map[string]string{"page": "missing"}, 0},
		{"custom url has no page", map[string]string{"custom": "https://example.com"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := menu.Create(ports.Entry{Title: tt.name, Attrs: tt.attrs}, 0)
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			items, err := menu.ListItems()
			if err != nil {
				t.Fatal(err)
			}
			for _, item := range items {
				if item.ID == id && item.PageID != tt.wantPageID {
					t.Errorf("expected page link %d, got %d", tt.wantPageID, item.PageID)
				}
			}
		})
	}
}

func TestMenuStore_SeparateFromPages(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.Pages().Create(ports.Entry{Title: "Shared Title"}, 0); err != nil {
		t.Fatal(err)
	}

	// A menu item with the same title is not a duplicate of the page.
	id, err := db.Menu().FindByTitle("Shared Title")
	if err != nil {
		t.Fatal(err)
	}
	if id != 0 {
		t.Errorf("expected menu lookup to miss page titles, got %d", id)
	}
}
