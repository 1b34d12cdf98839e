package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

type fakeEntity struct {
	title    string
	parentID int64
	attrs    map[string]string
}

// fakeStore implements ports.ContentStore in memory, with per-title
// failure injection.
type fakeStore struct {
	nextID        int64
	entities      map[int64]*fakeEntity
	failCreate    map[string]error // by title
	failSetParent map[int64]error  // by entity ID
	failFind      map[string]error // by title
	creates       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entities:      make(map[int64]*fakeEntity),
		failCreate:    make(map[string]error),
		failSetParent: make(map[int64]error),
		failFind:      make(map[string]error),
	}
}

func (s *fakeStore) FindByTitle(title string) (int64, error) {
	if err := s.failFind[title]; err != nil {
		return 0, err
	}
	var found int64
	for id, e := range s.entities {
		if e.title == title && (found == 0 || id < found) {
			found = id
		}
	}
	return found, nil
}

func (s *fakeStore) Create(entry ports.Entry, parentID int64) (int64, error) {
	s.creates++
	if err := s.failCreate[entry.Title]; err != nil {
		return 0, err
	}
	s.nextID++
	s.entities[s.nextID] = &fakeEntity{title: entry.Title, parentID: parentID, attrs: entry.Attrs}
	return s.nextID, nil
}

func (s *fakeStore) SetParent(id, parentID int64) error {
	if err := s.failSetParent[id]; err != nil {
		return err
	}
	e, ok := s.entities[id]
	if !ok {
		return fmt.Errorf("no such entity: %d", id)
	}
	e.parentID = parentID
	return nil
}

func (s *fakeStore) List() ([]domain.Entity, error) {
	var entities []domain.Entity
	for id, e := range s.entities {
		entities = append(entities, domain.Entity{ID: id, Title: e.title, ParentID: e.parentID})
	}
	return entities, nil
}

func (s *fakeStore) byTitle(t *testing.T, title string) (int64, *fakeEntity) {
	t.Helper()
	for id, e := range s.entities {
		if e.title == title {
			return id, e
		}
	}
	t.Fatalf("entity %q not in store", title)
	return 0, nil
}

func parseFixture(t *testing.T, text string) []domain.Node {
	t.Helper()
	nodes, skipped := domain.ParseOutline(text)
	if len(skipped) != 0 {
		t.Fatalf("fixture has invalid lines: %v", skipped)
	}
	return nodes
}

const scenarioOutline = `- About Us (slug: about-us)
  - Our Mission (slug: our-mission)
  - Our Team (slug: our-team)
- Contact (slug: contact)`

func TestMaterialize_CreatesHierarchy(t *testing.T) {
	store := newFakeStore()
	nodes := parseFixture(t, scenarioOutline)

	result, err := NewMaterializeCommand(store, nodes).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Created) != 4 || len(result.Skipped) != 0 || len(result.Failed) != 0 {
		t.Fatalf("expected 4/0/0, got %d/%d/%d",
			len(result.Created), len(result.Skipped), len(result.Failed))
	}

	aboutID, _ := store.byTitle(t, "About Us")
	_, mission := store.byTitle(t, "Our Mission")
	_, team := store.byTitle(t, "Our Team")
	_, contact := store.byTitle(t, "Contact")

	if mission.parentID != aboutID {
		t.Errorf("expected Our Mission under About Us (%d), got %d", aboutID, mission.parentID)
	}
	if team.parentID != aboutID {
		t.Errorf("expected Our Team under About Us (%d), got %d", aboutID, team.parentID)
	}
	if contact.parentID != 0 {
		t.Errorf("expected Contact at root, got parent %d", contact.parentID)
	}

	for _, n := range nodes {
		if _, ok := result.IDByIndex[n.Index]; !ok {
			t.Errorf("expected IDByIndex entry for node %d", n.Index)
		}
	}
}

func TestMaterialize_SecondRunSkipsEverything(t *testing.T) {
	store := newFakeStore()
	nodes := parseFixture(t, scenarioOutline)

	first, err := NewMaterializeCommand(store, nodes).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewMaterializeCommand(store, nodes).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(second.Created) != 0 || len(second.Skipped) != 4 || len(second.Failed) != 0 {
		t.Fatalf("expected 0/4/0 on re-run, got %d/%d/%d",
			len(second.Created), len(second.Skipped), len(second.Failed))
	}
	if len(store.entities) != 4 {
		t.Errorf("expected no duplicates, store holds %d entities", len(store.entities))
	}

	// skipped nodes reuse the IDs of the first run
	for idx, id := range first.IDByIndex {
		if second.IDByIndex[idx] != id {
			t.Errorf("node %d: expected stable ID %d, got %d", idx, id, second.IDByIndex[idx])
		}
	}
}

func TestMaterialize_SkippedNodesAreNotReparented(t *testing.T) {
	store := newFakeStore()
	// Pre-existing root entity with the child's title.
	if _, err := store.Create(ports.Entry{Title: "Our Team"}, 0); err != nil {
		t.Fatal(err)
	}

	nodes := parseFixture(t, scenarioOutline)
	result, err := NewMaterializeCommand(store, nodes).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Skipped) != 1 {
		t.Fatalf("expected 1 skipped, got %d", len(result.Skipped))
	}
	_, team := store.byTitle(t, "Our Team")
	if team.parentID != 0 {
		t.Errorf("pre-existing entity must keep its parent, got %d", team.parentID)
	}
}

func TestMaterialize_DeselectedParentLeavesChildAtRoot(t *testing.T) {
	store := newFakeStore()
	nodes := parseFixture(t, scenarioOutline)

	// Select only "Our Mission"; its parent "About Us" is not in the batch.
	selection := []domain.Node{nodes[1]}

	result, err := NewMaterializeCommand(store, selection).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Created) != 1 || len(result.Failed) != 0 {
		t.Fatalf("expected 1 created, 0 failed, got %d/%d",
			len(result.Created), len(result.Failed))
	}
	_, mission := store.byTitle(t, "Our Mission")
	if mission.parentID != 0 {
		t.Errorf("expected orphan at root, got parent %d", mission.parentID)
	}
}

func TestMaterialize_ParentCreateFailureCascades(t *testing.T) {
	store := newFakeStore()
	store.failCreate["About Us"] = errors.New("storage rejected")
	nodes := parseFixture(t, scenarioOutline)

	result, err := NewMaterializeCommand(store, nodes).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// About Us failed outright; its two children fail with a missing-parent
	// reason; Contact is unaffected.
	if len(result.Failed) != 3 {
		t.Fatalf("expected 3 failed, got %d: %+v", len(result.Failed), result.Failed)
	}
	if len(result.Created) != 1 || result.Created[0].Title != "Contact" {
		t.Fatalf("expected only Contact created, got %+v", result.Created)
	}

	reasons := make(map[string]string)
	for _, f := range result.Failed {
		reasons[f.Title] = f.Reason
	}
	if !strings.Contains(reasons["About Us"], "storage rejected") {
		t.Errorf("expected store error for About Us, got %q", reasons["About Us"])
	}
	for _, child := range []string{"Our Mission", "Our Team"} {
		if reasons[child] != "parent not created" {
			t.Errorf("expected %q failed with parent not created, got %q", child, reasons[child])
		}
		// the child entity itself was created and stays in the store
		_, e := store.byTitle(t, child)
		if e.parentID != 0 {
			t.Errorf("expected %q orphaned at root, got parent %d", child, e.parentID)
		}
	}
}

func TestMaterialize_ReparentFailureKeepsEntity(t *testing.T) {
	store := newFakeStore()
	nodes := parseFixture(t, scenarioOutline)

	// Fail the parent assignment of the second created entity (Our Mission).
	store.failSetParent[2] = errors.New("update rejected")

	result, err := NewMaterializeCommand(store, nodes).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Failed) != 1 {
		t.Fatalf("expected 1 failed, got %d", len(result.Failed))
	}
	f := result.Failed[0]
	if f.Title != "Our Mission" {
		t.Fatalf("expected Our Mission failed, got %q", f.Title)
	}
	if !strings.Contains(f.Reason, "parent assignment failed") {
		t.Errorf("unexpected reason: %q", f.Reason)
	}
	// no rollback: the entity still exists, unparented
	_, mission := store.byTitle(t, "Our Mission")
	if mission.parentID != 0 {
		t.Errorf("expected entity left at root, got parent %d", mission.parentID)
	}
	// its ID stays available for chaining
	if f.ID == 0 || result.IDByIndex[f.Index] != f.ID {
		t.Errorf("expected failed reparent to keep its ID, got %d", f.ID)
	}
}

func TestMaterialize_LookupFailureFallsThroughToCreate(t *testing.T) {
	store := newFakeStore()
	store.failFind["Contact"] = errors.New("transient fault")
	nodes := parseFixture(t, scenarioOutline)

	result, err := NewMaterializeCommand(store, nodes).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Created) != 4 || len(result.Failed) != 0 {
		t.Fatalf("expected all created despite lookup fault, got %d/%d",
			len(result.Created), len(result.Failed))
	}
}

func TestMaterialize_StoreUnreachableFailsEveryNode(t *testing.T) {
	store := newFakeStore()
	down := errors.New("store unreachable")
	for _, title := range []string{"About Us", "Our Mission", "Our Team", "Contact"} {
		store.failCreate[title] = down
	}
	nodes := parseFixture(t, scenarioOutline)

	result, err := NewMaterializeCommand(store, nodes).Execute(context.Background())
	if err != nil {
		t.Fatalf("materialize must not abort, got %v", err)
	}
	if len(result.Failed) != 4 {
		t.Fatalf("expected every node failed, got %d", len(result.Failed))
	}
}

func TestMaterialize_EmptyBatch(t *testing.T) {
	store := newFakeStore()

	result, err := NewMaterializeCommand(store, nil).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Created)+len(result.Skipped)+len(result.Failed) != 0 {
		t.Errorf("expected empty report, got %+v", result)
	}
	if store.creates != 0 {
		t.Errorf("expected no store calls, got %d creates", store.creates)
	}
}

func TestMaterializeCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		store   *fakeStore
		nodes   []domain.Node
		wantErr string
	}{
		{
			name:  "valid",
			store: newFakeStore(),
			nodes: []domain.Node{{Title: "Home", ParentIndex: -1}},
		},
		{
			name:    "missing store",
			store:   nil,
			nodes:   []domain.Node{{Title: "Home", ParentIndex: -1}},
			wantErr: "content store is required",
		},
		{
			name:    "empty title",
			store:   newFakeStore(),
			nodes:   []domain.Node{{Title: "", Index: 2, ParentIndex: -1}},
			wantErr: "node 2 has an empty title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var store ports.ContentStore
			if tt.store != nil {
				store = tt.store
			}
			err := NewMaterializeCommand(store, tt.nodes).Validate()

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
