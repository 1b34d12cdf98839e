package commands

import (
	"context"
	"fmt"

	"sitesmith/internal/application"
	"sitesmith/internal/domain"
	"sitesmith/internal/ports"
)

// Outcome classifies the terminal state of one node after materialization.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// NodeResult records what happened to a single node.
type NodeResult struct {
	Index  int    // the node's Index from the parse output
	Title  string
	ID     int64  // assigned or pre-existing store ID; 0 when creation failed
	Reason string // failure reason, empty otherwise
}

// MaterializeResult is the per-node report of a materialization run.
// IDByIndex maps outline indices to store IDs for every node that holds a
// valid ID, so callers can chain a run into a further step (menu items
// referencing page IDs, for example).
type MaterializeResult struct {
	Created   []NodeResult
	Skipped   []NodeResult
	Failed    []NodeResult
	IDByIndex map[int]int64
	Message   string
}

// MaterializeCommand turns parsed outline nodes into stored entities.
//
// The store assigns IDs only at creation time, yet children must link to
// their parents' IDs, so the command runs two passes: pass 1 creates or
// looks up every node at root level, pass 2 re-links created nodes once all
// parent IDs are known. Nothing is transactional across nodes; a partial
// batch always yields a partial report and no entity is ever rolled back.
type MaterializeCommand struct {
	store ports.ContentStore
	Nodes []domain.Node
}

// NewMaterializeCommand creates a new MaterializeCommand
func NewMaterializeCommand(store ports.ContentStore, nodes []domain.Node) *MaterializeCommand {
	return &MaterializeCommand{
		store: store,
		Nodes: nodes,
	}
}

// Validate checks if the materialize operation is valid
func (c *MaterializeCommand) Validate() error {
	if c.store == nil {
		return &application.ValidationError{
			Field:   "store",
			Message: "content store is required",
		}
	}
	for _, n := range c.Nodes {
		if n.Title == "" {
			return &application.ValidationError{
				Field:   "nodes",
				Message: fmt.Sprintf("node %d has an empty title", n.Index),
			}
		}
	}
	return nil
}

// Execute runs the two-pass materialization. Store failures never abort the
// batch; every node ends with an independent outcome.
func (c *MaterializeCommand) Execute(ctx context.Context) (*MaterializeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Nodes may be a user-selected subset of the parse, so ParentIndex can
	// point at a node that is not part of this batch.
	inBatch := make(map[int]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		inBatch[n.Index] = true
	}

	idByIndex := make(map[int]int64, len(c.Nodes))
	outcomes := make([]Outcome, len(c.Nodes))
	reasons := make([]string, len(c.Nodes))

	// Pass 1: create or look up every node, ignoring hierarchy.
	for i, n := range c.Nodes {
		id, err := c.store.FindByTitle(n.Title)
		if err != nil {
			// Deduplication is best-effort: a failed lookup falls through
			// to an attempted create.
			id = 0
		}
		if id != 0 {
			outcomes[i] = OutcomeSkipped
			idByIndex[n.Index] = id
			continue
		}

		id, err = c.store.Create(ports.Entry{Title: n.Title, Attrs: n.Attrs}, 0)
		if err != nil {
			outcomes[i] = OutcomeFailed
			reasons[i] = err.Error()
			continue
		}
		outcomes[i] = OutcomeCreated
		idByIndex[n.Index] = id
	}

	// Pass 2: re-link created nodes now that every parent ID is known.
	// Pre-existing (skipped) entities are never re-parented.
	for i, n := range c.Nodes {
		if outcomes[i] != OutcomeCreated || n.IsRoot() {
			continue
		}
		if !inBatch[n.ParentIndex] {
			// Parent was deselected; the node stays at root, still created.
			continue
		}
		parentID, ok := idByIndex[n.ParentIndex]
		if !ok {
			outcomes[i] = OutcomeFailed
			reasons[i] = "parent not created"
			continue
		}
		if err := c.store.SetParent(idByIndex[n.Index], parentID); err != nil {
			// The entity itself stays in the store, orphaned at root.
			outcomes[i] = OutcomeFailed
			reasons[i] = fmt.Sprintf("parent assignment failed: %v", err)
		}
	}

	result := &MaterializeResult{IDByIndex: idByIndex}
	for i, n := range c.Nodes {
		r := NodeResult{
			Index:  n.Index,
			Title:  n.Title,
			ID:     idByIndex[n.Index],
			Reason: reasons[i],
		}
		switch outcomes[i] {
		case OutcomeCreated:
			result.Created = append(result.Created, r)
		case OutcomeSkipped:
			result.Skipped = append(result.Skipped, r)
		case OutcomeFailed:
			result.Failed = append(result.Failed, r)
		}
	}
	result.Message = fmt.Sprintf("%d created, %d skipped, %d failed",
		len(result.Created), len(result.Skipped), len(result.Failed))

	return result, nil
}
