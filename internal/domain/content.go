package domain

import (
	"slices"
	"strings"
	"time"
	"unicode"
)

// Kind selects which content tree a generation targets.
type Kind int

const (
	KindPages Kind = iota
	KindMenu
)

func (k Kind) String() string {
	switch k {
	case KindPages:
		return "pages"
	case KindMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// ParseKind maps a user-supplied kind name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pages", "page":
		return KindPages, true
	case "menu", "menus":
		return KindMenu, true
	}
	return KindPages, false
}

// Entity is a stored content record with its store-assigned ID.
// ParentID 0 means root.
type Entity struct {
	ID       int64
	Title    string
	ParentID int64
}

// Page is a stored page with its routing slug.
type Page struct {
	ID        int64
	Title     string
	Slug      string
	ParentID  int64
	CreatedAt time.Time
}

// MenuItem is a stored navigation entry, optionally linked to a page.
type MenuItem struct {
	ID        int64
	Title     string
	PageID    int64  // 0 when the item does not point at a stored page
	URL       string // custom link target, empty for page-linked items
	ParentID  int64
	CreatedAt time.Time
}

// TreeNode is an entity with its resolved children, for tree rendering.
type TreeNode struct {
	Entity
	Children []*TreeNode
}

// BuildTree groups entities under their parents and returns the roots.
// Entities whose parent is missing from the input are promoted to roots, so
// a partially materialized batch still renders. Siblings sort by ID.
func BuildTree(entities []Entity) []*TreeNode {
	byID := make(map[int64]*TreeNode, len(entities))
	for _, e := range entities {
		byID[e.ID] = &TreeNode{Entity: e}
	}

	var roots []*TreeNode
	for _, e := range entities {
		node := byID[e.ID]
		if parent, ok := byID[e.ParentID]; ok && e.ParentID != e.ID {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	sortTree(roots)
	return roots
}

func sortTree(nodes []*TreeNode) {
	slices.SortFunc(nodes, func(a, b *TreeNode) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	for _, n := range nodes {
		sortTree(n.Children)
	}
}

// Slugify derives a routing slug from a title: lowercase, alphanumerics
// kept, everything else collapsed into single hyphens.
func Slugify(title string) string {
	var sb strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pending = false
			sb.WriteRune(r)
		} else {
			pending = true
		}
	}
	return sb.String()
}
