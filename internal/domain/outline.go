package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Node represents one line of a parsed outline: a flat record annotated
// with its nesting level and the position of its parent in the same slice.
type Node struct {
	Title       string
	Attrs       map[string]string
	Level       int
	ParentIndex int // index of the parent node in the same slice, -1 for roots
	Index       int // position in the parse output; stable identity across selection
}

// DefaultIndentUnit is the number of leading spaces per nesting level.
const DefaultIndentUnit = 2

// IsRoot reports whether the node has no parent in the outline.
func (n Node) IsRoot() bool {
	return n.ParentIndex < 0
}

// Attr returns the named attribute, or the fallback when absent.
func (n Node) Attr(key, fallback string) string {
	if v, ok := n.Attrs[key]; ok && v != "" {
		return v
	}
	return fallback
}

// ParseOutline converts an indentation-encoded bullet list into a flat node
// slice using the default indent unit. Lines that do not match the outline
// grammar are returned in the second slice and never abort the parse.
func ParseOutline(raw string) ([]Node, []string) {
	return ParseOutlineIndent(raw, DefaultIndentUnit)
}

// ParseOutlineIndent is ParseOutline with an explicit indent unit.
//
// Each line must look like:
//
//	<indent><bullet> <title> (<key>: <value>[, <key2>: <value2>...])
//
// where bullet is one of `*`, `-`, `–`, `—`, `+`. The level is the leading
// whitespace width divided by the indent unit. Parent links resolve to the
// nearest preceding node one level up; a line indented past any known
// ancestor is recovered as a root rather than dropped.
func ParseOutlineIndent(raw string, indentUnit int) ([]Node, []string) {
	if indentUnit <= 0 {
		indentUnit = DefaultIndentUnit
	}

	var nodes []Node
	var skipped []string

	// lastAtLevel[L] is the index of the most recent node parsed at level L.
	// A node at level L invalidates all deeper entries.
	var lastAtLevel []int

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := leadingWhitespace(line)
		title, attrs, ok := parseOutlineLine(line[indent:])
		if !ok {
			skipped = append(skipped, line)
			continue
		}

		level := indent / indentUnit
		parent := -1
		if level > 0 {
			if level <= len(lastAtLevel) {
				parent = lastAtLevel[level-1]
			} else {
				// No ancestor one level up: treat as a root instead of
				// erroring, so a malformed jump never loses the line.
				level = 0
			}
		}

		index := len(nodes)
		nodes = append(nodes, Node{
			Title:       title,
			Attrs:       attrs,
			Level:       level,
			ParentIndex: parent,
			Index:       index,
		})
		lastAtLevel = append(lastAtLevel[:level], index)
	}

	return nodes, skipped
}

// FormatOutline renders nodes back to the outline wire format, one line per
// node, `-` bullets, two spaces of indent per level, attribute keys sorted.
// FormatOutline and ParseOutline round-trip.
func FormatOutline(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(strings.Repeat("  ", n.Level))
		sb.WriteString("- ")
		sb.WriteString(n.Title)

		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s: %s", k, n.Attrs[k])
		}
		sb.WriteString(" (")
		sb.WriteString(strings.Join(pairs, ", "))
		sb.WriteString(")\n")
	}
	return sb.String()
}

func leadingWhitespace(line string) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}

func isBullet(r rune) bool {
	switch r {
	case '*', '-', '–', '—', '+':
		return true
	}
	return false
}

// parseOutlineLine tokenizes a single de-indented line: bullet, title, then
// one trailing parenthetical of comma-separated key/value pairs.
func parseOutlineLine(line string) (string, map[string]string, bool) {
	runes := []rune(strings.TrimRight(line, " \t\r"))
	if len(runes) < 2 || !isBullet(runes[0]) || runes[1] != ' ' {
		return "", nil, false
	}
	rest := string(runes[2:])

	if !strings.HasSuffix(rest, ")") {
		return "", nil, false
	}
	open := strings.LastIndex(rest, "(")
	if open < 0 {
		return "", nil, false
	}

	title := strings.TrimSpace(rest[:open])
	if title == "" {
		return "", nil, false
	}

	attrs := parseAttrs(rest[open+1 : len(rest)-1])
	if attrs == nil {
		return "", nil, false
	}

	return title, attrs, true
}

// parseAttrs splits "slug: about-us, type: page" into a map. Every pair
// needs a colon and a non-empty key; otherwise the whole line is rejected.
func parseAttrs(body string) map[string]string {
	attrs := make(map[string]string)
	for _, pair := range strings.Split(body, ",") {
		key, value, found := strings.Cut(pair, ":")
		if !found {
			return nil
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil
		}
		attrs[key] = strings.TrimSpace(value)
	}
	return attrs
}
