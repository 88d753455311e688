// Package chart holds the in-memory chart-of-accounts cache shared by one
// import run. The resolver extends the cache from report sheets and the
// classifier reads it; both receive the same Tree instance so categories
// created while processing one sheet are visible to later rows in the run.
package chart

import (
	"fmt"
	"strings"

	"ledgerlens/internal/models"
)

// Node is one category in the cache.
type Node struct {
	ID       uint
	Name     string
	Type     models.CategoryType
	ParentID *uint
}

// Tree caches a user's categories for the duration of an import run.
// Nodes are kept in insertion order; lookup by (name, type, parent) is
// case-insensitive.
type Tree struct {
	nodes []*Node
	byID  map[uint]*Node
	byKey map[string]*Node
}

// NewTree builds a cache from persisted categories, preserving their order.
func NewTree(categories []models.Category) *Tree {
	t := &Tree{
		byID:  make(map[uint]*Node, len(categories)),
		byKey: make(map[string]*Node, len(categories)),
	}
	for i := range categories {
		c := &categories[i]
		t.Add(&Node{ID: c.ID, Name: c.Name, Type: c.Type, ParentID: c.ParentID})
	}
	return t
}

// Add appends a node to the cache. Later additions win no lookups over
// earlier ones: the first node registered under a key keeps it.
func (t *Tree) Add(n *Node) {
	t.nodes = append(t.nodes, n)
	t.byID[n.ID] = n
	k := nodeKey(n.Name, n.Type, n.ParentID)
	if _, exists := t.byKey[k]; !exists {
		t.byKey[k] = n
	}
}

// Find looks up a node by natural key, case-insensitively.
func (t *Tree) Find(name string, typ models.CategoryType, parentID *uint) (*Node, bool) {
	n, ok := t.byKey[nodeKey(name, typ, parentID)]
	return n, ok
}

// Get looks up a node by ID.
func (t *Tree) Get(id uint) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. Callers must not mutate the
// returned slice.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Len returns the number of cached nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Depth returns the length of a node's ancestor chain (0 for roots).
// Walks are guarded against cycles so a corrupted parent link cannot hang
// the caller; -1 is returned for unknown ids or cyclic chains.
func (t *Tree) Depth(id uint) int {
	seen := make(map[uint]bool)
	depth := 0
	for {
		n, ok := t.byID[id]
		if !ok {
			return -1
		}
		if seen[id] {
			return -1
		}
		seen[id] = true
		if n.ParentID == nil {
			return depth
		}
		id = *n.ParentID
		depth++
	}
}

func nodeKey(name string, typ models.CategoryType, parentID *uint) string {
	parent := "root"
	if parentID != nil {
		parent = fmt.Sprintf("%d", *parentID)
	}
	return strings.ToLower(strings.TrimSpace(name)) + "|" + string(typ) + "|" + parent
}
