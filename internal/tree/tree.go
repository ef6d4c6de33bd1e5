// Package tree folds flat change lists into the navigable structure the
// panel renders.
package tree

import (
	"sort"
	"strings"

	"github.com/RicardoDalcin/git-delta-tree/internal/changeset"
)

// Mode selects between the nested folder view and the flat file list.
type Mode string

const (
	Hierarchical Mode = "hierarchical"
	Flat         Mode = "flat"
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Flat {
		return Hierarchical
	}
	return Flat
}

// ParseMode maps a stored string to a Mode, defaulting to Hierarchical.
func ParseMode(s string) Mode {
	if Mode(s) == Flat {
		return Flat
	}
	return Hierarchical
}

// Node is one entry in the materialized tree. The root node is a container
// only and is never rendered; consumers walk Children. Folders never carry a
// status, and leaves inserted by the full-tree fallback carry StatusNone.
type Node struct {
	Name     string
	FullPath string
	IsLeaf   bool
	Status   changeset.Status

	parent   *Node
	children map[string]*Node
}

// NewRoot returns an empty tree.
func NewRoot() *Node {
	return &Node{children: map[string]*Node{}}
}

// Parent returns the containing node, or nil for the root. The back-reference
// exists for upward traversal only; rendering never needs it.
func (n *Node) Parent() *Node { return n.parent }

// Child returns the direct child with the given key, or nil.
func (n *Node) Child(name string) *Node { return n.children[name] }

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Children returns the direct children in render order: folders before files,
// then by name. Ordering is computed here, never stored.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsLeaf != out[j].IsLeaf {
			return !out[i].IsLeaf
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Find walks the tree to the node at the given repo-relative path, or nil.
func (n *Node) Find(path string) *Node {
	if path == "" {
		return n
	}
	cur := n
	for _, seg := range strings.Split(path, "/") {
		cur = cur.Child(seg)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Build materializes records into a fresh tree. In Hierarchical mode every
// path is split on "/" and intermediate folders are created once per distinct
// prefix; in Flat mode each record hangs directly off the root keyed by its
// full path.
func Build(records []changeset.ChangeRecord, mode Mode) *Node {
	root := NewRoot()
	for _, rec := range records {
		if rec.Path == "" {
			continue
		}
		if mode == Flat {
			root.insertFlat(rec.Path, rec.Status)
			continue
		}
		root.insertPath(rec.Path, rec.Status)
	}
	return root
}

// BuildFallback materializes the full tracked-file listing used when a
// hierarchical view has zero changes. Every node is status-less.
func BuildFallback(paths []string) *Node {
	root := NewRoot()
	for _, p := range paths {
		if p == "" {
			continue
		}
		root.insertPath(p, changeset.StatusNone)
	}
	return root
}

func (n *Node) insertFlat(path string, status changeset.Status) {
	n.children[path] = &Node{
		Name:     path,
		FullPath: path,
		IsLeaf:   true,
		Status:   status,
		parent:   n,
		children: map[string]*Node{},
	}
}

func (n *Node) insertPath(path string, status changeset.Status) {
	segments := strings.Split(path, "/")
	cur := n
	for i, seg := range segments {
		last := i == len(segments)-1
		child := cur.children[seg]
		if child == nil {
			child = &Node{
				Name:     seg,
				FullPath: strings.Join(segments[:i+1], "/"),
				parent:   cur,
				children: map[string]*Node{},
			}
			cur.children[seg] = child
		}
		if last {
			child.IsLeaf = true
			child.Status = status
		}
		cur = child
	}
}
