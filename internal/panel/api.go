package panel

import (
	"github.com/RicardoDalcin/git-delta-tree/internal/changeset"
	"github.com/RicardoDalcin/git-delta-tree/internal/tree"
)

// Item is the host-facing shape of one tree entry: a label, an
// expand/collapse affordance, a status-driven icon, and the path carried by
// the activation action.
type Item struct {
	Label       string `json:"label"`
	Path        string `json:"path"`
	Collapsible bool   `json:"collapsible"`
	Icon        string `json:"icon"`
	Status      string `json:"status,omitempty"`
}

// Items lists the rendered children of the node at parentPath ("" for the
// top level). The root itself is never part of the result. An unknown path
// yields an empty list.
func (s *Service) Items(parentPath string) []Item {
	node := s.Tree().Find(parentPath)
	if node == nil {
		return []Item{}
	}
	children := node.Children()
	items := make([]Item, 0, len(children))
	for _, c := range children {
		items = append(items, Item{
			Label:       c.Name,
			Path:        c.FullPath,
			Collapsible: !c.IsLeaf,
			Icon:        iconFor(c),
			Status:      string(c.Status),
		})
	}
	return items
}

// iconFor selects the icon key: folders get their own, leaves get one of the
// four status icons or the plain-file default.
func iconFor(n *tree.Node) string {
	if !n.IsLeaf {
		return "folder"
	}
	switch n.Status {
	case changeset.StatusModified:
		return "diff-modified"
	case changeset.StatusAdded:
		return "diff-added"
	case changeset.StatusDeleted:
		return "diff-removed"
	case changeset.StatusRenamed:
		return "diff-renamed"
	default:
		return "file"
	}
}
