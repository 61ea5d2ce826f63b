// Package tree maintains the lazily populated selection tree over a
// directory hierarchy.
package tree

import (
	"github.com/temirov/treemark/internal/types"
)

// Node is a single entry in the selection tree. Directory nodes load their
// children on first population, so an unpopulated directory carries the
// selection intent for its entire undiscovered subtree.
type Node struct {
	Path        string
	Name        string
	IsDirectory bool
	Selection   types.SelectionState
	Parent      *Node
	Children    []*Node
	Populated   bool
	Expanded    bool
}

// IsRoot reports whether the node is the top of the tree.
func (node *Node) IsRoot() bool {
	return node.Parent == nil
}

// HasChildren reports whether the node currently holds populated children.
func (node *Node) HasChildren() bool {
	return len(node.Children) > 0
}
