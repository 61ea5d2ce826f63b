package tree

import (
	"path/filepath"

	"github.com/temirov/treemark/internal/types"
)

// Model owns the selection tree. Nodes are indexed by absolute path, and a
// path that was never discovered inherits its selection from the nearest
// indexed ancestor.
type Model struct {
	traverser *Traverser
	rootNode  *Node
	nodeIndex map[string]*Node
}

// NewModel builds a tree rooted at the traverser's root. The root starts
// selected, expanded, and populated with its first level of children.
func NewModel(traverser *Traverser) *Model {
	rootPath := traverser.RootPath()
	rootNode := &Node{
		Path:        rootPath,
		Name:        filepath.Base(rootPath),
		IsDirectory: true,
		Selection:   types.SelectionSelected,
		Expanded:    true,
	}
	model := &Model{
		traverser: traverser,
		rootNode:  rootNode,
		nodeIndex: map[string]*Node{rootPath: rootNode},
	}
	model.Populate(rootNode)
	return model
}

// Root returns the root node of the tree.
func (model *Model) Root() *Node {
	return model.rootNode
}

// NodeAt looks up the indexed node for an absolute path.
func (model *Model) NodeAt(path string) (*Node, bool) {
	node, indexed := model.nodeIndex[path]
	return node, indexed
}

// IndexedNodeCount returns how many nodes have been discovered so far.
func (model *Model) IndexedNodeCount() int {
	return len(model.nodeIndex)
}

// Populate loads the children of a directory node once. Children inherit
// the parent's selection at population time, with a mixed parent treated
// as selected.
func (model *Model) Populate(node *Node) {
	if node.Populated || !node.IsDirectory {
		return
	}
	node.Populated = true
	inheritedState := node.Selection.Inherited()
	for _, entry := range model.traverser.ListEntries(node.Path) {
		childNode := &Node{
			Path:        entry.Path,
			Name:        entry.Name,
			IsDirectory: entry.IsDirectory,
			Selection:   inheritedState,
			Parent:      node,
		}
		node.Children = append(node.Children, childNode)
		model.nodeIndex[childNode.Path] = childNode
	}
}

// Toggle flips a node's selection. A selected node becomes unselected; a
// mixed or unselected node becomes selected. The new state is applied to
// every populated descendant and ancestor states are recomputed up to the
// root.
func (model *Model) Toggle(node *Node) {
	targetState := types.SelectionSelected
	if node.Selection == types.SelectionSelected {
		targetState = types.SelectionUnselected
	}
	model.SetSubtreeSelection(node, targetState)
	model.PropagateUp(node.Parent)
}

// SetSubtreeSelection assigns selectionState to node and every populated
// descendant. Unpopulated directories pick the state up later through
// population inheritance.
func (model *Model) SetSubtreeSelection(node *Node, selectionState types.SelectionState) {
	node.Selection = selectionState
	for _, childNode := range node.Children {
		model.SetSubtreeSelection(childNode, selectionState)
	}
}

// PropagateUp recomputes the selection of node and each of its ancestors
// from their children. A directory whose children all agree takes their
// shared state; disagreement marks it mixed. The recomputation always
// continues to the root.
func (model *Model) PropagateUp(node *Node) {
	for ancestorNode := node; ancestorNode != nil; ancestorNode = ancestorNode.Parent {
		if !ancestorNode.HasChildren() {
			continue
		}
		ancestorNode.Selection = aggregateSelection(ancestorNode.Children)
	}
}

func aggregateSelection(children []*Node) types.SelectionState {
	allSelected := true
	allUnselected := true
	for _, childNode := range children {
		switch childNode.Selection {
		case types.SelectionSelected:
			allUnselected = false
		case types.SelectionUnselected:
			allSelected = false
		default:
			allSelected = false
			allUnselected = false
		}
	}
	if allSelected {
		return types.SelectionSelected
	}
	if allUnselected {
		return types.SelectionUnselected
	}
	return types.SelectionMixed
}

// EffectiveSelection resolves the selection state governing an absolute
// path. An indexed path answers for itself; otherwise the nearest indexed
// ancestor answers with its inherited state. Paths with no indexed
// ancestor default to selected.
func (model *Model) EffectiveSelection(path string) types.SelectionState {
	currentPath := path
	for {
		if node, indexed := model.nodeIndex[currentPath]; indexed {
			if currentPath == path {
				return node.Selection
			}
			return node.Selection.Inherited()
		}
		if currentPath == model.rootNode.Path {
			break
		}
		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			break
		}
		currentPath = parentPath
	}
	return types.SelectionSelected
}

// IsPathSelected is the selection predicate used when walking files for
// document generation.
func (model *Model) IsPathSelected(path string) bool {
	return model.EffectiveSelection(path).IsEffectivelySelected()
}

// SelectAll marks the whole discovered tree selected.
func (model *Model) SelectAll() {
	model.SetSubtreeSelection(model.rootNode, types.SelectionSelected)
}

// SelectNone marks the whole discovered tree unselected.
func (model *Model) SelectNone() {
	model.SetSubtreeSelection(model.rootNode, types.SelectionUnselected)
}

// Refresh rebuilds the tree from the filesystem. The root keeps its
// effective selection so a refreshed tree starts from the same overall
// intent, while per-node divergence is discarded with the old nodes.
func (model *Model) Refresh() {
	preservedState := model.rootNode.Selection.Inherited()
	rootNode := &Node{
		Path:        model.rootNode.Path,
		Name:        model.rootNode.Name,
		IsDirectory: true,
		Selection:   preservedState,
		Expanded:    true,
	}
	model.rootNode = rootNode
	model.nodeIndex = map[string]*Node{rootNode.Path: rootNode}
	model.Populate(rootNode)
}
