// Package xtree provides a reference, fully materialized implementation of
// event.EventTree, used only by this module's own tests. Production trees
// are symmetry-reduced and expected to be supplied by the caller (see
// event.EventTree's doc comment); this package exists because treesplit and
// treeopt need *some* concrete tree to drive against.
//
// Depth convention: NodePos.Depth is zero-indexed starting at the root's
// children, so a node at NodePos.Depth == tree.Depth()-1 is a leaf. The
// root itself is never addressed by a NodePos; it exists only to seed
// RootChildrenQueue.
package xtree

import "github.com/katalvlaran/dualtree/event"

type xnode struct {
	outcome  event.Outcome
	index    event.Index // this node's position within its own depth level
	children []*xnode
	nLeaves  event.Index
}

// Tree is an in-memory, eagerly built event.EventTree.
type Tree struct {
	nParties event.Index
	root     *xnode
	levels   [][]*xnode // levels[d], d in [0, nParties)
}

// NewUniform builds a full tree of depth nParties where every non-leaf node
// has exactly base children, with outcomes 0..base-1.
func NewUniform(nParties event.Index, base event.Outcome) *Tree {
	return build(nParties, func(level int, parentIdxInLevel int) int {
		return int(base)
	})
}

// NewSkewed builds a depth-2 tree whose root has len(leafCounts) children,
// where the i-th depth-0 node itself has leafCounts[i] leaf children. This
// directly realizes the "unbalanced breadth" shape TreeSplitter's quality
// factor is tested against (spec worked example: leaf counts
// [1,1,2,2,3,3]).
func NewSkewed(leafCounts []event.Index) *Tree {
	return build(2, func(level int, parentIdxInLevel int) int {
		if level == 0 {
			return len(leafCounts)
		}
		return int(leafCounts[parentIdxInLevel])
	})
}

// build constructs a tree level by level. childCount(level, parentIdxInLevel)
// returns how many children at the given level the parentIdxInLevel-th node
// of the level above has (for level 0 the parent is the root); children are
// assigned outcomes 0..n-1 and appended to their level in parent order,
// which fixes each child's flat NodeIndex.
func build(nParties event.Index, childCount func(level int, parentIdxInLevel int) int) *Tree {
	root := &xnode{}
	if nParties == 0 {
		root.nLeaves = 1
		return &Tree{nParties: 0, root: root, levels: nil}
	}

	levels := make([][]*xnode, nParties)
	parents := []*xnode{root}
	for level := 0; level < int(nParties); level++ {
		var next []*xnode
		for parentIdx, parent := range parents {
			n := childCount(level, parentIdx)
			parent.children = make([]*xnode, n)
			for c := 0; c < n; c++ {
				child := &xnode{
					outcome: event.Outcome(c),
					index:   event.Index(len(next)),
				}
				parent.children[c] = child
				next = append(next, child)
			}
		}
		levels[level] = next
		parents = next
	}

	leafLevel := levels[nParties-1]
	for _, leaf := range leafLevel {
		leaf.nLeaves = 1
	}
	for level := int(nParties) - 2; level >= 0; level-- {
		for _, n := range levels[level] {
			var sum event.Index
			for _, c := range n.children {
				sum += c.nLeaves
			}
			n.nLeaves = sum
		}
	}
	var rootLeaves event.Index
	for _, n := range levels[0] {
		rootLeaves += n.nLeaves
	}
	root.nLeaves = rootLeaves

	return &Tree{nParties: nParties, root: root, levels: levels}
}

func (t *Tree) nodeAt(pos event.NodePos) *xnode {
	return t.levels[pos.Depth][pos.NodeIndex]
}

// Depth implements event.EventTree.
func (t *Tree) Depth() event.Index { return t.nParties }

// BreadthAtDepth implements event.EventTree.
func (t *Tree) BreadthAtDepth(d event.Index) event.Index {
	return event.Index(len(t.levels[d]))
}

// NLeaves implements event.EventTree.
func (t *Tree) NLeaves() event.Index { return t.root.nLeaves }

// RootChildrenQueue implements event.EventTree.
func (t *Tree) RootChildrenQueue() *event.NodeQueue {
	q := event.NewNodeQueue()
	for _, c := range t.root.children {
		q.Push(event.NodePos{Depth: 0, NodeIndex: c.index})
	}
	return q
}

// AddChildrenToQueue implements event.EventTree.
func (t *Tree) AddChildrenToQueue(q *event.NodeQueue, pos event.NodePos) {
	n := t.nodeAt(pos)
	for _, c := range n.children {
		q.Push(event.NodePos{Depth: pos.Depth + 1, NodeIndex: c.index})
	}
}

// CountLeavesFrom implements event.EventTree.
func (t *Tree) CountLeavesFrom(pos event.NodePos) event.Index {
	return t.nodeAt(pos).nLeaves
}

// Node implements event.EventTree.
func (t *Tree) Node(pos event.NodePos) event.Node {
	return event.Node{Outcome: t.nodeAt(pos).outcome}
}
