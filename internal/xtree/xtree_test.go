package xtree

import (
	"testing"

	"github.com/katalvlaran/dualtree/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformShape(t *testing.T) {
	tr := NewUniform(3, 2)
	assert.Equal(t, event.Index(3), tr.Depth())
	assert.Equal(t, event.Index(2), tr.BreadthAtDepth(0))
	assert.Equal(t, event.Index(4), tr.BreadthAtDepth(1))
	assert.Equal(t, event.Index(8), tr.BreadthAtDepth(2))
	assert.Equal(t, event.Index(8), tr.NLeaves())
}

func TestUniformTraversalVisitsEveryLeafOnce(t *testing.T) {
	tr := NewUniform(3, 2)
	q := tr.RootChildrenQueue()
	leaves := 0
	for !q.Empty() {
		pos := q.Pop()
		if pos.Depth == tr.Depth()-1 {
			leaves++
			continue
		}
		tr.AddChildrenToQueue(q, pos)
	}
	assert.Equal(t, int(tr.NLeaves()), leaves)
}

func TestCountLeavesFromMatchesSubtreeSize(t *testing.T) {
	tr := NewUniform(3, 2)
	q := tr.RootChildrenQueue()
	pos := q.Pop()
	assert.Equal(t, event.Index(4), tr.CountLeavesFrom(pos))
}

func TestSkewedLeafCounts(t *testing.T) {
	counts := []event.Index{1, 1, 2, 2, 3, 3}
	tr := NewSkewed(counts)

	require.Equal(t, event.Index(2), tr.Depth())
	require.Equal(t, event.Index(6), tr.BreadthAtDepth(0))

	var total event.Index
	for i, want := range counts {
		pos := event.NodePos{Depth: 0, NodeIndex: event.Index(i)}
		assert.Equal(t, want, tr.CountLeavesFrom(pos))
		total += want
	}
	assert.Equal(t, total, tr.NLeaves())
}

func TestNodeOutcomeIsChildPosition(t *testing.T) {
	tr := NewUniform(1, 3)
	q := tr.RootChildrenQueue()
	seen := make(map[event.Outcome]bool)
	for !q.Empty() {
		pos := q.Pop()
		n := tr.Node(pos)
		seen[n.Outcome] = true
	}
	assert.Len(t, seen, 3)
}

func TestScalarTreeSingleLeaf(t *testing.T) {
	tr := build(0, func(level int, parentIdxInLevel int) int { return 0 })
	assert.Equal(t, event.Index(0), tr.Depth())
	assert.Equal(t, event.Index(1), tr.NLeaves())
}
