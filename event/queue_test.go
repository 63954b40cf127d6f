package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeQueueLIFO(t *testing.T) {
	q := NewNodeQueue()
	require.True(t, q.Empty())

	q.Push(NodePos{Depth: 0, NodeIndex: 1})
	q.Push(NodePos{Depth: 0, NodeIndex: 2})
	q.Push(NodePos{Depth: 0, NodeIndex: 3})
	require.Equal(t, 3, q.Len())

	assert.Equal(t, NodePos{Depth: 0, NodeIndex: 3}, q.Pop())
	assert.Equal(t, NodePos{Depth: 0, NodeIndex: 2}, q.Pop())
	assert.Equal(t, NodePos{Depth: 0, NodeIndex: 1}, q.Pop())
	assert.True(t, q.Empty())
}

func TestNewNodeQueueFrom(t *testing.T) {
	q := NewNodeQueueFrom(NodePos{NodeIndex: 1}, NodePos{NodeIndex: 2})
	assert.Equal(t, NodePos{NodeIndex: 2}, q.Pop())
	assert.Equal(t, NodePos{NodeIndex: 1}, q.Pop())
}

func TestNodeQueueClear(t *testing.T) {
	q := NewNodeQueueFrom(NodePos{NodeIndex: 1}, NodePos{NodeIndex: 2})
	q.Clear()
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())
}
