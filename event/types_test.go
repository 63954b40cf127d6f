package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknown(t *testing.T) {
	assert.Equal(t, Outcome(4), Unknown(4))
}

func TestEventCloneIndependent(t *testing.T) {
	e := Event{1, 2, 3}
	c := e.Clone()
	c[0] = 9
	assert.Equal(t, Outcome(1), e[0])
	assert.Equal(t, Outcome(9), c[0])
}

func TestEventEqual(t *testing.T) {
	assert.True(t, Event{1, 2}.Equal(Event{1, 2}))
	assert.False(t, Event{1, 2}.Equal(Event{1, 3}))
	assert.False(t, Event{1, 2}.Equal(Event{1}))
}

func TestPathClone(t *testing.T) {
	p := Path{1, 2, 3}
	c := p.Clone()
	c[0] = 9
	require.Equal(t, Index(1), p[0])
	require.Equal(t, Index(9), c[0])
}
