package treeopt

import (
	"sync"
	"testing"

	"github.com/katalvlaran/dualtree/event"
	"github.com/stretchr/testify/assert"
)

func TestGlobalMinimumInitialisedToMax(t *testing.T) {
	g := NewGlobalMinimum()
	assert.Equal(t, event.MaxNum, g.Get())
}

func TestGlobalMinimumSetIfSmallerNeverIncreases(t *testing.T) {
	g := NewGlobalMinimum()
	g.SetIfSmaller(10)
	assert.Equal(t, event.Num(10), g.Get())
	g.SetIfSmaller(20)
	assert.Equal(t, event.Num(10), g.Get())
	g.SetIfSmaller(-5)
	assert.Equal(t, event.Num(-5), g.Get())
}

func TestGlobalMinimumReset(t *testing.T) {
	g := NewGlobalMinimum()
	g.SetIfSmaller(3)
	g.Reset()
	assert.Equal(t, event.MaxNum, g.Get())
}

func TestGlobalMinimumConcurrentMonotone(t *testing.T) {
	g := NewGlobalMinimum()
	var wg sync.WaitGroup
	for i := event.Num(0); i < 100; i++ {
		wg.Add(1)
		go func(v event.Num) {
			defer wg.Done()
			g.SetIfSmaller(v)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, event.Num(0), g.Get())
}
