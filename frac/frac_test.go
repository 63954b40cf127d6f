package frac

import (
	"math"
	"testing"

	"github.com/katalvlaran/dualtree/event"
	dtassert "github.com/katalvlaran/dualtree/internal/assert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositiveDenom(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for zero denominator")
		}
	}()
	New(1, 0)
}

func TestOrderingCrossMultiplication(t *testing.T) {
	a := New(1, 2) // 0.5
	b := New(2, 3) // 0.667
	assert.True(t, a.Less(b))
	assert.True(t, b.Greater(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.NotEqual(b))

	c := New(2, 4) // 0.5, unsimplified
	assert.True(t, a.Equal(c))
	assert.True(t, a.LessEq(c))
	assert.True(t, a.GreaterEq(c))
}

func TestWhole(t *testing.T) {
	w := Whole(5)
	require.Equal(t, event.Num(5), w.Num)
	require.Equal(t, event.Num(1), w.Denom)
}

func TestStringFormatting(t *testing.T) {
	assert.Equal(t, "3", Whole(3).String())
	assert.Contains(t, New(2, 3).String(), "2/3")
}

func TestOverflowGuardPanics(t *testing.T) {
	big := Frac{Num: event.MaxNum - 1, Denom: 1}
	small := Frac{Num: 1, Denom: 2}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected hard overflow assertion to panic")
		}
		if _, ok := r.(*dtassert.Violation); !ok {
			t.Fatalf("expected *assert.Violation, got %T", r)
		}
	}()
	_ = big.Less(small)
}

func TestOverflowGuardAllowsSafeValues(t *testing.T) {
	a := Frac{Num: 1000, Denom: 7}
	b := Frac{Num: 2000, Denom: 9}
	assert.NotPanics(t, func() { _ = a.Less(b) })
}

func TestMaxNumMatchesInt64(t *testing.T) {
	require.Equal(t, event.Num(math.MaxInt64), event.MaxNum)
}
