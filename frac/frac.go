// Package frac implements exact rational-number ordering with overflow
// guards. Frac is the external-surface counterpart of the denominator an
// EventTensor keeps internally: tensors compare their raw Num entries
// directly (sharing one denominator), and only hand out a Frac at the
// boundary where a caller needs a self-contained rational value.
//
// Grounded on original_source/src/util/frac.{h,cpp}: six comparisons via
// cross-multiplication, each preceded by a hard overflow assertion that
// remains active even in release builds (spec.md §7).
package frac

import (
	"fmt"

	"github.com/katalvlaran/dualtree/event"
	"github.com/katalvlaran/dualtree/internal/assert"
)

// Frac is a rational number num/denom with denom > 0. Equality is value
// equality across possibly unsimplified representations: Frac does not
// require its operands to be in lowest terms.
type Frac struct {
	Num   event.Num
	Denom event.Num
}

// New constructs a Frac with the given numerator and denominator (default 1
// if denom is omitted by the caller passing 1 directly). Panics (Soft) if
// denom <= 0.
func New(num event.Num, denom event.Num) Frac {
	assert.Soft(denom > 0, "frac: denominator must be positive, got %d", denom)
	return Frac{Num: num, Denom: denom}
}

// Whole constructs a Frac equal to the integer n (n/1).
func Whole(n event.Num) Frac {
	return Frac{Num: n, Denom: 1}
}

// overflowGuard asserts that the cross-multiplication this.Num*other.Denom
// and other.Num*this.Denom cannot overflow event.Num. This guard is a Hard
// assertion: it is never elided, matching spec.md §7's requirement that the
// Frac overflow guard remain active even in release builds.
func overflowGuard(a, b Frac) {
	if b.Denom != 0 {
		assert.Hard(a.Num < event.MaxNum/b.Denom, "frac: overflow comparing %d/%d with %d/%d", a.Num, a.Denom, b.Num, b.Denom)
	}
	if a.Denom != 0 {
		assert.Hard(b.Num < event.MaxNum/a.Denom, "frac: overflow comparing %d/%d with %d/%d", a.Num, a.Denom, b.Num, b.Denom)
	}
}

func (a Frac) crossTerms(b Frac) (event.Num, event.Num) {
	overflowGuard(a, b)
	return a.Num * b.Denom, b.Num * a.Denom
}

// Less returns a < b.
func (a Frac) Less(b Frac) bool {
	l, r := a.crossTerms(b)
	return l < r
}

// Greater returns a > b.
func (a Frac) Greater(b Frac) bool {
	l, r := a.crossTerms(b)
	return l > r
}

// LessEq returns a <= b.
func (a Frac) LessEq(b Frac) bool {
	l, r := a.crossTerms(b)
	return l <= r
}

// GreaterEq returns a >= b.
func (a Frac) GreaterEq(b Frac) bool {
	l, r := a.crossTerms(b)
	return l >= r
}

// Equal returns a == b as values (no simplification required).
func (a Frac) Equal(b Frac) bool {
	l, r := a.crossTerms(b)
	return l == r
}

// NotEqual returns a != b.
func (a Frac) NotEqual(b Frac) bool {
	return !a.Equal(b)
}

// String renders the fraction as "num" when the denominator is 1, or
// "num/denom (decimal)" otherwise, matching Frac::log()'s output shape in
// the original source.
func (a Frac) String() string {
	if a.Denom == 1 {
		return fmt.Sprintf("%d", a.Num)
	}
	return fmt.Sprintf("%d/%d (%v)", a.Num, a.Denom, float64(a.Num)/float64(a.Denom))
}
