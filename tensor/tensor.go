// Package tensor implements EventTensor: a dense function from fixed-length
// Event tuples to integer Num, stored with a single shared denominator, plus
// exact-arithmetic simplification and tensor-product composition.
//
// Grounded line-for-line on
// original_source/src/inf/events/event_tensor.{h,cpp}. Dense-buffer style
// (flat slice indexed by a precomputed mixed-radix hash) follows the same
// "prefetch into a dense buffer to remove interface overhead" idiom as
// tsp/bb.go's bbEngine.w/at(u,v).
package tensor

import (
	"iter"
	"math"
	"math/big"

	"github.com/katalvlaran/dualtree/event"
	"github.com/katalvlaran/dualtree/frac"
	"github.com/katalvlaran/dualtree/internal/assert"
)

// EventTensor is a dense map from Event (of length NParties, entries in
// [0,Base)) to a shared-denominator rational. See package doc.
//
// Zero value is not usable; construct with New.
type EventTensor struct {
	nParties event.Index
	base     event.Outcome
	data     []event.Num
	weights  []event.Index
	denom    event.Num
}

// New allocates a zeroed EventTensor over Event tuples of length nParties
// with outcomes in [0,base). base must be >= 2 unless nParties == 0 (the
// scalar case, where base is irrelevant but still recorded for shape
// comparisons). Panics (Soft) if base < 2 and nParties > 0.
func New(nParties event.Index, base event.Outcome) *EventTensor {
	assert.Soft(nParties == 0 || base >= 2, "tensor: base must be >= 2, got %d", base)

	weights := computeWeights(nParties, base)
	size := int(1)
	if nParties > 0 {
		size = 1
		for i := event.Index(0); i < nParties; i++ {
			assert.Soft(base < 2 || size <= math.MaxInt/int(base), "tensor: base^n_parties overflows int (base %d, n_parties %d)", base, nParties)
			size *= int(base)
		}
	}

	return &EventTensor{
		nParties: nParties,
		base:     base,
		data:     make([]event.Num, size),
		weights:  weights,
		denom:    1,
	}
}

// computeWeights returns {1, base, base^2, ..., base^(nParties-1)}, the
// mixed-radix hash strides.
func computeWeights(nParties event.Index, base event.Outcome) []event.Index {
	weights := make([]event.Index, nParties)
	w := event.Index(1)
	for i := event.Index(0); i < nParties; i++ {
		weights[i] = w
		w *= event.Index(base)
	}
	return weights
}

// IsScalar reports whether this tensor is a function of zero-length Events
// (n_parties == 0), i.e. it stores a single rational.
func (t *EventTensor) IsScalar() bool { return t.nParties == 0 }

// NParties returns the length of Event keys this tensor is defined over.
func (t *EventTensor) NParties() event.Index { return t.nParties }

// Base returns the number of outcomes per party.
func (t *EventTensor) Base() event.Outcome { return t.base }

// Denom returns the tensor's shared denominator.
func (t *EventTensor) Denom() event.Num { return t.denom }

// SetDenom sets the shared denominator. Panics (Soft) if denom <= 0.
func (t *EventTensor) SetDenom(denom event.Num) {
	assert.Soft(denom > 0, "tensor: denominator must be positive, got %d", denom)
	t.denom = denom
}

// HasSameShapeAs reports whether t and other share NParties and Base.
func (t *EventTensor) HasSameShapeAs(other *EventTensor) bool {
	return t.nParties == other.nParties && t.base == other.base
}

// GetEventHash returns the mixed-radix hash of e: sum(e[i] * weights[i]).
// Panics (Soft) if len(e) != NParties.
func (t *EventTensor) GetEventHash(e event.Event) event.Hash {
	assert.Soft(event.Index(len(e)) == t.nParties, "tensor: event length %d does not match n_parties %d", len(e), t.nParties)

	var h event.Hash
	for i, out := range e {
		h += event.Index(out) * t.weights[i]
	}
	return h
}

// NumAtHash returns the value stored at the given hash. Panics (Soft) if
// hash is out of range.
func (t *EventTensor) NumAtHash(hash event.Hash) event.Num {
	assert.Soft(hash < event.Index(len(t.data)), "tensor: hash %d out of range [0,%d)", hash, len(t.data))
	return t.data[hash]
}

// SetNumAtHash stores v at the given hash. Panics (Soft) if hash is out of range.
func (t *EventTensor) SetNumAtHash(hash event.Hash, v event.Num) {
	assert.Soft(hash < event.Index(len(t.data)), "tensor: hash %d out of range [0,%d)", hash, len(t.data))
	t.data[hash] = v
}

// Num returns the value stored at e (by hashing e first).
func (t *EventTensor) Num(e event.Event) event.Num {
	return t.NumAtHash(t.GetEventHash(e))
}

// SetNum stores v at e (by hashing e first).
func (t *EventTensor) SetNum(e event.Event, v event.Num) {
	t.SetNumAtHash(t.GetEventHash(e), v)
}

// GetFrac returns the Frac for the given hash: (NumAtHash(hash), Denom()),
// unsimplified.
func (t *EventTensor) GetFrac(hash event.Hash) frac.Frac {
	return frac.New(t.NumAtHash(hash), t.denom)
}

// GetFracEvent returns the Frac for the given event.
func (t *EventTensor) GetFracEvent(e event.Event) frac.Frac {
	return t.GetFrac(t.GetEventHash(e))
}

// HashRange iterates 0..base^n_parties in order.
func (t *EventTensor) HashRange() iter.Seq[event.Hash] {
	return func(yield func(event.Hash) bool) {
		for h := event.Hash(0); h < event.Hash(len(t.data)); h++ {
			if !yield(h) {
				return
			}
		}
	}
}

// EventRange iterates all length-NParties tuples over [0,Base) in the
// mixed-radix order matching the hash (so enumerating by hash index is
// equivalent to enumerating by event). Panics (Soft) if the tensor is
// scalar: a zero-length Event range is not iterable by this method.
func (t *EventTensor) EventRange() iter.Seq[event.Event] {
	assert.Soft(!t.IsScalar(), "tensor: EventRange is not defined for a scalar tensor")

	return func(yield func(event.Event) bool) {
		e := make(event.Event, t.nParties)
		for {
			if !yield(e) {
				return
			}
			// Odometer increment, least-significant party first (matches
			// the hash's positional weighting: weights[0] == 1).
			i := event.Index(0)
			for ; i < t.nParties; i++ {
				e[i]++
				if e[i] < event.Outcome(t.base) {
					break
				}
				e[i] = 0
			}
			if i == t.nParties {
				return
			}
		}
	}
}

// Simplify divides every entry and the denominator by
// gcd(denom, data[0], ..., data[n-1]), short-circuiting as soon as the
// running gcd reaches 1. Idempotent: calling Simplify twice in a row leaves
// the tensor unchanged the second time.
func (t *EventTensor) Simplify() {
	g := t.denom
	for _, v := range t.data {
		g = gcd(v, g)
		if g == 1 {
			return
		}
	}
	if g <= 1 {
		return
	}
	for i := range t.data {
		t.data[i] /= g
	}
	t.denom /= g
}

// gcd returns the non-negative greatest common divisor of a and b, matching
// std::gcd's handling of negative inputs (sign is ignored).
func gcd(a, b event.Num) event.Num {
	r := new(big.Int).GCD(nil, nil, big.NewInt(absNum(a)), big.NewInt(absNum(b)))
	return r.Int64()
}

func absNum(n event.Num) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// SetToTensorProduct overwrites t with the tensor product of factors, taken
// in order: for every event e of t, e is split into consecutive runs (the
// first factors[0].NParties() entries go to factors[0], etc.), and
// t.Num(e) = product(factors[i].Num(sub_event_i)), with t.Denom() set to the
// product of the factors' denominators. Calls Simplify() at the end.
//
// Panics (Soft) if t does not have the same Base as every factor, if the sum
// of the factors' NParties does not equal t.NParties, or if any factor is
// nil. An empty factor list is accepted on a scalar t and sets it to 1/1 —
// the empty product's multiplicative identity (see DESIGN.md, Open Question
// 1) — and panics (Soft) if t is not scalar.
func (t *EventTensor) SetToTensorProduct(factors []*EventTensor) {
	if len(factors) == 0 {
		assert.Soft(t.IsScalar(), "tensor: empty factor list is only valid for a scalar tensor")
		t.data[0] = 1
		t.denom = 1
		return
	}

	var totalNParties event.Index
	for _, f := range factors {
		assert.Soft(f != nil, "tensor: nil factor in SetToTensorProduct")
		assert.Soft(t.base == f.base, "tensor: base mismatch in SetToTensorProduct (%d vs %d)", t.base, f.base)
		totalNParties += f.nParties
	}
	assert.Soft(t.nParties == totalNParties, "tensor: n_parties mismatch in SetToTensorProduct (%d vs sum %d)", t.nParties, totalNParties)

	if t.IsScalar() {
		// Every factor is itself scalar here (totalNParties == 0 forces each
		// f.nParties == 0), so there is no Event to range over: fold the
		// factors' single entries directly.
		num := event.Num(1)
		denom := event.Num(1)
		for _, f := range factors {
			num *= f.data[0]
			denom *= f.denom
		}
		t.data[0] = num
		t.SetDenom(denom)
		t.Simplify()
		return
	}

	subEvents := make([]event.Event, len(factors))
	for i, f := range factors {
		subEvents[i] = make(event.Event, f.nParties)
	}

	for e := range t.EventRange() {
		acc := event.Num(1)
		offset := event.Index(0)
		for i, f := range factors {
			sub := subEvents[i]
			copy(sub, e[offset:offset+f.nParties])
			acc *= f.Num(sub)
			offset += f.nParties
		}
		t.SetNum(e, acc)
	}

	denom := event.Num(1)
	for _, f := range factors {
		denom *= f.denom
	}
	t.SetDenom(denom)

	t.Simplify()
}
