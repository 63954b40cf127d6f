// Package treeopt implements TreeOpt: the parallel branch-and-bound driver
// that walks a symmetry-reduced event tree, evaluates partial-score lower
// bounds, prunes, and cooperates across workers via a shared global minimum.
//
// Grounded on original_source/src/inf/optimization/tree_opt.{h,cpp}. The
// branching/pruning shape directly parallels the teacher's
// tsp.TSPBranchAndBound (tsp/bb.go): both descend an implicit search tree
// with a lower-bound test deciding whether to keep or prune a branch, both
// avoid recursion via an explicit stack, and both race a shared best-so-far
// value across goroutines.
package treeopt

import (
	"context"

	"github.com/katalvlaran/dualtree/event"
)

// StopMode selects when workers may stop searching early.
type StopMode int

const (
	// StopModeExhaustive never stops early: every cell is fully explored
	// (subject to pruning).
	StopModeExhaustive StopMode = iota
	// StopModeSat causes every worker to drain its queue and return as soon
	// as GlobalMinimum.Get() <= 0, matching spec's "feasibility question
	// answered" early exit.
	StopModeSat
)

// Config is TreeOpt's small construction-time configuration, validated with
// go-playground/validator before any goroutine is spawned (pack precedent:
// optakt-flow-dps validates its config structs the same way at the
// boundary).
type Config struct {
	// NThreads is the number of workers to spawn. Must be >= 1.
	NThreads int `validate:"min=1"`
	// StopMode selects the early-exit behavior described above.
	StopMode StopMode
}

// EvaluatorSet is the consumed, per-worker incremental scoring state. An
// implementation must be safe to Clone per worker (each worker owns an
// independent copy) and must support being reset to "any outcome" via
// SetOutcome(depth, outcomeUnknown).
type EvaluatorSet interface {
	// Clone returns an independent copy of the evaluator's current state,
	// used to seed each worker from the shared template.
	Clone() EvaluatorSet
	// SetOutcome records outcome as the assignment at the given party depth.
	SetOutcome(depth event.Index, outcome event.Outcome)
	// EvaluateDualVector returns the current score: a lower bound when the
	// assignment is partial (some positions still outcomeUnknown), or the
	// true score when the assignment is complete.
	EvaluateDualVector() event.Num
	// GetInflationEvent returns the full Event implied by the current
	// assignment. Only meaningful once every position has been set.
	GetInflationEvent() event.Event
}

// Inflation describes the problem instance TreeOpt optimizes over.
type Inflation interface {
	// NParties returns the number of inflation parties, equal to the event
	// tree's depth.
	NParties() event.Index
	// OutcomeUnknown returns the reserved "not yet assigned" sentinel.
	OutcomeUnknown() event.Outcome
	// SymTree returns the symmetry-reduced event tree to search.
	SymTree() event.EventTree
}

// ConstraintSet is the top-level consumed collaborator a caller supplies to
// New: it furnishes the evaluator template, the bounds-on/off flag, and the
// problem instance.
type ConstraintSet interface {
	// MargEvaluators returns a template EvaluatorSet; TreeOpt clones it once
	// per worker and never mutates the template itself.
	MargEvaluators() EvaluatorSet
	// StoreBounds reports whether interior nodes should be lower-bounded and
	// pruned (true) or unconditionally expanded (false).
	StoreBounds() bool
	// Inflation returns the problem instance.
	Inflation() Inflation
}

// Solution is the result of a completed GetPreSolution call.
type Solution struct {
	// Score is the minimum score found, thread-count-invariant.
	Score event.Num
	// BestEvent is a complete Event achieving Score.
	BestEvent event.Event
	// NLeavesEffective is the total work counter across all workers,
	// counting a pruned branch as a single leaf.
	NLeavesEffective event.Index
}

type workerResult struct {
	score            event.Num
	bestEvent        event.Event
	nLeavesEffective event.Index
	branchesPruned   event.Index
}

// solver is the minimal context threaded through a single GetPreSolution
// call: the tree, per-call config the worker loop needs read-only access
// to, and the shared monotone bound.
type solver struct {
	tree           event.EventTree
	evalTemplate   EvaluatorSet
	storeBounds    bool
	nParties       event.Index
	outcomeUnknown event.Outcome
	stopMode       StopMode
	globalMin      *GlobalMinimum
}

type workerState struct {
	eval               EvaluatorSet
	currentMinimum     event.Num
	currentBestEvent   event.Event
	lastDepthProcessed event.Index
	queue              *event.NodeQueue
	nLeavesEffective   event.Index
	branchesPruned     event.Index
}

// ctxDone is a small helper so go_down_from can check both the spec's
// stop_mode==sat condition and a caller-supplied context.Context in one
// place.
func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
