package treeopt

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/dualtree/event"
	"github.com/katalvlaran/dualtree/internal/assert"
	"github.com/katalvlaran/dualtree/treesplit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var cfgValidator = validator.New()

// TreeOpt is the parallel branch-and-bound minimiser. Construct with New,
// then call GetPreSolution any number of times; each call resets the shared
// global minimum and work counters, so calls are independent of each other.
type TreeOpt struct {
	tree           event.EventTree
	evalTemplate   EvaluatorSet
	storeBounds    bool
	nParties       event.Index
	outcomeUnknown event.Outcome
	cfg            Config
	partition      treesplit.PathPartition
	splitReport    treesplit.Report
	globalMin      *GlobalMinimum

	logger  zerolog.Logger
	metrics *metricsSet
}

type metricsSet struct {
	leavesVisited  prometheus.Counter
	branchesPruned prometheus.Counter
	qualityFactor  prometheus.Gauge
}

// Option configures optional, non-semantic TreeOpt behavior (logging,
// metrics). Omitting all options yields a TreeOpt that performs zero
// logging and zero Prometheus calls.
type Option func(*TreeOpt)

// WithLogger attaches a zerolog.Logger used for the construction-time split
// summary and the post-solve summary. Pass zerolog.Nop() for a true no-op.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *TreeOpt) { t.logger = logger }
}

// WithMetrics registers leaves-visited / branches-pruned counters and a
// last-quality-factor gauge against reg. Safe to omit entirely.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(t *TreeOpt) {
		m := &metricsSet{
			leavesVisited: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "dualtree_treeopt_leaves_visited_total",
				Help: "Total leaves (including pruned branches counted as one each) visited across all GetPreSolution calls.",
			}),
			branchesPruned: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "dualtree_treeopt_branches_pruned_total",
				Help: "Total interior branches pruned by the lower-bound test.",
			}),
			qualityFactor: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dualtree_treeopt_split_quality_factor",
				Help: "max_cell/min_cell leaf-count ratio of the most recent TreeSplitter partition.",
			}),
		}
		reg.MustRegister(m.leavesVisited, m.branchesPruned, m.qualityFactor)
		t.metrics = m
	}
}

// New constructs a TreeOpt, eagerly computing the path partition via
// treesplit.Split. Returns treesplit.ErrCannotSplit (wrapped) if no depth
// yields an acceptable partition for cfg.NThreads.
func New(constraints ConstraintSet, cfg Config, opts ...Option) (*TreeOpt, error) {
	if err := cfgValidator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("treeopt: invalid config: %w", err)
	}

	inflation := constraints.Inflation()
	tree := inflation.SymTree()

	partition, report, err := treesplit.Split(tree, cfg.NThreads)
	if err != nil {
		return nil, fmt.Errorf("treeopt: %w", err)
	}

	t := &TreeOpt{
		tree:           tree,
		evalTemplate:   constraints.MargEvaluators(),
		storeBounds:    constraints.StoreBounds(),
		nParties:       inflation.NParties(),
		outcomeUnknown: inflation.OutcomeUnknown(),
		cfg:            cfg,
		partition:      partition,
		splitReport:    report,
		globalMin:      NewGlobalMinimum(),
		logger:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.metrics != nil {
		t.metrics.qualityFactor.Set(report.QualityFactor)
	}
	t.logger.Info().
		Uint64("depth", report.Depth).
		Float64("quality_factor", report.QualityFactor).
		Int("n_threads", cfg.NThreads).
		Msg("event tree split")

	return t, nil
}

// SplitReport returns the diagnostics from the TreeSplitter call made at
// construction.
func (t *TreeOpt) SplitReport() treesplit.Report { return t.splitReport }

// GetPreSolution runs the branch-and-bound search to completion (or until
// ctx is cancelled, or, in sat mode, until the global minimum reaches a
// non-positive value) and returns the winning (score, event) pair. Workers
// are always joined before this returns; a worker's programmer-error panic
// is recovered and re-raised on the calling goroutine. When a sat-mode stop
// cuts the search short, the returned score is the smallest one any worker
// found before stopping, which need not be the true minimum.
func (t *TreeOpt) GetPreSolution(ctx context.Context) (Solution, error) {
	t.globalMin.Reset()

	s := &solver{
		tree:           t.tree,
		evalTemplate:   t.evalTemplate,
		storeBounds:    t.storeBounds,
		nParties:       t.nParties,
		outcomeUnknown: t.outcomeUnknown,
		stopMode:       t.cfg.StopMode,
		globalMin:      t.globalMin,
	}

	results := make([]workerResult, len(t.partition))

	if t.cfg.NThreads == 1 {
		results[0] = threadOpt(ctx, s, t.partition[0])
	} else {
		g, gctx := errgroup.WithContext(ctx)
		panics := make([]any, len(t.partition))
		for k := range t.partition {
			k := k
			g.Go(func() error {
				defer func() {
					if r := recover(); r != nil {
						panics[k] = r
					}
				}()
				results[k] = threadOpt(gctx, s, t.partition[k])
				return nil
			})
		}
		_ = g.Wait()
		for _, p := range panics {
			if p != nil {
				panic(p)
			}
		}
	}

	var best *workerResult
	var totalLeaves, totalPruned event.Index
	for i := range results {
		r := &results[i]
		totalLeaves += r.nLeavesEffective
		totalPruned += r.branchesPruned
		if best == nil || r.score < best.score {
			best = r
		}
	}

	assert.Hard(best.score == t.globalMin.Get(), "treeopt: selected score %d does not match global minimum %d", best.score, t.globalMin.Get())

	if t.metrics != nil {
		t.metrics.leavesVisited.Add(float64(totalLeaves))
		t.metrics.branchesPruned.Add(float64(totalPruned))
	}
	t.logger.Info().
		Uint64("n_leaves_effective", totalLeaves).
		Int64("score", int64(best.score)).
		Msg("get_pre_solution finished")

	return Solution{Score: best.score, BestEvent: best.bestEvent, NLeavesEffective: totalLeaves}, nil
}

func threadOpt(ctx context.Context, s *solver, paths []event.Path) workerResult {
	w := &workerState{
		eval:           s.evalTemplate.Clone(),
		currentMinimum: event.MaxNum,
		queue:          event.NewNodeQueue(),
	}

	for _, path := range paths {
		seedWorkerForPath(s, w, path)
		drainQueue(ctx, s, w)
	}

	return workerResult{score: w.currentMinimum, bestEvent: w.currentBestEvent, nLeavesEffective: w.nLeavesEffective, branchesPruned: w.branchesPruned}
}

// seedWorkerForPath re-seeds the worker's evaluator state and queue for a
// new path's prefix, per spec.md §4.5's thread_opt re-seeding loop.
func seedWorkerForPath(s *solver, w *workerState, path event.Path) {
	w.queue.Clear()
	pathLen := event.Index(len(path))

	for depth := event.Index(0); depth < s.nParties; depth++ {
		switch {
		case depth+1 < pathLen:
			pos := event.NodePos{Depth: depth, NodeIndex: path[depth]}
			outcome := s.tree.Node(pos).Outcome
			w.eval.SetOutcome(depth, outcome)
		case depth+1 == pathLen:
			pos := event.NodePos{Depth: depth, NodeIndex: path[depth]}
			w.queue.Push(pos)
			w.lastDepthProcessed = depth
		default:
			if !s.storeBounds {
				return
			}
			w.eval.SetOutcome(depth, s.outcomeUnknown)
		}
	}
}

func drainQueue(ctx context.Context, s *solver, w *workerState) {
	for !w.queue.Empty() {
		pos := w.queue.Pop()
		goDownFrom(ctx, s, w, pos)
	}
}

// goDownFrom is the hot path: it applies the satisfiability early exit,
// undoes stale outcome state left by a sibling explored deeper than pos,
// records pos's own outcome, then either prunes, branches, or scores a leaf.
func goDownFrom(ctx context.Context, s *solver, w *workerState, pos event.NodePos) {
	if (s.stopMode == StopModeSat && s.globalMin.Get() <= 0) || ctxDone(ctx) {
		w.queue.Clear()
		return
	}

	if s.storeBounds {
		for d := pos.Depth + 1; d <= w.lastDepthProcessed; d++ {
			w.eval.SetOutcome(d, s.outcomeUnknown)
		}
		w.lastDepthProcessed = pos.Depth
	}

	node := s.tree.Node(pos)
	w.eval.SetOutcome(pos.Depth, node.Outcome)

	if pos.Depth+1 < s.nParties {
		keepBranch := true
		if s.storeBounds {
			lb := w.eval.EvaluateDualVector()
			keepBranch = lb < s.globalMin.Get()
		}
		if keepBranch {
			s.tree.AddChildrenToQueue(w.queue, pos)
		} else {
			w.nLeavesEffective++
			w.branchesPruned++
		}
		return
	}

	w.nLeavesEffective++
	score := w.eval.EvaluateDualVector()
	if score < s.globalMin.Get() {
		w.currentMinimum = score
		w.currentBestEvent = w.eval.GetInflationEvent()
		s.globalMin.SetIfSmaller(score)
	}
}
