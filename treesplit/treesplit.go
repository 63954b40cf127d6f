// Package treesplit implements TreeSplitter: a load-balancing partitioner
// that slices a prefix tree of symmetry-reduced events into roughly
// leaf-balanced groups of paths, one group per worker TreeOpt will later
// spawn.
//
// Grounded on original_source/src/inf/events/tree_splitter.{h,cpp}. The
// worklist traversal (collecting one Path per node at a candidate depth)
// mirrors the explicit-queue idiom used throughout this module and in the
// teacher's tsp.TSPBranchAndBound: no recursion, an explicit LIFO stack.
package treesplit

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/katalvlaran/dualtree/event"
)

// targetQualityFactor is the hard-coded acceptance threshold for a
// candidate depth's max_cell/min_cell leaf-count ratio. Callers do not
// configure it (spec: a fixed design parameter).
const targetQualityFactor = 1.10

// PathPartition is the output of Split: exactly n_splits cells, cell k
// holding the ordered Paths worker k owns.
type PathPartition [][]event.Path

// Report records diagnostics about a successful split, the Go counterpart
// of the original's interactive LOG_BEGIN_SECTION block: returned to the
// caller rather than printed.
type Report struct {
	// Depth is the tree depth the accepted partition was collected at.
	Depth event.Index
	// QualityFactor is max_cell/min_cell over the accepted partition's
	// per-cell leaf sums.
	QualityFactor float64
	// CellLeafCounts is the leaf sum of each cell, in cell order.
	CellLeafCounts []event.Index
}

// ErrCannotSplit is returned when no candidate depth before tree.Depth()
// yields an acceptable partition. Reduce n_splits and retry.
var ErrCannotSplit = fmt.Errorf("treesplit: could not partition tree at target quality factor %.2f; reduce n_splits", targetQualityFactor)

// depthFailure records why a single candidate depth was rejected, folded
// into ErrCannotSplit via a multierror so a caller can see every attempt.
type depthFailure struct {
	depth  event.Index
	reason string
}

func (f depthFailure) Error() string {
	return fmt.Sprintf("depth %d: %s", f.depth, f.reason)
}

// Split partitions tree into nSplits path groups. nSplits must be >= 1.
func Split(tree event.EventTree, nSplits int) (PathPartition, Report, error) {
	if nSplits == 1 {
		return splitTrivial(tree), Report{Depth: 0, QualityFactor: 1, CellLeafCounts: []event.Index{tree.NLeaves()}}, nil
	}

	totalLeaves := tree.NLeaves()
	thresholds := make([]event.Index, nSplits)
	for k := 0; k < nSplits; k++ {
		thresholds[k] = event.Index(k) * totalLeaves / event.Index(nSplits)
	}

	var attempts *multierror.Error
	for d := event.Index(0); d < tree.Depth(); d++ {
		breadth := tree.BreadthAtDepth(d)
		if breadth < event.Index(nSplits) {
			attempts = multierror.Append(attempts, depthFailure{depth: d, reason: fmt.Sprintf("breadth %d < n_splits %d", breadth, nSplits)})
			continue
		}

		pathsAndLeaves := collectPathsAndLeaves(tree, d)
		sort.Slice(pathsAndLeaves, func(i, j int) bool {
			return pathsAndLeaves[i].NLeaves < pathsAndLeaves[j].NLeaves
		})

		splits, ok := findSplits(pathsAndLeaves, thresholds, nSplits)
		if !ok {
			attempts = multierror.Append(attempts, depthFailure{depth: d, reason: "greedy split failed (first crossing at path 0, or too few boundaries set)"})
			continue
		}

		partition, cellLeafCounts := buildPartition(pathsAndLeaves, splits, nSplits)
		quality := qualityFactor(cellLeafCounts)
		if quality > targetQualityFactor {
			attempts = multierror.Append(attempts, depthFailure{depth: d, reason: fmt.Sprintf("quality factor %.4f exceeds target %.2f", quality, targetQualityFactor)})
			continue
		}

		return partition, Report{Depth: d, QualityFactor: quality, CellLeafCounts: cellLeafCounts}, nil
	}

	if attempts != nil {
		attempts.ErrorFormat = formatAttempts
		return nil, Report{}, fmt.Errorf("%w: %v", ErrCannotSplit, attempts)
	}
	return nil, Report{}, ErrCannotSplit
}

func formatAttempts(errs []error) string {
	s := ""
	for i, e := range errs {
		if i > 0 {
			s += "; "
		}
		s += e.Error()
	}
	return s
}

// splitTrivial implements the n_splits == 1 special case: one cell
// containing one length-1 path per root child, no balancing attempted.
func splitTrivial(tree event.EventTree) PathPartition {
	q := tree.RootChildrenQueue()
	var paths []event.Path
	for !q.Empty() {
		pos := q.Pop()
		paths = append(paths, event.Path{pos.NodeIndex})
	}
	return PathPartition{paths}
}

// collectPathsAndLeaves traverses the tree with a worklist seeded from the
// root's children, carrying each node's path alongside it, and records
// (path, n_leaves) for every node reached at depth d.
func collectPathsAndLeaves(tree event.EventTree, d event.Index) []event.PathAndLeaves {
	type frame struct {
		pos  event.NodePos
		path event.Path
	}

	var result []event.PathAndLeaves
	q := tree.RootChildrenQueue()
	stack := make([]frame, 0, q.Len())
	for !q.Empty() {
		pos := q.Pop()
		stack = append(stack, frame{pos: pos, path: event.Path{pos.NodeIndex}})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.pos.Depth == d {
			result = append(result, event.PathAndLeaves{
				Path:    f.path,
				NLeaves: tree.CountLeavesFrom(f.pos),
			})
			continue
		}

		children := event.NewNodeQueue()
		tree.AddChildrenToQueue(children, f.pos)
		for !children.Empty() {
			c := children.Pop()
			childPath := make(event.Path, len(f.path)+1)
			copy(childPath, f.path)
			childPath[len(f.path)] = c.NodeIndex
			stack = append(stack, frame{pos: c, path: childPath})
		}
	}

	return result
}

// findSplits performs the greedy threshold-crossing split: walk the sorted
// list once accumulating n_leaves, advancing a cursor into thresholds each
// time the running sum crosses the next threshold. Fails if the first
// crossing happens at path index 0 (would leave cell 0 empty), or if fewer
// than nSplits-1 interior boundaries are ever set.
func findSplits(sorted []event.PathAndLeaves, thresholds []event.Index, nSplits int) ([]int, bool) {
	splits := make([]int, nSplits+1)
	splits[nSplits] = len(sorted)

	splitIndex := 1
	var acc event.Index
	for p, pl := range sorted {
		acc += pl.NLeaves
		if splitIndex < nSplits && acc > thresholds[splitIndex] {
			if p == 0 {
				return nil, false
			}
			splits[splitIndex] = p
			splitIndex++
		}
	}

	return splits, splitIndex == nSplits
}

// buildPartition slices sorted into nSplits cells according to splits and
// returns each cell's path list plus its leaf-count sum.
func buildPartition(sorted []event.PathAndLeaves, splits []int, nSplits int) (PathPartition, []event.Index) {
	partition := make(PathPartition, nSplits)
	cellLeafCounts := make([]event.Index, nSplits)

	for k := 0; k < nSplits; k++ {
		cell := sorted[splits[k]:splits[k+1]]
		paths := make([]event.Path, len(cell))
		var sum event.Index
		for i, pl := range cell {
			paths[i] = pl.Path
			sum += pl.NLeaves
		}
		partition[k] = paths
		cellLeafCounts[k] = sum
	}

	return partition, cellLeafCounts
}

func qualityFactor(cellLeafCounts []event.Index) float64 {
	min, max := cellLeafCounts[0], cellLeafCounts[0]
	for _, c := range cellLeafCounts[1:] {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	if min == 0 {
		return float64(max + 1)
	}
	return float64(max) / float64(min)
}
