// Package dualtree is a parallel branch-and-bound tree minimiser for
// causal-inflation feasibility testing.
//
// It has three parts:
//
//	tensor/     — EventTensor, a dense shared-denominator rational tensor
//	             over fixed-length outcome tuples
//	treesplit/  — TreeSplitter, a load-balancing partitioner that slices a
//	             symmetry-reduced event tree into leaf-balanced path groups
//	treeopt/    — TreeOpt, the parallel branch-and-bound driver that walks
//	             each group, prunes on a lower bound, and races results into
//	             a shared minimum
//
// frac/ and event/ hold the small shared types (Frac, Event, Path, NodePos,
// the consumed EventTree interface) the three parts above are built from.
// internal/xtree supplies a reference EventTree used only by this module's
// own tests; production callers supply their own symmetry-reduced tree.
package dualtree
