// Package layout drives the force simulation over a graph.
//
// The package offers two entry points on an [Engine]:
//
//   - [Engine.Step] applies the force field once: every node not in the
//     fixed set is displaced by its net force, and the mean force magnitude
//     over the moved nodes is reported. Call it once per animation frame
//     for interactive, incremental layouting.
//   - [Engine.Run] iterates Step from the given initial positions until the
//     mean force magnitude drops below the configured threshold or the
//     iteration budget is exhausted, and returns the final positions along
//     with the convergence outcome.
//
// Both are pure with respect to their input: positions are read from one
// frozen snapshot per step and written into a fresh map, so updates within
// a step are order-independent and the caller's maps are never mutated.
//
// Structural problems (an edge naming an unknown node, a fixed node missing
// from the mapping, non-positive half-extents) are rejected up front, before
// any simulation work. Numeric edge cases inside a running simulation are
// clamped by the force model, never surfaced as errors, so the iteration
// loop stays total.
//
// The engine is synchronous, deterministic, and stateless across calls;
// the only retained state is the immutable configuration. Cost is
// O(n²·iterations) in the number of nodes, which targets interactive graphs
// of tens to low hundreds of nodes.
package layout
