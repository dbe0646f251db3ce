// Package force implements the physics model of the layout engine.
//
// Nodes repel each other like equal electrical charges and edges pull their
// endpoints together like springs. Both interactions are measured over the
// boundary-to-boundary gap resolved by pkg/geometry, not the center-to-center
// distance, so node size participates in the spacing.
//
// # Repulsion
//
// Every unordered pair of distinct bodies contributes a Coulomb-like push
// with scalar −repulsion/gap². When two bounding shapes overlap on an axis
// the boundary segment on that axis is inverted, which keeps the push
// well-defined (and large) instead of collapsing toward a division by zero.
//
// # Attraction
//
// Every spring contributes a Hooke-like pull with scalar
// −stiffness·(rest−gap)/gap. The rest length adapts to the pair: it is the
// sum of both shapes' projections along the connecting line, floored at
// MinSpringLength. Overlapping or exactly touching endpoints contribute no
// spring force at all; the repulsion term alone separates them first.
//
// # Clamping and Degenerate Input
//
// Every individual term is clamped to ±MaxForce before it is summed, so a
// single step can never explode numerically no matter how close two bodies
// get. When two centers coincide the separation direction is undefined; the
// field applies a fixed upward tie-break at the full force cap for
// repulsion, and treats the pair as overlapping (zero) for attraction.
//
// The tie-break is the same for both bodies, so two coincident bodies that
// are both free receive identical pushes and translate together without
// separating. Anchoring one of them (or any third body breaking the
// symmetry) resolves the pair; callers should seed free nodes at distinct
// positions.
package force
