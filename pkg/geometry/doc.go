// Package geometry provides the 2-D primitives used by the layout engine.
//
// Every node in a graph is modelled as an axis-aligned bounding shape: a
// center point plus positive half-extents. The package resolves where the
// straight line joining two node centers exits each shape's boundary, using
// an ellipse approximation of the bounding box. The same resolution backs
// two consumers:
//
//   - pkg/force measures inter-node distance boundary-to-boundary rather
//     than center-to-center, so large shapes keep their visual gap.
//   - pkg/render trims edge lines to the shape outline so arrows touch the
//     node instead of piercing it.
//
// # Boundary Resolution
//
// For a shape with half-extents (a, b) and a line of slope m through its
// center, the boundary point lies at horizontal offset
//
//	d = a·b / sqrt(a²·m² + b²)
//
// from the center, with vertical offset d·m. Vertical lines use the
// half-height directly. [BoundarySpan] evaluates this symmetrically for a
// pair of shapes and additionally reports, per axis, whether the two
// bounding boxes overlap (the boundary points cross sides).
//
// Coordinates follow the canvas convention: x grows rightward, y grows
// downward.
package geometry
