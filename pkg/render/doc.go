// Package render turns laid-out graphs into SVG documents.
//
// Nodes are drawn as ellipses inscribed in their bounding boxes, matching
// the geometry the force engine simulates. Edges are straight lines trimmed
// to the shape boundaries through pkg/geometry, so arrowheads touch the node
// outline instead of piercing to its center.
//
// The SVG is built by hand with a string buffer; there is no DOM library in
// the loop and the output is deterministic for a given graph.
package render
