// Package graph provides serialization types for layout graphs.
//
// This package defines the canonical wire format for graphlayout's data,
// used for JSON files, API responses, and layout persistence.
//
// # Format
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [
//	    {"id": "app", "x": 0, "y": 0, "width": 80, "height": 40},
//	    {"id": "db", "x": 200, "y": 0, "fixed": true}
//	  ],
//	  "edges": [{"from": "app", "to": "db"}]
//	}
//
// Nodes omitting width or height get [DefaultNodeWidth]/[DefaultNodeHeight].
// The fixed flag pins a node: the layout engine will not move it.
//
// # Common Operations
//
//	g, _ := graph.ReadFile("graph.json")      // File → Graph
//	in, _ := g.LayoutInput()                  // Graph → engine input
//	out := g.WithPositions(res.Positions)     // engine output → Graph
//	graph.WriteFile(out, "laid-out.json")     // Graph → File
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
