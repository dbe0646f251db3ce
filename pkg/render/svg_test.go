package render

import (
	"strings"
	"testing"

	"github.com/sbusard/graphlayout/pkg/graph"
)

func testGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", X: 0, Y: 0, Width: 80, Height: 40},
			{ID: "b", X: 200, Y: 0, Width: 80, Height: 40, Label: "Node <B>"},
		},
		Edges: []graph.Edge{{From: "a", To: "b"}},
	}
}

func TestSVGStructure(t *testing.T) {
	svg := string(SVG(testGraph()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root: %s", svg[:60])
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if got := strings.Count(svg, "<ellipse"); got != 2 {
		t.Errorf("ellipse count = %d, want 2", got)
	}
	if got := strings.Count(svg, "<line"); got != 1 {
		t.Errorf("line count = %d, want 1", got)
	}
	if !strings.Contains(svg, `marker-end="url(#arrow)"`) {
		t.Error("edge missing arrowhead")
	}
}

func TestSVGEdgeTrimmedToBoundaries(t *testing.T) {
	svg := string(SVG(testGraph()))

	// Horizontal neighbors with half-width 40: the edge must run from the
	// right boundary of a (x=40) to the left boundary of b (x=160).
	if !strings.Contains(svg, `x1="40.0" y1="0.0" x2="160.0" y2="0.0"`) {
		t.Errorf("edge not trimmed to boundaries:\n%s", svg)
	}
}

func TestSVGEscapesLabels(t *testing.T) {
	svg := string(SVG(testGraph()))

	if strings.Contains(svg, "Node <B>") {
		t.Error("label not escaped")
	}
	if !strings.Contains(svg, "Node &lt;B&gt;") {
		t.Error("escaped label missing")
	}
}

func TestSVGOptions(t *testing.T) {
	svg := string(SVG(testGraph(), WithoutLabels(), WithoutArrows()))

	if strings.Contains(svg, "<text") {
		t.Error("labels rendered despite WithoutLabels")
	}
	if strings.Contains(svg, "marker-end") || strings.Contains(svg, "<defs>") {
		t.Error("arrows rendered despite WithoutArrows")
	}
}

func TestSVGSkipsDegenerateEdges(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", X: 0, Y: 0},
			{ID: "b", X: 0, Y: 0}, // coincident with a
		},
		Edges: []graph.Edge{
			{From: "a", To: "a"}, // self-loop
			{From: "a", To: "b"},
		},
	}

	svg := string(SVG(g))
	if strings.Contains(svg, "<line") {
		t.Error("degenerate edges should not be drawn")
	}
}

func TestSVGEmptyGraph(t *testing.T) {
	svg := string(SVG(graph.Graph{}))
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("empty graph should still produce a frame")
	}
}

func TestSVGFixedNodeStyling(t *testing.T) {
	g := testGraph()
	g.Nodes[0].Fixed = true

	svg := string(SVG(g))
	if !strings.Contains(svg, `fill="#e8e8e8"`) {
		t.Error("fixed node not visually distinguished")
	}
}
