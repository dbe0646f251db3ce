package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sbusard/graphlayout/pkg/geometry"
	"github.com/sbusard/graphlayout/pkg/graph"
)

// DefaultMargin is the whitespace kept around the drawing, in layout units.
const DefaultMargin = 40.0

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

// WithMargin overrides the frame margin around the graph's bounding box.
func WithMargin(m float64) SVGOption {
	return func(r *svgRenderer) { r.margin = m }
}

// WithoutLabels suppresses node labels.
func WithoutLabels() SVGOption {
	return func(r *svgRenderer) { r.labels = false }
}

// WithoutArrows draws edges as plain lines without arrowheads.
func WithoutArrows() SVGOption {
	return func(r *svgRenderer) { r.arrows = false }
}

type svgRenderer struct {
	margin float64
	labels bool
	arrows bool
}

// SVG renders the graph at its current node positions.
// An empty graph produces a small empty frame.
func SVG(g graph.Graph, opts ...SVGOption) []byte {
	r := svgRenderer{margin: DefaultMargin, labels: true, arrows: true}
	for _, opt := range opts {
		opt(&r)
	}

	minX, minY, maxX, maxY := frame(g, r.margin)
	w, h := maxX-minX, maxY-minY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)

	if r.arrows {
		buf.WriteString(`  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#333"/>
    </marker>
  </defs>
`)
	}

	for _, e := range g.Edges {
		renderEdge(&buf, g, e, r.arrows)
	}
	for _, n := range g.Nodes {
		renderNode(&buf, n)
	}
	if r.labels {
		for _, n := range g.Nodes {
			renderLabel(&buf, n)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frame returns the drawing bounds: the union of all node boxes plus margin.
func frame(g graph.Graph, margin float64) (minX, minY, maxX, maxY float64) {
	if len(g.Nodes) == 0 {
		return 0, 0, 2 * margin, 2 * margin
	}

	first := g.Nodes[0].Box()
	minX, maxX = first.Center.X-first.Half.W, first.Center.X+first.Half.W
	minY, maxY = first.Center.Y-first.Half.H, first.Center.Y+first.Half.H
	for _, n := range g.Nodes[1:] {
		b := n.Box()
		minX = min(minX, b.Center.X-b.Half.W)
		maxX = max(maxX, b.Center.X+b.Half.W)
		minY = min(minY, b.Center.Y-b.Half.H)
		maxY = max(maxY, b.Center.Y+b.Half.H)
	}
	return minX - margin, minY - margin, maxX + margin, maxY + margin
}

// renderEdge draws a straight line trimmed to both node boundaries.
// Self-loops and edges between coincident centers are skipped; there is no
// direction to draw them along.
func renderEdge(buf *bytes.Buffer, g graph.Graph, e graph.Edge, arrow bool) {
	if e.From == e.To {
		return
	}
	from, okF := g.Node(e.From)
	to, okT := g.Node(e.To)
	if !okF || !okT || from.Center() == to.Center() {
		return
	}

	span := geometry.BoundarySpan(from.Box(), to.Box())
	marker := ""
	if arrow {
		marker = ` marker-end="url(#arrow)"`
	}
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1.5"%s/>`+"\n",
		span.From.X, span.From.Y, span.To.X, span.To.Y, marker)
}

func renderNode(buf *bytes.Buffer, n graph.Node) {
	b := n.Box()
	fill := "#ffffff"
	if n.Fixed {
		fill = "#e8e8e8"
	}
	fmt.Fprintf(buf, `  <ellipse id="node-%s" cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" stroke="#333" stroke-width="1.5"/>`+"\n",
		escape(n.ID), b.Center.X, b.Center.Y, b.Half.W, b.Half.H, fill)
}

func renderLabel(buf *bytes.Buffer, n graph.Node) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="12">%s</text>`+"\n",
		n.X, n.Y, escape(n.DisplayLabel()))
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
