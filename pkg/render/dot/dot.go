// Package dot lays out graphs by delegating to Graphviz's fdp engine.
//
// This is an alternative to the native force engine in pkg/layout: the graph
// is converted to DOT, Graphviz computes spring-model positions, and the
// resulting coordinates are read back into layout units. Fixed nodes are
// pinned with Graphviz's pos and pin attributes so they survive the layout.
//
// The package requires the bundled Graphviz runtime
// (github.com/goccy/go-graphviz); no external binary is invoked.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/sbusard/graphlayout/pkg/geometry"
	"github.com/sbusard/graphlayout/pkg/graph"
)

// pointsPerInch converts Graphviz plain-format coordinates (inches) into
// layout units (points).
const pointsPerInch = 72.0

// ToDOT converts a graph to Graphviz DOT for fdp layouting.
//
// Nodes are emitted under synthetic names n0, n1, … so arbitrary IDs never
// have to survive DOT quoting; the returned mapping translates synthetic
// names back to graph IDs. Node sizes are fixed to the graph's bounding
// boxes and fixed nodes are pinned at their current position.
func ToDOT(g graph.Graph) (string, map[string]string) {
	names := make(map[string]string, len(g.Nodes))   // graph ID → synthetic
	reverse := make(map[string]string, len(g.Nodes)) // synthetic → graph ID

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=fdp;\n")
	buf.WriteString("  node [shape=ellipse, fixedsize=true];\n\n")

	for i, n := range g.Nodes {
		name := fmt.Sprintf("n%d", i)
		names[n.ID] = name
		reverse[name] = n.ID

		half := n.Extents()
		attrs := fmt.Sprintf("width=%.4f, height=%.4f", 2*half.W/pointsPerInch, 2*half.H/pointsPerInch)
		if n.Fixed {
			// The "!" suffix pins the node for fdp. Graphviz y grows up,
			// canvas y grows down.
			attrs += fmt.Sprintf(", pin=true, pos=\"%.2f,%.2f!\"", n.X/pointsPerInch, -n.Y/pointsPerInch)
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", name, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %s -- %s;\n", names[e.From], names[e.To])
	}

	buf.WriteString("}\n")
	return buf.String(), reverse
}

// Layout computes node positions with Graphviz fdp and returns them keyed by
// graph node ID, in layout units with canvas orientation (y growing down).
func Layout(ctx context.Context, g graph.Graph) (map[string]geometry.Point, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	dotSrc, reverse := ToDOT(g)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dotSrc))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.Format("plain"), &buf); err != nil {
		return nil, fmt.Errorf("fdp layout: %w", err)
	}

	return parsePlain(buf.String(), reverse)
}

// parsePlain extracts node coordinates from Graphviz plain output.
// Relevant lines have the form:
//
//	node <name> <x> <y> <width> <height> …
//
// with coordinates in inches, origin bottom-left.
func parsePlain(plain string, reverse map[string]string) (map[string]geometry.Point, error) {
	positions := make(map[string]geometry.Point, len(reverse))

	for _, line := range strings.Split(plain, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[0] != "node" {
			continue
		}
		id, ok := reverse[fields[1]]
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("plain output: node %s: bad x %q", fields[1], fields[2])
		}
		y, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("plain output: node %s: bad y %q", fields[1], fields[3])
		}
		positions[id] = geometry.Point{X: x * pointsPerInch, Y: -y * pointsPerInch}
	}

	if len(positions) != len(reverse) {
		return nil, fmt.Errorf("plain output: got %d node positions, want %d", len(positions), len(reverse))
	}
	return positions, nil
}
