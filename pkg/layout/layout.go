package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sbusard/graphlayout/pkg/force"
	"github.com/sbusard/graphlayout/pkg/geometry"
)

var (
	// ErrUnknownEdgeNode is returned by [Input.Validate] when an edge
	// references a node absent from the position mapping.
	ErrUnknownEdgeNode = errors.New("edge references unknown node")

	// ErrUnknownFixedNode is returned by [Input.Validate] when the fixed set
	// names a node absent from the position mapping.
	ErrUnknownFixedNode = errors.New("fixed node not in graph")

	// ErrMissingShape is returned by [Input.Validate] when a positioned node
	// has no shape.
	ErrMissingShape = errors.New("node has no shape")

	// ErrDegenerateShape is returned by [Input.Validate] when a shape has a
	// zero or negative half-extent.
	ErrDegenerateShape = errors.New("shape half-extents must be positive")
)

// Edge connects two nodes by ID. The spring force it induces is symmetric;
// direction only matters to renderers drawing arrowheads.
type Edge struct {
	From string
	To   string
}

// Input is one complete snapshot of a graph handed to the engine: where
// every node currently is, how big it is, how nodes are connected, and which
// nodes are pinned in place. The engine treats all of it as read-only.
type Input struct {
	Positions map[string]geometry.Point
	Shapes    map[string]geometry.Extents
	Edges     []Edge

	// Fixed nodes keep their position through every step but still exert
	// forces on their neighbors. May be nil.
	Fixed map[string]bool
}

// Validate checks the caller contract: every edge endpoint and fixed node
// must be present in the position mapping, every positioned node must have a
// shape, and every half-extent must be strictly positive.
func (in Input) Validate() error {
	for id := range in.Positions {
		half, ok := in.Shapes[id]
		if !ok {
			return fmt.Errorf("node %q: %w", id, ErrMissingShape)
		}
		if half.W <= 0 || half.H <= 0 {
			return fmt.Errorf("node %q: %w", id, ErrDegenerateShape)
		}
	}
	for _, e := range in.Edges {
		if _, ok := in.Positions[e.From]; !ok {
			return fmt.Errorf("edge %s→%s: %q: %w", e.From, e.To, e.From, ErrUnknownEdgeNode)
		}
		if _, ok := in.Positions[e.To]; !ok {
			return fmt.Errorf("edge %s→%s: %q: %w", e.From, e.To, e.To, ErrUnknownEdgeNode)
		}
	}
	for id := range in.Fixed {
		if _, ok := in.Positions[id]; !ok {
			return fmt.Errorf("node %q: %w", id, ErrUnknownFixedNode)
		}
	}
	return nil
}

// StepResult is the outcome of a single integration step.
type StepResult struct {
	// Positions maps every node, fixed ones included, to its new position.
	Positions map[string]geometry.Point

	// MeanForce is the average net force magnitude over the non-fixed
	// nodes, the simulation's convergence signal. Zero when every node is
	// fixed.
	MeanForce float64
}

// Result is the outcome of a convergence run.
type Result struct {
	Positions  map[string]geometry.Point
	MeanForce  float64 // final mean force magnitude
	Iterations int     // steps actually executed
	Converged  bool    // true if MeanForce dropped below the threshold
}

// Engine runs the force simulation under a fixed configuration. It holds no
// graph state; every call receives a complete [Input].
type Engine struct {
	cfg   force.Config
	field *force.Field
}

// New creates an engine, validating the configuration once.
func New(cfg force.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, field: force.NewField(cfg)}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() force.Config { return e.cfg }

// Step applies the force field once. Each node's net force is interpreted
// directly as its displacement for this step; there is no velocity or mass
// state, making the integrator critically damped by construction.
func (e *Engine) Step(in Input) (StepResult, error) {
	if err := in.Validate(); err != nil {
		return StepResult{}, err
	}
	positions, mean := e.step(in, order(in.Positions), springs(in.Edges))
	return StepResult{Positions: positions, MeanForce: mean}, nil
}

// Run iterates the integrator from the given initial positions until the
// mean force magnitude drops below the configured threshold or the
// iteration budget is exhausted. Exhausting the budget is not an error: the
// best positions found are returned with Converged set to false.
func (e *Engine) Run(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	ids := order(in.Positions)
	spr := springs(in.Edges)

	res := Result{Positions: in.Positions}
	for i := 0; i < e.cfg.MaxIterations; i++ {
		in.Positions, res.MeanForce = e.step(in, ids, spr)
		res.Iterations = i + 1
		if res.MeanForce < e.cfg.Threshold {
			res.Converged = true
			break
		}
	}
	res.Positions = in.Positions
	return res, nil
}

// step computes all forces from one frozen snapshot, then writes updated
// positions into a fresh map. Input is assumed validated.
func (e *Engine) step(in Input, ids []string, spr []force.Spring) (map[string]geometry.Point, float64) {
	bodies := make(map[string]geometry.Box, len(ids))
	for _, id := range ids {
		bodies[id] = geometry.Box{Center: in.Positions[id], Half: in.Shapes[id]}
	}
	sys := force.System{IDs: ids, Bodies: bodies, Springs: spr}

	next := make(map[string]geometry.Point, len(ids))
	var sum float64
	moved := 0
	for _, id := range ids {
		if in.Fixed[id] {
			next[id] = in.Positions[id]
			continue
		}
		f := e.field.Net(sys, id)
		sum += f.Length()
		moved++
		next[id] = in.Positions[id].Add(f)
	}

	mean := 0.0
	if moved > 0 {
		mean = sum / float64(moved)
	}
	return next, mean
}

// order returns the node IDs in sorted order so force summation is
// deterministic regardless of map iteration.
func order(positions map[string]geometry.Point) []string {
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func springs(edges []Edge) []force.Spring {
	spr := make([]force.Spring, len(edges))
	for i, e := range edges {
		spr[i] = force.Spring{From: e.From, To: e.To}
	}
	return spr
}
