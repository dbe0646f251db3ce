package layout_test

import (
	"fmt"

	"github.com/sbusard/graphlayout/pkg/force"
	"github.com/sbusard/graphlayout/pkg/geometry"
	"github.com/sbusard/graphlayout/pkg/layout"
)

// Two connected nodes pull together against their mutual repulsion; a single
// step moves each a little and reports the convergence signal.
func ExampleEngine_Step() {
	engine, _ := layout.New(force.DefaultConfig())

	res, _ := engine.Step(layout.Input{
		Positions: map[string]geometry.Point{
			"a": {X: 0, Y: 0},
			"b": {X: 200, Y: 0},
		},
		Shapes: map[string]geometry.Extents{
			"a": {W: 10, H: 10},
			"b": {W: 10, H: 10},
		},
		Edges: []layout.Edge{{From: "a", To: "b"}},
	})

	fmt.Printf("a: (%.4f, %.4f)\n", res.Positions["a"].X, res.Positions["a"].Y)
	fmt.Printf("b: (%.4f, %.4f)\n", res.Positions["b"].X, res.Positions["b"].Y)
	fmt.Printf("mean force: %.4f\n", res.MeanForce)
	// Output:
	// a: (0.0512, 0.0000)
	// b: (199.9488, 0.0000)
	// mean force: 0.0512
}

// Run iterates until the mean force falls below the threshold or the budget
// runs out, and says which happened.
func ExampleEngine_Run() {
	cfg := force.DefaultConfig()
	cfg.SpringStiffness = 0.5
	cfg.MaxIterations = 5000
	cfg.Threshold = 0.01

	engine, _ := layout.New(cfg)

	res, _ := engine.Run(layout.Input{
		Positions: map[string]geometry.Point{
			"a": {X: 0, Y: 0},
			"b": {X: 200, Y: 0},
		},
		Shapes: map[string]geometry.Extents{
			"a": {W: 10, H: 10},
			"b": {W: 10, H: 10},
		},
		Edges: []layout.Edge{{From: "a", To: "b"}},
		Fixed: map[string]bool{"a": true},
	})

	fmt.Println("converged:", res.Converged)
	fmt.Println("anchor stayed:", res.Positions["a"] == (geometry.Point{X: 0, Y: 0}))
	// Output:
	// converged: true
	// anchor stayed: true
}
