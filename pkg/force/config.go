package force

import "errors"

// Default configuration values. These match the interactive defaults the
// engine ships with; callers tune them per graph through [Config].
const (
	DefaultSpringStiffness = 0.1
	DefaultMinSpringLength = 60.0
	DefaultRepulsion       = 500.0
	DefaultMaxForce        = 10.0
	DefaultMaxIterations   = 1000
	DefaultThreshold       = 0.001
)

// Sentinel errors for configuration validation.
var (
	// ErrNonPositiveConstant is returned by [Config.Validate] when a physical
	// constant is zero or negative. All constants must be strictly positive.
	ErrNonPositiveConstant = errors.New("force constants must be positive")

	// ErrNonPositiveBudget is returned by [Config.Validate] when the
	// iteration budget is zero or negative.
	ErrNonPositiveBudget = errors.New("iteration budget must be positive")
)

// Config holds the physical constants and stopping criteria of the force
// model. A Config is set once per engine instance and never mutated by the
// simulation itself.
type Config struct {
	// SpringStiffness scales the Hooke attraction on every edge.
	SpringStiffness float64 `toml:"spring_stiffness" json:"spring_stiffness"`

	// MinSpringLength is the smallest rest length a spring can adapt to,
	// in layout units. The effective rest length grows with the sizes of
	// the two connected shapes but never shrinks below this floor.
	MinSpringLength float64 `toml:"min_spring_length" json:"min_spring_length"`

	// Repulsion scales the Coulomb push between every pair of bodies.
	Repulsion float64 `toml:"repulsion" json:"repulsion"`

	// MaxForce caps the magnitude of every individual force term per step.
	// It is the sole defense against numeric divergence for near-coincident
	// bodies and is always applied.
	MaxForce float64 `toml:"max_force" json:"max_force"`

	// MaxIterations bounds a convergence run.
	MaxIterations int `toml:"max_iterations" json:"max_iterations"`

	// Threshold is the mean force magnitude below which a run is considered
	// converged.
	Threshold float64 `toml:"threshold" json:"threshold"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		SpringStiffness: DefaultSpringStiffness,
		MinSpringLength: DefaultMinSpringLength,
		Repulsion:       DefaultRepulsion,
		MaxForce:        DefaultMaxForce,
		MaxIterations:   DefaultMaxIterations,
		Threshold:       DefaultThreshold,
	}
}

// Validate checks that every constant is strictly positive.
func (c Config) Validate() error {
	if c.SpringStiffness <= 0 || c.MinSpringLength <= 0 || c.Repulsion <= 0 ||
		c.MaxForce <= 0 || c.Threshold <= 0 {
		return ErrNonPositiveConstant
	}
	if c.MaxIterations <= 0 {
		return ErrNonPositiveBudget
	}
	return nil
}
