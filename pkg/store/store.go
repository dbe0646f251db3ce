// Package store persists computed layouts so the server can return them
// by ID after the layout request completes.
//
// Two backends are provided:
//
//   - memory: in-process map for development and testing
//   - mongo: MongoDB collection for production deployments
//
// Records are keyed by server-generated UUIDs and carry the laid-out graph
// together with run statistics.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sbusard/graphlayout/pkg/graph"
)

// ErrNotFound is returned when no record exists for the requested ID.
var ErrNotFound = errors.New("layout not found")

// Record is a persisted layout run.
type Record struct {
	ID         string      `json:"id" bson:"_id"`
	Graph      graph.Graph `json:"graph" bson:"graph"`
	Engine     string      `json:"engine" bson:"engine"`
	MeanForce  float64     `json:"mean_force" bson:"mean_force"`
	Iterations int         `json:"iterations" bson:"iterations"`
	Converged  bool        `json:"converged" bson:"converged"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
}

// Store is the interface both backends implement.
type Store interface {
	// Put inserts or replaces a record.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// Delete removes a record by ID, or ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewID generates a record ID.
func NewID() string {
	return uuid.NewString()
}
