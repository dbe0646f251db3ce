package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sbusard/graphlayout/pkg/graph"
)

func testRecord(id string) Record {
	return Record{
		ID: id,
		Graph: graph.Graph{
			Nodes: []graph.Node{{ID: "a", X: 10, Y: 20}, {ID: "b", X: 110, Y: 20}},
			Edges: []graph.Edge{{From: "a", To: "b"}},
		},
		Engine:     "force",
		MeanForce:  0.0008,
		Iterations: 412,
		Converged:  true,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := t.Context()

	id := NewID()
	if err := s.Put(ctx, testRecord(id)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.ID != id || !rec.Converged || len(rec.Graph.Nodes) != 2 {
		t.Errorf("Get returned wrong record: %+v", rec)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := t.Context()

	if _, err := s.Get(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := t.Context()

	id := NewID()
	rec := testRecord(id)
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rec.Converged = false
	rec.Iterations = 1000
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put replace: %v", err)
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Converged || got.Iterations != 1000 {
		t.Errorf("Put did not replace: %+v", got)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewID()
		if id == "" {
			t.Fatal("NewID returned empty string")
		}
		if seen[id] {
			t.Fatalf("NewID produced duplicate %q", id)
		}
		seen[id] = true
	}
}
