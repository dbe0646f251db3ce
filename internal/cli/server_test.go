package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sbusard/graphlayout/pkg/cache"
	"github.com/sbusard/graphlayout/pkg/store"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewServer(cache.NewNullCache(), store.NewMemoryStore(), logger).Handler()
}

const layoutRequestBody = `{
	"graph": {
		"nodes": [
			{"id": "a", "x": 0, "y": 0},
			{"id": "b", "x": 200, "y": 0}
		],
		"edges": [{"from": "a", "to": "b"}]
	}
}`

func TestServerHealth(t *testing.T) {
	h := testServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("health body = %q, want ok status", rec.Body.String())
	}
}

func TestServerLayoutLifecycle(t *testing.T) {
	h := testServer(t)

	// Create
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/layouts", strings.NewReader(layoutRequestBody))
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /layouts = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}

	var created store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created record has no ID")
	}
	if created.Engine != "force" {
		t.Errorf("Engine = %q, want force", created.Engine)
	}
	if created.Iterations == 0 {
		t.Error("Iterations = 0, want > 0")
	}
	if len(created.Graph.Nodes) != 2 {
		t.Fatalf("stored graph has %d nodes, want 2", len(created.Graph.Nodes))
	}

	// Get
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/layouts/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /layouts/{id} = %d", rec.Code)
	}
	var fetched store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decoding get response: %v", err)
	}
	if fetched.ID != created.ID {
		t.Errorf("fetched ID = %q, want %q", fetched.ID, created.ID)
	}

	// SVG
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/layouts/"+created.ID+"/svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /layouts/{id}/svg = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("svg Content-Type = %q", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("<svg")) {
		t.Error("svg body missing <svg element")
	}

	// Delete
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/layouts/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE /layouts/{id} = %d", rec.Code)
	}

	// Gone
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/layouts/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", rec.Code)
	}
}

func TestServerRejectsBadRequests(t *testing.T) {
	h := testServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "malformed json",
			body: `{"graph": `,
			want: http.StatusBadRequest,
		},
		{
			name: "edge to unknown node",
			body: `{"graph": {"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "ghost"}]}}`,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown engine",
			body: `{"graph": {"nodes": [{"id": "a"}]}, "options": {"engine": "annealing"}}`,
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/layouts", strings.NewReader(tt.body))
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("POST /layouts = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("error response has empty message")
			}
		})
	}
}

func TestServerUnknownLayout(t *testing.T) {
	h := testServer(t)

	for _, path := range []string{"/layouts/nope", "/layouts/nope/svg"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}

func TestServerPreservesRequestID(t *testing.T) {
	h := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}
}
