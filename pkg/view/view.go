// Package view manages the per-session view state: the network a client
// currently sees plus the explanation that goes with it.
//
// A view changes in exactly three ways:
//   - a successful submission replaces the whole value
//   - a failed submission leaves the stored value untouched
//   - a reset restores the empty view with the default prompt
//
// The Store interface abstracts where views live, with implementations
// for different backends:
//   - memory: in-process storage for the TUI and development servers
//   - redis: Redis-backed storage for multi-instance deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	store := view.NewMemoryStore(0)
//
//	// Production
//	store, err := view.NewRedisStore(ctx, view.RedisConfig{
//	    Addr: "localhost:6379",
//	})
//
// Manage views:
//
//	v, err := store.Get(ctx, sessionID)   // Empty() when nothing stored
//	err = store.Put(ctx, sessionID, view.FromStep(s))
//	err = store.Reset(ctx, sessionID)
package view

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flowstep/pkg/step"
)

// DefaultPrompt is the explanation text of the empty view.
const DefaultPrompt = "Paste a step payload and submit to see the explanation."

// DefaultTTL is the default view lifetime in session stores.
const DefaultTTL = 24 * time.Hour

// View is the state a client currently sees: the last successfully
// interpreted step plus everything derived from it.
type View struct {
	Nodes       []string        `json:"nodes"`
	Edges       []step.Edge     `json:"edges"`
	Flow        float64         `json:"flow"`
	Highlights  map[string]bool `json:"highlights"`
	Explanation string          `json:"explanation"`
	Step        *step.Step      `json:"step,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Empty returns the initial view: no network, no highlights, and the
// default prompt as its explanation.
func Empty() View {
	return View{
		Nodes:       []string{},
		Edges:       []step.Edge{},
		Highlights:  map[string]bool{},
		Explanation: DefaultPrompt,
	}
}

// FromStep builds the view a successful submission swaps in.
func FromStep(s step.Step) View {
	return View{
		Nodes:       s.Nodes,
		Edges:       s.Edges,
		Flow:        s.MaxFlow,
		Highlights:  s.Highlights(),
		Explanation: s.Explanation(),
		Step:        &s,
		UpdatedAt:   time.Now(),
	}
}

// IsEmpty reports whether the view still shows the initial state.
func (v View) IsEmpty() bool {
	return v.Step == nil
}

// Store is the interface for view storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves the view for a session.
	// A session with no stored view gets Empty(), never an error.
	Get(ctx context.Context, sessionID string) (View, error)

	// Put replaces the view for a session.
	Put(ctx context.Context, sessionID string, v View) error

	// Reset restores the empty view for a session.
	Reset(ctx context.Context, sessionID string) error

	// Cleanup removes expired views (optional, may be no-op for Redis).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// NewID creates a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}
