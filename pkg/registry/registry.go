// Package registry is the C6 session registry: a handle -> session map
// guarded by one mutex, with a monotonic uint64 handle counter that never
// reuses 0 (the invalid-handle sentinel). Grounded on
// pkg/logic/group_manager.go's map+mutex shape (see DESIGN.md).
package registry

import (
	"sync"

	"github.com/bobotouo/bb-rtmp/pkg/base"
	"github.com/bobotouo/bb-rtmp/pkg/session"
)

// Registry maps opaque handles to live sessions.
type Registry struct {
	mu       sync.Mutex
	next     uint64
	sessions map[uint64]*session.Session
}

// New returns an empty registry. The first handle it issues is 1.
func New() *Registry {
	return &Registry{sessions: make(map[uint64]*session.Session)}
}

// Insert allocates a fresh handle for s and stores it. Handles are
// monotonically increasing and never 0, and are not reused even after
// Remove (spec §3 invariant 6) within the process's lifetime.
func (r *Registry) Insert(s *session.Session) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	r.sessions[h] = s
	return h
}

// Lookup returns base.ErrInvalidHandle if h is unknown. The caller is
// expected to hold whatever exclusivity it needs around using the
// returned session itself — in this module that's pkg/service's single
// process-wide mutex, held for the whole operation (spec §4.6/§5).
func (r *Registry) Lookup(h uint64) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[h]
	if !ok {
		return nil, base.ErrInvalidHandle
	}
	return s, nil
}

// Remove deletes h. Removing an unknown handle is a no-op (spec §4.5's
// close is idempotent).
func (r *Registry) Remove(h uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, h)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// Drain removes and returns every live session, in no particular order.
// Used by pkg/service's Shutdown to tear every session down without
// holding the registry lock across each one's (possibly blocking) close.
func (r *Registry) Drain() []*session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.sessions = make(map[uint64]*session.Session)
	return out
}
