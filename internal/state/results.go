package state

import (
	"maps"
	"sync"
)

// Variables is the dictionary of names assigned by earlier solver responses.
// It is only ever sent back to the service; nothing is evaluated locally.
type Variables struct {
	mu   sync.RWMutex
	vars map[string]string
}

func NewVariables() *Variables {
	return &Variables{vars: make(map[string]string)}
}

// Snapshot returns a copy that is safe to serialise while the dictionary keeps
// changing. It is never nil.
func (v *Variables) Snapshot() map[string]string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return maps.Clone(v.vars)
}

// Merge applies assignments; later values for the same name win.
func (v *Variables) Merge(assignments map[string]string) {
	if len(assignments) == 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	maps.Copy(v.vars, assignments)
}

func (v *Variables) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.vars)
}

func (v *Variables) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vars = make(map[string]string)
}

// Results is the ordered, append-only list of solved expressions.
type Results struct {
	mu      sync.RWMutex
	entries []Result
}

func NewResults() *Results {
	return &Results{entries: make([]Result, 0)}
}

func (r *Results) Append(entries ...Result) {
	if len(entries) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
}

// All returns a copy of every entry in insertion order.
func (r *Results) All() []Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Result, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Results) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset drops every entry. Only the explicit board reset calls this.
func (r *Results) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make([]Result, 0)
}
