// Package ids allocates the small opaque handles (FileId) that identify
// files throughout the engine. Allocation is grounded on the teacher's
// cue/token.FileSet: a monotonically increasing counter under a mutex,
// handles that are never reused, and no reverse lookup baked into the
// handle itself (path/text live in the query database's inputs, not here).
package ids

import "sync"

// FileId is a small opaque handle identifying a file in the workspace.
// The zero value is never allocated; it is reserved to mean "no file".
type FileId uint32

// IsZero reports whether id is the reserved sentinel.
func (id FileId) IsZero() bool { return id == 0 }

// Allocator hands out FileIds in increasing order. It never reuses an id,
// even after the corresponding file is removed from the workspace, so a
// stale FileId from a prior revision can never alias a new file.
type Allocator struct {
	mu   sync.Mutex
	next FileId
}

// NewAllocator returns an Allocator whose first Allocate call returns 1.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Allocate returns a fresh FileId, unique for the lifetime of the
// Allocator.
func (a *Allocator) Allocate() FileId {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next++
	return id
}
