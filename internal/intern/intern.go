// Package intern provides a string interner used for both
// regular and unrestricted SysML/KerML identifiers and for the dotted/
// double-colon qualified names built from them.
//
// A Name is a compact handle: equality is a plain integer comparison, and
// the original string (quotes included, for unrestricted identifiers) is
// always recoverable. There is no process-wide instance: each Interner
// that New returns is independent (each query.Database owns one), and a
// Name is meaningful only to the Interner that issued it. An Interner is
// guarded by a sync.RWMutex, following the shape of the teacher's
// internal/core/runtime.Index (labelMap/labels parallel arrays under a
// lock) and internal/core/adt.Feature (a compact handle over an index).
package intern

import "sync"

// Name is an interned string handle. The zero Name is reserved and never
// returned by Interner.Intern; it is used as a sentinel for "no name".
type Name uint32

// IsZero reports whether n is the reserved sentinel value.
func (n Name) IsZero() bool { return n == 0 }

// Interner assigns a stable Name to every distinct string it is asked to
// intern. It is safe for concurrent use.
type Interner struct {
	mu     sync.RWMutex
	byStr  map[string]Name
	byName []string // index 0 is unused (reserved sentinel)
}

// New returns a ready-to-use Interner.
func New() *Interner {
	return &Interner{
		byStr:  make(map[string]Name, 1024),
		byName: []string{""},
	}
}

// Intern returns the Name for s, allocating a new one if s has not been
// seen before.
func (in *Interner) Intern(s string) Name {
	in.mu.RLock()
	if n, ok := in.byStr[s]; ok {
		in.mu.RUnlock()
		return n
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	// Re-check under the write lock: another goroutine may have interned
	// s between the RUnlock above and this Lock.
	if n, ok := in.byStr[s]; ok {
		return n
	}
	n := Name(len(in.byName))
	in.byName = append(in.byName, s)
	in.byStr[s] = n
	return n
}

// String returns the original text for n, or "" if n is unknown to this
// interner (including the zero Name).
func (in *Interner) String(n Name) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(n) <= 0 || int(n) >= len(in.byName) {
		return ""
	}
	return in.byName[n]
}

// Lookup returns the Name already assigned to s, if any, without
// allocating a new one.
func (in *Interner) Lookup(s string) (Name, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	n, ok := in.byStr[s]
	return n, ok
}

// Len reports the number of distinct strings interned so far (excluding
// the reserved sentinel).
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byName) - 1
}
