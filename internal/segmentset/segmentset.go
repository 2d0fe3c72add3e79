// Package segmentset holds the ordered collection of segments for one
// store: one mutable segment that accepts writes, zero or more immutable
// segments ordered ascending by identifier, the directory path, and the
// monotonically increasing next-identifier counter.
package segmentset

import (
	"sync"

	"github.com/rivuletdb/rivulet/internal/segment"
	"github.com/rivuletdb/rivulet/pkg/errors"
	"github.com/rivuletdb/rivulet/pkg/segname"
)

// Set is guarded by a single reader-writer lock: shared mode for get,
// set, remove, and compaction's Phase B; exclusive mode for rotation and
// compaction's Phase A/C, the only operations that change segment
// membership or nextID.
type Set struct {
	mu         sync.RWMutex
	dir        string
	mutable    *segment.Segment
	immutables []*segment.Segment
	nextID     uint64
}

// New assembles a Set from already-opened segments: immutables ascending
// by identifier, and the current mutable. nextID must exceed every
// identifier present.
func New(dir string, mutable *segment.Segment, immutables []*segment.Segment, nextID uint64) *Set {
	return &Set{dir: dir, mutable: mutable, immutables: immutables, nextID: nextID}
}

// Dir returns the owning directory path.
func (s *Set) Dir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dir
}

// WithMutable runs fn against the current mutable segment under the
// set's shared lock — the pattern spec.md §4.4 describes for Set and
// Remove: "under shared access to the segment set, acquire exclusive
// access to the mutable."
func (s *Set) WithMutable(fn func(*segment.Segment) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.mutable)
}

// MutableLen reports the current mutable's file size, used by the
// engine to decide whether to trigger compaction after a write.
func (s *Set) MutableLen() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mutable.Len()
}

// Immutables returns a snapshot of the immutable segments, oldest first.
// Callers that need newest-first order (Engine.Get) iterate it in
// reverse.
func (s *Set) Immutables() []*segment.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*segment.Segment, len(s.immutables))
	copy(out, s.immutables)
	return out
}

// Mutable returns the current mutable segment under the set's shared
// lock. Used by Engine.Get, which needs to consult the mutable before
// the immutables.
func (s *Set) Mutable() *segment.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mutable
}

// nextMutPathLocked returns <dir>/data_{nextID} and post-increments
// nextID. The caller must already hold the exclusive lock and must
// install a segment at that path before releasing it, or nextID advances
// without a corresponding file.
func (s *Set) nextMutPathLocked() string {
	path := segname.Path(s.dir, s.nextID)
	s.nextID++
	return path
}

// Rotate is compaction's Phase A: under the set's exclusive lock, create
// a fresh empty segment and make it the mutable, demoting the previous
// mutable to the end of the immutables list. Path computation, file
// creation, and installation happen as one critical section, so no other
// caller sees nextID advanced before the new segment is installed. If
// creation fails, nextID stays advanced and that identifier is skipped.
func (s *Set) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.nextMutPathLocked()
	fresh, err := segment.Create(path)
	if err != nil {
		return err
	}

	s.immutables = append(s.immutables, s.mutable)
	s.mutable = fresh
	return nil
}

// PopLastImmutable removes and returns the last (newest) immutable
// segment, used by compaction's Phase C before unlinking its file. It
// fails if there are no immutables.
func (s *Set) PopLastImmutable() (*segment.Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.immutables)
	if n == 0 {
		return nil, errors.NewUnexpectedError("compaction requested with no immutable segments", s.dir, 0)
	}
	last := s.immutables[n-1]
	s.immutables = s.immutables[:n-1]
	return last, nil
}

// PushImmutable appends seg as the newest immutable, used by compaction's
// Phase C to install the rebuilt segment after the swap.
func (s *Set) PushImmutable(seg *segment.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.immutables = append(s.immutables, seg)
}

// WithLastImmutable runs fn against the current newest immutable segment
// under the set's shared lock, and reports whether one existed to run fn
// against. This is compaction's Phase B critical section: fn runs while
// the set's shared lock is held, so no rotation or pop changes the last
// immutable while fn runs. The lock is released when fn returns, so a
// rotation can land before compaction's Phase C pops the last immutable.
func (s *Set) WithLastImmutable(fn func(*segment.Segment) error) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.immutables) == 0 {
		return false, nil
	}
	last := s.immutables[len(s.immutables)-1]
	return true, fn(last)
}

// NextID returns the current next-identifier counter, for tests asserting
// identifier monotonicity.
func (s *Set) NextID() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

// Close closes every segment in the set: the mutable and all immutables.
func (s *Set) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var first error
	if err := s.mutable.Close(); err != nil && first == nil {
		first = err
	}
	for _, seg := range s.immutables {
		if err := seg.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
