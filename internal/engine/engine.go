// Package engine provides the core database engine: the public store
// that coordinates the segment set, routes reads, and triggers
// compaction when the mutable segment grows past threshold.
//
// The engine orchestrates three subsystems: the segment set (ordered
// mutable/immutable segment collection), individual segments (append-only
// files with their own pointer index), and the compactor (the policy that
// reclaims space by rewriting a demoted segment). It implements a
// thread-safe interface with proper lifecycle management, using an atomic
// flag so Close is idempotent under concurrent callers.
package engine

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/rivuletdb/rivulet/internal/compaction"
	"github.com/rivuletdb/rivulet/internal/segment"
	"github.com/rivuletdb/rivulet/internal/segmentset"
	"github.com/rivuletdb/rivulet/pkg/errors"
	"github.com/rivuletdb/rivulet/pkg/filesys"
	"github.com/rivuletdb/rivulet/pkg/logger"
	"github.com/rivuletdb/rivulet/pkg/options"
	"github.com/rivuletdb/rivulet/pkg/segname"
)

// Engine is the main database engine that coordinates the segment set
// and the compactor. It is safe for concurrent use; each method delegates
// locking to the segment set and the segments it owns.
type Engine struct {
	set        *segmentset.Set
	compaction *compaction.SimpleCompactor
	log        *zap.SugaredLogger
	closed     atomic.Bool
}

// Open resolves dir, discovers its segment files, replays each into a
// segment, and assembles them into an Engine ready for Get/Set/Remove.
//
// If dir does not exist, Open fails with InvalidPath. If dir is empty,
// data_0 is created as the initial mutable and next_id is set to 1.
// Enumeration is depth-1 only; any entry whose name does not match
// data_<digits> aborts the open, matching the reference's assertive
// format check (spec.md §6, §9).
func Open(dir string, opts ...options.OptionFunc) (*Engine, error) {
	o := options.Apply(opts...)
	if dir == "" {
		dir = o.DataDir
	}

	log := logger.New("engine")

	exists, err := filesys.Exists(dir)
	if err != nil {
		return nil, errors.NewIoMetadataError(err, dir)
	}
	if !exists {
		return nil, errors.NewInvalidPathError(dir)
	}

	ids, badName, err := segname.Discover(dir)
	if err != nil {
		return nil, errors.NewIoReadError(err, dir)
	}
	if badName != "" {
		panic("rivulet: directory contains a file not matching data_<digits>: " + badName)
	}

	set, err := assembleSet(dir, ids, log)
	if err != nil {
		return nil, err
	}

	return &Engine{set: set, compaction: compaction.New(log), log: log}, nil
}

// assembleSet opens every discovered segment by replay and wires them
// into a segmentset.Set: the highest identifier becomes the mutable, the
// rest (already ascending) are immutables.
func assembleSet(dir string, ids []uint64, log *zap.SugaredLogger) (*segmentset.Set, error) {
	if len(ids) == 0 {
		log.Infow("opening empty directory, creating initial segment", "dir", dir, "name", segname.Name(0))
		mutable, err := segment.Create(segname.Path(dir, 0))
		if err != nil {
			return nil, err
		}
		return segmentset.New(dir, mutable, nil, 1), nil
	}

	immutableIDs, mutableID := ids[:len(ids)-1], ids[len(ids)-1]

	immutables := make([]*segment.Segment, 0, len(immutableIDs))
	for _, id := range immutableIDs {
		seg, err := segment.Open(segname.Path(dir, id))
		if err != nil {
			return nil, err
		}
		immutables = append(immutables, seg)
	}

	mutable, err := segment.Open(segname.Path(dir, mutableID))
	if err != nil {
		return nil, err
	}

	log.Infow("opened existing directory", "dir", dir, "segments", len(ids), "mutable", mutableID)
	return segmentset.New(dir, mutable, immutables, mutableID+1), nil
}

// Get searches the mutable, then the immutables newest-first, returning
// the first segment's verdict whose index contains key at all. A segment
// that does not contain key is skipped entirely.
//
// Immutables are searched newest-first, not the storage-order
// oldest-first the reference implementation used: for a key with records
// in more than one immutable, oldest-first can return a stale value,
// which this engine treats as a bug to avoid rather than a behavior to
// reproduce (spec.md §9).
func (e *Engine) Get(key string) (*string, error) {
	if key == "" {
		return nil, errors.NewRequiredFieldError("key")
	}
	if e.closed.Load() {
		return nil, errors.NewEngineClosedError(e.set.Dir())
	}

	if mutable := e.set.Mutable(); mutable.ContainsKey(key) {
		return mutable.Get(key)
	}

	immutables := e.set.Immutables()
	for i := len(immutables) - 1; i >= 0; i-- {
		if immutables[i].ContainsKey(key) {
			return immutables[i].Get(key)
		}
	}
	return nil, nil
}

// Set appends set(key, value) to the mutable segment, then compacts if
// the mutable has grown past compaction.Threshold. Mutable access is
// released before compaction acquires the set exclusively, so Set never
// holds both locks at once — the lock ordering spec.md §5 requires.
func (e *Engine) Set(key, value string) error {
	if key == "" {
		return errors.NewRequiredFieldError("key")
	}
	if e.closed.Load() {
		return errors.NewEngineClosedError(e.set.Dir())
	}

	if err := e.set.WithMutable(func(s *segment.Segment) error {
		return s.Set(key, value)
	}); err != nil {
		return err
	}

	size, err := e.set.MutableLen()
	if err != nil {
		return err
	}
	if size <= compaction.Threshold {
		return nil
	}

	e.log.Infow("mutable past compaction threshold, compacting", "size", size, "threshold", compaction.Threshold)
	return e.compaction.Compact(e.set)
}

// Remove tombstones key in the mutable segment only — it does not search
// immutables, an acknowledged limitation: a key whose only live record
// lives in an immutable segment cannot be removed through this path
// (spec.md §4.4).
func (e *Engine) Remove(key string) error {
	if key == "" {
		return errors.NewRequiredFieldError("key")
	}
	if e.closed.Load() {
		return errors.NewEngineClosedError(e.set.Dir())
	}

	return e.set.WithMutable(func(s *segment.Segment) error {
		return s.Remove(key)
	})
}

// Close releases every segment's file handle. Subsequent calls are
// no-ops; Close is safe to call more than once or concurrently.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.log.Infow("closing engine", "dir", e.set.Dir())
	return e.set.Close()
}
