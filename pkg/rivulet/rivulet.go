// Package rivulet is the public facade over the storage engine: a small,
// stable surface (Open/Get/Set/Remove/Close) that hides the internal
// record/segment/segmentset/compaction layering from callers such as
// cmd/rivuletctl.
package rivulet

import (
	"github.com/rivuletdb/rivulet/internal/engine"
	"github.com/rivuletdb/rivulet/pkg/options"
)

// Store is a handle to an open key-value store backed by a directory of
// log segment files.
type Store struct {
	engine *engine.Engine
}

// Open opens (or initializes) the store rooted at dir. The directory set
// by options.WithDataDir is used only when dir is empty; a non-empty dir
// always wins.
func Open(dir string, opts ...options.OptionFunc) (*Store, error) {
	e, err := engine.Open(dir, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{engine: e}, nil
}

// Get returns the current value for key, or nil if the key is absent or
// has been removed.
func (s *Store) Get(key string) (*string, error) {
	return s.engine.Get(key)
}

// Set stores value under key, appending to the log and triggering
// compaction if the mutable segment has grown past threshold.
func (s *Store) Set(key, value string) error {
	return s.engine.Set(key, value)
}

// Remove tombstones key. It fails with a RemoveNotExistKey-coded error if
// key is not currently live in the mutable segment — see
// errors.IsRemoveNotExistKey.
func (s *Store) Remove(key string) error {
	return s.engine.Remove(key)
}

// Close releases every segment's file handle. Close is idempotent.
func (s *Store) Close() error {
	return s.engine.Close()
}
