// Package compaction implements the Simple compaction policy: rotate the
// mutable to immutable, then rewrite the newly demoted segment in place
// by materializing only the records its index still references.
package compaction

import (
	"os"

	"go.uber.org/zap"

	"github.com/rivuletdb/rivulet/internal/segment"
	"github.com/rivuletdb/rivulet/internal/segmentset"
	"github.com/rivuletdb/rivulet/pkg/errors"
	"github.com/rivuletdb/rivulet/pkg/filesys"
)

// Threshold is the fixed size, in bytes, past which a mutable segment is
// compacted. It is a constant rather than an option: spec.md §6 fixes it
// at 1 MiB and says so explicitly ("not configurable in the current
// design").
const Threshold int64 = 1_048_576

// compactSuffix is appended to a segment's filename to build the sibling
// path its rewrite is staged under before the rename-over swap.
const compactSuffix = ".compact"

// SimpleCompactor implements the single compaction algorithm the engine
// uses: no generational policy, no merge across segments, nothing
// configurable beyond what segmentset.Set already exposes.
type SimpleCompactor struct {
	log *zap.SugaredLogger
}

// New builds a SimpleCompactor logging through log.
func New(log *zap.SugaredLogger) *SimpleCompactor {
	return &SimpleCompactor{log: log}
}

// Compact runs all three phases against set. It is invoked by the engine
// when the mutable has grown past Threshold.
func (c *SimpleCompactor) Compact(set *segmentset.Set) error {
	if err := c.phaseA(set); err != nil {
		return err
	}
	lines, path, err := c.phaseB(set)
	if err != nil {
		return err
	}
	return c.phaseC(set, path, lines)
}

// phaseA rotates the mutable to immutable under the set's exclusive
// lock: segmentset.Set.Rotate already does path computation, file
// creation, and installation as one critical section.
func (c *SimpleCompactor) phaseA(set *segmentset.Set) error {
	c.log.Infow("compaction: rotating mutable", "dir", set.Dir())
	if err := set.Rotate(); err != nil {
		c.log.Errorw("compaction: rotate failed", "error", err)
		return err
	}
	return nil
}

// phaseB scans the newly demoted segment (the last immutable) under
// shared set access and exclusive segment access, returning its live and
// tombstone record lines and its path. It does not mutate the set.
//
// The scan runs inside segmentset.Set.WithLastImmutable, which holds the
// set's shared lock for the duration of the scan, so the segment cannot be
// popped or replaced while it is read. The lock is released when phaseB
// returns; phaseC checks that the segment it pops is the one scanned here
// and fails without swapping if a rotation has landed in between.
func (c *SimpleCompactor) phaseB(set *segmentset.Set) ([]string, string, error) {
	var path string
	var lines []string

	found, err := set.WithLastImmutable(func(seg *segment.Segment) error {
		path = seg.Path()
		c.log.Infow("compaction: scanning demoted segment", "path", path)
		var scanErr error
		lines, scanErr = seg.Scan()
		return scanErr
	})
	if err != nil {
		c.log.Errorw("compaction: scan failed", "path", path, "error", err)
		return nil, "", err
	}
	if !found {
		return nil, "", errors.NewUnexpectedError("nothing to compact: no immutable segments", set.Dir(), 0)
	}
	return lines, path, nil
}

// phaseC writes lines to a sibling path, then swaps it over the original
// under the set's exclusive lock: pop the old segment, unlink the
// original file, rename the compacted file over it, rebuild the segment
// from the new file, and push it back as the newest immutable.
//
// The rewrite happens under a different name first so that any failure
// between the scan and the rename leaves the original file untouched.
// Popping before unlinking ensures no in-memory segment still holds the
// file's handle when the path is replaced.
func (c *SimpleCompactor) phaseC(set *segmentset.Set, path string, lines []string) error {
	compactPath := path + compactSuffix
	if err := writeCompactFile(compactPath, lines); err != nil {
		return err
	}

	old, err := set.PopLastImmutable()
	if err != nil {
		return err
	}
	if old.Path() != path {
		set.PushImmutable(old)
		_ = filesys.DeleteFile(compactPath)
		return errors.NewUnexpectedError("last immutable changed between scan and swap", path, 0)
	}
	if err := old.Close(); err != nil {
		c.log.Errorw("compaction: closing demoted segment before swap failed", "path", path, "error", err)
		return err
	}

	if err := filesys.DeleteFile(path); err != nil {
		c.log.Errorw("compaction: unlink before rename failed", "path", path, "error", err)
		return errors.NewIoWriteError(err, path)
	}
	if err := os.Rename(compactPath, path); err != nil {
		c.log.Errorw("compaction: rename over original failed", "path", path, "error", err)
		return errors.NewIoWriteError(err, path)
	}

	rebuilt, err := segment.Open(path)
	if err != nil {
		c.log.Errorw("compaction: rebuilding segment after swap failed", "path", path, "error", err)
		return err
	}

	set.PushImmutable(rebuilt)
	c.log.Infow("compaction: swap complete", "path", path, "records", len(lines))
	return nil
}

// writeCompactFile creates path and writes every line, each terminated by
// a newline, in order.
func writeCompactFile(path string, lines []string) error {
	file, err := filesys.CreateFile(path, true)
	if err != nil {
		return errors.ClassifyOpenError(err, path)
	}
	defer file.Close()

	for _, line := range lines {
		if _, err := file.WriteString(line + "\n"); err != nil {
			return errors.NewIoWriteError(err, path)
		}
	}
	return nil
}
