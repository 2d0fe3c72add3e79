// Package segment implements one append-only log file plus the in-memory
// pointer index that makes point reads on that file O(1): a map from key
// to the IndexEntry locating its most recent record.
package segment

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/rivuletdb/rivulet/internal/record"
	"github.com/rivuletdb/rivulet/pkg/errors"
	"github.com/rivuletdb/rivulet/pkg/filesys"
)

// Segment is one append-only log file and its index. Shared-mode methods
// (ContainsKey, Len, Path) take the read lock; every other method moves
// the file cursor and/or mutates the index, so they take the write lock.
type Segment struct {
	mu    sync.RWMutex
	path  string
	file  *os.File
	index map[string]IndexEntry
}

// Open attaches to an existing segment file at path and rebuilds its
// index by full replay. It fails with InvalidPath if the file does not
// exist, and with DecodeError/UnknownCmd if the file contains a corrupt
// record.
func Open(path string) (*Segment, error) {
	exists, err := filesys.Exists(path)
	if err != nil {
		return nil, errors.NewIoMetadataError(err, path)
	}
	if !exists {
		return nil, errors.NewInvalidPathError(path)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.ClassifyOpenError(err, path)
	}

	seg := &Segment{path: path, file: file, index: make(map[string]IndexEntry)}
	if err := seg.replay(); err != nil {
		file.Close()
		return nil, err
	}
	return seg, nil
}

// Create makes a fresh, empty segment file at path and opens it. Used for
// rotation (a new mutable) and for the initial data_0 segment at open.
func Create(path string) (*Segment, error) {
	file, err := filesys.CreateFile(path, false)
	if err != nil {
		return nil, errors.ClassifyOpenError(err, path)
	}
	if err := file.Close(); err != nil {
		return nil, errors.NewIoWriteError(err, path)
	}
	return Open(path)
}

// replay reconstructs the index by scanning the file front-to-back from
// offset 0: later records override earlier ones for the same key.
func (s *Segment) replay() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return errors.NewIoSeekError(err, s.path, 0)
	}

	reader := bufio.NewReader(s.file)
	var pos int64
	for {
		line, readErr := reader.ReadString('\n')
		if len(line) == 0 {
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				return errors.NewIoReadError(readErr, s.path)
			}
		}

		rec, err := record.Decode(line)
		if err != nil {
			return err
		}

		switch rec.Cmd {
		case record.CmdSet:
			s.index[rec.Key] = Exist(pos)
		case record.CmdRemove:
			s.index[rec.Key] = Removed(pos)
		default:
			return errors.NewUnknownCmdError(string(rec.Cmd), s.path, pos)
		}

		pos += int64(len(line))
		if readErr == io.EOF {
			break
		}
	}
	return nil
}

// append writes rec to the end of the file and returns the offset it was
// written at. The caller holds the write lock.
func (s *Segment) append(rec record.Record) (int64, error) {
	line, err := record.Encode(rec)
	if err != nil {
		return 0, err
	}

	p, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.NewIoSeekError(err, s.path, 0)
	}
	if _, err := s.file.WriteString(line + "\n"); err != nil {
		return 0, errors.NewIoWriteError(err, s.path)
	}
	return p, nil
}

// readAt seeks to offset and decodes exactly one record line. The caller
// holds at least the read lock.
func (s *Segment) readAt(offset int64) (record.Record, error) {
	if _, err := s.file.Seek(offset, io.SeekStart); err != nil {
		return record.Record{}, errors.NewIoSeekError(err, s.path, offset)
	}

	reader := bufio.NewReader(s.file)
	line, err := reader.ReadString('\n')
	if len(line) == 0 {
		if err == io.EOF {
			return record.Record{}, errors.NewUnexpectedError("indexed offset is at EOF", s.path, offset)
		}
		return record.Record{}, errors.NewIoReadError(err, s.path)
	}
	return record.Decode(line)
}

// ContainsKey reports whether the index has an entry for key, live or
// tombstoned.
func (s *Segment) ContainsKey(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[key]
	return ok
}

// Get returns the current value for key: non-nil if Exist, nil if
// Removed or unknown. It is an Unexpected error for an Exist entry to
// decode to a record with another key, a cmd other than "set", or no
// value.
func (s *Segment) Get(key string) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.index[key]
	if !ok || entry.IsRemoved() {
		return nil, nil
	}

	rec, err := s.readAt(entry.Offset())
	if err != nil {
		return nil, err
	}
	if rec.Key != key {
		return nil, errors.NewUnexpectedError("record key does not match indexed key", s.path, entry.Offset())
	}
	if rec.Cmd != record.CmdSet {
		return nil, errors.NewUnexpectedError("indexed record is not a set record", s.path, entry.Offset())
	}
	if rec.Value == nil {
		return nil, errors.NewUnexpectedError("set record decoded with no value", s.path, entry.Offset())
	}
	return rec.Value, nil
}

// Set appends a set(key, value) record and points the index at it.
func (s *Segment) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.append(record.NewSet(key, value))
	if err != nil {
		return err
	}
	s.index[key] = Exist(p)
	return nil
}

// Remove appends a tombstone for key. It is only valid against a key
// currently Exist; removing an unknown or already-Removed key fails with
// RemoveNotExistKey — removal is not idempotent at the segment layer.
func (s *Segment) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.index[key]
	if !ok || entry.IsRemoved() {
		return errors.NewRemoveNotExistKeyError(key)
	}

	p, err := s.append(record.NewRemove(key))
	if err != nil {
		return err
	}
	s.index[key] = Removed(p)
	return nil
}

// Scan returns the raw encoded line for every indexed entry, live or
// tombstoned, in unspecified order.
func (s *Segment) Scan() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, len(s.index))
	for _, entry := range s.index {
		rec, err := s.readAt(entry.Offset())
		if err != nil {
			return nil, err
		}
		line, err := record.Encode(rec)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Len returns the current file size in bytes.
func (s *Segment) Len() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, err := s.file.Stat()
	if err != nil {
		return 0, errors.NewIoMetadataError(err, s.path)
	}
	return info.Size(), nil
}

// Path returns the segment's filesystem path.
func (s *Segment) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Close releases the segment's file handle. It must be called, and must
// complete, before any rename or unlink targeting the same path.
func (s *Segment) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return errors.NewIoWriteError(err, s.path)
	}
	return nil
}
