package errors

// EngineError is the single structured error type returned by the record,
// segment, segment set, compaction, and engine layers. It embeds baseError
// to inherit error chaining and code-based classification, then adds the
// location context that actually matters for a log-structured store: which
// file, which byte offset, which key.
type EngineError struct {
	*baseError
	path     string // Path of the segment file involved, if any.
	fileName string // Base name of the segment file involved, if any.
	offset   int64  // Byte offset within the file involved, if any.
	key      string // Key being processed, if any.
}

// newEngineError creates a new EngineError with the provided context.
func newEngineError(err error, code Code, msg string) *EngineError {
	return &EngineError{baseError: newBaseError(err, code, msg)}
}

// WithDetail adds contextual information while preserving the EngineError type.
func (e *EngineError) WithDetail(key string, value any) *EngineError {
	e.baseError.WithDetail(key, value)
	return e
}

// WithPath records the segment file path involved in the failure.
func (e *EngineError) WithPath(path string) *EngineError {
	e.path = path
	return e
}

// WithFileName records the segment file's base name.
func (e *EngineError) WithFileName(name string) *EngineError {
	e.fileName = name
	return e
}

// WithOffset records the byte offset within the segment file involved.
func (e *EngineError) WithOffset(offset int64) *EngineError {
	e.offset = offset
	return e
}

// WithKey records the key being processed when the failure occurred.
func (e *EngineError) WithKey(key string) *EngineError {
	e.key = key
	return e
}

// Path returns the segment file path involved in the failure, if any.
func (e *EngineError) Path() string { return e.path }

// FileName returns the segment file's base name, if any.
func (e *EngineError) FileName() string { return e.fileName }

// Offset returns the byte offset within the segment file involved, if any.
func (e *EngineError) Offset() int64 { return e.offset }

// Key returns the key being processed when the failure occurred, if any.
func (e *EngineError) Key() string { return e.key }

// Constructors below mirror the error kinds named in the storage engine's
// error handling design: one constructor per kind, each returning an
// EngineError ready for WithX chaining.

// NewInvalidPathError reports that Segment.Open was pointed at a path that
// does not exist.
func NewInvalidPathError(path string) *EngineError {
	return newEngineError(nil, CodeInvalidPath, "segment file does not exist").WithPath(path)
}

// NewIoOpenError wraps a failure opening or creating a segment file.
func NewIoOpenError(err error, path string) *EngineError {
	return newEngineError(err, CodeIoOpen, "failed to open segment file").WithPath(path)
}

// NewIoReadError wraps a failure reading from a segment file.
func NewIoReadError(err error, path string) *EngineError {
	return newEngineError(err, CodeIoRead, "failed to read segment file").WithPath(path)
}

// NewIoWriteError wraps a failure appending to a segment file.
func NewIoWriteError(err error, path string) *EngineError {
	return newEngineError(err, CodeIoWrite, "failed to write segment file").WithPath(path)
}

// NewIoSeekError wraps a failure seeking within a segment file.
func NewIoSeekError(err error, path string, offset int64) *EngineError {
	return newEngineError(err, CodeIoSeek, "failed to seek segment file").WithPath(path).WithOffset(offset)
}

// NewIoMetadataError wraps a failure stat-ing a segment file.
func NewIoMetadataError(err error, path string) *EngineError {
	return newEngineError(err, CodeIoMetadata, "failed to stat segment file").WithPath(path)
}

// NewEncodeError wraps a record encoding failure.
func NewEncodeError(err error) *EngineError {
	return newEngineError(err, CodeEncodeError, "failed to encode record")
}

// NewDecodeError wraps a record decoding failure: invalid JSON, or a
// missing or wrongly typed cmd or key field.
func NewDecodeError(err error, line string) *EngineError {
	return newEngineError(err, CodeDecodeError, "failed to decode record").WithDetail("line", line)
}

// NewUnknownCmdError reports a decoded record whose cmd is not "set" or "rm".
func NewUnknownCmdError(cmd, path string, offset int64) *EngineError {
	return newEngineError(nil, CodeUnknownCmd, "unrecognized record cmd "+cmd).
		WithPath(path).WithOffset(offset)
}

// NewRemoveNotExistKeyError reports removal of a key the segment does not
// currently hold as live.
func NewRemoveNotExistKeyError(key string) *EngineError {
	return newEngineError(nil, CodeRemoveNotExistKey, "cannot remove key that does not exist").WithKey(key)
}

// NewEmptyFileError reports an operation against a segment with no attached
// file handle.
func NewEmptyFileError(path string) *EngineError {
	return newEngineError(nil, CodeEmptyFile, "segment has no attached file").WithPath(path)
}

// NewEngineClosedError reports an operation attempted against an Engine
// that has already been closed.
func NewEngineClosedError(path string) *EngineError {
	return newEngineError(nil, CodeEngineClosed, "engine is closed").WithPath(path)
}

// NewUnexpectedError reports an invariant violation: premature EOF at an
// indexed offset, or a "set" record decoded with no value.
func NewUnexpectedError(description, path string, offset int64) *EngineError {
	return newEngineError(nil, CodeUnexpected, description).WithPath(path).WithOffset(offset)
}
