package errors

// Code represents a standardized way to categorize engine failures
// programmatically, independent of the (human-readable, unstable) message.
type Code string

const (
	// CodeInvalidPath is returned when Segment.Open is pointed at a path
	// that does not exist on disk.
	CodeInvalidPath Code = "INVALID_PATH"

	// CodeIoRead covers failures reading a segment file once open.
	CodeIoRead Code = "IO_READ"

	// CodeIoWrite covers failures appending a record to a segment file.
	CodeIoWrite Code = "IO_WRITE"

	// CodeIoOpen covers failures opening or creating a segment file.
	CodeIoOpen Code = "IO_OPEN"

	// CodeIoSeek covers failures seeking a read or write cursor.
	CodeIoSeek Code = "IO_SEEK"

	// CodeIoMetadata covers failures stat-ing a segment file (Len).
	CodeIoMetadata Code = "IO_METADATA"

	// CodeEncodeError covers record encoding failures (malformed record).
	CodeEncodeError Code = "ENCODE_ERROR"

	// CodeDecodeError covers record decoding failures: invalid JSON, missing
	// required fields, or a value of the wrong type.
	CodeDecodeError Code = "DECODE_ERROR"

	// CodeUnknownCmd is returned when a decoded record's cmd field is not in
	// {"set", "rm"} — a corrupt record.
	CodeUnknownCmd Code = "UNKNOWN_CMD"

	// CodeRemoveNotExistKey is returned when Remove targets a key that is
	// absent from the index or already tombstoned. It is a normal "no such
	// key" signal, not an engine fault.
	CodeRemoveNotExistKey Code = "REMOVE_NOT_EXIST_KEY"

	// CodeEmptyFile names an operation attempted against a segment with no
	// attached file handle. NewEmptyFileError builds it, but no operation
	// in this module returns it: a closed Segment reports IO_SEEK or
	// IO_METADATA errors where it needs its file.
	CodeEmptyFile Code = "EMPTY_FILE"

	// CodeEngineClosed is returned when an operation is attempted against
	// an Engine that has already been closed.
	CodeEngineClosed Code = "ENGINE_CLOSED"

	// CodeUnexpected marks an invariant violation: premature EOF at an
	// indexed offset, or a decoded "set" record with no value.
	CodeUnexpected Code = "UNEXPECTED"

	// CodeInvalidInput marks client-side configuration or argument errors
	// that never reach the storage layer.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeInternal marks unexpected failures that don't fit any other code.
	CodeInternal Code = "INTERNAL_ERROR"
)
