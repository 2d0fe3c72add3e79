// Package errors provides the structured error type used throughout the
// storage engine. Generic errors tell you "something went wrong"; this
// package tells you what failed, where (which segment file and byte
// offset), and under which recognized failure code, so callers can branch
// on Code() instead of parsing messages, and operators get enough context
// in logs to reproduce a failure without guesswork.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// Is reports whether err is an *EngineError (directly or in its chain).
func Is(err error) bool {
	var ee *EngineError
	return stdErrors.As(err, &ee)
}

// As extracts an *EngineError from an error chain.
func As(err error) (*EngineError, bool) {
	var ee *EngineError
	if stdErrors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// IsValidationError reports whether err is a *ValidationError (directly or
// in its chain).
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// CodeOf extracts the Code from any error that carries one, or
// CodeInternal for errors that don't.
func CodeOf(err error) Code {
	if ee, ok := As(err); ok {
		return ee.Code()
	}
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve.Code()
	}
	return CodeInternal
}

// IsRemoveNotExistKey reports whether err signals the normal "no such key"
// condition from Segment.Remove / Engine.Remove, as opposed to an engine
// fault.
func IsRemoveNotExistKey(err error) bool {
	return CodeOf(err) == CodeRemoveNotExistKey
}

// ClassifyOpenError inspects a failure from os.OpenFile on a segment path
// and returns an EngineError with the most specific code the underlying
// syscall error supports, rather than a generic IO_OPEN for everything.
func ClassifyOpenError(err error, path string) *EngineError {
	if os.IsPermission(err) {
		return newEngineError(err, CodeIoOpen, "permission denied opening segment file").
			WithPath(path).WithDetail("suggestion", "check file and directory permissions")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return newEngineError(err, CodeIoOpen, "insufficient disk space to create segment file").
					WithPath(path)
			case syscall.EROFS:
				return newEngineError(err, CodeIoOpen, "cannot create segment file on read-only filesystem").
					WithPath(path)
			}
		}
	}

	return NewIoOpenError(err, path)
}
