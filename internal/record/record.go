// Package record implements the on-disk command record: a tagged
// {cmd, key, value} triple serialized as one JSON object per line. A
// "set" record always carries a value; an "rm" record never does.
package record

import (
	"encoding/json"
	"strings"

	"github.com/rivuletdb/rivulet/pkg/errors"
)

// Cmd identifies the kind of command a Record represents.
type Cmd string

const (
	// CmdSet marks a record that sets a key to a value.
	CmdSet Cmd = "set"
	// CmdRemove marks a record that tombstones a key.
	CmdRemove Cmd = "rm"
)

// Record is a single command in the log: cmd="set" requires Value to be
// present, cmd="rm" requires Value to be absent.
type Record struct {
	Cmd   Cmd     `json:"cmd"`
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// NewSet builds a "set" record for key/value.
func NewSet(key, value string) Record {
	return Record{Cmd: CmdSet, Key: key, Value: &value}
}

// NewRemove builds an "rm" record for key.
func NewRemove(key string) Record {
	return Record{Cmd: CmdRemove, Key: key, Value: nil}
}

// Encode serializes r as a single line of JSON, with no trailing newline.
// Encoding is total for well-formed records — it only fails if the key or
// value somehow can't round-trip through encoding/json, which does not
// happen for plain Go strings.
func Encode(r Record) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", errors.NewEncodeError(err)
	}
	return string(b), nil
}

// Decode parses a single record line. line may carry a trailing newline;
// it is trimmed before parsing. Decode fails with a DecodeError when the
// line is not valid JSON, or when cmd or key are missing or of the wrong
// type. Decode accepts any cmd string: unknown cmd values are caught later
// by the replay/read protocols, which need the record's position to
// report UnknownCmd with file context.
func Decode(line string) (Record, error) {
	trimmed := strings.TrimRight(line, "\n")

	var raw struct {
		Cmd   *string `json:"cmd"`
		Key   *string `json:"key"`
		Value *string `json:"value"`
	}
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return Record{}, errors.NewDecodeError(err, trimmed)
	}
	if raw.Cmd == nil || raw.Key == nil {
		return Record{}, errors.NewDecodeError(nil, trimmed).WithDetail("reason", "missing cmd or key")
	}

	return Record{Cmd: Cmd(*raw.Cmd), Key: *raw.Key, Value: raw.Value}, nil
}
