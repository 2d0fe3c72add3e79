package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(append([]string{"--dir", dir}, args...))

	var out bytes.Buffer
	root.SetOut(&out)
	err := root.Execute()
	return out.String(), err
}

func TestCLISetGetRm(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "set", "k", "v")
	require.NoError(t, err)

	_, err = run(t, dir, "get", "k")
	require.NoError(t, err)

	_, err = run(t, dir, "rm", "k")
	require.NoError(t, err)
}

func TestCLIGetMissingKeyExitsClean(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "get", "missing")
	require.NoError(t, err)
}
