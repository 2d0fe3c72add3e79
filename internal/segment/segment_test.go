package segment_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivuletdb/rivulet/internal/segment"
	"github.com/rivuletdb/rivulet/pkg/errors"
)

func TestCRUDInOneSegment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_0")
	seg, err := segment.Create(path)
	require.NoError(t, err)

	require.NoError(t, seg.Set("key1", "value1"))
	require.NoError(t, seg.Set("key2", "value2"))
	require.NoError(t, seg.Set("key3", "value3"))

	v1, err := seg.Get("key1")
	require.NoError(t, err)
	require.Equal(t, "value1", *v1)

	v3, err := seg.Get("key3")
	require.NoError(t, err)
	require.Equal(t, "value3", *v3)

	require.NoError(t, seg.Remove("key3"))
	v3, err = seg.Get("key3")
	require.NoError(t, err)
	require.Nil(t, v3)
	require.NoError(t, seg.Close())

	reopened, err := segment.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v1, err = reopened.Get("key1")
	require.NoError(t, err)
	require.Equal(t, "value1", *v1)

	v2, err := reopened.Get("key2")
	require.NoError(t, err)
	require.Equal(t, "value2", *v2)

	v3, err = reopened.Get("key3")
	require.NoError(t, err)
	require.Nil(t, v3)
}

func TestRemoveThenRecoverKeepsTombstone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_0")
	seg, err := segment.Create(path)
	require.NoError(t, err)

	require.NoError(t, seg.Set("a", "1"))
	require.NoError(t, seg.Remove("a"))
	require.NoError(t, seg.Close())

	reopened, err := segment.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get("a")
	require.NoError(t, err)
	require.Nil(t, v)
	require.True(t, reopened.ContainsKey("a"))
}

func TestRemoveUnknownKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_0")
	seg, err := segment.Create(path)
	require.NoError(t, err)
	defer seg.Close()

	err = seg.Remove("missing")
	require.Error(t, err)
	require.Equal(t, errors.CodeRemoveNotExistKey, errors.CodeOf(err))
}

func TestRemoveAlreadyRemovedFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_0")
	seg, err := segment.Create(path)
	require.NoError(t, err)
	defer seg.Close()

	require.NoError(t, seg.Set("a", "1"))
	require.NoError(t, seg.Remove("a"))

	err = seg.Remove("a")
	require.Error(t, err)
	require.Equal(t, errors.CodeRemoveNotExistKey, errors.CodeOf(err))
}

func TestOpenMissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_0")
	_, err := segment.Open(path)
	require.Error(t, err)
	require.Equal(t, errors.CodeInvalidPath, errors.CodeOf(err))
}

func TestScanReturnsLiveAndTombstone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_0")
	seg, err := segment.Create(path)
	require.NoError(t, err)
	defer seg.Close()

	require.NoError(t, seg.Set("a", "1"))
	require.NoError(t, seg.Set("b", "2"))
	require.NoError(t, seg.Remove("a"))

	lines, err := seg.Scan()
	require.NoError(t, err)
	require.Len(t, lines, 2)
}

func TestLenGrowsWithAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data_0")
	seg, err := segment.Create(path)
	require.NoError(t, err)
	defer seg.Close()

	before, err := seg.Len()
	require.NoError(t, err)
	require.Zero(t, before)

	require.NoError(t, seg.Set("a", "1"))
	after, err := seg.Len()
	require.NoError(t, err)
	require.Greater(t, after, before)
}
