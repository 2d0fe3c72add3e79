package segmentset_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivuletdb/rivulet/internal/segment"
	"github.com/rivuletdb/rivulet/internal/segmentset"
)

func TestRotateInstallsFreshMutableAndDemotesOld(t *testing.T) {
	dir := t.TempDir()
	mutable, err := segment.Create(filepath.Join(dir, "data_0"))
	require.NoError(t, err)

	set := segmentset.New(dir, mutable, nil, 1)
	require.NoError(t, set.Rotate())

	require.Equal(t, uint64(2), set.NextID())
	require.Len(t, set.Immutables(), 1)
	require.Equal(t, filepath.Join(dir, "data_0"), set.Immutables()[0].Path())
	require.Equal(t, filepath.Join(dir, "data_1"), set.Mutable().Path())
}

func TestIdentifiersStayDistinctAcrossRotations(t *testing.T) {
	dir := t.TempDir()
	mutable, err := segment.Create(filepath.Join(dir, "data_0"))
	require.NoError(t, err)

	set := segmentset.New(dir, mutable, nil, 1)
	for i := 0; i < 5; i++ {
		require.NoError(t, set.Rotate())
	}

	seen := make(map[string]bool)
	for _, seg := range set.Immutables() {
		require.False(t, seen[seg.Path()])
		seen[seg.Path()] = true
	}
	require.False(t, seen[set.Mutable().Path()])
	require.Greater(t, set.NextID(), uint64(len(set.Immutables())))
}

func TestPopAndPushLastImmutable(t *testing.T) {
	dir := t.TempDir()
	mutable, err := segment.Create(filepath.Join(dir, "data_0"))
	require.NoError(t, err)

	set := segmentset.New(dir, mutable, nil, 1)
	require.NoError(t, set.Rotate())
	require.Len(t, set.Immutables(), 1)

	popped, err := set.PopLastImmutable()
	require.NoError(t, err)
	require.Empty(t, set.Immutables())

	set.PushImmutable(popped)
	require.Len(t, set.Immutables(), 1)
}

func TestPopLastImmutableFailsWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	mutable, err := segment.Create(filepath.Join(dir, "data_0"))
	require.NoError(t, err)

	set := segmentset.New(dir, mutable, nil, 1)
	_, err = set.PopLastImmutable()
	require.Error(t, err)
}

func TestWithLastImmutableReportsNotFoundWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	mutable, err := segment.Create(filepath.Join(dir, "data_0"))
	require.NoError(t, err)

	set := segmentset.New(dir, mutable, nil, 1)
	called := false
	found, err := set.WithLastImmutable(func(seg *segment.Segment) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, found)
	require.False(t, called)
}

func TestWithLastImmutableRunsFnOnLastImmutable(t *testing.T) {
	dir := t.TempDir()
	mutable, err := segment.Create(filepath.Join(dir, "data_0"))
	require.NoError(t, err)

	set := segmentset.New(dir, mutable, nil, 1)
	require.NoError(t, set.Rotate())

	var seenPath string
	found, err := set.WithLastImmutable(func(seg *segment.Segment) error {
		seenPath = seg.Path()
		return nil
	})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, filepath.Join(dir, "data_0"), seenPath)
}
