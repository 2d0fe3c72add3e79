package compaction_test

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivuletdb/rivulet/internal/compaction"
	"github.com/rivuletdb/rivulet/internal/segment"
	"github.com/rivuletdb/rivulet/internal/segmentset"
	"github.com/rivuletdb/rivulet/pkg/logger"
)

func TestCompactionReducesSizeAndPreservesLatestValues(t *testing.T) {
	dir := t.TempDir()

	data0, err := segment.Create(filepath.Join(dir, "data_0"))
	require.NoError(t, err)

	data1, err := segment.Create(filepath.Join(dir, "data_1"))
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		require.NoError(t, data1.Set("key1", strconv.Itoa(i)))
	}
	for i := 0; i < 500; i++ {
		require.NoError(t, data1.Set("key2", strconv.Itoa(i)))
	}

	sizeBefore, err := data1.Len()
	require.NoError(t, err)

	set := segmentset.New(dir, data1, []*segment.Segment{data0}, 2)

	compactor := compaction.New(logger.Noop())
	require.NoError(t, compactor.Compact(set))

	require.Equal(t, uint64(3), set.NextID())

	immutables := set.Immutables()
	require.Len(t, immutables, 2)

	rewritten := immutables[1]
	sizeAfter, err := rewritten.Len()
	require.NoError(t, err)
	require.Less(t, sizeAfter, sizeBefore)

	v1, err := rewritten.Get("key1")
	require.NoError(t, err)
	require.Equal(t, "499", *v1)

	v2, err := rewritten.Get("key2")
	require.NoError(t, err)
	require.Equal(t, "499", *v2)
}

// Compact's Phase A always rotates before Phase B looks for something to
// scan, so starting from zero immutables still succeeds: the rotation
// itself supplies the (empty) segment Phase B scans and Phase C rewrites.
func TestCompactFromZeroImmutablesSucceeds(t *testing.T) {
	dir := t.TempDir()
	mutable, err := segment.Create(filepath.Join(dir, "data_0"))
	require.NoError(t, err)

	set := segmentset.New(dir, mutable, nil, 1)
	compactor := compaction.New(logger.Noop())
	require.NoError(t, compactor.Compact(set))

	require.Len(t, set.Immutables(), 1)
	require.Equal(t, filepath.Join(dir, "data_1"), set.Mutable().Path())
}
