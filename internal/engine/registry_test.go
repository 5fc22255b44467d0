package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func addN(t *testing.T, eng *Engine, n int) []*Tracepoint {
	t.Helper()
	tps := make([]*Tracepoint, n)
	for i := range tps {
		tp, err := eng.AddTracepoint(fmt.Sprintf("file.c:%d", i+1), fmt.Sprintf("tp%d", i), nil)
		require.NoError(t, err)
		tps[i] = tp
	}
	return tps
}

func TestRegistryListOrder(t *testing.T) {
	eng, _, _ := newTestEngine()
	addN(t, eng, 3)

	entries := eng.Registry().List()
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i, e.Index)
		assert.Equal(t, fmt.Sprintf("file.c:%d", i+1), e.Location)
		assert.Equal(t, fmt.Sprintf("tp%d", i), e.Template)
	}
}

func TestRegistryRemoveAtShiftsIndices(t *testing.T) {
	eng, h, _ := newTestEngine()
	tps := addN(t, eng, 3)

	require.NoError(t, eng.RemoveAt(1))
	assert.False(t, h.IsBound(tps[1].Handle()))
	assert.True(t, h.IsBound(tps[0].Handle()))
	assert.True(t, h.IsBound(tps[2].Handle()))

	entries := eng.Registry().List()
	require.Len(t, entries, 2)
	assert.Equal(t, "file.c:1", entries[0].Location)
	assert.Equal(t, 0, entries[0].Index)
	assert.Equal(t, "file.c:3", entries[1].Location)
	assert.Equal(t, 1, entries[1].Index)
}

func TestRegistryRemoveAtOutOfRange(t *testing.T) {
	eng, h, _ := newTestEngine()
	addN(t, eng, 2)

	for _, index := range []int{-1, 2, 100} {
		err := eng.RemoveAt(index)
		require.Error(t, err, "index %d", index)
		assert.True(t, IsIndexError(err))
	}

	// Failed removals mutate nothing
	assert.Equal(t, 2, eng.Registry().Len())
	assert.Equal(t, 2, h.BoundCount())
}

func TestRegistryRemoveAtProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(t, "n")
		index := rapid.IntRange(-2, 8).Draw(t, "index")

		eng, _, _ := newTestEngine()
		tps := make([]*Tracepoint, n)
		for i := range tps {
			tp, err := eng.AddTracepoint(fmt.Sprintf("f.c:%d", i), "hit", nil)
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			tps[i] = tp
		}

		err := eng.RemoveAt(index)
		if index >= 0 && index < n {
			if err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if got := eng.Registry().Len(); got != n-1 {
				t.Fatalf("expected %d entries, got %d", n-1, got)
			}
		} else {
			if !IsIndexError(err) {
				t.Fatalf("expected index error, got %v", err)
			}
			if got := eng.Registry().Len(); got != n {
				t.Fatalf("expected %d entries, got %d", n, got)
			}
		}
	})
}

func TestRegistryRemoveAllIsIdempotent(t *testing.T) {
	eng, h, _ := newTestEngine()
	addN(t, eng, 3)

	eng.RemoveAll()
	assert.Equal(t, 0, eng.Registry().Len())
	assert.Equal(t, 0, h.BoundCount())

	// Second call on an empty registry succeeds trivially
	eng.RemoveAll()
	assert.Equal(t, 0, eng.Registry().Len())
}

func TestRegistryListOmitsDeadEntries(t *testing.T) {
	eng, h, _ := newTestEngine()
	tps := addN(t, eng, 3)

	// Binding destroyed out-of-band by the host
	h.Destroy(tps[1].Handle())

	entries := eng.Registry().List()
	require.Len(t, entries, 2)
	assert.Equal(t, "file.c:1", entries[0].Location)
	assert.Equal(t, "file.c:3", entries[1].Location)

	// Subsequent removal indices refer to the remaining live entries
	require.NoError(t, eng.RemoveAt(1))
	assert.False(t, h.IsBound(tps[2].Handle()))

	entries = eng.Registry().List()
	require.Len(t, entries, 1)
	assert.Equal(t, "file.c:1", entries[0].Location)
}

func TestRegistryRemoveAllToleratesDeadEntries(t *testing.T) {
	eng, h, _ := newTestEngine()
	tps := addN(t, eng, 2)

	h.Destroy(tps[0].Handle())
	eng.RemoveAll()
	assert.Equal(t, 0, eng.Registry().Len())
	assert.False(t, h.IsBound(tps[1].Handle()))
}
