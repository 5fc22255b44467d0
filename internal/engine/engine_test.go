package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlogdev/dlog/internal/host"
	"github.com/dlogdev/dlog/internal/journal"
	"github.com/dlogdev/dlog/internal/sink"
)

func TestHitFormatsAndWritesLine(t *testing.T) {
	eng, h, buf := newTestEngine()

	_, err := eng.AddTracepoint("main.c:42", "x={} y={}", []string{"x", "y"})
	require.NoError(t, err)

	h.SetVar("main.c:42", "x", "3")
	h.SetVar("main.c:42", "y", "4")

	signals := h.Fire("main.c:42")
	require.Len(t, signals, 1)
	assert.Equal(t, host.Continue, signals[0])
	assert.Equal(t, "x=3 y=4\n", buf.String())
}

func TestHitAlwaysContinuesOnEvaluationFailure(t *testing.T) {
	eng, h, buf := newTestEngine()

	_, err := eng.AddTracepoint("main.c:42", "x={} y={}", []string{"x", "y"})
	require.NoError(t, err)

	// Only x is visible; y fails to evaluate
	h.SetVar("main.c:42", "x", "3")

	signals := h.Fire("main.c:42")
	require.Len(t, signals, 1)
	assert.Equal(t, host.Continue, signals[0])

	// The hit's line is dropped entirely
	assert.Empty(t, buf.String())
}

func TestHitWithDisabledSink(t *testing.T) {
	eng, h, buf := newTestEngine()

	_, err := eng.AddTracepoint("main.c:42", "x={}", []string{"x"})
	require.NoError(t, err)
	h.SetVar("main.c:42", "x", "3")

	require.NoError(t, eng.Sink().Set(sink.DestNone))

	signals := h.Fire("main.c:42")
	require.Len(t, signals, 1)
	assert.Equal(t, host.Continue, signals[0])
	assert.Empty(t, buf.String())

	// Registry operations still function against stored definitions
	assert.Len(t, eng.Registry().List(), 1)
}

func TestHitStampsClock(t *testing.T) {
	eng, h, _ := newTestEngine()

	_, err := eng.AddTracepoint("main.c:42", "hit", nil)
	require.NoError(t, err)

	h.Fire("main.c:42")
	h.Fire("main.c:42")
	assert.Equal(t, int64(2), eng.Clock().Current())
}

func TestHitJournalsEmittedLines(t *testing.T) {
	jnl, err := journal.Open(filepath.Join(t.TempDir(), "hits.db"))
	require.NoError(t, err)
	defer jnl.Close()

	h := host.NewScriptedHost()
	snk := sink.New(nil)
	require.NoError(t, snk.Set(sink.DestNone))
	eng := New(h, snk, WithJournal(jnl))

	_, err = eng.AddTracepoint("main.c:42", "x={}", []string{"x"})
	require.NoError(t, err)
	h.SetVar("main.c:42", "x", "3")

	h.Fire("main.c:42")
	h.SetVar("main.c:42", "x", "4")
	h.Fire("main.c:42")

	// Journaling is independent of the disabled sink
	hits, err := jnl.ReadHits(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, int64(1), hits[0].Seq)
	assert.Equal(t, "x=3", hits[0].Line)
	assert.Equal(t, int64(2), hits[1].Seq)
	assert.Equal(t, "x=4", hits[1].Line)
	assert.Equal(t, "main.c:42", hits[1].Location)
}

func TestHitSkipsJournalOnDroppedLine(t *testing.T) {
	jnl, err := journal.Open(filepath.Join(t.TempDir(), "hits.db"))
	require.NoError(t, err)
	defer jnl.Close()

	h := host.NewScriptedHost()
	eng := New(h, sink.New(nil), WithJournal(jnl))

	_, err = eng.AddTracepoint("main.c:42", "x={}", []string{"x"})
	require.NoError(t, err)

	// x is never scripted: evaluation fails, nothing is journaled
	h.Fire("main.c:42")

	count, err := jnl.CountHits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestWithClockResumesSeq(t *testing.T) {
	h := host.NewScriptedHost()
	eng := New(h, sink.New(nil), WithClock(NewClockAt(10)))

	_, err := eng.AddTracepoint("main.c:42", "hit", nil)
	require.NoError(t, err)
	h.Fire("main.c:42")
	assert.Equal(t, int64(11), eng.Clock().Current())
}

func TestRemovedTracepointStopsHitting(t *testing.T) {
	eng, h, buf := newTestEngine()

	_, err := eng.AddTracepoint("main.c:42", "hit", nil)
	require.NoError(t, err)

	require.NoError(t, eng.RemoveAt(0))
	signals := h.Fire("main.c:42")
	assert.Empty(t, signals)
	assert.Empty(t, buf.String())
}

func TestTestLine(t *testing.T) {
	eng, h, _ := newTestEngine()

	h.SelectFrame("main.c:10")
	h.SetVar("main.c:10", "x", "7")

	line, err := eng.TestLine("x={}", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, "x=7", line)
}

func TestTestLineArityMismatch(t *testing.T) {
	eng, h, _ := newTestEngine()
	h.SelectFrame("main.c:10")

	_, err := eng.TestLine("x={} y={}", []string{"x"})
	require.Error(t, err)
	assert.True(t, IsArityError(err))
}

func TestTestLineEvaluationFailure(t *testing.T) {
	eng, h, _ := newTestEngine()
	h.SelectFrame("main.c:10")

	_, err := eng.TestLine("x={}", []string{"x"})
	require.Error(t, err)
	assert.True(t, IsEvaluationError(err))
}

func TestTestLineNoContext(t *testing.T) {
	eng, _, _ := newTestEngine()

	_, err := eng.TestLine("hit", nil)
	require.Error(t, err)
	assert.True(t, IsEvaluationError(err))
}
