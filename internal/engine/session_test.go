package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pulsenet/internal/ir"
	"github.com/roach88/pulsenet/internal/testutil"
)

func TestUUIDv7Generator_LabelsRecording(t *testing.T) {
	rec := NewRecorder(UUIDv7Generator{}.Generate())

	parsed, err := uuid.Parse(rec.Session)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Equal(t, parsed.String(), rec.Session)
}

func TestUUIDv7Generator_SessionsSortByCreation(t *testing.T) {
	gen := UUIDv7Generator{}

	prev := gen.Generate()
	for i := 0; i < 100; i++ {
		next := gen.Generate()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestRecorder_SessionDoesNotAffectContent(t *testing.T) {
	record := func(session string) *Recorder {
		rec := NewRecorder(session)
		m, err := New(testutil.Counter(), WithObserver(rec))
		require.NoError(t, err)
		m.SendPulse(ir.Low, ir.BroadcasterName)
		return rec
	}

	a := record(UUIDv7Generator{}.Generate())
	b := record(testutil.NewFixedSessionGenerator("").Generate())

	assert.NotEqual(t, a.Session, b.Session)
	assert.Equal(t, a.Text(), b.Text())

	hashA, err := a.Hash()
	require.NoError(t, err)
	hashB, err := b.Hash()
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB)
}
