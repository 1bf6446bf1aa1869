package cognition

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/logging"
)

func newReflector(s townSetup, m *stubModel, threshold float64) *Reflector {
	return &Reflector{name: "Klaus", stream: s.stream, model: m, threshold: threshold, logger: logging.NoOpLogger{}}
}

func seedEvents(s townSetup, n int, poignancy float64) {
	for i := 0; i < n; i++ {
		s.stream.AddRecord(core.MemoryRecord{Kind: "event", Description: "watched a chess game", Poignancy: poignancy})
	}
}

func TestReflectBelowThresholdNoOp(t *testing.T) {
	s := newTownSetup(t)
	m := &stubModel{text: "chess matters"}
	r := newReflector(s, m, 20)

	seedEvents(s, 4, 4) // sum 16 < 20

	require.NoError(t, r.Reflect(context.Background()))
	assert.Equal(t, 0, m.calls)
	assert.Empty(t, s.stream.Latest("thought", 10))
}

func TestReflectSynthesizesThoughts(t *testing.T) {
	s := newTownSetup(t)
	m := &stubModel{text: "Klaus enjoys chess\n\nthe park is lively\nmornings are quiet\na fourth insight"}
	r := newReflector(s, m, 20)

	seedEvents(s, 5, 4) // sum 20 reaches the threshold

	require.NoError(t, r.Reflect(context.Background()))
	assert.Equal(t, 1, m.calls)

	thoughts := s.stream.Latest("thought", 10)
	require.Len(t, thoughts, 3) // capped at three per reflection
	for _, th := range thoughts {
		assert.EqualValues(t, poignancyThought, th.Poignancy)
		assert.Equal(t, core.Address("Klaus"), th.Event.Subject)
		assert.Equal(t, "thinks", th.Event.Predicate)
	}
}

func TestReflectModelFailure(t *testing.T) {
	s := newTownSetup(t)
	cause := errors.New("backend down")
	r := newReflector(s, &stubModel{err: cause}, 1)

	seedEvents(s, 1, 4)

	assert.ErrorIs(t, r.Reflect(context.Background()), cause)
}

func TestThoughtKeywords(t *testing.T) {
	kws := thoughtKeywords("Klaus really enjoys playing chess in the morning, quietly.")
	// Up to three words of five letters or more, trimmed of punctuation.
	assert.Equal(t, []string{"klaus", "really", "enjoys"}, kws)

	assert.Empty(t, thoughtKeywords("so it goes"))
}
