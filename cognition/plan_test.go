package cognition

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/logging"
)

func newPlanner(s townSetup, m *stubModel) *Planner {
	return &Planner{name: "Klaus", scratch: s.scratch, spatial: s.spatial, model: m, logger: logging.NoOpLogger{}}
}

func TestParseActivity(t *testing.T) {
	s := newTownSetup(t)
	p := newPlanner(s, &stubModel{})

	t.Run("full line", func(t *testing.T) {
		plan := p.parseActivity("Town", "park | bench | chessboard | playing chess | 30 | x")
		assert.Equal(t, core.Address("Town:park:bench:chessboard"), plan.Address)
		assert.Equal(t, "playing chess", plan.Description)
		assert.Equal(t, 30, plan.DurationMin)
		assert.Equal(t, "x", plan.Emoji)
	})

	t.Run("only first line is read", func(t *testing.T) {
		plan := p.parseActivity("Town", "park | bench | chessboard | playing chess | 30 | x\nrambling second line")
		assert.Equal(t, "playing chess", plan.Description)
	})

	t.Run("missing optional fields default", func(t *testing.T) {
		plan := p.parseActivity("Town", "park | bench | chessboard | playing chess")
		assert.Equal(t, defaultActDurationMin, plan.DurationMin)
		assert.Empty(t, plan.Emoji)
	})

	t.Run("bad minutes defaults", func(t *testing.T) {
		plan := p.parseActivity("Town", "park | bench | chessboard | playing chess | soon | x")
		assert.Equal(t, defaultActDurationMin, plan.DurationMin)
	})
}

func TestParseActivityFallback(t *testing.T) {
	s := newTownSetup(t)
	p := newPlanner(s, &stubModel{})

	t.Run("no known places idles in place", func(t *testing.T) {
		plan := p.parseActivity("Town", "I would rather not say.")
		assert.Empty(t, plan.Address)
		assert.Equal(t, "idling", plan.Description)
	})

	t.Run("idles at the first known object", func(t *testing.T) {
		s.spatial.AddAddress("Town:park:bench:chessboard")
		plan := p.parseActivity("Town", "I would rather not say.")
		assert.Equal(t, core.Address("Town:park:bench:chessboard"), plan.Address)
		assert.Equal(t, "idling", plan.Description)
	})
}

func TestPlanNewDayBuildsDailyPlan(t *testing.T) {
	s := newTownSetup(t)
	m := &stubModel{text: "wake up\nplay chess in the park\n\nhave dinner"}
	p := newPlanner(s, m)

	s.scratch.ActAddress = "Town:park:bench:chessboard" // stale from yesterday

	_, err := p.Plan(context.Background(), s.grid, nil, core.NewDay, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"wake up", "play chess in the park", "have dinner"}, s.scratch.DailyPlan)
	// One call for the daily plan, one for the next activity: the stale
	// carried-over activity must not survive the day boundary.
	assert.Equal(t, 2, m.calls)
}

func TestPlanContinuesCurrentActivity(t *testing.T) {
	s := newTownSetup(t)
	m := &stubModel{}
	p := newPlanner(s, m)

	now, _ := s.scratch.CurrentTime()
	s.scratch.ActAddress = "Town:park:bench:chessboard"
	s.scratch.ActDescription = "playing chess"
	s.scratch.ActDurationMin = 30
	start := now.Add(-10 * time.Minute)
	s.scratch.ActStart = &start

	plan, err := p.Plan(context.Background(), s.grid, nil, core.NoSignal, nil)
	require.NoError(t, err)

	assert.Equal(t, core.Address("Town:park:bench:chessboard"), plan.Address)
	assert.Equal(t, "playing chess", plan.Description)
	assert.Equal(t, 0, m.calls)
}

func TestPlanExpiredActivityAsksForNext(t *testing.T) {
	s := newTownSetup(t)
	m := &stubModel{text: "park | bench | chessboard | another round | 15 | x"}
	p := newPlanner(s, m)

	now, _ := s.scratch.CurrentTime()
	s.scratch.ActAddress = "Town:park:bench:chessboard"
	s.scratch.ActDurationMin = 30
	start := now.Add(-45 * time.Minute)
	s.scratch.ActStart = &start

	plan, err := p.Plan(context.Background(), s.grid, nil, core.NoSignal, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, m.calls)
	assert.Equal(t, "another round", plan.Description)
	assert.Equal(t, 15, plan.DurationMin)

	// The new activity is recorded in working state with its start time.
	assert.Equal(t, core.Address("Town:park:bench:chessboard"), s.scratch.ActAddress)
	require.NotNil(t, s.scratch.ActStart)
	assert.True(t, s.scratch.ActStart.Equal(now))
}

func TestPlanModelFailure(t *testing.T) {
	s := newTownSetup(t)
	cause := errors.New("backend down")
	p := newPlanner(s, &stubModel{err: cause})

	_, err := p.Plan(context.Background(), s.grid, nil, core.FirstDay, nil)
	assert.ErrorIs(t, err, cause)
}
