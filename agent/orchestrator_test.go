package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/internal/testutil"
)

type mockPerceiver struct{ mock.Mock }

func (m *mockPerceiver) Perceive(ctx context.Context, w core.WorldReader) ([]core.PerceivedEvent, error) {
	args := m.Called(ctx, w)
	if v := args.Get(0); v != nil {
		return v.([]core.PerceivedEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRetriever struct{ mock.Mock }

func (m *mockRetriever) Retrieve(ctx context.Context, perceived []core.PerceivedEvent) ([]core.Retrieved, error) {
	args := m.Called(ctx, perceived)
	if v := args.Get(0); v != nil {
		return v.([]core.Retrieved), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPlanner struct{ mock.Mock }

func (m *mockPlanner) Plan(ctx context.Context, w core.WorldReader, peers map[string]core.Peer, day core.DaySignal, retrieved []core.Retrieved) (core.Plan, error) {
	args := m.Called(ctx, w, peers, day, retrieved)
	return args.Get(0).(core.Plan), args.Error(1)
}

type mockReflector struct{ mock.Mock }

func (m *mockReflector) Reflect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockExecutor struct{ mock.Mock }

func (m *mockExecutor) Execute(ctx context.Context, w core.WorldReader, peers map[string]core.Peer, plan core.Plan) (core.Action, error) {
	args := m.Called(ctx, w, peers, plan)
	return args.Get(0).(core.Action), args.Error(1)
}

type mockConversation struct{ mock.Mock }

func (m *mockConversation) Open(ctx context.Context, mode core.ConvoMode) error {
	return m.Called(ctx, mode).Error(0)
}

type mockSet struct {
	perceiver    *mockPerceiver
	retriever    *mockRetriever
	planner      *mockPlanner
	reflector    *mockReflector
	executor     *mockExecutor
	conversation *mockConversation
}

func newMockSet() mockSet {
	return mockSet{
		perceiver:    &mockPerceiver{},
		retriever:    &mockRetriever{},
		planner:      &mockPlanner{},
		reflector:    &mockReflector{},
		executor:     &mockExecutor{},
		conversation: &mockConversation{},
	}
}

func (s mockSet) capabilities() Capabilities {
	return Capabilities{
		Perceiver:    s.perceiver,
		Retriever:    s.retriever,
		Planner:      s.planner,
		Reflector:    s.reflector,
		Executor:     s.executor,
		Conversation: s.conversation,
	}
}

// happyPath wires every mock to succeed with empty results.
func (s mockSet) happyPath() {
	s.perceiver.On("Perceive", mock.Anything, mock.Anything).Return([]core.PerceivedEvent{}, nil)
	s.retriever.On("Retrieve", mock.Anything, mock.Anything).Return([]core.Retrieved{}, nil)
	s.planner.On("Plan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(core.Plan{Description: "idling"}, nil)
	s.reflector.On("Reflect", mock.Anything).Return(nil)
	s.executor.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(core.Action{Description: "idling"}, nil)
}

func TestNewValidation(t *testing.T) {
	caps := newMockSet().capabilities()

	t.Run("missing store", func(t *testing.T) {
		stores := NewStores()
		stores.Scratch = nil
		_, err := New("Klaus", stores, caps)
		assert.Error(t, err)
	})

	t.Run("missing capability", func(t *testing.T) {
		incomplete := caps
		incomplete.Reflector = nil
		_, err := New("Klaus", NewStores(), incomplete)
		assert.Error(t, err)
	})

	t.Run("complete", func(t *testing.T) {
		o, err := New("Klaus", NewStores(), caps)
		require.NoError(t, err)
		assert.Equal(t, "Klaus", o.Name())
	})
}

func TestDaySignal(t *testing.T) {
	base := time.Date(2023, time.February, 13, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, core.FirstDay, daySignal(time.Time{}, false, base))
	assert.Equal(t, core.NoSignal, daySignal(base, true, base.Add(10*time.Minute)))
	assert.Equal(t, core.NewDay, daySignal(base, true, base.Add(24*time.Hour)))
	// A day boundary counts even when less than 24h elapsed.
	lateNight := time.Date(2023, time.February, 13, 23, 55, 0, 0, time.UTC)
	assert.Equal(t, core.NewDay, daySignal(lateNight, true, lateNight.Add(10*time.Minute)))
}

func TestTickDaySignalSequence(t *testing.T) {
	set := newMockSet()
	set.happyPath()

	var days []core.DaySignal
	set.planner.ExpectedCalls = nil
	set.planner.On("Plan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			days = append(days, args.Get(3).(core.DaySignal))
		}).
		Return(core.Plan{Description: "idling"}, nil)

	o, err := New("Klaus", NewStores(), set.capabilities())
	require.NoError(t, err)

	g := testutil.TownGrid(t)
	pos := core.Coord{X: 0, Y: 0}
	t1 := time.Date(2023, time.February, 13, 8, 0, 0, 0, time.UTC)

	for _, now := range []time.Time{t1, t1.Add(10 * time.Minute), t1.Add(26 * time.Hour)} {
		_, err := o.Tick(context.Background(), g, nil, pos, now)
		require.NoError(t, err)
	}

	assert.Equal(t, []core.DaySignal{core.FirstDay, core.NoSignal, core.NewDay}, days)
}

func TestTickPipelineOrderAndResult(t *testing.T) {
	set := newMockSet()

	perceived := []core.PerceivedEvent{{Event: core.NewIdleEvent("Town:park:bench:chessboard")}}
	retrieved := []core.Retrieved{{Focal: core.PerceivedEvent{Event: core.NewIdleEvent("Town:park:bench:chessboard")}}}
	plan := core.Plan{Address: "Town:park:bench:chessboard", Description: "playing chess", DurationMin: 30}
	action := core.Action{Target: core.Coord{X: 1, Y: 1}, Description: "playing chess"}

	set.perceiver.On("Perceive", mock.Anything, mock.Anything).Return(perceived, nil)
	set.retriever.On("Retrieve", mock.Anything, perceived).Return(retrieved, nil)
	set.planner.On("Plan", mock.Anything, mock.Anything, mock.Anything, core.FirstDay, retrieved).Return(plan, nil)
	set.reflector.On("Reflect", mock.Anything).Return(nil)
	set.executor.On("Execute", mock.Anything, mock.Anything, mock.Anything, plan).Return(action, nil)

	o, err := New("Klaus", NewStores(), set.capabilities())
	require.NoError(t, err)

	got, err := o.Tick(context.Background(), testutil.TownGrid(t), nil, core.Coord{X: 0, Y: 0}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, action, got)

	set.perceiver.AssertExpectations(t)
	set.retriever.AssertExpectations(t)
	set.planner.AssertExpectations(t)
	set.reflector.AssertExpectations(t)
	set.executor.AssertExpectations(t)
}

func TestTickPlanFailureShortCircuits(t *testing.T) {
	set := newMockSet()
	cause := errors.New("model unavailable")

	set.perceiver.On("Perceive", mock.Anything, mock.Anything).Return([]core.PerceivedEvent{}, nil)
	set.retriever.On("Retrieve", mock.Anything, mock.Anything).Return([]core.Retrieved{}, nil)
	set.planner.On("Plan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(core.Plan{}, cause)

	o, err := New("Klaus", NewStores(), set.capabilities())
	require.NoError(t, err)

	pos := core.Coord{X: 2, Y: 1}
	now := time.Date(2023, time.February, 13, 8, 0, 0, 0, time.UTC)
	_, err = o.Tick(context.Background(), testutil.TownGrid(t), nil, pos, now)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrCollaborator)
	assert.ErrorIs(t, err, cause)

	var collabErr *core.CollaboratorError
	require.True(t, errors.As(err, &collabErr))
	assert.Equal(t, core.StagePlan, collabErr.Stage)

	// Later stages never ran.
	set.reflector.AssertNotCalled(t, "Reflect", mock.Anything)
	set.executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Working state written before the failure stays written.
	assert.Equal(t, pos, o.CurrentTile())
	stored, ok := o.Stores().Scratch.CurrentTime()
	require.True(t, ok)
	assert.Equal(t, now, stored)
}

func TestTickPerceiveFailureNamesStage(t *testing.T) {
	set := newMockSet()
	set.perceiver.On("Perceive", mock.Anything, mock.Anything).Return(nil, errors.New("blind"))

	o, err := New("Klaus", NewStores(), set.capabilities())
	require.NoError(t, err)

	_, err = o.Tick(context.Background(), testutil.TownGrid(t), nil, core.Coord{}, time.Now())
	var collabErr *core.CollaboratorError
	require.True(t, errors.As(err, &collabErr))
	assert.Equal(t, core.StagePerceive, collabErr.Stage)

	set.retriever.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything)
	set.planner.AssertNotCalled(t, "Plan", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveWritesAllStores(t *testing.T) {
	set := newMockSet()
	o, err := New("Klaus", NewStores(), set.capabilities())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, o.Save(dir))

	for _, name := range []string{spatialFile, scratchFile, filepath.Join(associativeDir, "nodes.json")} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestLoadStores(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		dir := testutil.WriteSnapshot(t, t.TempDir())
		stores, err := LoadStores(dir)
		require.NoError(t, err)
		assert.NotNil(t, stores.Spatial)
		assert.NotNil(t, stores.Associative)
		assert.NotNil(t, stores.Scratch)
	})

	t.Run("missing folder is corrupt", func(t *testing.T) {
		_, err := LoadStores(filepath.Join(t.TempDir(), "nobody"))
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrCorruptSnapshot)

		var snapErr *core.SnapshotError
		require.True(t, errors.As(err, &snapErr))
		assert.Equal(t, "spatial", snapErr.Store)
	})

	t.Run("corrupt scratch is corrupt", func(t *testing.T) {
		dir := testutil.WriteSnapshot(t, t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(dir, scratchFile), []byte("{not json"), 0o600))

		_, err := LoadStores(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrCorruptSnapshot)

		var snapErr *core.SnapshotError
		require.True(t, errors.As(err, &snapErr))
		assert.Equal(t, "scratch", snapErr.Store)
	})
}

func TestOpenConversation(t *testing.T) {
	set := newMockSet()
	set.conversation.On("Open", mock.Anything, core.ConvoWhisper).Return(errors.New("no backend"))

	o, err := New("Klaus", NewStores(), set.capabilities())
	require.NoError(t, err)

	err = o.OpenConversation(context.Background(), core.ConvoWhisper)
	require.Error(t, err)

	var collabErr *core.CollaboratorError
	require.True(t, errors.As(err, &collabErr))
	assert.Equal(t, core.StageConverse, collabErr.Stage)
}
