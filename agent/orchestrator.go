package agent

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/logging"
)

// Capabilities is the injected cognitive-module set. Every field must be
// non-nil; the orchestrator forwards to them without interpreting their
// behavior.
type Capabilities struct {
	Perceiver    core.Perceiver
	Retriever    core.Retriever
	Planner      core.Planner
	Reflector    core.Reflector
	Executor     core.Executor
	Conversation core.ConversationEngine
}

// Options holds optional overrides passed to New().
type Options struct {
	// Logger receives per-stage debug output. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Orchestrator sequences one agent's tick pipeline and tracks its working
// state. It never mutates the world grid: the returned action is applied by
// the driver.
type Orchestrator struct {
	name   string
	stores Stores
	caps   Capabilities
	logger logging.Logger
}

// New constructs an orchestrator from loaded stores and a capability set.
// Use LoadStores to read the stores from a snapshot folder first; loading
// and construction are separate so tests and bootstrap paths can inject
// in-memory stores directly.
func New(name string, stores Stores, caps Capabilities, optFns ...func(o *Options)) (*Orchestrator, error) {
	if stores.Spatial == nil || stores.Associative == nil || stores.Scratch == nil {
		return nil, fmt.Errorf("agent %s: all three memory stores are required", name)
	}
	if caps.Perceiver == nil || caps.Retriever == nil || caps.Planner == nil ||
		caps.Reflector == nil || caps.Executor == nil || caps.Conversation == nil {
		return nil, fmt.Errorf("agent %s: incomplete capability set", name)
	}

	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Orchestrator{name: name, stores: stores, caps: caps, logger: opts.Logger}, nil
}

// Name returns the agent's identity.
func (o *Orchestrator) Name() string { return o.name }

// CurrentTile returns the agent's tile as of the last tick.
func (o *Orchestrator) CurrentTile() core.Coord { return o.stores.Scratch.CurrentTile() }

// Stores exposes the agent's memory stores to the driver and to cognitive
// modules constructed after the orchestrator.
func (o *Orchestrator) Stores() Stores { return o.stores }

// daySignal compares the calendar day of the previously stored time with
// now. The clock itself is not consulted; only the tick-supplied times
// matter.
func daySignal(prev time.Time, hasPrev bool, now time.Time) core.DaySignal {
	if !hasPrev {
		return core.FirstDay
	}
	py, pm, pd := prev.Date()
	ny, nm, nd := now.Date()
	if py != ny || pm != nm || pd != nd {
		return core.NewDay
	}
	return core.NoSignal
}

// Tick runs one simulation step: it records the agent's new position and
// time, derives the day signal, then runs perceive → retrieve → plan →
// reflect → execute in that fixed order. A failure at any step aborts the
// remaining steps and surfaces as a CollaboratorError naming the stage.
//
// The position and time written before a failure are deliberately not
// rolled back; callers must not assume a failed tick leaves working state
// unchanged.
func (o *Orchestrator) Tick(
	ctx context.Context,
	world core.WorldReader,
	peers map[string]core.Peer,
	position core.Coord,
	now time.Time,
) (core.Action, error) {
	o.stores.Scratch.SetCurrentTile(position)

	prev, hasPrev := o.stores.Scratch.CurrentTime()
	day := daySignal(prev, hasPrev, now)
	o.stores.Scratch.SetCurrentTime(now)

	o.logger.Debug("tick start agent=%s tile=%s day=%s", o.name, position, day)

	perceived, err := o.caps.Perceiver.Perceive(ctx, world)
	if err != nil {
		return core.Action{}, &core.CollaboratorError{Stage: core.StagePerceive, Err: err}
	}

	retrieved, err := o.caps.Retriever.Retrieve(ctx, perceived)
	if err != nil {
		return core.Action{}, &core.CollaboratorError{Stage: core.StageRetrieve, Err: err}
	}

	plan, err := o.caps.Planner.Plan(ctx, world, peers, day, retrieved)
	if err != nil {
		return core.Action{}, &core.CollaboratorError{Stage: core.StagePlan, Err: err}
	}

	// Reflection runs after every successful plan regardless of its content.
	if err := o.caps.Reflector.Reflect(ctx); err != nil {
		return core.Action{}, &core.CollaboratorError{Stage: core.StageReflect, Err: err}
	}

	action, err := o.caps.Executor.Execute(ctx, world, peers, plan)
	if err != nil {
		return core.Action{}, &core.CollaboratorError{Stage: core.StageExecute, Err: err}
	}

	o.logger.Debug("tick done agent=%s target=%s action=%q", o.name, action.Target, action.Description)

	return action, nil
}

// Save serializes the three memory stores into the snapshot folder. Stores
// are written independently, spatial first, scratch last; a failure returns
// immediately and may leave the folder with a mixed set of old and new
// sub-resources.
func (o *Orchestrator) Save(dir string) error {
	if err := o.stores.Spatial.Save(filepath.Join(dir, spatialFile)); err != nil {
		return fmt.Errorf("save spatial store: %w", err)
	}
	if err := o.stores.Associative.Save(filepath.Join(dir, associativeDir)); err != nil {
		return fmt.Errorf("save associative store: %w", err)
	}
	if err := o.stores.Scratch.Save(filepath.Join(dir, scratchFile)); err != nil {
		return fmt.Errorf("save scratch store: %w", err)
	}
	return nil
}

// OpenConversation delegates to the conversation engine. The engine may
// mutate associative memory as a side effect.
func (o *Orchestrator) OpenConversation(ctx context.Context, mode core.ConvoMode) error {
	if err := o.caps.Conversation.Open(ctx, mode); err != nil {
		return &core.CollaboratorError{Stage: core.StageConverse, Err: err}
	}
	return nil
}

var _ core.Peer = (*Orchestrator)(nil)
