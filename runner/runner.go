package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hupe1980/agentville/agent"
	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/internal/util"
	"github.com/hupe1980/agentville/logging"
	"github.com/hupe1980/agentville/memory"
	"github.com/hupe1980/agentville/world"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// TickInterval is how much simulated time passes per tick.
	TickInterval time.Duration
	// StartTime is the simulated clock at tick zero.
	StartTime time.Time
	// Index, when set, mirrors every placed event into SQLite.
	Index *memory.SQLiteIndex
	// Logger receives per-tick output. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Runner steps all registered agents once per tick and applies their
// actions to the world. Step is not safe for concurrent use: one step must
// finish before the next begins, mirroring the per-agent tick discipline.
type Runner struct {
	world  *world.Grid
	agents []*agent.Orchestrator
	byName map[string]*agent.Orchestrator

	// position holds the tile each agent will occupy at its next tick, fed
	// by the previous action's movement target.
	position map[string]core.Coord

	runID        string
	tick         uint64
	clock        time.Time
	tickInterval time.Duration

	index  *memory.SQLiteIndex
	logger logging.Logger
}

// New constructs a Runner over a loaded world with optional overrides.
func New(w *world.Grid, optFns ...func(o *Options)) *Runner {
	opts := Options{
		TickInterval: 10 * time.Second,
		StartTime:    time.Date(2023, time.February, 13, 8, 0, 0, 0, time.UTC),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Runner{
		world:        w,
		byName:       make(map[string]*agent.Orchestrator),
		position:     make(map[string]core.Coord),
		runID:        util.NewID(),
		clock:        opts.StartTime,
		tickInterval: opts.TickInterval,
		index:        opts.Index,
		logger:       opts.Logger,
	}
}

// RunID returns the stable identifier of this simulation run.
func (r *Runner) RunID() string { return r.runID }

// Tick returns the number of completed steps.
func (r *Runner) Tick() uint64 { return r.tick }

// Clock returns the current simulated time.
func (r *Runner) Clock() time.Time { return r.clock }

// Register adds an agent to the run, starting it at the tile recorded in
// its working state.
func (r *Runner) Register(a *agent.Orchestrator) error {
	if _, exists := r.byName[a.Name()]; exists {
		return fmt.Errorf("agent %s already registered", a.Name())
	}
	r.byName[a.Name()] = a
	r.agents = append(r.agents, a)
	r.position[a.Name()] = a.CurrentTile()
	return nil
}

// Step advances the clock by one tick interval and runs every agent's tick
// in registration order, applying each action to the world before the next
// agent runs. A failing tick aborts the step and surfaces the error; the
// world keeps the mutations applied so far.
func (r *Runner) Step(ctx context.Context) error {
	r.tick++
	r.clock = r.clock.Add(r.tickInterval)

	peers := make(map[string]core.Peer, len(r.agents))
	for _, a := range r.agents {
		peers[a.Name()] = a
	}

	for _, a := range r.agents {
		// The agent's event sits wherever the last action placed it.
		pos := r.position[a.Name()]

		start := time.Now()
		action, err := a.Tick(ctx, r.world, peers, pos, r.clock)
		r.logTick(a.Name(), time.Since(start), err)
		if err != nil {
			return fmt.Errorf("tick %d agent %s: %w", r.tick, a.Name(), err)
		}

		if err := r.apply(a.Name(), pos, action); err != nil {
			return fmt.Errorf("tick %d agent %s: apply action: %w", r.tick, a.Name(), err)
		}
	}

	return nil
}

// tickLogger is implemented by loggers that record tick outcomes as
// structured entries, like logging.SimLogger.
type tickLogger interface {
	LogTick(agent string, tick uint64, dur time.Duration, success bool, err error)
}

func (r *Runner) logTick(agent string, dur time.Duration, err error) {
	if tl, ok := r.logger.(tickLogger); ok {
		tl.LogTick(agent, r.tick, dur, err == nil, err)
		return
	}
	if err != nil {
		r.logger.Error("tick failed run_id=%s tick=%d agent=%s err=%v", r.runID, r.tick, agent, err)
		return
	}
	r.logger.Debug("tick ok run_id=%s tick=%d agent=%s took=%s", r.runID, r.tick, agent, dur)
}

// apply places the agent's event at its target tile and clears its traces
// from the tile it left. This is the single writer the grid's event
// operations rely on.
func (r *Runner) apply(name string, prev core.Coord, action core.Action) error {
	subject := core.Address(name)

	if err := r.world.RemoveSubjectEvents(subject, prev); err != nil {
		return err
	}
	if err := r.world.AddEvent(action.Event, action.Target); err != nil {
		return err
	}
	r.position[name] = action.Target

	if r.index != nil {
		if err := r.index.RecordEvent(r.runID, r.tick, name, action.Event, action.Target); err != nil {
			// The mirror is best-effort; the authoritative state already moved on.
			r.logger.Warn("event mirror failed run_id=%s tick=%d agent=%s err=%v", r.runID, r.tick, name, err)
		}
	}
	return nil
}

// Run executes steps ticks, stopping early on context cancellation or the
// first failing step.
func (r *Runner) Run(ctx context.Context, steps int) error {
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := r.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// SaveAll persists every agent's snapshot under dir, one folder per agent.
// Stores are written independently; there is no cross-agent or cross-store
// atomicity.
func (r *Runner) SaveAll(dir string) error {
	for _, a := range r.agents {
		if err := a.Save(filepath.Join(dir, a.Name())); err != nil {
			return fmt.Errorf("save agent %s: %w", a.Name(), err)
		}
	}
	return nil
}
