package cognition

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/internal/util"
	"github.com/hupe1980/agentville/logging"
	"github.com/hupe1980/agentville/memory"
	"github.com/hupe1980/agentville/model"
)

const defaultActDurationMin = 60

const dailyPlanPrompt = `You are {{.Name}}, an agent living in {{.World}}.
Today is {{.Date}}. Known sectors: {{join ", " .Sectors}}.
Write a short plan for the day, one activity per line.`

const nextActivityPrompt = `You are {{.Name}}, an agent living in {{.World}}.
It is {{.Time}}. Your plan for today:
{{join "\n" .DailyPlan}}
Recently you noticed: {{join "; " .Noticed}}.
Places you know: {{join ", " .Places}}.
Answer with one line in the form
sector | arena | object | activity description | duration minutes | emoji`

// Planner produces the per-tick plan. On a first or new day it asks the
// reasoning service for a daily plan skeleton; within a day it keeps the
// current activity running until it expires and only then asks for the
// next one.
type Planner struct {
	name    string
	scratch *memory.Scratch
	spatial *memory.SpatialTree
	model   model.Model
	logger  logging.Logger
}

// Plan implements core.Planner.
func (p *Planner) Plan(
	ctx context.Context,
	world core.WorldReader,
	peers map[string]core.Peer,
	day core.DaySignal,
	retrieved []core.Retrieved,
) (core.Plan, error) {
	worldName := p.worldName(world)

	if day != core.NoSignal {
		if err := p.buildDailyPlan(ctx, worldName); err != nil {
			return core.Plan{}, err
		}
	}

	if current, ok := p.currentActivity(); ok {
		return current, nil
	}

	return p.nextActivity(ctx, worldName, retrieved)
}

// worldName resolves the world segment of the agent's current tile.
func (p *Planner) worldName(world core.WorldReader) string {
	a, err := world.AddressOf(p.scratch.CurrentTile(), core.LevelWorld)
	if err != nil {
		return ""
	}
	return string(a)
}

func (p *Planner) buildDailyPlan(ctx context.Context, worldName string) error {
	now, _ := p.scratch.CurrentTime()
	prompt, err := util.RenderTemplate(dailyPlanPrompt, map[string]any{
		"Name":    p.name,
		"World":   worldName,
		"Date":    now.Format("Monday January 2"),
		"Sectors": p.spatial.Sectors(worldName),
	})
	if err != nil {
		return err
	}

	resp, err := p.model.Complete(ctx, model.Request{Prompt: prompt})
	if err != nil {
		return fmt.Errorf("daily plan: %w", err)
	}

	var plan []string
	for _, line := range strings.Split(resp.Text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			plan = append(plan, line)
		}
	}
	p.scratch.DailyPlan = plan
	p.logger.Debug("daily plan built agent=%s entries=%d", p.name, len(plan))

	// A new day invalidates whatever activity carried over.
	p.scratch.ActAddress = ""
	return nil
}

// currentActivity returns the running activity when it has not expired yet.
func (p *Planner) currentActivity() (core.Plan, bool) {
	if p.scratch.ActAddress == "" || p.scratch.ActStart == nil {
		return core.Plan{}, false
	}
	now, ok := p.scratch.CurrentTime()
	if !ok {
		return core.Plan{}, false
	}
	end := p.scratch.ActStart.Add(time.Duration(p.scratch.ActDurationMin) * time.Minute)
	if !now.Before(end) {
		return core.Plan{}, false
	}
	return core.Plan{
		Address:     p.scratch.ActAddress,
		Description: p.scratch.ActDescription,
		Emoji:       p.scratch.ActEmoji,
		DurationMin: p.scratch.ActDurationMin,
	}, true
}

func (p *Planner) nextActivity(ctx context.Context, worldName string, retrieved []core.Retrieved) (core.Plan, error) {
	now, _ := p.scratch.CurrentTime()

	var noticed []string
	for _, r := range retrieved {
		noticed = append(noticed, r.Focal.Event.String())
	}

	prompt, err := util.RenderTemplate(nextActivityPrompt, map[string]any{
		"Name":      p.name,
		"World":     worldName,
		"Time":      now.Format("3:04 PM"),
		"DailyPlan": p.scratch.DailyPlan,
		"Noticed":   noticed,
		"Places":    p.knownPlaces(worldName),
	})
	if err != nil {
		return core.Plan{}, err
	}

	resp, err := p.model.Complete(ctx, model.Request{Prompt: prompt})
	if err != nil {
		return core.Plan{}, fmt.Errorf("next activity: %w", err)
	}

	plan := p.parseActivity(worldName, resp.Text)
	p.scratch.ActAddress = plan.Address
	p.scratch.ActDescription = plan.Description
	p.scratch.ActEmoji = plan.Emoji
	p.scratch.ActDurationMin = plan.DurationMin
	p.scratch.ActStart = &now

	return plan, nil
}

// parseActivity reads the "sector | arena | object | description | minutes
// | emoji" line. Unparseable responses degrade to idling at the first known
// place rather than failing the tick: a confused model is not a
// collaborator failure.
func (p *Planner) parseActivity(worldName, text string) core.Plan {
	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	fields := strings.Split(line, "|")
	if len(fields) >= 4 {
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		plan := core.Plan{
			Address:     core.JoinAddress(worldName, fields[0], fields[1], fields[2]),
			Description: fields[3],
			DurationMin: defaultActDurationMin,
		}
		if len(fields) >= 5 {
			if mins, err := strconv.Atoi(fields[4]); err == nil && mins > 0 {
				plan.DurationMin = mins
			}
		}
		if len(fields) >= 6 {
			plan.Emoji = fields[5]
		}
		return plan
	}

	return p.fallbackPlan(worldName)
}

// fallbackPlan idles at the first known object, or in place when the agent
// knows nothing yet.
func (p *Planner) fallbackPlan(worldName string) core.Plan {
	for _, sector := range p.spatial.Sectors(worldName) {
		for _, arena := range p.spatial.Arenas(worldName, sector) {
			for _, object := range p.spatial.Objects(worldName, sector, arena) {
				return core.Plan{
					Address:     core.JoinAddress(worldName, sector, arena, object),
					Description: "idling",
					DurationMin: defaultActDurationMin,
				}
			}
		}
	}
	return core.Plan{Description: "idling", DurationMin: defaultActDurationMin}
}

// knownPlaces flattens spatial memory into "sector:arena:object" entries.
func (p *Planner) knownPlaces(worldName string) []string {
	var places []string
	for _, sector := range p.spatial.Sectors(worldName) {
		for _, arena := range p.spatial.Arenas(worldName, sector) {
			for _, object := range p.spatial.Objects(worldName, sector, arena) {
				places = append(places, strings.Join([]string{sector, arena, object}, ":"))
			}
		}
	}
	return places
}

var _ core.Planner = (*Planner)(nil)
