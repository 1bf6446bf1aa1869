package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/agentville/core"
)

// Default perception parameters applied when a snapshot predates them.
const (
	defaultVisionRadius = 4
	defaultAttBandwidth = 3
	defaultRetention    = 5
)

// Scratch is the agent's working state. The orchestrator owns CurrTile and
// CurrTime; everything else belongs to the cognitive modules and is carried
// here only so it persists across process restarts.
type Scratch struct {
	CurrTile core.Coord `json:"curr_tile"`
	CurrTime *time.Time `json:"curr_time,omitempty"`

	// Perception parameters.
	VisionRadius int `json:"vision_radius"`
	AttBandwidth int `json:"att_bandwidth"`
	Retention    int `json:"retention"`

	// Planner/executor-owned fields, opaque to the orchestrator.
	DailyRequirement string       `json:"daily_requirement,omitempty"`
	DailyPlan        []string     `json:"daily_plan,omitempty"`
	ActAddress       core.Address `json:"act_address,omitempty"`
	ActDescription   string       `json:"act_description,omitempty"`
	ActEmoji         string       `json:"act_emoji,omitempty"`
	ActStart         *time.Time   `json:"act_start,omitempty"`
	ActDurationMin   int          `json:"act_duration_min,omitempty"`
	ChattingWith     string       `json:"chatting_with,omitempty"`
}

// LoadScratch reads the working state from a JSON file and backfills the
// perception defaults for fields the snapshot left at zero.
func LoadScratch(path string) (*Scratch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scratch: %w", err)
	}
	var s Scratch
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode scratch: %w", err)
	}
	if s.VisionRadius <= 0 {
		s.VisionRadius = defaultVisionRadius
	}
	if s.AttBandwidth <= 0 {
		s.AttBandwidth = defaultAttBandwidth
	}
	if s.Retention <= 0 {
		s.Retention = defaultRetention
	}
	return &s, nil
}

// NewScratch returns a fresh working state with default perception
// parameters, for agents bootstrapped without a snapshot.
func NewScratch() *Scratch {
	return &Scratch{
		VisionRadius: defaultVisionRadius,
		AttBandwidth: defaultAttBandwidth,
		Retention:    defaultRetention,
	}
}

// Save writes the working state back to a JSON file, creating parent
// directories as needed.
func (s *Scratch) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save scratch: %w", err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scratch: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("save scratch: %w", err)
	}
	return nil
}

// CurrentTile returns the agent's tile as of the last tick.
func (s *Scratch) CurrentTile() core.Coord { return s.CurrTile }

// SetCurrentTile records the agent's tile for this tick.
func (s *Scratch) SetCurrentTile(c core.Coord) { s.CurrTile = c }

// CurrentTime returns the stored simulation time; ok is false before any
// tick recorded one.
func (s *Scratch) CurrentTime() (time.Time, bool) {
	if s.CurrTime == nil {
		return time.Time{}, false
	}
	return *s.CurrTime, true
}

// SetCurrentTime records the simulation time for this tick.
func (s *Scratch) SetCurrentTime(t time.Time) { s.CurrTime = &t }

var _ core.WorkingMemory = (*Scratch)(nil)
