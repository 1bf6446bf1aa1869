package cognition

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/internal/util"
	"github.com/hupe1980/agentville/logging"
	"github.com/hupe1980/agentville/memory"
	"github.com/hupe1980/agentville/model"
)

const (
	defaultReflectionThreshold = 20
	reflectionWindow           = 25
	poignancyThought           = 6
)

const reflectionPrompt = `You are {{.Name}}. Recent memories:
{{join "\n" .Memories}}
What high-level insights can you draw? Answer with up to three short
statements, one per line.`

// Reflector distills recent memories into thought records. It is invoked
// after every plan; whether it actually synthesizes anything depends on the
// accumulated poignancy of recent events, so most invocations are no-ops.
type Reflector struct {
	name      string
	stream    *memory.AssociativeStream
	model     model.Model
	threshold float64
	logger    logging.Logger
}

// Reflect implements core.Reflector.
func (r *Reflector) Reflect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	recent := r.stream.Latest("event", reflectionWindow)
	var sum float64
	for _, rec := range recent {
		sum += rec.Poignancy
	}
	if sum < r.threshold {
		return nil
	}

	var descriptions []string
	for _, rec := range recent {
		descriptions = append(descriptions, rec.Description)
	}

	prompt, err := util.RenderTemplate(reflectionPrompt, map[string]any{
		"Name":     r.name,
		"Memories": descriptions,
	})
	if err != nil {
		return err
	}

	resp, err := r.model.Complete(ctx, model.Request{Prompt: prompt})
	if err != nil {
		return fmt.Errorf("reflection: %w", err)
	}

	count := 0
	for _, line := range strings.Split(resp.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.stream.AddRecord(core.MemoryRecord{
			Kind:        "thought",
			Event:       core.WorldEvent{Subject: core.Address(r.name), Predicate: "thinks", Description: line},
			Description: line,
			Keywords:    thoughtKeywords(line),
			Poignancy:   poignancyThought,
		})
		count++
		if count == 3 {
			break
		}
	}

	r.logger.Debug("reflection stored agent=%s thoughts=%d", r.name, count)
	return nil
}

// thoughtKeywords indexes a thought under its longest words, a crude but
// deterministic stand-in for embedding-based retrieval.
func thoughtKeywords(line string) []string {
	var kws []string
	for _, w := range strings.Fields(strings.ToLower(line)) {
		w = strings.Trim(w, ".,!?;:\"'")
		if len(w) >= 5 {
			kws = append(kws, w)
		}
		if len(kws) == 3 {
			break
		}
	}
	return kws
}

var _ core.Reflector = (*Reflector)(nil)
