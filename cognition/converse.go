package cognition

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/internal/util"
	"github.com/hupe1980/agentville/logging"
	"github.com/hupe1980/agentville/memory"
	"github.com/hupe1980/agentville/model"
)

const (
	poignancyChat    = 5
	converseMemories = 15
)

const analysisPrompt = `You are {{.Name}}. Recent memories:
{{join "\n" .Memories}}
An interviewer asks you to describe, in your own words, what you have been
up to and how you feel about it.`

const whisperPrompt = `You are {{.Name}}. A voice in your head plants a
thought. Restate it as something you now believe, in one sentence.`

// Conversation opens out-of-band sessions with the agent: an analysis mode
// that interviews it over its recent memories, and a whisper mode that
// plants a directed thought. Both record their outcome into the
// associative stream.
type Conversation struct {
	name    string
	scratch *memory.Scratch
	stream  *memory.AssociativeStream
	model   model.Model
	logger  logging.Logger
}

// Open implements core.ConversationEngine.
func (c *Conversation) Open(ctx context.Context, mode core.ConvoMode) error {
	switch mode {
	case core.ConvoAnalysis:
		return c.analysis(ctx)
	case core.ConvoWhisper:
		return c.whisper(ctx)
	default:
		return fmt.Errorf("unknown conversation mode %d", mode)
	}
}

func (c *Conversation) analysis(ctx context.Context) error {
	var descriptions []string
	for _, rec := range c.stream.Latest("event", converseMemories) {
		descriptions = append(descriptions, rec.Description)
	}

	prompt, err := util.RenderTemplate(analysisPrompt, map[string]any{
		"Name":     c.name,
		"Memories": descriptions,
	})
	if err != nil {
		return err
	}

	resp, err := c.model.Complete(ctx, model.Request{Prompt: prompt})
	if err != nil {
		return fmt.Errorf("analysis session: %w", err)
	}

	c.stream.AddRecord(core.MemoryRecord{
		Kind:        "chat",
		Event:       core.WorldEvent{Subject: core.Address(c.name), Predicate: "says", Description: resp.Text},
		Description: resp.Text,
		Keywords:    thoughtKeywords(resp.Text),
		Poignancy:   poignancyChat,
	})
	c.logger.Debug("analysis session recorded agent=%s", c.name)
	return nil
}

func (c *Conversation) whisper(ctx context.Context) error {
	prompt, err := util.RenderTemplate(whisperPrompt, map[string]any{"Name": c.name})
	if err != nil {
		return err
	}

	resp, err := c.model.Complete(ctx, model.Request{Prompt: prompt})
	if err != nil {
		return fmt.Errorf("whisper session: %w", err)
	}

	c.stream.AddRecord(core.MemoryRecord{
		Kind:        "thought",
		Event:       core.WorldEvent{Subject: core.Address(c.name), Predicate: "thinks", Description: resp.Text},
		Description: resp.Text,
		Keywords:    thoughtKeywords(resp.Text),
		Poignancy:   poignancyThought,
	})
	c.logger.Debug("whisper recorded agent=%s", c.name)
	return nil
}

var _ core.ConversationEngine = (*Conversation)(nil)
