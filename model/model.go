package model

import (
	"context"
	"fmt"
	"sync"
)

// Request is one prompt to the reasoning service. Calls are blocking and
// synchronous by design: the orchestrator treats every cognitive step as a
// blocking call and owns no timeout or retry policy, so neither does this
// interface.
type Request struct {
	// System carries standing instructions (the agent's identity summary).
	System string `json:"system,omitempty"`
	// Prompt is the rendered task prompt.
	Prompt string `json:"prompt"`
}

// TokenUsage captures token accounting for a completion.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed text plus usage metadata.
type Response struct {
	Text  string     `json:"text"`
	Usage TokenUsage `json:"usage"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", ...
}

// Model is the minimal interface cognition modules require.
type Model interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Register canned completions per prompt; unregistered prompts echo a
// deterministic fallback. Safe for concurrent use.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	err       error
	calls     []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// FailWith makes every subsequent Complete call return err.
func (m *MockModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns a copy of every request seen so far.
func (m *MockModel) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// Complete implements Model.
func (m *MockModel) Complete(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil {
		return Response{}, m.err
	}
	text, ok := m.responses[req.Prompt]
	if !ok {
		text = fmt.Sprintf("Mock response to: %s", req.Prompt)
	}
	return Response{Text: text}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
