package cognition

import (
	"github.com/hupe1980/agentville/agent"
	"github.com/hupe1980/agentville/logging"
	"github.com/hupe1980/agentville/memory"
	"github.com/hupe1980/agentville/model"
)

// Options holds shared configuration for the default capability set.
type Options struct {
	// Logger receives per-module debug output. Defaults to NoOpLogger.
	Logger logging.Logger
	// ReflectionThreshold is the accumulated poignancy at which reflection
	// actually synthesizes new thoughts. Reflection itself still runs every
	// tick; below the threshold it is a cheap no-op.
	ReflectionThreshold float64
}

// DefaultSet wires the reference modules for one agent over its concrete
// memory stores and a reasoning model. The stores are shared by reference:
// perception grows spatial memory, reflection and conversation append to
// the associative stream, planning reads and writes scratch.
func DefaultSet(
	name string,
	scratch *memory.Scratch,
	spatial *memory.SpatialTree,
	stream *memory.AssociativeStream,
	m model.Model,
	optFns ...func(o *Options),
) agent.Capabilities {
	opts := Options{
		Logger:              logging.NoOpLogger{},
		ReflectionThreshold: defaultReflectionThreshold,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return agent.Capabilities{
		Perceiver:    &Perceiver{name: name, scratch: scratch, spatial: spatial, stream: stream},
		Retriever:    &Retriever{stream: stream},
		Planner:      &Planner{name: name, scratch: scratch, spatial: spatial, model: m, logger: opts.Logger},
		Reflector:    &Reflector{name: name, stream: stream, model: m, threshold: opts.ReflectionThreshold, logger: opts.Logger},
		Executor:     &Executor{name: name, scratch: scratch},
		Conversation: &Conversation{name: name, scratch: scratch, stream: stream, model: m, logger: opts.Logger},
	}
}
