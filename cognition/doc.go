// Package cognition provides the reference implementations of the six
// cognitive-module contracts: perception, retrieval, planning, reflection,
// execution and conversation. Perception, retrieval and execution are
// deterministic over the world grid and the agent's memory stores;
// planning, reflection and conversation call the external reasoning
// service through a model.Model.
//
// The contracts stay external: the orchestrator accepts any implementation
// of the core interfaces, and these are merely the in-repo defaults wired
// by the runner and the examples.
package cognition
