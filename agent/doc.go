// Package agent implements the per-agent turn orchestrator. An
// Orchestrator owns one agent's working state and memory-store handles and
// sequences the fixed per-tick pipeline: perceive, retrieve, plan, reflect,
// execute. The cognitive modules behind each step are injected as a
// Capabilities set so tests can substitute any of them without touching the
// orchestration logic.
//
// Tick is strictly sequential and not reentrant: one call must run to
// completion before the next may begin on the same agent. Different agents
// are independent.
package agent
