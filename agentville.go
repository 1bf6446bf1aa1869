// Package agentville is the backend world-model and turn-orchestration
// core of a multi-agent town simulation. Autonomous agents inhabit a
// discretized 2D world and act once per simulation tick based on decisions
// produced by an external reasoning service.
//
// The module is organized around two load-bearing components:
//
//   - world.Grid: the spatial model. Tiles carry hierarchical semantic
//     addresses (world:sector:arena:object), collision data and a mutable
//     event ledger with reverse address lookup.
//   - agent.Orchestrator: one agent's fixed per-tick pipeline (perceive →
//     retrieve → plan → reflect → execute) over injected cognitive modules
//     and memory stores.
//
// Everything else supports those two: the memory package implements the
// snapshot-backed stores, cognition provides default cognitive modules
// driven by a model.Model (Anthropic, OpenAI or mock), and runner steps a
// whole town one tick at a time while keeping world mutation serialized.
//
// A minimal run:
//
//	g, _ := world.New(cfg)
//	scratch, spatial, stream := memory.NewScratch(), memory.NewSpatialTree(), memory.NewAssociativeStream()
//	caps := cognition.DefaultSet("Klaus", scratch, spatial, stream, model.NewMockModel("mock"))
//	klaus, _ := agent.New("Klaus", agent.Stores{Spatial: spatial, Associative: stream, Scratch: scratch}, caps)
//	r := runner.New(g)
//	_ = r.Register(klaus)
//	_ = r.Run(ctx, 100)
package agentville
