// Package model abstracts the external reasoning service behind a minimal
// completion interface. The cognition package drives planning, reflection
// and conversation through it; the anthropic and openai subpackages adapt
// the official SDKs, and MockModel provides deterministic completions for
// tests and offline runs.
package model
