package cognition

import (
	"context"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/memory"
)

// retrieveLimit caps how many related records each keyword contributes.
const retrieveLimit = 10

// Retriever surfaces stored events and thoughts related to each perceived
// event by keyword lookup into the associative stream.
type Retriever struct {
	stream *memory.AssociativeStream
}

// Retrieve implements core.Retriever.
func (r *Retriever) Retrieve(ctx context.Context, perceived []core.PerceivedEvent) ([]core.Retrieved, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]core.Retrieved, 0, len(perceived))
	for _, pe := range perceived {
		ret := core.Retrieved{Focal: pe}
		for _, kw := range eventKeywords(pe.Event) {
			ret.Events = append(ret.Events, r.stream.ByKeyword("event", kw, retrieveLimit)...)
			ret.Thoughts = append(ret.Thoughts, r.stream.ByKeyword("thought", kw, retrieveLimit)...)
		}
		out = append(out, ret)
	}
	return out, nil
}

var _ core.Retriever = (*Retriever)(nil)
