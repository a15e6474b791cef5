package flow

import "context"

// Agent produces the raw answer for one route. Every agent converges to the
// same AgentOutput shape; the normalizer finishes the job.
type Agent interface {
	Produce(ctx context.Context, state ConversationState) (AgentOutput, error)
}
