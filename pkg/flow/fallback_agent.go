package flow

import (
	"context"
	"log"

	"clinic-assist-be/internal/constant"
)

// FallbackAgent handles everything the other routes can't: out-of-domain
// queries, empty input, and degraded paths. It is deterministic and performs
// no external calls, which is what makes it a safe terminal state.
type FallbackAgent struct {
	logger *log.Logger
}

func NewFallbackAgent(logger *log.Logger) *FallbackAgent {
	return &FallbackAgent{logger: logger}
}

func (a *FallbackAgent) Produce(ctx context.Context, state ConversationState) (AgentOutput, error) {
	a.logger.Printf("[FALLBACK] serving deflection reply")
	return AgentOutput{
		Kind: KindFallback,
		Text: constant.FallbackMessage,
	}, nil
}
