package flow

import (
	"context"
	"fmt"
	"log"
	"strings"

	"clinic-assist-be/internal/constant"
	"clinic-assist-be/pkg/llm"
	"clinic-assist-be/pkg/retrieval"
)

// VectorDBAgent answers knowledge questions from the ingested document
// corpus. Composition is strictly grounded: when retrieval comes back empty
// the agent says so instead of letting the model improvise.
type VectorDBAgent struct {
	searcher retrieval.Searcher
	provider llm.Provider
	topK     int
	policy   retryPolicy
	logger   *log.Logger
}

func NewVectorDBAgent(searcher retrieval.Searcher, provider llm.Provider, topK int, logger *log.Logger) *VectorDBAgent {
	if topK <= 0 {
		topK = retrieval.DefaultConfig().TopK
	}
	return &VectorDBAgent{
		searcher: searcher,
		provider: provider,
		topK:     topK,
		policy:   defaultRetryPolicy(),
		logger:   logger,
	}
}

func (a *VectorDBAgent) Produce(ctx context.Context, state ConversationState) (AgentOutput, error) {
	passages, err := a.searcher.Search(ctx, state.Query, a.topK)
	if err != nil {
		return AgentOutput{}, fmt.Errorf("vector search: %w", err)
	}

	if len(passages) == 0 {
		a.logger.Printf("[VECTOR_DB] no passages above threshold for query")
		return AgentOutput{
			Kind: KindMessage,
			Text: constant.NoGroundingMessage,
			Meta: map[string]interface{}{MetaNoGrounding: true, MetaPassageCount: 0},
		}, nil
	}
	a.logger.Printf("[VECTOR_DB] composing answer from %d passages", len(passages))

	prompt := fmt.Sprintf(constant.GroundedAnswerPrompt, renderPassages(passages), state.Query)
	messages := a.buildMessages(state, prompt)

	answer, err := a.policy.run(ctx, a.logger, "VECTOR_DB", func(ctx context.Context) (string, error) {
		return a.provider.Chat(ctx, messages, llm.WithTemperature(0.2))
	})
	if err != nil {
		return AgentOutput{}, fmt.Errorf("grounded composition: %w", err)
	}

	return AgentOutput{
		Kind: KindMessage,
		Text: answer,
		Meta: map[string]interface{}{MetaPassageCount: len(passages)},
	}, nil
}

// buildMessages prepends the recent history so follow-up questions resolve
// naturally, with the grounded prompt as the final user message.
func (a *VectorDBAgent) buildMessages(state ConversationState, prompt string) []llm.Message {
	window := Window(state.History, historyWindowSize)
	messages := make([]llm.Message, 0, len(window)+1)
	for _, turn := range window {
		role := constant.ChatMessageRoleUser
		if turn.Role == RoleAssistant {
			role = constant.ChatMessageRoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	return append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: prompt})
}

func renderPassages(passages []retrieval.Passage) string {
	var b strings.Builder
	for i, p := range passages {
		source := p.Source
		if source == "" {
			source = "clinic documentation"
		}
		fmt.Fprintf(&b, "Passage %d (Source: %s):\n%s\n\n", i+1, source, p.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
