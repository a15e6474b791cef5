package flow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"clinic-assist-be/internal/constant"
	"clinic-assist-be/pkg/llm"
)

// Supervisor classifies each incoming query into exactly one route. It is the
// only component that decides where a request goes; no agent re-routes on its
// own.
type Supervisor struct {
	provider llm.Provider
	policy   retryPolicy
	logger   *log.Logger
}

func NewSupervisor(provider llm.Provider, logger *log.Logger) *Supervisor {
	return &Supervisor{
		provider: provider,
		policy:   defaultRetryPolicy(),
		logger:   logger,
	}
}

// Classify routes state.Query. An empty or whitespace-only query
// short-circuits to FALLBACK without touching the provider. When the provider
// stays down past the retry bound the decision is still FALLBACK, and the
// returned error wraps ErrProviderUnavailable so the caller can tell the
// outage apart from an ordinary fallback.
func (s *Supervisor) Classify(ctx context.Context, state ConversationState) (RoutingDecision, error) {
	query := strings.TrimSpace(state.Query)
	if query == "" {
		s.logger.Printf("[SUPERVISOR] empty query, short-circuit to fallback")
		return RoutingDecision{Target: TargetFallback, Rationale: "empty query"}, nil
	}

	prompt := fmt.Sprintf(constant.SupervisorPrompt, renderHistory(state.History), query)

	raw, err := s.policy.run(ctx, s.logger, "SUPERVISOR", func(ctx context.Context) (string, error) {
		return s.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	})
	if err != nil {
		if errors.Is(err, ErrProviderUnavailable) {
			s.logger.Printf("[SUPERVISOR] provider unavailable, routing to fallback: %v", err)
			return RoutingDecision{Target: TargetFallback, Rationale: "provider unavailable"},
				fmt.Errorf("classify: %w", err)
		}
		s.logger.Printf("[SUPERVISOR] classification failed, coercing to fallback: %v", err)
		return RoutingDecision{Target: TargetFallback, Rationale: "classification error"}, nil
	}

	target, ok := coerceLabel(raw)
	if !ok {
		s.logger.Printf("[SUPERVISOR] unmappable label %q, coercing to fallback", raw)
		return RoutingDecision{Target: TargetFallback, Rationale: "unmappable label: " + raw}, nil
	}
	s.logger.Printf("[SUPERVISOR] routed query to %s", target)
	return RoutingDecision{Target: target, Rationale: "classified"}, nil
}

// coerceLabel maps raw model output onto a route. Models decorate labels with
// quotes, punctuation or surrounding prose; we accept the label anywhere in
// the first line, preferring an exact match.
func coerceLabel(raw string) (RouteTarget, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.Trim(cleaned, "'\"`.: \t")
	if idx := strings.IndexByte(cleaned, '\n'); idx >= 0 {
		cleaned = cleaned[:idx]
	}

	switch cleaned {
	case string(TargetVectorDB), string(TargetTools), string(TargetFallback):
		return RouteTarget(cleaned), true
	}
	for _, target := range []RouteTarget{TargetVectorDB, TargetTools, TargetFallback} {
		if strings.Contains(cleaned, string(target)) {
			return target, true
		}
	}
	return "", false
}
