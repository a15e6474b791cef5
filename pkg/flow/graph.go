package flow

import (
	"context"
	"errors"
	"log"
)

// Config tunes the graph's degraded paths.
type Config struct {
	// RerouteNoGrounding sends a no-grounding retrieval result through the
	// fallback agent instead of returning the "nothing found" message.
	RerouteNoGrounding bool
	// MaxHops caps agent executions per run so re-routes can never loop.
	MaxHops int
}

func DefaultConfig() Config {
	return Config{RerouteNoGrounding: false, MaxHops: 2}
}

// Graph wires the supervisor, the three agents and the normalizer into the
// fixed topology CLASSIFY -> {VECTOR_DB | TOOLS | FALLBACK} -> NORMALIZE.
// Every run terminates: routing happens once, agent failures degrade to the
// fallback agent, and hops are capped.
type Graph struct {
	supervisor *Supervisor
	agents     map[RouteTarget]Agent
	fallback   Agent
	cfg        Config
	logger     *log.Logger
}

func NewGraph(supervisor *Supervisor, vectorDB, tools, fallback Agent, cfg Config, logger *log.Logger) *Graph {
	if cfg.MaxHops <= 0 {
		cfg.MaxHops = DefaultConfig().MaxHops
	}
	return &Graph{
		supervisor: supervisor,
		agents: map[RouteTarget]Agent{
			TargetVectorDB: vectorDB,
			TargetTools:    tools,
			TargetFallback: fallback,
		},
		fallback: fallback,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run executes one full pass over the graph. It always returns a usable
// reply; the error is non-nil only when the language-model provider was
// unreachable past the retry bound, and then wraps ErrProviderUnavailable so
// the boundary layer can report the outage while the user still gets the
// fallback text.
func (g *Graph) Run(ctx context.Context, state ConversationState) (Reply, error) {
	decision, classifyErr := g.supervisor.Classify(ctx, state)

	output, agentErr := g.execute(ctx, decision.Target, state)
	hops := 1

	if agentErr != nil {
		g.logger.Printf("[GRAPH] %s agent failed, degrading to fallback: %v", decision.Target, agentErr)
		output, _ = g.fallback.Produce(ctx, state)
		hops++
	} else if output.metaBool(MetaNoGrounding) && g.cfg.RerouteNoGrounding && hops < g.cfg.MaxHops {
		g.logger.Printf("[GRAPH] no grounding, re-routing to fallback")
		output, _ = g.fallback.Produce(ctx, state)
		hops++
	}

	reply := Normalize(output)

	if err := providerOutage(classifyErr, agentErr); err != nil {
		return reply, err
	}
	return reply, nil
}

// execute runs the agent for target, falling back when no agent is
// registered for it.
func (g *Graph) execute(ctx context.Context, target RouteTarget, state ConversationState) (AgentOutput, error) {
	agent, ok := g.agents[target]
	if !ok {
		agent = g.fallback
	}
	return agent.Produce(ctx, state)
}

func providerOutage(errs ...error) error {
	for _, err := range errs {
		if errors.Is(err, ErrProviderUnavailable) {
			return err
		}
	}
	return nil
}
