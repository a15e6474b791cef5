package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"clinic-assist-be/internal/constant"
	"clinic-assist-be/pkg/llm"
	"clinic-assist-be/pkg/tools"
)

// ToolsAgent turns an operational request into exactly one validated tool
// invocation. Validation failures never reach the executor; the user gets a
// clarification instead. A resolved side-effecting payload is invoked at most
// once, success or not.
type ToolsAgent struct {
	provider llm.Provider
	registry *tools.Registry
	executor tools.Executor
	policy   retryPolicy
	now      func() time.Time
	logger   *log.Logger
}

func NewToolsAgent(provider llm.Provider, registry *tools.Registry, executor tools.Executor, logger *log.Logger) *ToolsAgent {
	return &ToolsAgent{
		provider: provider,
		registry: registry,
		executor: executor,
		policy:   defaultRetryPolicy(),
		now:      time.Now,
		logger:   logger,
	}
}

func (a *ToolsAgent) Produce(ctx context.Context, state ConversationState) (AgentOutput, error) {
	payload, err := a.resolve(ctx, state)
	if err != nil {
		return AgentOutput{}, err
	}
	if payload == nil || payload.Tool == "" || payload.Tool == "none" {
		a.logger.Printf("[TOOLS] no operation resolved from query")
		return clarification("I couldn't work out which action you'd like me to take. " +
			"I can schedule, list or cancel appointments -- could you rephrase your request?"), nil
	}

	op, ok := a.registry.Get(payload.Tool)
	if !ok {
		a.logger.Printf("[TOOLS] model resolved unknown operation %q", payload.Tool)
		return clarification(fmt.Sprintf("I can't perform %q. I can schedule, list or cancel appointments.", payload.Tool)), nil
	}

	if reason := tools.ValidateParams(op, payload.Parameters); reason != "" {
		a.logger.Printf("[TOOLS] validation failed for %s: %s", op.Name, reason)
		out := clarification(fmt.Sprintf("I need a bit more information before I can do that: %s.", reason))
		out.Meta[MetaValidationFailure] = reason
		out.Meta[MetaOperation] = op.Name
		return out, nil
	}

	a.logger.Printf("[TOOLS] invoking %s", op.Name)
	outcome, err := a.executor.Invoke(ctx, op.Name, payload.Parameters)
	if err != nil {
		// Transport failure. The executor already applied what retries the
		// operation permits; here we only narrate, never resend.
		a.logger.Printf("[TOOLS] invocation of %s failed: %v", op.Name, err)
		return AgentOutput{
			Kind: KindToolResult,
			Text: "I couldn't reach the scheduling service, so your request was not completed. Please try again in a moment.",
			Meta: map[string]interface{}{MetaOperation: op.Name, MetaOutcome: string(tools.StatusFailure)},
		}, nil
	}

	return AgentOutput{
		Kind: KindToolResult,
		Text: a.narrate(op, payload.Parameters, outcome),
		Meta: map[string]interface{}{MetaOperation: op.Name, MetaOutcome: string(outcome.Status)},
	}, nil
}

// resolve asks the model for a tool payload and parses it out of whatever
// text surrounds it. A transient provider failure retries under the policy;
// an unparseable response resolves to nil, which becomes a clarification.
func (a *ToolsAgent) resolve(ctx context.Context, state ConversationState) (*tools.Payload, error) {
	now := a.now()
	prompt := fmt.Sprintf(constant.ToolResolutionPrompt,
		now.Format("2006-01-02"),
		now.Format("15:04"),
		a.registry.Describe(),
		renderHistory(state.History),
		state.Query,
	)

	raw, err := a.policy.run(ctx, a.logger, "TOOLS", func(ctx context.Context) (string, error) {
		return a.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	})
	if err != nil {
		return nil, fmt.Errorf("tool resolution: %w", err)
	}

	payload, err := tools.ParsePayload(raw)
	if err != nil {
		a.logger.Printf("[TOOLS] unparseable tool payload: %v", err)
		return nil, nil
	}
	return payload, nil
}

func (a *ToolsAgent) narrate(op tools.Operation, params map[string]interface{}, outcome tools.Outcome) string {
	if outcome.Status == tools.StatusFailure {
		reason := outcome.Reason
		if reason == "" {
			reason = "the scheduling service rejected the request"
		}
		return fmt.Sprintf("I wasn't able to complete that: %s.", strings.TrimRight(reason, "."))
	}

	switch op.Name {
	case "create_appointment":
		return fmt.Sprintf("Your appointment with %s is booked for %s at %s.",
			stringParam(params, "doctor_name", "the doctor"),
			stringParam(params, "date", "the requested date"),
			stringParam(params, "time", "the requested time"))
	case "cancel_appointment":
		return fmt.Sprintf("Your appointment on %s has been cancelled.",
			stringParam(params, "date", "the requested date"))
	case "list_appointments":
		return narrateAppointments(outcome.Payload)
	}
	return genericNarration(op, outcome)
}

func narrateAppointments(payload map[string]interface{}) string {
	items, _ := payload["appointments"].([]interface{})
	if len(items) == 0 {
		return "You have no upcoming appointments."
	}
	var b strings.Builder
	b.WriteString("Here are your appointments:\n")
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s at %s with %s (%s)\n",
			stringParam(m, "date", "?"),
			stringParam(m, "time", "?"),
			stringParam(m, "doctor_name", "?"),
			stringParam(m, "status", "SCHEDULED"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func genericNarration(op tools.Operation, outcome tools.Outcome) string {
	if len(outcome.Payload) == 0 {
		return fmt.Sprintf("Done -- %s completed successfully.", op.Name)
	}
	detail, err := json.Marshal(outcome.Payload)
	if err != nil {
		return fmt.Sprintf("Done -- %s completed successfully.", op.Name)
	}
	return fmt.Sprintf("Done -- %s completed successfully: %s", op.Name, string(detail))
}

func clarification(text string) AgentOutput {
	return AgentOutput{
		Kind: KindToolResult,
		Text: text,
		Meta: map[string]interface{}{},
	}
}

func stringParam(params map[string]interface{}, key, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
