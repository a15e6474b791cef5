package flow

import (
	"context"
	"strings"
	"testing"
	"time"

	"clinic-assist-be/pkg/tools"
)

func newTestToolsAgent(provider *fakeProvider, executor *fakeExecutor) *ToolsAgent {
	a := NewToolsAgent(provider, testRegistry(), executor, testLogger())
	a.policy = fastPolicy()
	a.now = func() time.Time {
		return time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	}
	return a
}

func TestToolsAgentInvokesValidatedPayloadOnce(t *testing.T) {
	provider := &fakeProvider{script: []scripted{{
		text: `{"tool": "create_appointment", "parameters": {"patient_name": "Jane Doe", "doctor_name": "Dr. Smith", "date": "2026-09-01", "time": "10:00"}}`,
	}}}
	executor := &fakeExecutor{outcome: tools.Success(map[string]interface{}{"id": "apt-1"})}
	a := newTestToolsAgent(provider, executor)

	out, err := a.Produce(context.Background(), ConversationState{Query: "book me with Dr. Smith tomorrow at 10"})
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}
	if executor.calls != 1 {
		t.Errorf("executor calls = %d, want 1", executor.calls)
	}
	if executor.lastOp != "create_appointment" {
		t.Errorf("operation = %s, want create_appointment", executor.lastOp)
	}
	if out.Kind != KindToolResult {
		t.Errorf("Kind = %s, want %s", out.Kind, KindToolResult)
	}
	if !strings.Contains(out.Text, "Dr. Smith") || !strings.Contains(out.Text, "2026-09-01") {
		t.Errorf("narration missing booking details: %q", out.Text)
	}
}

func TestToolsAgentFencedPayloadIsParsed(t *testing.T) {
	provider := &fakeProvider{script: []scripted{{
		text: "Sure, here is the call:\n```json\n{\"tool\": \"list_appointments\", \"parameters\": {\"patient_name\": \"Jane\"}}\n```",
	}}}
	executor := &fakeExecutor{outcome: tools.Success(map[string]interface{}{"appointments": []interface{}{}})}
	a := newTestToolsAgent(provider, executor)

	out, err := a.Produce(context.Background(), ConversationState{Query: "what appointments do I have?"})
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}
	if executor.calls != 1 {
		t.Errorf("executor calls = %d, want 1", executor.calls)
	}
	if !strings.Contains(out.Text, "no upcoming appointments") {
		t.Errorf("empty list narration = %q", out.Text)
	}
}

func TestToolsAgentValidationFailureSkipsInvocation(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{
			name:     "missing required parameter",
			response: `{"tool": "create_appointment", "parameters": {"patient_name": "Jane Doe"}}`,
		},
		{
			name:     "malformed date",
			response: `{"tool": "create_appointment", "parameters": {"patient_name": "Jane", "doctor_name": "Dr. Smith", "date": "next friday", "time": "10:00"}}`,
		},
		{
			name:     "unknown parameter",
			response: `{"tool": "list_appointments", "parameters": {"patient_name": "Jane", "color": "blue"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{script: []scripted{{text: tt.response}}}
			executor := &fakeExecutor{}
			a := newTestToolsAgent(provider, executor)

			out, err := a.Produce(context.Background(), ConversationState{Query: "book something"})
			if err != nil {
				t.Fatalf("Produce() error = %v", err)
			}
			if executor.calls != 0 {
				t.Errorf("executor calls = %d, want 0", executor.calls)
			}
			if _, ok := out.Meta[MetaValidationFailure]; !ok {
				t.Error("expected validation failure meta")
			}
			if out.Text == "" {
				t.Error("clarification text is empty")
			}
		})
	}
}

func TestToolsAgentNoToolResolved(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "explicit none", response: `{"tool": "none", "parameters": {}}`},
		{name: "plain prose without JSON", response: "I cannot map this request to a tool."},
		{name: "unknown operation", response: `{"tool": "order_pizza", "parameters": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{script: []scripted{{text: tt.response}}}
			executor := &fakeExecutor{}
			a := newTestToolsAgent(provider, executor)

			out, err := a.Produce(context.Background(), ConversationState{Query: "do something odd"})
			if err != nil {
				t.Fatalf("Produce() error = %v", err)
			}
			if executor.calls != 0 {
				t.Errorf("executor calls = %d, want 0", executor.calls)
			}
			if out.Text == "" {
				t.Error("clarification text is empty")
			}
		})
	}
}

func TestToolsAgentTransportFailureNarratedNotRetried(t *testing.T) {
	provider := &fakeProvider{script: []scripted{{
		text: `{"tool": "create_appointment", "parameters": {"patient_name": "Jane", "doctor_name": "Dr. Smith", "date": "2026-09-01", "time": "10:00"}}`,
	}}}
	executor := &fakeExecutor{err: errTimeout}
	a := newTestToolsAgent(provider, executor)

	out, err := a.Produce(context.Background(), ConversationState{Query: "book me in"})
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}
	if executor.calls != 1 {
		t.Errorf("executor calls = %d, want exactly 1", executor.calls)
	}
	if !strings.Contains(out.Text, "not completed") {
		t.Errorf("failure narration = %q", out.Text)
	}
	if out.Meta[MetaOutcome] != string(tools.StatusFailure) {
		t.Errorf("outcome meta = %v, want FAILURE", out.Meta[MetaOutcome])
	}
}

func TestToolsAgentBusinessFailureNarratesReason(t *testing.T) {
	provider := &fakeProvider{script: []scripted{{
		text: `{"tool": "create_appointment", "parameters": {"patient_name": "Jane", "doctor_name": "Dr. Smith", "date": "2026-09-01", "time": "10:00"}}`,
	}}}
	executor := &fakeExecutor{outcome: tools.Failure("that slot is already taken")}
	a := newTestToolsAgent(provider, executor)

	out, err := a.Produce(context.Background(), ConversationState{Query: "book me in"})
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}
	if !strings.Contains(out.Text, "slot is already taken") {
		t.Errorf("narration = %q, want rejection reason surfaced", out.Text)
	}
}
