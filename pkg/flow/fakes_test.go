package flow

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"clinic-assist-be/pkg/llm"
	"clinic-assist-be/pkg/retrieval"
	"clinic-assist-be/pkg/tools"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func fastPolicy() retryPolicy {
	return retryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond}
}

// fakeProvider replays scripted responses. An entry with err != nil fails
// that attempt; calls counts every attempt including retries.
type scripted struct {
	text string
	err  error
}

type fakeProvider struct {
	script []scripted
	calls  int
}

func (p *fakeProvider) next() (string, error) {
	idx := p.calls
	p.calls++
	if idx >= len(p.script) {
		if len(p.script) == 0 {
			return "", errors.New("fakeProvider: empty script")
		}
		idx = len(p.script) - 1
	}
	return p.script[idx].text, p.script[idx].err
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.next()
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.next()
}

var errTimeout = errors.New("request timed out")

type fakeSearcher struct {
	passages []retrieval.Passage
	err      error
	calls    int
}

func (s *fakeSearcher) Search(ctx context.Context, query string, topK int) ([]retrieval.Passage, error) {
	s.calls++
	return s.passages, s.err
}

type fakeExecutor struct {
	outcome tools.Outcome
	err     error
	calls   int
	lastOp  string
}

func (e *fakeExecutor) Invoke(ctx context.Context, operation string, params map[string]interface{}) (tools.Outcome, error) {
	e.calls++
	e.lastOp = operation
	return e.outcome, e.err
}

func testRegistry() *tools.Registry {
	return tools.NewRegistry(
		tools.Operation{
			Name:          "create_appointment",
			Description:   "Book a new appointment",
			Method:        "POST",
			Endpoint:      "/appointments",
			SideEffecting: true,
			Params: []tools.ParamSpec{
				{Name: "patient_name", Type: tools.ParamString, Required: true},
				{Name: "doctor_name", Type: tools.ParamString, Required: true},
				{Name: "date", Type: tools.ParamDate, Required: true},
				{Name: "time", Type: tools.ParamTime, Required: true},
				{Name: "reason", Type: tools.ParamString, Required: false},
			},
		},
		tools.Operation{
			Name:        "list_appointments",
			Description: "List appointments for a patient",
			Method:      "GET",
			Endpoint:    "/appointments",
			Params: []tools.ParamSpec{
				{Name: "patient_name", Type: tools.ParamString, Required: true},
			},
		},
	)
}
