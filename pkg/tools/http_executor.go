package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPExecutor calls operations exposed by an external clinic service over
// HTTP. GET operations send parameters as query strings, everything else as a
// JSON body. Read-only operations are retried on transport errors;
// side-effecting ones are sent exactly once.
type HTTPExecutor struct {
	baseURL      string
	registry     *Registry
	client       *http.Client
	readRetries  int
	retryBackoff time.Duration
	logger       *log.Logger
}

var _ Executor = &HTTPExecutor{}

func NewHTTPExecutor(baseURL string, registry *Registry, logger *log.Logger) *HTTPExecutor {
	return &HTTPExecutor{
		baseURL:      strings.TrimRight(baseURL, "/"),
		registry:     registry,
		client:       &http.Client{Timeout: 30 * time.Second},
		readRetries:  2,
		retryBackoff: 500 * time.Millisecond,
		logger:       logger,
	}
}

func (e *HTTPExecutor) Invoke(ctx context.Context, operation string, params map[string]interface{}) (Outcome, error) {
	op, ok := e.registry.Get(operation)
	if !ok {
		return Failure(fmt.Sprintf("unknown operation %q", operation)), nil
	}

	attempts := 1
	if !op.SideEffecting {
		attempts += e.readRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := e.retryBackoff * time.Duration(1<<(attempt-1))
			e.logger.Printf("[EXECUTOR] Retrying %s after transport error (attempt %d)", op.Name, attempt+1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Outcome{}, ctx.Err()
			}
		}

		outcome, err := e.call(ctx, op, params)
		if err == nil {
			return outcome, nil
		}
		lastErr = err

		if op.SideEffecting {
			// An ambiguous failure may still have landed remotely; never
			// resend a side-effecting call.
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	return Outcome{}, fmt.Errorf("invoke %s: %w", op.Name, lastErr)
}

func (e *HTTPExecutor) call(ctx context.Context, op Operation, params map[string]interface{}) (Outcome, error) {
	endpoint := e.baseURL + op.Endpoint
	method := strings.ToUpper(op.Method)

	var req *http.Request
	var err error

	if method == http.MethodGet {
		query := url.Values{}
		for name, value := range params {
			query.Set(name, fmt.Sprintf("%v", value))
		}
		full := endpoint
		if encoded := query.Encode(); encoded != "" {
			full += "?" + encoded
		}
		req, err = http.NewRequestWithContext(ctx, method, full, nil)
	} else {
		var body []byte
		body, err = json.Marshal(params)
		if err != nil {
			return Outcome{}, fmt.Errorf("marshal parameters: %w", err)
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	e.logger.Printf("[EXECUTOR] %s %s", method, op.Endpoint)

	resp, err := e.client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("clinic service request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return Outcome{}, fmt.Errorf("clinic service error: status %d", resp.StatusCode)
	}

	payload := map[string]interface{}{}
	if len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			return Outcome{}, fmt.Errorf("invalid JSON from clinic service: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		reason := fmt.Sprintf("request rejected (status %d)", resp.StatusCode)
		if msg, ok := payload["message"].(string); ok && msg != "" {
			reason = msg
		}
		return Failure(reason), nil
	}

	return Success(payload), nil
}
