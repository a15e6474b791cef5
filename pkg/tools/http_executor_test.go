package tools

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func executorRegistry() *Registry {
	return NewRegistry(
		Operation{
			Name:          "create_appointment",
			Method:        "POST",
			Endpoint:      "/appointments",
			SideEffecting: true,
		},
		Operation{
			Name:     "list_appointments",
			Method:   "GET",
			Endpoint: "/appointments",
		},
	)
}

func newTestExecutor(baseURL string) *HTTPExecutor {
	e := NewHTTPExecutor(baseURL, executorRegistry(), log.New(io.Discard, "", 0))
	e.retryBackoff = time.Millisecond
	return e
}

func TestHTTPExecutorSuccess(t *testing.T) {
	var gotPath, gotMethod, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"appointments": []}`))
	}))
	defer server.Close()

	e := newTestExecutor(server.URL)
	outcome, err := e.Invoke(context.Background(), "list_appointments", map[string]interface{}{"patient_name": "Jane"})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if outcome.Status != StatusSuccess {
		t.Errorf("Status = %s, want SUCCESS", outcome.Status)
	}
	if gotMethod != http.MethodGet || gotPath != "/appointments" {
		t.Errorf("request = %s %s, want GET /appointments", gotMethod, gotPath)
	}
	if gotQuery != "patient_name=Jane" {
		t.Errorf("query = %q, want patient_name=Jane", gotQuery)
	}
	if _, ok := outcome.Payload["appointments"]; !ok {
		t.Error("payload missing appointments key")
	}
}

func TestHTTPExecutorBusinessRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "that slot is already taken"}`))
	}))
	defer server.Close()

	e := newTestExecutor(server.URL)
	outcome, err := e.Invoke(context.Background(), "create_appointment", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Invoke() error = %v, want failure outcome", err)
	}
	if outcome.Status != StatusFailure {
		t.Errorf("Status = %s, want FAILURE", outcome.Status)
	}
	if outcome.Reason != "that slot is already taken" {
		t.Errorf("Reason = %q", outcome.Reason)
	}
}

func TestHTTPExecutorSideEffectingNeverRetried(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	e := newTestExecutor(server.URL)
	_, err := e.Invoke(context.Background(), "create_appointment", map[string]interface{}{})
	if err == nil {
		t.Fatal("expected transport error for 500 response")
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want exactly 1", got)
	}
}

func TestHTTPExecutorReadOnlyRetriesThenSucceeds(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"appointments": []}`))
	}))
	defer server.Close()

	e := newTestExecutor(server.URL)
	outcome, err := e.Invoke(context.Background(), "list_appointments", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if outcome.Status != StatusSuccess {
		t.Errorf("Status = %s, want SUCCESS", outcome.Status)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}
}

func TestHTTPExecutorUnknownOperation(t *testing.T) {
	e := newTestExecutor("http://localhost:0")
	outcome, err := e.Invoke(context.Background(), "order_pizza", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Invoke() error = %v, want failure outcome", err)
	}
	if outcome.Status != StatusFailure {
		t.Errorf("Status = %s, want FAILURE", outcome.Status)
	}
}
