package tools

import "context"

// Status of a tool invocation outcome.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// Outcome is the terminal result of one invocation attempt. Failures are
// values, not errors: the caller narrates them to the user.
type Outcome struct {
	Status  Status
	Payload map[string]interface{}
	Reason  string
}

func Success(payload map[string]interface{}) Outcome {
	return Outcome{Status: StatusSuccess, Payload: payload}
}

func Failure(reason string) Outcome {
	return Outcome{Status: StatusFailure, Reason: reason}
}

// Executor invokes a named operation with already-validated parameters.
// An error return means the call could not be carried out at the transport
// level; business rejections come back as FAILURE outcomes.
type Executor interface {
	Invoke(ctx context.Context, operation string, params map[string]interface{}) (Outcome, error)
}
