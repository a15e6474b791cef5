package entity

import (
	"time"

	"github.com/google/uuid"
)

// ToolAudit records one tool invocation attempt, successful or not.
// Parameters are stored as raw JSON so the schema can evolve per operation.
type ToolAudit struct {
	Id         uuid.UUID
	Operation  string
	Parameters map[string]interface{}
	Status     string // SUCCESS | FAILURE
	Reason     string
	CreatedAt  time.Time
}
