package flow

// Role tags one side of the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation history. Immutable once created;
// order is chronological and preserved end-to-end.
type Turn struct {
	Role    Role
	Content string
}

// ConversationState carries the prior turns plus the new query through one
// graph run. It is owned by a single request and never mutated; the caller is
// the sole owner of persistence.
type ConversationState struct {
	History []Turn
	Query   string
}

// RouteTarget names one of the three downstream agents.
type RouteTarget string

const (
	TargetVectorDB RouteTarget = "vector_db"
	TargetTools    RouteTarget = "tools"
	TargetFallback RouteTarget = "fallback"
)

// RoutingDecision is produced once per request by the supervisor.
type RoutingDecision struct {
	Target    RouteTarget
	Rationale string // diagnostics only, never shown to the user
}

// OutputKind discriminates the agent output variants.
type OutputKind string

const (
	KindMessage    OutputKind = "MESSAGE"
	KindToolResult OutputKind = "TOOL_RESULT"
	KindFallback   OutputKind = "FALLBACK"
)

// Meta keys used on AgentOutput. Meta never crosses the boundary; the
// normalizer strips it.
const (
	MetaNoGrounding       = "no_grounding"
	MetaPassageCount      = "passage_count"
	MetaOperation         = "operation"
	MetaOutcome           = "outcome"
	MetaValidationFailure = "validation_failure"
)

// AgentOutput is the single shape every agent converges to before
// normalization.
type AgentOutput struct {
	Kind OutputKind
	Text string
	Meta map[string]interface{}
}

func (o AgentOutput) metaBool(key string) bool {
	if o.Meta == nil {
		return false
	}
	v, ok := o.Meta[key].(bool)
	return ok && v
}

// Reply is the canonical reply shape every path must produce.
// Data is never empty; the normalizer guarantees it.
type Reply struct {
	Type string `json:"type"`
	Data string `json:"data"`
}
