package tools

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ParamType enumerates the accepted parameter value kinds.
type ParamType string

const (
	ParamString ParamType = "string"
	ParamInt    ParamType = "int"
	ParamDate   ParamType = "date" // YYYY-MM-DD
	ParamTime   ParamType = "time" // HH:MM (24h)
)

// ParamSpec declares one parameter of an operation.
type ParamSpec struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
}

// Operation is one callable tool. SideEffecting controls retry policy:
// side-effecting operations are invoked at most once per resolved payload.
type Operation struct {
	Name          string
	Description   string
	Method        string // HTTP verb for the HTTP executor
	Endpoint      string // path relative to the executor base URL
	SideEffecting bool
	Params        []ParamSpec
}

// Registry maps operation names to their declarations. It is built once from
// resolved configuration and read-only afterwards.
type Registry struct {
	ops map[string]Operation
}

func NewRegistry(ops ...Operation) *Registry {
	m := make(map[string]Operation, len(ops))
	for _, op := range ops {
		m[op.Name] = op
	}
	return &Registry{ops: m}
}

// Get returns the operation declaration, if registered.
func (r *Registry) Get(name string) (Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Names returns all registered operation names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe renders the registry as prompt text so the LLM can pick an
// operation and fill its parameters.
func (r *Registry) Describe() string {
	var sb strings.Builder
	for _, name := range r.Names() {
		op := r.ops[name]
		sb.WriteString(fmt.Sprintf("- %s: %s\n", op.Name, op.Description))
		for _, p := range op.Params {
			req := "optional"
			if p.Required {
				req = "required"
			}
			sb.WriteString(fmt.Sprintf("    %s (%s, %s): %s\n", p.Name, p.Type, req, p.Description))
		}
	}
	return sb.String()
}

// ValidateParams checks params against the operation schema. It returns a
// human-readable reason on the first class of violation found; no invocation
// should be attempted when the reason is non-empty.
func ValidateParams(op Operation, params map[string]interface{}) string {
	var missing []string
	for _, spec := range op.Params {
		value, present := params[spec.Name]
		if !present || value == nil || fmt.Sprintf("%v", value) == "" {
			if spec.Required {
				missing = append(missing, spec.Name)
			}
			continue
		}
		if reason := checkType(spec, value); reason != "" {
			return reason
		}
	}
	if len(missing) > 0 {
		return fmt.Sprintf("missing required parameter(s): %s", strings.Join(missing, ", "))
	}

	for name := range params {
		if !hasParam(op, name) {
			return fmt.Sprintf("unknown parameter: %s", name)
		}
	}
	return ""
}

func hasParam(op Operation, name string) bool {
	for _, spec := range op.Params {
		if spec.Name == name {
			return true
		}
	}
	return false
}

func checkType(spec ParamSpec, value interface{}) string {
	str := fmt.Sprintf("%v", value)
	switch spec.Type {
	case ParamString:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("parameter %s must be a string", spec.Name)
		}
	case ParamInt:
		switch value.(type) {
		case int, int64, float64:
			// JSON numbers arrive as float64
		default:
			return fmt.Sprintf("parameter %s must be a number", spec.Name)
		}
	case ParamDate:
		if _, err := time.Parse("2006-01-02", str); err != nil {
			return fmt.Sprintf("parameter %s must be a date in YYYY-MM-DD format", spec.Name)
		}
	case ParamTime:
		if _, err := time.Parse("15:04", str); err != nil {
			return fmt.Sprintf("parameter %s must be a time in HH:MM format", spec.Name)
		}
	}
	return ""
}
