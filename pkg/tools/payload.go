package tools

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Payload is the operation request an LLM emits when resolving a user query
// against the registry.
type Payload struct {
	Tool       string                 `json:"tool"`
	Parameters map[string]interface{} `json:"parameters"`
}

// ParsePayload extracts a tool payload from raw LLM output. Models wrap JSON
// in code fences, prose, or escape underscores; this walks the first balanced
// JSON object out of the noise.
func ParsePayload(raw string) (*Payload, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	jsonStr := extractFirstObject(cleaned)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	// Some models escape underscores in field names
	jsonStr = strings.ReplaceAll(jsonStr, `\_`, "_")

	var payload Payload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("parse tool payload: %w", err)
	}

	if payload.Tool == "" {
		return nil, fmt.Errorf("tool payload has no operation name")
	}
	if payload.Parameters == nil {
		payload.Parameters = map[string]interface{}{}
	}
	return &payload, nil
}

// extractFirstObject returns the first balanced {...} block, or "".
func extractFirstObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
