package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeJSON unmarshals a model response into v, tolerating markdown code
// fences and prose around the JSON object. A response with no parseable
// object is a shape error: fatal to the calling operation, never retried
// here.
func DecodeJSON(text string, v any) error {
	candidate := strings.TrimSpace(text)

	if err := json.Unmarshal([]byte(candidate), v); err == nil {
		return nil
	}

	if stripped := stripFences(candidate); stripped != candidate {
		if err := json.Unmarshal([]byte(stripped), v); err == nil {
			return nil
		}
		candidate = stripped
	}

	if extracted, ok := extractObject(candidate); ok {
		if err := json.Unmarshal([]byte(extracted), v); err == nil {
			return nil
		}
	}

	preview := candidate
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return fmt.Errorf("response does not match required schema: %s", preview)
}

func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func extractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
