package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFenceRegex = regexp.MustCompile("(?i)```json|```")

// ExtractJSONArray finds the JSON array embedded in a model response. Code fences
// are dropped first, then the slice from the first '[' to the last ']' is parsed.
func ExtractJSONArray(text string) ([]json.RawMessage, error) {
	payload, err := outermostSpan(text, '[', ']')
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuredOutputInvalid, err)
	}

	return items, nil
}

// ExtractJSONObject is the '{' ... '}' counterpart of ExtractJSONArray.
func ExtractJSONObject(text string) (map[string]json.RawMessage, error) {
	payload, err := outermostSpan(text, '{', '}')
	if err != nil {
		return nil, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuredOutputInvalid, err)
	}

	return obj, nil
}

func stripCodeFences(text string) string {
	return strings.TrimSpace(codeFenceRegex.ReplaceAllString(text, ""))
}

func outermostSpan(text string, open, close byte) (string, error) {
	cleaned := stripCodeFences(text)

	start := strings.IndexByte(cleaned, open)
	end := strings.LastIndexByte(cleaned, close)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no %c...%c span found", ErrStructuredOutputInvalid, open, close)
	}

	return cleaned[start : end+1], nil
}
