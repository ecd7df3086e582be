package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator проверяет структуру после разбора JSON
type SchemaValidator[T any] func(T) error

// ExtractJSON достает из ответа модели первый JSON-объект и разбирает его в T.
// Markdown-ограждения и текст вокруг объекта отбрасываются.
func ExtractJSON[T any](raw string, validate SchemaValidator[T]) (T, error) {
	var zero T

	block := extractJSONBlock(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("decoding response: %w", err)
	}

	if validate != nil {
		if err := validate(result); err != nil {
			return zero, fmt.Errorf("validation failed: %w", err)
		}
	}
	return result, nil
}

func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// extractJSONBlock находит первый сбалансированный блок { ... }
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
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
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
