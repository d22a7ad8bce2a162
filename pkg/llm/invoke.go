package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type validator interface {
	Validate() error
}

// CleanJSON strips markdown code fences and surrounding whitespace from a
// model response. Models wrap JSON in ```json blocks often enough that
// every structured call goes through this.
func CleanJSON(response string) string {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// Invoke runs one completion and decodes the response into T. When T
// carries a Validate method, its field constraints are checked locally
// before the value is returned.
func Invoke[T any](ctx context.Context, c Completer, system, user string) (*T, error) {
	raw, err := c.Complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	if v, ok := any(&out).(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("completion failed validation: %w", err)
		}
	}
	return &out, nil
}
