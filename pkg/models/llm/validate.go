package llm

import (
	"fmt"
	"unicode/utf8"
)

// Validator is implemented by completion targets that carry field-level
// constraints. Validation runs locally after every completion, independent
// of how the service was invoked.
type Validator interface {
	Validate() error
}

func maxLen(field string, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("field %q exceeds %d characters", field, limit)
	}
	return nil
}

func maxLenPtr(field string, value *string, limit int) error {
	if value == nil {
		return nil
	}
	return maxLen(field, *value, limit)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
