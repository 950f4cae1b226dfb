package domain

import (
	"fmt"
	"strings"
)

// ValidateID checks a caller-supplied document id: non-empty and free of '/'.
func ValidateID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s id is required: %w", kind, ErrInvalidInput)
	}
	if strings.Contains(id, "/") {
		return fmt.Errorf("%s id %q must not contain '/': %w", kind, id, ErrInvalidInput)
	}
	return nil
}
