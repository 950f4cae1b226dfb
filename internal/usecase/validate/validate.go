// Package validate adapts ozzo-validation results to domain field errors.
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/kailas-cloud/campusdir/internal/domain"
)

// DocumentID rejects ids that cannot address a document (empty is left to validation.Required).
var DocumentID = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(s, "/") {
		return validation.NewError("validation_id_separator", "must not contain '/'")
	}
	return nil
})

// Fields converts a ValidateStruct error into field errors tagged with index.
// Any other error is returned unchanged.
func Fields(index int, err error) ([]domain.FieldError, error) {
	if err == nil {
		return nil, nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil, fmt.Errorf("validate: %w", err)
	}

	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.FieldError, 0, len(names))
	for _, name := range names {
		out = append(out, domain.FieldError{Index: index, Field: name, Message: errs[name].Error()})
	}
	return out, nil
}
