package confstack

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// resolveValues coerces the raw value mapping field-by-field, collecting
// every failure instead of stopping at the first. Absent booleans resolve to
// their semantic default; absent containers to an empty container; absent
// required fields become a field-level failure.
func resolveValues(fields []Field, raw map[string]rawValue) (map[string]any, []FieldError) {
	values := make(map[string]any, len(fields))
	var failures []FieldError

	for _, f := range fields {
		rv, present := raw[f.Name]

		if !present {
			switch {
			case f.Container == ContainerNone && f.Kind == KindBool:
				values[f.mapKey] = f.BoolDefault
			case f.Container != ContainerNone:
				// Containers without any source coerce to an empty
				// container; minimum-length validation catches emptiness.
				empty, err := coerce("", f)
				if err == nil {
					values[f.mapKey] = empty
					failures = append(failures, checkMin(f, empty)...)
				}
			case f.Required():
				failures = append(failures, FieldError{
					Field:  f.Name,
					Reason: "required field not provided by any source",
				})
			}
			continue
		}

		value, err := coerce(rv.value, f)
		if err != nil {
			failures = append(failures, FieldError{
				Field:  f.Name,
				Reason: fmt.Sprintf("cannot parse %s value from %s: %v", f.Kind, rv.source, err),
			})
			continue
		}

		values[f.mapKey] = value
		failures = append(failures, checkMin(f, value)...)
	}

	return values, failures
}

// checkMin enforces the minimum container length. It runs after coercion so
// an empty container still coerces successfully and surfaces here as a
// validation failure.
func checkMin(f Field, value any) []FieldError {
	if f.Min == 0 || f.Container == ContainerNone {
		return nil
	}
	if n := reflect.ValueOf(value).Len(); n < f.Min {
		return []FieldError{{
			Field:  f.Name,
			Reason: fmt.Sprintf("requires at least %d item(s), got %d", f.Min, n),
		}}
	}
	return nil
}

// runTagValidation evaluates caller-declared validate tags on the populated
// struct and translates the failures into field-level errors under their
// canonical configuration names.
func runTagValidation(fields []Field, target any) []FieldError {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(target)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Reason: err.Error()}}
	}

	names := make(map[string]string, len(fields))
	for _, f := range fields {
		names[f.goName] = f.Name
	}

	failures := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		name := names[fe.StructField()]
		if name == "" {
			name = fe.StructField()
		}
		reason := fmt.Sprintf("failed %q constraint", fe.Tag())
		if fe.Param() != "" {
			reason = fmt.Sprintf("failed %q=%s constraint", fe.Tag(), fe.Param())
		}
		failures = append(failures, FieldError{Field: name, Reason: reason})
	}
	return failures
}
