package confstack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ErrNoConfigFile is returned by ResolveConfigPath when no candidate path
// exists. Callers treat it as "load without a file", not as a failure.
var ErrNoConfigFile = errors.New("no configuration file found")

// PathError reports an explicitly requested configuration file that does not
// exist. Unlike discovered paths, an explicit --config path must be present.
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("configuration file %q does not exist", e.Path)
}

// ParseError reports a configuration file that exists but could not be
// parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse configuration file %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnknownKeyError reports configuration file keys that do not match any
// schema field. It is only produced under UnknownKeyError policy.
type UnknownKeyError struct {
	Path string
	Keys []string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown configuration key(s) in %q: %s", e.Path, strings.Join(e.Keys, ", "))
}

// UsageError reports a command-line parsing failure, or a --help request.
// Usage holds the generated flag listing for display to the user.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	if e.IsHelp() {
		return "help requested"
	}
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error { return e.Err }

// IsHelp reports whether the error was triggered by --help rather than by an
// invalid command line.
func (e *UsageError) IsHelp() bool { return errors.Is(e.Err, pflag.ErrHelp) }

// FieldError describes a single field-level failure: a missing required
// value, a coercion failure, or a violated constraint.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// ValidationError aggregates all field-level failures of one load into a
// single report.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid configuration: %s", strings.Join(msgs, "; "))
}
