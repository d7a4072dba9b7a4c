package confstack

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"
)

// normalizeKey canonicalizes a field, flag or ini key name: lowercase, with
// underscore and dash treated as equivalent (dash form wins).
func normalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// envName derives the environment variable name for a canonical field name.
func envName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// kebabCase converts a Go field name to its canonical dash form, e.g.
// "StrArg" to "str-arg" and "HTTPPort" to "http-port".
func kebabCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteRune('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ScriptName returns the identifying name of the calling program's entry
// script.
func ScriptName() string {
	return filepath.Base(os.Args[0])
}

// RequireAllOrNone returns a usage error if some but not all of the named
// fields in a resolved configuration are set to non-zero values. Use it for
// option groups that only make sense together, such as a username/password
// pair.
func RequireAllOrNone(target any, names ...string) error {
	fields, err := Fields(target)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(target).Elem()
	byName := make(map[string]reflect.Value, len(fields))
	for _, f := range fields {
		byName[f.Name] = rv.FieldByName(f.goName)
	}

	var set, unset []string
	for _, name := range names {
		v, ok := byName[normalizeKey(name)]
		if !ok {
			return fmt.Errorf("unknown field %q", name)
		}
		if v.IsZero() {
			unset = append(unset, normalizeKey(name))
		} else {
			set = append(set, normalizeKey(name))
		}
	}

	if len(set) > 0 && len(unset) > 0 {
		return fmt.Errorf("the option(s) %s must be set when %s is set",
			strings.Join(unset, ", "), strings.Join(set, ", "))
	}
	return nil
}
