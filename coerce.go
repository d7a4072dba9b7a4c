package confstack

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// isTruthy reports whether a raw value means true. Matches the accepted
// command-line and environment spellings: yes, true, 1 (case-insensitive).
func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1":
		return true
	}
	return false
}

// coerceBool applies the two-state boolean semantics. A field with declared
// default true is a negating switch: a true-like raw value INVERTS the
// stored result to false, anything else leaves it at true. This is
// intentional, mirrors how "disable"-style flags behave, and is covered
// explicitly by tests.
func coerceBool(raw string, f Field) bool {
	truthy := isTruthy(raw)
	if f.BoolDefault {
		return !truthy
	}
	return truthy
}

// coerce converts a raw string into a value of the field's declared type.
// Empty containers coerce successfully; minimum-length constraints are
// enforced later during validation.
func coerce(raw string, f Field) (any, error) {
	switch f.Container {
	case ContainerNone:
		if f.Kind == KindBool {
			return coerceBool(raw, f), nil
		}
		v, err := coerceScalar(raw, f.Kind, f.goType)
		if err != nil {
			return nil, err
		}
		return v.Interface(), nil

	case ContainerList:
		items := splitItems(raw, f.Split)
		out := reflect.MakeSlice(f.goType, 0, len(items))
		for _, item := range items {
			v, err := coerceScalar(item, f.Kind, f.elem)
			if err != nil {
				return nil, err
			}
			out = reflect.Append(out, v)
		}
		return out.Interface(), nil

	case ContainerSet:
		items := splitItems(raw, f.Split)
		out := reflect.MakeMapWithSize(f.goType, len(items))
		for _, item := range items {
			v, err := coerceScalar(item, f.Kind, f.elem)
			if err != nil {
				return nil, err
			}
			out.SetMapIndex(v, reflect.ValueOf(struct{}{}))
		}
		return out.Interface(), nil

	case ContainerMap:
		items := splitItems(raw, f.Split)
		out := reflect.MakeMapWithSize(f.goType, len(items))
		for _, item := range items {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			key, val, found := strings.Cut(item, f.KVSplit)
			if !found {
				return nil, fmt.Errorf("mapping item %q lacks %q separator", item, f.KVSplit)
			}
			// Surrounding whitespace is insignificant in mapping items;
			// internal whitespace in keys is preserved.
			v, err := coerceScalar(strings.TrimSpace(val), f.Kind, f.mapElem)
			if err != nil {
				return nil, err
			}
			out.SetMapIndex(reflect.ValueOf(strings.TrimSpace(key)).Convert(f.elem), v)
		}
		return out.Interface(), nil
	}

	return nil, fmt.Errorf("unsupported container kind")
}

// splitItems splits a raw container value. An empty raw string is an empty
// container, not a single empty item.
func splitItems(raw, split string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, split)
}

// coerceScalar parses one raw scalar into the exact target type.
func coerceScalar(raw string, kind Kind, t reflect.Type) (reflect.Value, error) {
	switch kind {
	case KindString:
		return reflect.ValueOf(raw).Convert(t), nil

	case KindInt:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not a valid integer", raw)
		}
		return reflect.ValueOf(n).Convert(t), nil

	case KindUint:
		n, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not a valid unsigned integer", raw)
		}
		return reflect.ValueOf(n).Convert(t), nil

	case KindFloat:
		n, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not a valid float", raw)
		}
		return reflect.ValueOf(n).Convert(t), nil

	case KindBool:
		// Container elements use strict bool parsing; the two-state switch
		// semantics apply only to top-level boolean fields.
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not a valid boolean", raw)
		}
		return reflect.ValueOf(b).Convert(t), nil

	case KindPath:
		return reflect.ValueOf(expandPath(raw)).Convert(t), nil

	case KindIP:
		if len(raw) > 45 { // max textual IPv6 length
			return reflect.Value{}, fmt.Errorf("invalid IP address length: %d", len(raw))
		}
		ip := net.ParseIP(raw)
		if ip == nil {
			return reflect.Value{}, fmt.Errorf("%q is not a valid IP address", raw)
		}
		return reflect.ValueOf(ip), nil

	case KindIPNet:
		if len(raw) > 49 { // max textual IPv6 CIDR length
			return reflect.Value{}, fmt.Errorf("invalid CIDR length: %d", len(raw))
		}
		_, ipnet, err := net.ParseCIDR(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not a valid IP network", raw)
		}
		return reflect.ValueOf(ipnet), nil

	case KindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%q is not a valid duration", raw)
		}
		return reflect.ValueOf(d).Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("unsupported scalar kind %s", kind)
}

// expandPath resolves a leading ~ against the user's home directory and
// cleans the result.
func expandPath(raw string) Path {
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			raw = filepath.Join(home, strings.TrimPrefix(raw, "~"))
		}
	}
	return Path(filepath.Clean(raw))
}
