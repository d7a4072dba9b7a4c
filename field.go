package confstack

import (
	"fmt"
	"net"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Path is a string that is cleaned and tilde-expanded during coercion.
// Use it for schema fields that hold filesystem locations.
type Path string

// Kind identifies the semantic scalar type of a field, or of a container's
// elements.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	KindPath
	KindIP
	KindIPNet
	KindDuration
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindUint:
		return "unsigned integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindPath:
		return "path"
	case KindIP:
		return "IP address"
	case KindIPNet:
		return "IP network"
	case KindDuration:
		return "duration"
	}
	return "unknown"
}

// Container identifies whether a field holds a single scalar or a collection
// of scalars.
type Container int

const (
	ContainerNone Container = iota
	ContainerList
	ContainerSet
	ContainerMap
)

// Field describes one configuration field derived from the schema struct.
// The CLI flag, environment variable and ini key names are all derived from
// Name.
type Field struct {
	// Name is the canonical field name in dash form, e.g. "str-arg".
	Name string

	// Kind is the scalar kind, or the element kind for lists and sets, or
	// the value kind for mappings (mapping keys are always strings).
	Kind      Kind
	Container Container

	// Default is the declared raw default. A field without a default is
	// required unless it is a boolean or a container.
	Default    string
	HasDefault bool

	// BoolDefault is the semantic default for boolean fields. A boolean
	// whose default is true acts as a negating switch.
	BoolDefault bool

	// Split separates container items; KVSplit separates mapping keys from
	// values.
	Split   string
	KVSplit string

	// Min is the minimum container length, enforced during validation, not
	// coercion.
	Min int

	Help string

	goType  reflect.Type // full field type
	elem    reflect.Type // element type for containers, key type for sets
	mapElem reflect.Type // value type for mappings
	mapKey  string       // name the decoder resolves for this field
	goName  string
}

// Required reports whether the field must be supplied by at least one
// source. Booleans fall back to their semantic default and containers to an
// empty container, so neither is ever required.
func (f Field) Required() bool {
	return !f.HasDefault && f.Container == ContainerNone && f.Kind != KindBool
}

// FlagName returns the derived command-line flag name (without dashes).
func (f Field) FlagName() string { return f.Name }

// EnvName returns the derived environment variable name.
func (f Field) EnvName() string { return envName(f.Name) }

var (
	durationType = reflect.TypeOf(time.Duration(0))
	ipType       = reflect.TypeOf(net.IP{})
	ipNetType    = reflect.TypeOf(&net.IPNet{})
	pathType     = reflect.TypeOf(Path(""))
	emptyType    = reflect.TypeOf(struct{}{})
)

// Fields derives the field descriptors for a schema struct. The target must
// be a non-nil pointer to a struct. The reserved --config and --section
// names cannot be used as field names.
func Fields(target any) ([]Field, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, fmt.Errorf("schema must be a non-nil struct pointer, got %T", target)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema must be a struct pointer, got %T", target)
	}

	t := rv.Type()
	fields := make([]Field, 0, t.NumField())
	seen := make(map[string]bool, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("cfg")
		if tag == "-" {
			continue
		}

		f := Field{
			Split:   ",",
			KVSplit: ":",
			goType:  sf.Type,
			goName:  sf.Name,
			mapKey:  sf.Name,
		}

		if tag != "" {
			if i := strings.IndexByte(tag, ','); i >= 0 {
				tag = tag[:i]
			}
			f.Name = normalizeKey(tag)
			f.mapKey = tag
		} else {
			f.Name = kebabCase(sf.Name)
		}

		switch f.Name {
		case "config", "section":
			return nil, fmt.Errorf("field name %q is reserved", f.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true

		if err := classify(&f, sf.Type); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}

		if d, ok := sf.Tag.Lookup("default"); ok {
			f.Default = d
			f.HasDefault = true
			if f.Container == ContainerNone && f.Kind == KindBool {
				f.BoolDefault = isTruthy(d)
			}
		}
		if s, ok := sf.Tag.Lookup("split"); ok && s != "" {
			f.Split = s
		}
		if s, ok := sf.Tag.Lookup("kvsplit"); ok && s != "" {
			f.KVSplit = s
		}
		if m, ok := sf.Tag.Lookup("min"); ok {
			n, err := strconv.Atoi(m)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("field %q: invalid min tag %q", f.Name, m)
			}
			if f.Container == ContainerNone {
				return nil, fmt.Errorf("field %q: min tag requires a list, set or mapping", f.Name)
			}
			f.Min = n
		}
		f.Help = sf.Tag.Get("help")

		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("schema %T declares no configuration fields", target)
	}
	return fields, nil
}

// classify determines the container and scalar kinds of a struct field type.
func classify(f *Field, t reflect.Type) error {
	// Named scalar types that would otherwise be misread as containers or
	// plain integers must be matched before the generic kind switch
	// (net.IP is a byte slice, time.Duration an int64).
	if kind, ok := scalarKind(t); ok {
		f.Container = ContainerNone
		f.Kind = kind
		return nil
	}

	switch t.Kind() {
	case reflect.Slice:
		kind, ok := scalarKind(t.Elem())
		if !ok {
			return fmt.Errorf("unsupported list element type %s", t.Elem())
		}
		f.Container = ContainerList
		f.Kind = kind
		f.elem = t.Elem()
		return nil

	case reflect.Map:
		if t.Elem() == emptyType {
			kind, ok := scalarKind(t.Key())
			if !ok {
				return fmt.Errorf("unsupported set element type %s", t.Key())
			}
			f.Container = ContainerSet
			f.Kind = kind
			f.elem = t.Key()
			return nil
		}
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("mapping keys must be strings, got %s", t.Key())
		}
		kind, ok := scalarKind(t.Elem())
		if !ok {
			return fmt.Errorf("unsupported mapping value type %s", t.Elem())
		}
		f.Container = ContainerMap
		f.Kind = kind
		f.elem = t.Key()
		f.mapElem = t.Elem()
		return nil

	case reflect.Struct, reflect.Ptr:
		return fmt.Errorf("nested schemas are not supported (type %s)", t)

	default:
		return fmt.Errorf("unsupported field type %s", t)
	}
}

// scalarKind maps a Go type to its semantic scalar kind.
func scalarKind(t reflect.Type) (Kind, bool) {
	switch t {
	case durationType:
		return KindDuration, true
	case ipType:
		return KindIP, true
	case ipNetType:
		return KindIPNet, true
	case pathType:
		return KindPath, true
	}

	switch t.Kind() {
	case reflect.String:
		return KindString, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint, true
	case reflect.Float32, reflect.Float64:
		return KindFloat, true
	case reflect.Bool:
		return KindBool, true
	}
	return 0, false
}
