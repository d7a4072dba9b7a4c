package confstack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// fileLayers holds the two raw value layers a configuration file
// contributes: the DEFAULT section and the named section. Keys are
// normalized field names. Unknown lists file keys that match no schema
// field, for unknown-key policy handling.
type fileLayers struct {
	defaults map[string]string
	section  map[string]string
	unknown  []string
}

// readConfigFile reads raw values from an ini, toml or yaml file. A missing
// section is not an error; a missing file is the caller's concern (path
// resolution already established existence).
func readConfigFile(path, section string, fields []Field) (*fileLayers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
	}

	var layers *fileLayers
	switch detectFileFormat(path, data) {
	case "toml":
		layers, err = readTOMLLayers(data, section, known)
	case "yaml":
		layers, err = readYAMLLayers(data, section, known)
	default:
		layers, err = readINILayers(data, section, known)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	sort.Strings(layers.unknown)
	return layers, nil
}

// readINILayers extracts the DEFAULT and named section layers from ini data.
// Keys are case-insensitive with dash and underscore interchangeable.
func readINILayers(data []byte, section string, known map[string]bool) (*fileLayers, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, err
	}

	layers := &fileLayers{
		defaults: make(map[string]string),
		section:  make(map[string]string),
	}
	seen := make(map[string]bool)

	collect := func(sec *ini.Section, into map[string]string) {
		if sec == nil {
			return
		}
		for _, key := range sec.Keys() {
			name := normalizeKey(key.Name())
			if !known[name] {
				if !seen[name] {
					seen[name] = true
					layers.unknown = append(layers.unknown, key.Name())
				}
				continue
			}
			into[name] = key.String()
		}
	}

	collect(file.Section(ini.DefaultSection), layers.defaults)
	if section != "" {
		if sec, err := file.GetSection(section); err == nil {
			collect(sec, layers.section)
		}
	}
	return layers, nil
}

// readTOMLLayers maps a toml document onto the file layers: top-level
// scalars act as the DEFAULT section, a top-level table named like the
// section acts as the named section.
func readTOMLLayers(data []byte, section string, known map[string]bool) (*fileLayers, error) {
	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return mapLayers(doc, section, known), nil
}

// readYAMLLayers maps a yaml document onto the file layers, same shape as
// toml.
func readYAMLLayers(data []byte, section string, known map[string]bool) (*fileLayers, error) {
	doc := make(map[string]any)
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return mapLayers(doc, section, known), nil
}

func mapLayers(doc map[string]any, section string, known map[string]bool) *fileLayers {
	layers := &fileLayers{
		defaults: make(map[string]string),
		section:  make(map[string]string),
	}
	seen := make(map[string]bool)

	collect := func(values map[string]any, into map[string]string) {
		for k, v := range values {
			raw, ok := stringifyValue(v)
			if !ok {
				continue // nested tables other than the section table
			}
			name := normalizeKey(k)
			if !known[name] {
				if !seen[name] {
					seen[name] = true
					layers.unknown = append(layers.unknown, k)
				}
				continue
			}
			into[name] = raw
		}
	}

	collect(doc, layers.defaults)
	if section != "" {
		if tbl, ok := doc[section].(map[string]any); ok {
			collect(tbl, layers.section)
		}
	}
	return layers
}

// stringifyValue renders a parsed toml/yaml value back into the raw string
// form the coercer expects. Arrays join with a comma; tables are not raw
// values.
func stringifyValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := stringifyValue(item)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), true
	default:
		return "", false
	}
}

// detectFileFormat picks the parser by extension, falling back to content
// detection. Ini wins the fallback since it is the primary format and the
// most permissive parser.
func detectFileFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	case ".ini", ".conf", ".cfg", ".config":
		return "ini"
	}

	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}
	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil && yamlTest != nil {
		return "yaml"
	}
	return "ini"
}

// statFile reports whether a path exists as a regular file.
func statFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
