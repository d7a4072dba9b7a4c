package confstack

// Source identifies the layer a raw value originated from. The constant
// order below is the precedence order, lowest first.
type Source string

const (
	// SourceDefault represents declared default values.
	SourceDefault Source = "default"
	// SourceIniDefault represents the configuration file's DEFAULT section.
	SourceIniDefault Source = "ini-default"
	// SourceIniSection represents the configuration file's named section.
	SourceIniSection Source = "ini-section"
	// SourceEnv represents environment variables.
	SourceEnv Source = "env"
	// SourceCLI represents command-line arguments.
	SourceCLI Source = "cli"
)

// rawValue is one resolved entry of the raw value mapping: the surviving
// unparsed string and the layer it came from.
type rawValue struct {
	value  string
	source Source
}

// layer pairs a source with the raw values it contributed, keyed by
// normalized field name.
type layer struct {
	source Source
	values map[string]string
}

// mergeSources builds the raw value mapping: layers are applied lowest
// precedence first and later layers overwrite, leaving exactly one raw value
// (or absence) per field. Boolean defaults are not materialized as raw
// values here; the coercer owns their two-state semantics.
func mergeSources(fields []Field, layers []layer) map[string]rawValue {
	raw := make(map[string]rawValue, len(fields))

	for _, f := range fields {
		if f.HasDefault && !(f.Container == ContainerNone && f.Kind == KindBool) {
			raw[f.Name] = rawValue{value: f.Default, source: SourceDefault}
		}
	}

	for _, l := range layers {
		for name, value := range l.values {
			raw[name] = rawValue{value: value, source: l.source}
		}
	}

	return raw
}
