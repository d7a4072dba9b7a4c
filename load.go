package confstack

import (
	"errors"
	"fmt"
)

// UnknownKeyPolicy selects how configuration file keys absent from the
// schema are handled. Environment and command-line values are schema-driven
// and can never be unknown.
type UnknownKeyPolicy string

const (
	// UnknownKeyWarn emits a non-fatal warning and ignores the key.
	UnknownKeyWarn UnknownKeyPolicy = "warning"
	// UnknownKeyIgnore silently drops the key.
	UnknownKeyIgnore UnknownKeyPolicy = "ignore"
	// UnknownKeyFatal treats the key as a configuration error.
	UnknownKeyFatal UnknownKeyPolicy = "error"
)

// Load resolves the configuration into target in one pass: derive field
// descriptors, read each source once, merge by precedence, coerce, decode
// and validate. It always returns structured errors and never terminates
// the process; MustLoad is the process-boundary wrapper.
func (b *Builder) Load(target any) error {
	fields, err := Fields(target)
	if err != nil {
		return err
	}

	cli, err := parseCommandLine(b.flagSetName(), fields, b.args, b.fileSupport(), b.section)
	if err != nil {
		return err
	}

	section := b.section
	if cli.sectionSet {
		section = cli.section
	}

	var fileDefaults, fileSection map[string]string
	path, err := ResolveConfigPath(cli.configPath, b.configID, b.configFileName)
	switch {
	case err == nil:
		layers, err := readConfigFile(path, section, fields)
		if err != nil {
			return err
		}
		if err := b.handleUnknownKeys(path, layers.unknown); err != nil {
			return err
		}
		fileDefaults, fileSection = layers.defaults, layers.section

	case errors.Is(err, ErrNoConfigFile):
		// A discovered path that does not exist is "no file", not an error.

	default:
		return err
	}

	env := readEnv(fields, b.lookup())

	raw := mergeSources(fields, []layer{
		{source: SourceIniDefault, values: fileDefaults},
		{source: SourceIniSection, values: fileSection},
		{source: SourceEnv, values: env},
		{source: SourceCLI, values: cli.values},
	})

	values, failures := resolveValues(fields, raw)
	if len(failures) == 0 {
		if err := decodeInto(values, target); err != nil {
			return err
		}
		failures = runTagValidation(fields, target)
	}
	if len(failures) > 0 {
		return &ValidationError{Fields: failures}
	}

	for _, validate := range b.validators {
		if err := validate(target); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return nil
}

// MustLoad is the process-boundary counterpart of Load for command-line
// tools: on failure it prints the report to the error output and exits
// non-zero (2 for usage errors, 1 otherwise). --help prints the flag
// listing and exits 0.
func (b *Builder) MustLoad(target any) {
	err := b.Load(target)
	if err == nil {
		return
	}

	var uerr *UsageError
	if errors.As(err, &uerr) {
		fmt.Fprint(b.errWriter(), uerr.Usage)
		if uerr.IsHelp() {
			b.exitFunc()(0)
			return
		}
		b.exitFunc()(2)
		return
	}

	fmt.Fprintln(b.errWriter(), err)
	b.exitFunc()(1)
}

// handleUnknownKeys applies the unknown-key policy to file keys that match
// no schema field.
func (b *Builder) handleUnknownKeys(path string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	switch b.unknownKeys {
	case UnknownKeyIgnore:
		return nil
	case UnknownKeyFatal:
		return &UnknownKeyError{Path: path, Keys: keys}
	default:
		for _, key := range keys {
			b.log().Warn("ignoring unknown configuration key", "key", key, "file", path)
		}
		return nil
	}
}
