package confstack

import (
	"bytes"

	"github.com/spf13/pflag"
)

// cliResult holds the raw values parsed from the command line plus the
// reserved flag values.
type cliResult struct {
	values     map[string]string
	configPath string
	section    string
	sectionSet bool
}

// parseCommandLine builds an argument parser from the field descriptors and
// parses args. Boolean fields become zero-argument switches; every other
// field takes a single string argument that the coercer splits and parses
// later. The reserved --config flag is always present; --section only when
// ini support is configured.
func parseCommandLine(name string, fields []Field, args []string, withSection bool, section string) (*cliResult, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	var out bytes.Buffer
	fs.SetOutput(&out)

	for _, f := range fields {
		help := f.Help
		if help == "" {
			help = "no help provided"
		}
		if f.Container == ContainerNone && f.Kind == KindBool {
			fs.Bool(f.FlagName(), false, help)
		} else {
			fs.String(f.FlagName(), "", help)
		}
	}

	fs.String("config", "", "path to configuration file")
	if withSection {
		fs.String("section", section, "configuration file section to read")
	}

	if err := fs.Parse(args); err != nil {
		usage := out.String()
		if usage == "" {
			usage = fs.FlagUsages()
		}
		return nil, &UsageError{Err: err, Usage: usage}
	}

	res := &cliResult{values: make(map[string]string)}

	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "config":
			res.configPath = fl.Value.String()
		case "section":
			res.section = fl.Value.String()
			res.sectionSet = true
		default:
			// Bare boolean switches carry "true"; --flag=false stays
			// false-like and never inverts a negating switch.
			res.values[normalizeKey(fl.Name)] = fl.Value.String()
		}
	})

	return res, nil
}
