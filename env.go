package confstack

import "os"

// LookupEnvFunc resolves an environment variable, reporting whether it is
// set. It exists as a seam for deterministic tests; the default is
// os.LookupEnv.
type LookupEnvFunc func(name string) (string, bool)

// readEnv reads raw values from the environment, one derived variable per
// field. An unset variable means "no value from this source".
func readEnv(fields []Field, lookup LookupEnvFunc) map[string]string {
	values := make(map[string]string)
	for _, f := range fields {
		if v, ok := lookup(f.EnvName()); ok {
			values[f.Name] = v
		}
	}
	return values
}

// DiscoverEnv reports which schema fields currently have a matching
// environment variable set, mapping field name to variable name.
func DiscoverEnv(target any, lookup LookupEnvFunc) (map[string]string, error) {
	fields, err := Fields(target)
	if err != nil {
		return nil, err
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	discovered := make(map[string]string)
	for _, f := range fields {
		if _, ok := lookup(f.EnvName()); ok {
			discovered[f.Name] = f.EnvName()
		}
	}
	return discovered, nil
}
