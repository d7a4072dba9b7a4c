package confstack

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveConfigPath locates the configuration file. An explicit path (from
// --config) must exist or the result is a *PathError. Otherwise the XDG user
// configuration directory is tried, then the system /etc path. When no
// candidate exists, ErrNoConfigFile is returned; callers treat that as "load
// without a file". Without a configID and fileName there is nothing to look
// for and file support is skipped entirely.
func ResolveConfigPath(explicit, configID, fileName string) (string, error) {
	if explicit != "" {
		if !statFile(explicit) {
			return "", &PathError{Path: explicit}
		}
		return explicit, nil
	}

	if configID == "" || fileName == "" {
		return "", ErrNoConfigFile
	}

	if dir := userConfigDir(); dir != "" {
		candidate := filepath.Join(dir, configID, fileName)
		if statFile(candidate) {
			return candidate, nil
		}
	}

	candidate := filepath.Join("/etc", fileName)
	if statFile(candidate) {
		return candidate, nil
	}

	return "", ErrNoConfigFile
}

// userConfigDir resolves the XDG user configuration directory:
// $XDG_CONFIG_HOME, or its conventional $HOME/.config default.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config")
	}
	return ""
}

// ConfigDir returns the per-subsystem configuration directory, creating it
// if missing. envVar names the XDG variable honored before the conventional
// default; an empty envVar means XDG_CONFIG_HOME.
func ConfigDir(subsystem, envVar string) (string, error) {
	if subsystem == "" {
		return "", fmt.Errorf("subsystem name must not be empty")
	}
	if envVar == "" {
		envVar = "XDG_CONFIG_HOME"
	}

	base := os.Getenv(envVar)
	if base == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return "", fmt.Errorf("neither %s nor HOME is set", envVar)
		}
		base = filepath.Join(home, ".config")
	}

	dir := filepath.Join(base, subsystem)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create configuration directory %q: %w", dir, err)
	}
	return dir, nil
}
