// Package confstack resolves typed application configuration from layered
// sources: an ini-style file, environment variables, command-line arguments,
// and declared defaults.
//
// Features:
//   - Schema described by a plain Go struct with field tags
//   - Fixed precedence: CLI > environment > ini section > ini DEFAULT > default
//   - Scalar, list, set and mapping field types with per-field split characters
//   - Config file discovery via --config, XDG user paths and /etc
//   - Aggregated validation errors, one report per load
//   - Error-returning core with a thin print-and-exit wrapper for CLI tools
//
// Quick Start:
//
//	type Config struct {
//	    Host    string `cfg:"host" help:"server to connect to"`
//	    Port    int    `cfg:"port" default:"8080" help:"server port"`
//	    Verbose bool   `cfg:"verbose" help:"enable verbose output"`
//	    Tags    []string `cfg:"tags" help:"comma separated tags"`
//	}
//
//	var cfg Config
//	confstack.MustLoad(&cfg, "mytool", "mytool", "mytool.ini", "client")
//
// Each field maps to a --flag (dash form), an environment variable (upper
// snake form) and an ini key (case-insensitive, dash and underscore
// interchangeable). A field without a default tag is required unless it is a
// boolean or a container.
//
// Precedence (highest to lowest):
//  1. Command-line arguments (--port 9090)
//  2. Environment variables (PORT=9090)
//  3. Named ini section ([client] port=9090)
//  4. Ini DEFAULT section
//  5. Default values from struct tags
//
// Boolean fields are two-state switches. A boolean whose declared default is
// true is a negating switch: supplying the flag (or a true-like value from
// any source) stores false, and absence stores true.
//
// Embedding callers use Load, which returns structured errors
// (*ValidationError, *UsageError, *PathError, *ParseError). Command-line
// tools use MustLoad, which prints the report to stderr and exits non-zero.
package confstack
