package confstack

import (
	"io"
	"log/slog"
	"os"
)

// ValidatorFunc validates the fully resolved configuration. It receives the
// populated schema struct and returns an error if validation fails.
type ValidatorFunc func(target any) error

// Builder assembles the options for one configuration load.
type Builder struct {
	description    string
	configID       string
	configFileName string
	section        string
	args           []string
	unknownKeys    UnknownKeyPolicy
	lookupEnv      LookupEnvFunc
	logger         *slog.Logger
	errOut         io.Writer
	exit           func(code int)
	validators     []ValidatorFunc
}

// NewBuilder creates a configuration builder with the process arguments and
// the warning unknown-key policy as defaults.
func NewBuilder() *Builder {
	return &Builder{
		args:        os.Args[1:],
		unknownKeys: UnknownKeyWarn,
	}
}

// WithDescription sets the program description shown in --help output.
func (b *Builder) WithDescription(description string) *Builder {
	b.description = description
	return b
}

// WithConfigID sets the per-application directory name used when locating
// the configuration file. Without both a config id and a file name, file
// support is skipped and only environment and command-line sources are
// consulted.
func (b *Builder) WithConfigID(id string) *Builder {
	b.configID = id
	return b
}

// WithConfigFileName sets the configuration file name to look for.
func (b *Builder) WithConfigFileName(name string) *Builder {
	b.configFileName = name
	return b
}

// WithSection sets the named configuration file section overlaid on the
// DEFAULT section. The --section flag overrides it.
func (b *Builder) WithSection(section string) *Builder {
	b.section = section
	return b
}

// WithArgs sets the command-line arguments (default os.Args[1:]).
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithUnknownKeyPolicy selects how unknown configuration file keys are
// handled.
func (b *Builder) WithUnknownKeyPolicy(policy UnknownKeyPolicy) *Builder {
	b.unknownKeys = policy
	return b
}

// WithLookupEnv replaces the environment lookup, for deterministic tests.
func (b *Builder) WithLookupEnv(lookup LookupEnvFunc) *Builder {
	b.lookupEnv = lookup
	return b
}

// WithLogger sets the logger used for non-fatal warnings.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithErrorOutput redirects MustLoad's error reporting (default stderr).
func (b *Builder) WithErrorOutput(w io.Writer) *Builder {
	b.errOut = w
	return b
}

// WithExitFunc replaces the process-exit function MustLoad calls (default
// os.Exit), so command-line tools can be tested without terminating.
func (b *Builder) WithExitFunc(exit func(code int)) *Builder {
	b.exit = exit
	return b
}

// WithValidator adds a validation function run after the configuration is
// resolved. Multiple validators run in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

func (b *Builder) fileSupport() bool {
	return b.configID != "" && b.configFileName != ""
}

func (b *Builder) flagSetName() string {
	if b.description != "" {
		return b.description
	}
	return ScriptName()
}

func (b *Builder) lookup() LookupEnvFunc {
	if b.lookupEnv != nil {
		return b.lookupEnv
	}
	return os.LookupEnv
}

func (b *Builder) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return slog.Default()
}

func (b *Builder) errWriter() io.Writer {
	if b.errOut != nil {
		return b.errOut
	}
	return os.Stderr
}

func (b *Builder) exitFunc() func(code int) {
	if b.exit != nil {
		return b.exit
	}
	return os.Exit
}
