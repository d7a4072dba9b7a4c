package confstack_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confstack/confstack"
)

func TestMustLoad(t *testing.T) {
	type schema struct {
		StrArg string `cfg:"str-arg" help:"required string argument"`
	}

	run := func(t *testing.T, args []string) (code int, exited bool, output string) {
		t.Helper()
		var out bytes.Buffer
		code = -1
		var cfg schema
		confstack.NewBuilder().
			WithArgs(args).
			WithLookupEnv(envMap(nil)).
			WithErrorOutput(&out).
			WithExitFunc(func(c int) {
				code = c
				exited = true
			}).
			MustLoad(&cfg)
		return code, exited, out.String()
	}

	t.Run("success does not exit", func(t *testing.T) {
		_, exited, output := run(t, []string{"--str-arg", "x"})
		assert.False(t, exited)
		assert.Empty(t, output)
	})

	t.Run("validation failure prints the report and exits 1", func(t *testing.T) {
		code, exited, output := run(t, nil)
		require.True(t, exited)
		assert.Equal(t, 1, code)
		assert.Contains(t, output, "str-arg")
	})

	t.Run("usage error prints usage and exits 2", func(t *testing.T) {
		code, exited, output := run(t, []string{"--bogus"})
		require.True(t, exited)
		assert.Equal(t, 2, code)
		assert.Contains(t, output, "--str-arg")
	})

	t.Run("help prints usage and exits 0", func(t *testing.T) {
		code, exited, output := run(t, []string{"--help"})
		require.True(t, exited)
		assert.Equal(t, 0, code)
		assert.Contains(t, output, "required string argument")
	})

	t.Run("unknown key error honors the exit boundary", func(t *testing.T) {
		path := writeFile(t, "config.ini", "mystery = 1\n")

		var out bytes.Buffer
		code := -1
		var cfg schema
		confstack.NewBuilder().
			WithArgs([]string{"--config", path, "--str-arg", "x"}).
			WithLookupEnv(envMap(nil)).
			WithUnknownKeyPolicy(confstack.UnknownKeyFatal).
			WithErrorOutput(&out).
			WithExitFunc(func(c int) { code = c }).
			MustLoad(&cfg)

		assert.Equal(t, 1, code)
		assert.Contains(t, out.String(), "mystery")
	})
}

func TestConvenienceLoad(t *testing.T) {
	// The convenience entry points consult os.Args, so they are exercised
	// through the builder they delegate to; this covers the no-file path
	// where only environment and command-line sources are consulted.
	type schema struct {
		Number int `cfg:"number" default:"1"`
	}

	var cfg schema
	err := confstack.NewBuilder().
		WithDescription("convenience test").
		WithArgs([]string{"--number", "5"}).
		WithLookupEnv(envMap(nil)).
		Load(&cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Number)
}
