package confstack_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confstack/confstack"
)

type fileConfig struct {
	StrArg        string `cfg:"str-arg"`
	StrUnderscore string `cfg:"str-underscore"`
	Number        int    `cfg:"number" default:"1"`
	Enabled       bool   `cfg:"enabled"`
}

func loadFile(t *testing.T, path, section string, extra ...func(*confstack.Builder) *confstack.Builder) (fileConfig, error) {
	t.Helper()
	b := confstack.NewBuilder().
		WithSection(section).
		WithArgs([]string{"--config", path, "--str-arg", "x"}).
		WithLookupEnv(envMap(nil))
	for _, fn := range extra {
		b = fn(b)
	}
	var cfg fileConfig
	err := b.Load(&cfg)
	return cfg, err
}

func TestIniReader(t *testing.T) {
	t.Run("named section overlays DEFAULT", func(t *testing.T) {
		path := writeFile(t, "config.ini", `[DEFAULT]
number = 2
str_underscore = from default

[worker]
number = 3
enabled = yes
`)
		cfg, err := loadFile(t, path, "worker")
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Number)
		assert.Equal(t, "from default", cfg.StrUnderscore)
		assert.True(t, cfg.Enabled)
	})

	t.Run("dash and underscore keys are interchangeable", func(t *testing.T) {
		path := writeFile(t, "config.ini", "str-underscore = dashed\nSTR_ARG = upper\n")
		cfg, err := loadFile(t, path, "")
		require.NoError(t, err)
		assert.Equal(t, "dashed", cfg.StrUnderscore)
		// CLI still wins over the file value.
		assert.Equal(t, "x", cfg.StrArg)
	})

	t.Run("comments and quoting are honored", func(t *testing.T) {
		path := writeFile(t, "config.ini", `; a comment
str_underscore = "quoted value" # trailing comment
`)
		cfg, err := loadFile(t, path, "")
		require.NoError(t, err)
		assert.Equal(t, "quoted value", cfg.StrUnderscore)
	})

	t.Run("missing named section is not an error", func(t *testing.T) {
		path := writeFile(t, "config.ini", "number = 2\n")
		cfg, err := loadFile(t, path, "absent")
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Number)
	})

	t.Run("malformed file is a parse error", func(t *testing.T) {
		path := writeFile(t, "config.ini", "[unclosed\n")
		_, err := loadFile(t, path, "")

		var perr *confstack.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, path, perr.Path)
	})
}

func TestUnknownKeyPolicy(t *testing.T) {
	const content = "unused = 1\nnumber = 2\n"

	t.Run("warning policy loads and warns", func(t *testing.T) {
		path := writeFile(t, "config.ini", content)

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		cfg, err := loadFile(t, path, "", func(b *confstack.Builder) *confstack.Builder {
			return b.WithLogger(logger)
		})
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Number)
		assert.Contains(t, logs.String(), "unused")
	})

	t.Run("ignore policy is silent", func(t *testing.T) {
		path := writeFile(t, "config.ini", content)

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		_, err := loadFile(t, path, "", func(b *confstack.Builder) *confstack.Builder {
			return b.WithLogger(logger).WithUnknownKeyPolicy(confstack.UnknownKeyIgnore)
		})
		require.NoError(t, err)
		assert.Empty(t, logs.String())
	})

	t.Run("error policy fails the load", func(t *testing.T) {
		path := writeFile(t, "config.ini", content)

		_, err := loadFile(t, path, "", func(b *confstack.Builder) *confstack.Builder {
			return b.WithUnknownKeyPolicy(confstack.UnknownKeyFatal)
		})

		var uerr *confstack.UnknownKeyError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, []string{"unused"}, uerr.Keys)
		assert.Equal(t, path, uerr.Path)
	})

	t.Run("unknown keys in the named section are reported too", func(t *testing.T) {
		path := writeFile(t, "config.ini", "[worker]\nmystery = 1\n")

		_, err := loadFile(t, path, "worker", func(b *confstack.Builder) *confstack.Builder {
			return b.WithUnknownKeyPolicy(confstack.UnknownKeyFatal)
		})

		var uerr *confstack.UnknownKeyError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, []string{"mystery"}, uerr.Keys)
	})
}

func TestTOMLAndYAMLFiles(t *testing.T) {
	t.Run("toml top-level and section table", func(t *testing.T) {
		path := writeFile(t, "config.toml", `number = 2

[worker]
number = 3
str-underscore = "from toml"
`)
		cfg, err := loadFile(t, path, "worker")
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Number)
		assert.Equal(t, "from toml", cfg.StrUnderscore)
	})

	t.Run("yaml top-level and section mapping", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `number: 2
worker:
  number: 3
  enabled: true
`)
		cfg, err := loadFile(t, path, "worker")
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Number)
		assert.True(t, cfg.Enabled)
	})

	t.Run("malformed toml is a parse error", func(t *testing.T) {
		path := writeFile(t, "config.toml", "number = = 2\n")
		_, err := loadFile(t, path, "")

		var perr *confstack.ParseError
		require.ErrorAs(t, err, &perr)
	})
}
