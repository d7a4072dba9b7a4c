package confstack_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confstack/confstack"
)

func TestRequireAllOrNone(t *testing.T) {
	type group struct {
		User     string `cfg:"user" default:""`
		Password string `cfg:"password" default:""`
		Realm    string `cfg:"realm" default:""`
	}

	t.Run("none set passes", func(t *testing.T) {
		cfg := group{}
		require.NoError(t, confstack.RequireAllOrNone(&cfg, "user", "password", "realm"))
	})

	t.Run("all set passes", func(t *testing.T) {
		cfg := group{User: "u", Password: "p", Realm: "r"}
		require.NoError(t, confstack.RequireAllOrNone(&cfg, "user", "password", "realm"))
	})

	t.Run("exactly one set fails", func(t *testing.T) {
		cfg := group{User: "u"}
		err := confstack.RequireAllOrNone(&cfg, "user", "password", "realm")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")
		assert.Contains(t, err.Error(), "realm")
	})

	t.Run("boolean group members count when true", func(t *testing.T) {
		type boolGroup struct {
			Enabled bool   `cfg:"enabled"`
			Target  string `cfg:"target" default:""`
		}
		cfg := boolGroup{Enabled: true}
		require.Error(t, confstack.RequireAllOrNone(&cfg, "enabled", "target"))

		cfg = boolGroup{}
		require.NoError(t, confstack.RequireAllOrNone(&cfg, "enabled", "target"))
	})

	t.Run("unknown field name is an error", func(t *testing.T) {
		cfg := group{}
		require.Error(t, confstack.RequireAllOrNone(&cfg, "user", "no-such-field"))
	})
}

func TestScriptName(t *testing.T) {
	assert.Equal(t, filepath.Base(os.Args[0]), confstack.ScriptName())
	assert.NotEmpty(t, confstack.ScriptName())
}

func TestFieldDerivation(t *testing.T) {
	t.Run("names derive from tags or field names", func(t *testing.T) {
		type schema struct {
			StrArg   string `cfg:"str-arg" default:""`
			HTTPPort int    `default:"80"`
			Skipped  string `cfg:"-"`
		}
		fields, err := confstack.Fields(&schema{})
		require.NoError(t, err)
		require.Len(t, fields, 2)
		assert.Equal(t, "str-arg", fields[0].Name)
		assert.Equal(t, "STR_ARG", fields[0].EnvName())
		assert.Equal(t, "http-port", fields[1].Name)
		assert.Equal(t, "HTTP_PORT", fields[1].EnvName())
	})

	t.Run("underscore tags normalize to dash form", func(t *testing.T) {
		type schema struct {
			StrArg string `cfg:"str_arg" default:""`
		}
		fields, err := confstack.Fields(&schema{})
		require.NoError(t, err)
		assert.Equal(t, "str-arg", fields[0].Name)
	})

	t.Run("nested structs are rejected", func(t *testing.T) {
		type inner struct{ X string }
		type schema struct {
			Inner inner `cfg:"inner"`
		}
		_, err := confstack.Fields(&schema{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nested")
	})

	t.Run("non-boolean fields without defaults are required", func(t *testing.T) {
		type schema struct {
			Needed   string   `cfg:"needed"`
			Optional string   `cfg:"optional" default:"x"`
			Flag     bool     `cfg:"flag"`
			List     []string `cfg:"list"`
		}
		fields, err := confstack.Fields(&schema{})
		require.NoError(t, err)
		required := make(map[string]bool)
		for _, f := range fields {
			required[f.Name] = f.Required()
		}
		assert.True(t, required["needed"])
		assert.False(t, required["optional"])
		assert.False(t, required["flag"])
		assert.False(t, required["list"])
	})
}
