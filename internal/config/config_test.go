package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movingco/move-to-ts/internal/tsbe"
)

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)

	assert.Equal(t, Default(), c)
	assert.Equal(t, tsbe.DefaultRuntimePackage, c.Options().RuntimePackage)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	err := os.WriteFile(path, []byte(`
output = "gen"
test = true

[runtime]
package = "@acme/runtime"
`), 0644)
	require.NoError(t, err)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gen", c.Output)
	assert.True(t, c.Test)
	assert.Equal(t, Default().Jobs, c.Jobs)
	assert.Equal(t, "@acme/runtime", c.Runtime.Package)
	assert.Equal(t, tsbe.DefaultClientPackage, c.Runtime.Client)

	opts := c.Options()
	assert.True(t, opts.Test)
	assert.Equal(t, "@acme/runtime", opts.RuntimePackage)
}

func TestParseErrors(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":        "output = ",
		"empty output":  `output = ""`,
		"negative jobs": "jobs = -2",
		"empty runtime": "[runtime]\nclient = \"\"",
	} {
		t.Run(name, func(t *testing.T) {
			err := Parse([]byte(data), Default())
			assert.Error(t, err)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	c := Default()
	c.Output = "out"
	c.Jobs = 3

	data, err := c.Encode()
	require.NoError(t, err)

	var back Config
	require.NoError(t, Parse(data, &back))

	assert.Equal(t, c, &back)
}
