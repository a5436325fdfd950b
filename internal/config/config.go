package config

import (
	"os"
	"runtime"

	"github.com/pelletier/go-toml"
	"tlog.app/go/errors"

	"github.com/movingco/move-to-ts/internal/tsbe"
)

// FileName is the project file looked up in the working directory.
const FileName = "move-to-ts.toml"

type (
	// Config is the build configuration as it is encoded in TOML.
	Config struct {
		Output  string  `toml:"output"`
		Test    bool    `toml:"test"`
		Jobs    int     `toml:"jobs"`
		Runtime Runtime `toml:"runtime"`
	}

	// Runtime names the packages generated code imports.
	Runtime struct {
		Package string `toml:"package"`
		Client  string `toml:"client"`
	}
)

func Default() *Config {
	return &Config{
		Output: "build/ts",
		Jobs:   runtime.NumCPU(),
		Runtime: Runtime{
			Package: tsbe.DefaultRuntimePackage,
			Client:  tsbe.DefaultClientPackage,
		},
	}
}

// Load reads the config file at path over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	if err := Parse(data, c); err != nil {
		return nil, errors.Wrap(err, "config %v", path)
	}

	return c, nil
}

// Parse decodes TOML data over c. Keys absent from data keep their values.
func Parse(data []byte, c *Config) error {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return errors.Wrap(err, "parse")
	}

	var f Config

	if err := tree.Unmarshal(&f); err != nil {
		return errors.Wrap(err, "unmarshal")
	}

	if tree.Has("output") {
		c.Output = f.Output
	}
	if tree.Has("test") {
		c.Test = f.Test
	}
	if tree.Has("jobs") {
		c.Jobs = f.Jobs
	}
	if tree.Has("runtime.package") {
		c.Runtime.Package = f.Runtime.Package
	}
	if tree.Has("runtime.client") {
		c.Runtime.Client = f.Runtime.Client
	}

	return c.Validate()
}

func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output directory is empty")
	}

	if c.Jobs < 0 {
		return errors.New("jobs must not be negative: %d", c.Jobs)
	}

	if c.Runtime.Package == "" || c.Runtime.Client == "" {
		return errors.New("runtime package names must not be empty")
	}

	return nil
}

// Options are the translation options the config selects.
func (c *Config) Options() tsbe.Options {
	return tsbe.Options{
		Test:           c.Test,
		RuntimePackage: c.Runtime.Package,
		ClientPackage:  c.Runtime.Client,
	}
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(*c)
	if err != nil {
		return nil, errors.Wrap(err, "marshal")
	}

	return data, nil
}
