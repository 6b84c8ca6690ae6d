package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/workflowgraph/pkg/cache"
	"github.com/matzehuels/workflowgraph/pkg/errors"
	"github.com/matzehuels/workflowgraph/pkg/render/layout"
	"github.com/matzehuels/workflowgraph/pkg/render/sink"
)

// defaultAddr is where 'serve' listens unless configured otherwise.
const defaultAddr = ":8080"

// Config is the on-disk configuration. Every table is optional; zero values
// fall back to the built-in defaults.
//
//	[layout]
//	window_width = 1600
//	straight_arrows = true
//
//	[theme]
//	node = "#e8eef7"
//	badge_height = 24
//
//	[redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":9090"
type Config struct {
	Layout layout.Config     `toml:"layout"`
	Theme  sink.Theme        `toml:"theme"`
	Redis  cache.RedisConfig `toml:"redis"`
	Server ServerConfig      `toml:"server"`
}

// ServerConfig configures the HTTP server started by 'serve'.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	MaxBodySize int64  `toml:"max_body_size"`
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent. Unknown keys are rejected so that typos do
// not pass silently.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config with defaults applied, without storing them.
func (c Config) Validate() error {
	l := c.Layout
	l.SetDefaults()
	if err := l.Validate(); err != nil {
		return err
	}
	t := c.Theme
	t.SetDefaults()
	if err := t.Validate(); err != nil {
		return err
	}
	if c.Server.MaxBodySize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_size must not be negative")
	}
	return nil
}
