// Package config holds the settings of the command line tool. Values come
// from Default, then an optional TOML file, then flags.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ronanpaixao/SkyAlchemy/tes/esm/egroup"
)

type (
	Config struct {
		// Plugins are loaded in order; later plugins override earlier ones.
		Plugins []string `toml:"plugins"`
		// Strings are .STRINGS, .DLSTRINGS or .ILSTRINGS files, merged in
		// order.
		Strings []string `toml:"strings"`
		// Labels are the group labels to descend into. Empty means every
		// label with a typed record.
		Labels         []string `toml:"labels"`
		TopLevelPolicy string   `toml:"top_level_policy"`
		NestedPolicy   string   `toml:"nested_policy"`
		LogLevel       string   `toml:"log_level"`
	}
	ErrInvalidPolicy struct {
		Key   string
		Value string
	}
)

func (r ErrInvalidPolicy) Error() string {
	return fmt.Sprintf(`config: invalid %s "%s": expected "fail" or "skip"`, r.Key, r.Value)
}

func Default() Config {
	walker := egroup.DefaultOptions()
	return Config{
		Labels:         walker.Labels,
		TopLevelPolicy: walker.TopLevel.String(),
		NestedPolicy:   walker.Nested.String(),
		LogLevel:       zerolog.InfoLevel.String(),
	}
}

// Parse reads TOML data over the defaults.
func Parse(data []byte) (Config, error) {
	config := Default()
	if err := toml.Unmarshal(data, &config); err != nil {
		err := errors.Wrap(err, "config.Parse error")
		return Config{}, err
	}
	if _, err := config.WalkerOptions(); err != nil {
		return Config{}, err
	}
	if _, err := config.Level(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Load reads a TOML file; an empty path gives the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		err := errors.Wrapf(err, `config.Load error reading "%s"`, path)
		return Config{}, err
	}
	config, err := Parse(data)
	if err != nil {
		err := errors.Wrapf(err, `config.Load error parsing "%s"`, path)
		return Config{}, err
	}
	return config, nil
}

func (c Config) WalkerOptions() (egroup.Options, error) {
	options := egroup.DefaultOptions()
	if len(c.Labels) > 0 {
		options.Labels = c.Labels
	}
	policies := []struct {
		key    string
		value  string
		target *egroup.Policy
	}{
		{key: "top_level_policy", value: c.TopLevelPolicy, target: &options.TopLevel},
		{key: "nested_policy", value: c.NestedPolicy, target: &options.Nested},
	}
	for _, p := range policies {
		if p.value == "" {
			continue
		}
		policy, ok := egroup.ParsePolicy(p.value)
		if !ok {
			return egroup.Options{}, ErrInvalidPolicy{Key: p.key, Value: p.value}
		}
		*p.target = policy
	}
	return options, nil
}

func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		err := errors.Wrap(err, "config.Level error")
		return zerolog.NoLevel, err
	}
	return level, nil
}
