package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronanpaixao/SkyAlchemy/tes/esm/egroup"
)

func TestDefault(t *testing.T) {
	config := Default()
	options, err := config.WalkerOptions()
	require.NoError(t, err)
	assert.Equal(t, egroup.DefaultOptions(), options)

	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)
}

func TestParse(t *testing.T) {
	data := []byte(`
plugins = ["Skyrim.esm", "Update.esm"]
strings = ["Skyrim_English.STRINGS", "Skyrim_English.DLSTRINGS"]
labels = ["INGR", "MGEF"]
top_level_policy = "skip"
log_level = "debug"
`)
	config, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Skyrim.esm", "Update.esm"}, config.Plugins)
	assert.Len(t, config.Strings, 2)

	options, err := config.WalkerOptions()
	require.NoError(t, err)
	assert.Equal(t, []string{"INGR", "MGEF"}, options.Labels)
	assert.Equal(t, egroup.PolicySkip, options.TopLevel)
	assert.Equal(t, egroup.PolicySkip, options.Nested)

	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)
}

func TestParse_Invalid(t *testing.T) {
	testCases := map[string]string{
		"syntax":    `plugins = [`,
		"policy":    `nested_policy = "ignore"`,
		"log level": `log_level = "loud"`,
	}
	for name, data := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte(`top_level_policy = "maybe"`))
	var invalid ErrInvalidPolicy
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "top_level_policy", invalid.Key)
}

func TestLoad(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), config)

	path := filepath.Join(t.TempDir(), "skyalchemy.toml")
	require.NoError(t, os.WriteFile(path, []byte(`plugins = ["Dawnguard.esm"]`), 0o644))
	config, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dawnguard.esm"}, config.Plugins)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
