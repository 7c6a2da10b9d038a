package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsroom/pkg/config"
)

type appConfig struct {
	Name string   `env:"TEST_APP_NAME" envDefault:"newsroom"`
	Port int      `env:"TEST_APP_PORT" envDefault:"8080"`
	Tags []string `env:"TEST_APP_TAGS" envSeparator:","`
}

type requiredConfig struct {
	Token string `env:"TEST_REQUIRED_TOKEN,required"`
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	var cfg appConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "newsroom", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_EnvAndCache(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("TEST_APP_NAME", "from-env")
	t.Setenv("TEST_APP_PORT", "1234")

	var cfg appConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 1234, cfg.Port)

	// Cached: later environment changes are not observed.
	t.Setenv("TEST_APP_NAME", "changed")
	var again appConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "from-env", again.Name)
}

func TestLoad_Errors(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	assert.ErrorIs(t, config.Load[appConfig](nil), config.ErrNilPointer)

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad[requiredConfig]() })

	t.Setenv("TEST_REQUIRED_TOKEN", "abc")
	got := config.MustLoad[requiredConfig]()
	assert.Equal(t, "abc", got.Token)
}

func TestLoadEnv_File(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	// Registered with t.Setenv so the values written by the file are
	// restored afterwards.
	for _, key := range []string{"TEST_APP_NAME", "TEST_APP_TAGS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("TEST_APP_PORT", "7070")

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg appConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, 7070, cfg.Port, "process environment wins")
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnv)
}
