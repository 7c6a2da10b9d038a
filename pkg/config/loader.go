package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu       sync.Mutex
	cache    = map[reflect.Type]any{}
	envFiles sync.Once
)

// LoadEnv reads the given .env files into the process environment. Variables
// that are already set win over file values; earlier files win over later
// ones. Without paths it reads ./.env and ignores a missing file.
func LoadEnv(paths ...string) error {
	var err error
	envFiles.Do(func() {
		if len(paths) == 0 {
			_ = godotenv.Load()
			return
		}
		if loadErr := godotenv.Load(paths...); loadErr != nil {
			err = errors.Join(ErrLoadingEnv, loadErr)
		}
	})
	return err
}

// MustLoadEnv is LoadEnv that panics on error.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

// Load populates v from the environment. The first successful parse of a
// type is cached and copied into later calls.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	_ = LoadEnv()

	key := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any]() T {
	var v T
	if err := Load(&v); err != nil {
		panic(fmt.Sprintf("config: load %s: %v", reflect.TypeFor[T](), err))
	}
	return v
}

// ResetCache forgets parsed configurations and allows LoadEnv to run again.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()
	cache = map[reflect.Type]any{}
	envFiles = sync.Once{}
}
