// Package config loads typed configuration from environment variables.
//
// Values may come from the process environment or from .env files read with
// github.com/joho/godotenv; structs are populated with
// github.com/caarlos0/env/v11 field tags. Each configuration type is parsed
// once and cached for the lifetime of the process.
//
//	type ServerConfig struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Call LoadEnv before the first Load to read specific files instead of the
// default .env in the working directory. ResetCache forgets parsed values and
// is meant for tests.
package config
