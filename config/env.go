package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnvPrefix prefixes every environment variable read here.
const EnvPrefix = "MISASIM_"

// Environment variables.
const (
	EnvSeed     = EnvPrefix + "SEED"
	EnvLogLevel = EnvPrefix + "LOG_LEVEL"
)

// Env holds defaults taken from the environment. Flags override them.
type Env struct {
	// Seed is valid only when HasSeed is set.
	Seed     int64
	HasSeed  bool
	LogLevel logrus.Level
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnv reads the process environment.
func LoadEnv() (Env, error) { return LoadEnvFrom(os.LookupEnv) }

// LoadEnvFrom reads the variables through lookup. Unset variables keep
// their defaults (no seed, info level); empty values count as unset.
func LoadEnvFrom(lookup LookupFunc) (Env, error) {
	env := Env{LogLevel: logrus.InfoLevel}

	if v, ok := lookup(EnvSeed); ok && strings.TrimSpace(v) != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return env, fmt.Errorf("config: %s=%q: %w", EnvSeed, v, err)
		}
		env.Seed, env.HasSeed = seed, true
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		lvl, err := logrus.ParseLevel(strings.TrimSpace(v))
		if err != nil {
			return env, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
		}
		env.LogLevel = lvl
	}
	return env, nil
}
