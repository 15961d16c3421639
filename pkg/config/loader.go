package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvFileVar names the variable that points at an alternative dotenv file.
const EnvFileVar = "ENV_FILE"

var (
	cache      sync.Map // reflect.Type -> any
	dotenvOnce sync.Once
)

// Load fills v from environment variables using `env` struct tags.
//
// The first call loads a dotenv file (".env", or the path in ENV_FILE) into
// the process environment without overriding variables already set. A
// missing file is not an error. Each config type is parsed once; later calls
// for the same type return the cached copy.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(loadDotenv)

	key := reflect.TypeFor[T]()
	if cached, ok := cache.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	parsed, err := env.ParseAs[T]()
	if err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	actual, _ := cache.LoadOrStore(key, parsed)
	*v = actual.(T)
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached config. Tests use it between cases.
func Reset() {
	cache.Clear()
}

func loadDotenv() {
	path := os.Getenv(EnvFileVar)
	if path == "" {
		path = ".env"
	}
	_ = godotenv.Load(path)
}
