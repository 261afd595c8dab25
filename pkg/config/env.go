package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/pipeline"
)

// Environment variable names.
const (
	EnvConfig   = "FORCETOWER_CONFIG"
	EnvLogLevel = "FORCETOWER_LOG_LEVEL"
	EnvTicks    = "FORCETOWER_TICKS"
)

// Env holds the settings read from the environment.
type Env struct {
	ConfigPath string
	LogLevel   string
	Ticks      int
}

// LoadEnv loads the given dotenv files (".env" when none are named) into the
// process environment and reads the forcetower variables. Missing dotenv
// files are ignored; variables already set in the environment win over
// values from the files.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return Env{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", file)
		}
	}
	return ReadEnv()
}

// ReadEnv reads the forcetower variables from the process environment.
func ReadEnv() (Env, error) {
	env := Env{
		ConfigPath: strings.TrimSpace(os.Getenv(EnvConfig)),
		LogLevel:   strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))),
	}
	if raw := strings.TrimSpace(os.Getenv(EnvTicks)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Env{}, errors.New(errors.ErrCodeInvalidConfig, "%s must be a non-negative integer, got %q", EnvTicks, raw)
		}
		env.Ticks = n
	}
	return env, nil
}

// Apply copies the environment overrides onto opts.
func (e Env) Apply(opts *pipeline.Options) {
	if e.Ticks > 0 {
		opts.Ticks = e.Ticks
	}
}

// Resolve builds layout options from defaults, the configuration file and
// the environment. An explicit path takes precedence over FORCETOWER_CONFIG.
func Resolve(path string, env Env) (pipeline.Options, error) {
	var opts pipeline.Options
	if path == "" {
		path = env.ConfigPath
	}
	if path != "" {
		f, err := Load(path)
		if err != nil {
			return opts, err
		}
		f.Apply(&opts)
	}
	env.Apply(&opts)
	return opts, nil
}
