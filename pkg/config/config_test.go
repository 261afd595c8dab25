package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/pipeline"
)

const sample = `
dimensions = 3
ticks = 500
seed = 7

[simulation]
alpha_decay = 0.05

[[force]]
kind = "many_body"
strength = -60
theta = 0.8

[[force]]
kind = "link"
distance = 40
iterations = 2

[[force]]
kind = "z"
target = 10
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Dimensions != 3 || f.Ticks != 500 || f.Seed != 7 {
		t.Errorf("top level = %d/%d/%d, want 3/500/7", f.Dimensions, f.Ticks, f.Seed)
	}

	want := kinetics.DefaultSchedule()
	want.AlphaDecay = 0.05
	if f.Simulation != want {
		t.Errorf("Simulation = %+v, want %+v", f.Simulation, want)
	}

	if len(f.Forces) != 3 {
		t.Fatalf("len(Forces) = %d, want 3", len(f.Forces))
	}
	mb := f.Forces[0]
	if mb.Kind != pipeline.KindManyBody || mb.Strength == nil || *mb.Strength != -60 || mb.Theta != 0.8 {
		t.Errorf("many_body = %+v", mb)
	}
	if link := f.Forces[1]; link.Distance != 40 || link.Iterations != 2 {
		t.Errorf("link = %+v", link)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "dimensions = "},
		{"unknown key", "dimension = 2"},
		{"unknown force key", "[[force]]\nkind = \"link\"\nlenght = 3"},
		{"bad dimensions", "dimensions = 4"},
		{"negative ticks", "ticks = -1"},
		{"schedule out of range", "[simulation]\nalpha_decay = 1.5"},
		{"unknown force kind", "[[force]]\nkind = \"gravity\""},
		{"z force in 2d", "[[force]]\nkind = \"z\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse(%q) error = %v, want %s", tt.data, err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "forces.toml", sample)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Ticks != 500 {
		t.Errorf("Ticks = %d, want 500", f.Ticks)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestApply(t *testing.T) {
	f, err := Parse([]byte("ticks = 50"))
	if err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{Dimensions: 3, Seed: 9}
	f.Apply(&opts)
	if opts.Ticks != 50 || opts.Dimensions != 3 || opts.Seed != 9 {
		t.Errorf("Apply kept %+v", opts)
	}
	if opts.Schedule != kinetics.DefaultSchedule() {
		t.Errorf("Schedule = %+v, want defaults", opts.Schedule)
	}
	if opts.Forces != nil {
		t.Errorf("Forces = %v, want nil so defaults apply", opts.Forces)
	}
	if err := opts.ValidateForLayout(); err != nil {
		t.Errorf("ValidateForLayout: %v", err)
	}
}

func TestReadEnv(t *testing.T) {
	t.Setenv(EnvConfig, " forces.toml ")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvTicks, "250")

	env, err := ReadEnv()
	if err != nil {
		t.Fatal(err)
	}
	want := Env{ConfigPath: "forces.toml", LogLevel: "debug", Ticks: 250}
	if env != want {
		t.Errorf("ReadEnv() = %+v, want %+v", env, want)
	}

	t.Setenv(EnvTicks, "many")
	if _, err := ReadEnv(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ReadEnv(bad ticks) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestLoadEnvDotenv(t *testing.T) {
	t.Setenv(EnvTicks, "")
	os.Unsetenv(EnvTicks)
	t.Setenv(EnvLogLevel, "warn")

	path := writeFile(t, ".env", EnvTicks+"=77\n"+EnvLogLevel+"=debug\n")
	env, err := LoadEnv(path, filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if env.Ticks != 77 {
		t.Errorf("Ticks = %d, want 77 from dotenv", env.Ticks)
	}
	if env.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want process value to win", env.LogLevel)
	}
}

func TestResolve(t *testing.T) {
	path := writeFile(t, "forces.toml", sample)

	opts, err := Resolve("", Env{ConfigPath: path, Ticks: 20})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Dimensions != 3 || opts.Ticks != 20 {
		t.Errorf("Resolve = dims %d ticks %d, want 3 and env ticks 20", opts.Dimensions, opts.Ticks)
	}

	opts, err = Resolve("", Env{})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Dimensions != 0 || opts.Forces != nil {
		t.Errorf("Resolve without config = %+v, want zero options", opts)
	}
}
