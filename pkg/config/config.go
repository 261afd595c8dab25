// Package config loads layout settings from TOML files and the environment.
//
// A configuration file mirrors the layout flags and adds the force stack:
//
//	dimensions = 2
//	ticks = 500
//	seed = 7
//
//	[simulation]
//	alpha_decay = 0.05
//	velocity_decay = 0.3
//
//	[[force]]
//	kind = "many_body"
//	strength = -60
//
//	[[force]]
//	kind = "link"
//	distance = 40
//
// Keys left out of [simulation] keep their default values. When at least one
// [[force]] table is present it replaces the default force stack entirely.
//
// Settings resolve in increasing precedence: built-in defaults, the
// configuration file, environment variables, command-line flags.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/pipeline"
)

// File is a decoded configuration file.
type File struct {
	Dimensions int                  `toml:"dimensions"`
	Ticks      int                  `toml:"ticks"`
	Seed       uint64               `toml:"seed"`
	Spread     float64              `toml:"spread"`
	Simulation kinetics.Schedule    `toml:"simulation"`
	Forces     []pipeline.ForceSpec `toml:"force"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return f, nil
}

// Parse decodes configuration from TOML data. Unknown keys are rejected so
// that a misspelled force parameter does not silently fall back to its default.
func Parse(data []byte) (*File, error) {
	f := &File{Simulation: kinetics.DefaultSchedule()}
	md, err := toml.Decode(string(data), f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the file for values no layout could use.
func (f *File) Validate() error {
	if f.Dimensions != 0 && f.Dimensions != 2 && f.Dimensions != 3 {
		return errors.New(errors.ErrCodeInvalidConfig, "dimensions must be 2 or 3, got %d", f.Dimensions)
	}
	if f.Ticks < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "ticks must be non-negative, got %d", f.Ticks)
	}
	if f.Spread < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spread must be non-negative, got %v", f.Spread)
	}
	s := f.Simulation
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"alpha", s.Alpha},
		{"alpha_min", s.AlphaMin},
		{"alpha_decay", s.AlphaDecay},
		{"alpha_target", s.AlphaTarget},
		{"velocity_decay", s.VelocityDecay},
	} {
		if err := errors.ValidateUnit("simulation."+p.name, p.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "schedule")
		}
	}
	dims := f.Dimensions
	if dims == 0 {
		dims = pipeline.DefaultDimensions
	}
	for i, spec := range f.Forces {
		if err := spec.Validate(dims); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "force %d", i)
		}
	}
	return nil
}

// Apply copies the settings present in the file onto opts.
func (f *File) Apply(opts *pipeline.Options) {
	if f.Dimensions != 0 {
		opts.Dimensions = f.Dimensions
	}
	if f.Ticks != 0 {
		opts.Ticks = f.Ticks
	}
	if f.Seed != 0 {
		opts.Seed = f.Seed
	}
	if f.Spread != 0 {
		opts.Spread = f.Spread
	}
	opts.Schedule = f.Simulation
	if len(f.Forces) > 0 {
		opts.Forces = append([]pipeline.ForceSpec(nil), f.Forces...)
	}
}
