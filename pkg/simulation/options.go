package simulation

import (
	"github.com/matzehuels/forcetower/pkg/kinetics"
	"github.com/matzehuels/forcetower/pkg/vector"
)

type config struct {
	schedule kinetics.Schedule
	seed     uint32
	init     any // func(int) V
}

func defaultConfig() config {
	return config{
		schedule: kinetics.DefaultSchedule(),
		seed:     kinetics.DefaultSeed,
	}
}

// Option configures a Simulation.
type Option func(*config)

// WithAlpha sets the initial temperature.
func WithAlpha(alpha float64) Option {
	return func(c *config) { c.schedule.Alpha = alpha }
}

// WithAlphaMin sets the temperature below which the simulation is settled.
func WithAlphaMin(alphaMin float64) Option {
	return func(c *config) { c.schedule.AlphaMin = alphaMin }
}

// WithAlphaDecay sets the per-tick relaxation factor of alpha.
func WithAlphaDecay(decay float64) Option {
	return func(c *config) { c.schedule.AlphaDecay = decay }
}

// WithAlphaTarget sets the temperature alpha relaxes towards.
func WithAlphaTarget(target float64) Option {
	return func(c *config) { c.schedule.AlphaTarget = target }
}

// WithVelocityDecay sets the factor velocities are multiplied by each tick.
func WithVelocityDecay(decay float64) Option {
	return func(c *config) { c.schedule.VelocityDecay = decay }
}

// WithSchedule replaces the whole temperature schedule.
func WithSchedule(s kinetics.Schedule) Option {
	return func(c *config) { c.schedule = s }
}

// WithSeed seeds the jiggle generator.
func WithSeed(seed uint32) Option {
	return func(c *config) { c.seed = seed }
}

// WithInitialPosition sets the position of node i before the first tick.
// V must match the simulation's vector type.
func WithInitialPosition[V vector.Vector[V]](fn func(i int) V) Option {
	return func(c *config) { c.init = fn }
}
