// Package pipeline provides the graph → layout → render pipeline of forcetower.
//
// This package implements the glue between the wire format in [graph] and
// the simulation core, so that the CLI commands (layout, render, watch)
// behave identically. It owns the defaults, the force specifications and the
// caching runner.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Index the graph, bind the configured forces and run the
//     simulation until it settles or the tick limit is reached
//  2. Render: Turn a layout into SVG, DOT, PNG, PDF or JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger, metrics.New())
//	opts := pipeline.Options{Dimensions: 2, Formats: []string{"svg"}}
//	layout, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
//
// Build a simulation directly, for instance to animate it:
//
//	sim, idx, err := pipeline.Build[vector.Vec2](g, opts)
//	sim.Tick(1)
package pipeline

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcetower/pkg/cache"
	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/kinetics"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config Files
// =============================================================================

const (
	// DefaultDimensions is the default layout dimensionality.
	DefaultDimensions = 2

	// DefaultMaxTicks caps a run. The default schedule settles after
	// about 300 ticks, so this only matters for custom schedules.
	DefaultMaxTicks = 1000

	// DefaultSpread is the half-width of the box seeded initial positions
	// are drawn from.
	DefaultSpread = 100.0

	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Engine constants for SVG rendering.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidEngines is the set of supported render engines.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// It supports JSON serialization so runs can be recorded and replayed.
type Options struct {
	// Layout options
	Dimensions int               `json:"dimensions,omitempty"`
	Ticks      int               `json:"ticks,omitempty"` // maximum ticks, run stops early once settled
	Seed       uint64            `json:"seed,omitempty"`  // 0 selects the phyllotaxis spiral
	Spread     float64           `json:"spread,omitempty"`
	Schedule   kinetics.Schedule `json:"schedule"`
	Forces     []ForceSpec       `json:"forces,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Engine  string   `json:"engine,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Ticks      int
	LayoutTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that a render engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid engine: %q (must be one of: %s)", engine, strings.Join(sortedKeys(ValidEngines), ", "))
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
// An empty string selects SVG.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{FormatSVG}
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Dimensions == 0 {
		o.Dimensions = DefaultDimensions
	}
	if o.Ticks == 0 {
		o.Ticks = DefaultMaxTicks
	}
	if o.Spread == 0 {
		o.Spread = DefaultSpread
	}
	if o.Schedule == (kinetics.Schedule{}) {
		o.Schedule = kinetics.DefaultSchedule()
	}
	if len(o.Forces) == 0 {
		o.Forces = DefaultForces()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and validates layout options.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Dimensions != 2 && o.Dimensions != 3 {
		return errors.New(errors.ErrCodeInvalidInput, "dimensions must be 2 or 3, got %d", o.Dimensions)
	}
	if o.Ticks < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ticks must be non-negative, got %d", o.Ticks)
	}
	if o.Spread < 0 || math.IsInf(o.Spread, 0) || math.IsNaN(o.Spread) {
		return errors.New(errors.ErrCodeInvalidInput, "spread must be a non-negative finite number, got %v", o.Spread)
	}
	for i, f := range o.Forces {
		if err := f.Validate(o.Dimensions); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidForce, err, "force %d", i)
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = EngineNative
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and validates render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame size must be non-negative, got %vx%v", o.Width, o.Height)
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Dimensions: o.Dimensions,
		Ticks:      o.Ticks,
		Seed:       o.Seed,
		Spread:     o.Spread,
		Schedule:   cache.HashJSON(o.Schedule),
		Forces:     cache.HashJSON(o.Forces),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Engine: o.Engine,
		Width:  o.Width,
		Height: o.Height,
		Labels: o.Labels,
	}
}

// Summary describes the layout options in one line for logs.
func (o *Options) Summary() string {
	kinds := make([]string, len(o.Forces))
	for i, f := range o.Forces {
		kinds[i] = f.Kind
	}
	return fmt.Sprintf("%dD, ≤%d ticks, forces=%s", o.Dimensions, o.Ticks, strings.Join(kinds, "+"))
}

// =============================================================================
// Graph helpers
// =============================================================================

// graphStats counts nodes and edges of g.
func graphStats(g graph.Graph) Stats {
	return Stats{NodeCount: len(g.Nodes), EdgeCount: len(g.Edges)}
}
