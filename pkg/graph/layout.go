package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/matzehuels/forcetower/pkg/errors"
)

// =============================================================================
// Layout - Simulation Output
// =============================================================================

// Layout is the serialization format of a finished simulation run.
//
// Nodes appear in input order. Z is zero and omitted for two-dimensional
// layouts.
type Layout struct {
	Dimensions int     `json:"dimensions"`
	Ticks      int     `json:"ticks"`
	Alpha      float64 `json:"alpha"`
	Seed       uint64  `json:"seed,omitempty"`

	Nodes []Placement `json:"nodes"`
	Edges []Edge      `json:"edges,omitempty"`
}

// Placement is a node with its computed position.
type Placement struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	Group  string  `json:"group,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Fixed  bool    `json:"fixed,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (p *Placement) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// Bounds returns the bounding rectangle of the nodes in the XY plane,
// including their radii. An empty layout has zero bounds.
func (l Layout) Bounds() (minX, minY, maxX, maxY float64) {
	if len(l.Nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range l.Nodes {
		minX = min(minX, n.X-n.Radius)
		minY = min(minY, n.Y-n.Radius)
		maxX = max(maxX, n.X+n.Radius)
		maxY = max(maxY, n.Y+n.Radius)
	}
	return minX, minY, maxX, maxY
}

// Validate checks dimensions, node IDs and edge endpoints.
func (l Layout) Validate() error {
	if l.Dimensions != 2 && l.Dimensions != 3 {
		return errors.New(errors.ErrCodeInvalidFormat, "layout dimensions must be 2 or 3, got %d", l.Dimensions)
	}
	ids := make(map[string]bool, len(l.Nodes))
	for i, n := range l.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "layout node %d", i)
		}
		if ids[n.ID] {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate layout node %q", n.ID)
		}
		ids[n.ID] = true
	}
	for i, e := range l.Edges {
		if !ids[e.From] || !ids[e.To] {
			return errors.New(errors.ErrCodeInvalidFormat, "layout edge %d (%s→%s) references unknown node", i, e.From, e.To)
		}
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes and validates JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
