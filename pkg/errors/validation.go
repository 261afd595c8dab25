package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier read from a graph file.
//
// The rules are conservative because identifiers end up in DOT and SVG output:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node id %q contains control characters", id)
		}
	}

	return nil
}

// ValidateFinite rejects NaN and infinite parameter values.
// The name is used in the error message.
func ValidateFinite(name string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, x)
	}
	return nil
}

// ValidateUnit rejects values outside the closed interval [0, 1].
func ValidateUnit(name string, x float64) error {
	if err := ValidateFinite(name, x); err != nil {
		return err
	}
	if x < 0 || x > 1 {
		return New(ErrCodeInvalidInput, "%s must be in [0, 1], got %v", name, x)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
