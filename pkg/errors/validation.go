package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxFigureIDLength bounds figure identifiers so they stay usable as cache keys.
const maxFigureIDLength = 128

// ValidateFigureID validates a figure identifier supplied by a document or user.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or surrounding whitespace
//   - Maximum length of 128 characters
func ValidateFigureID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidFigureID, "figure ID cannot be empty")
	}

	if len(id) > maxFigureIDLength {
		return New(ErrCodeInvalidFigureID, "figure ID too long (max %d characters)", maxFigureIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFigureID, "figure ID contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidFigureID, "figure ID has leading or trailing whitespace: %q", id)
	}

	return nil
}

// ValidateExtent validates the coordinates and size of a figure.
// Coordinates must be finite; width and height must be finite and non-negative.
func ValidateExtent(id string, x, y, w, h float64) error {
	for _, v := range []float64{x, y, w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Figure(ErrCodeInvalidGeometry, id, "non-finite geometry (%g, %g, %g×%g)", x, y, w, h)
		}
	}
	if w < 0 || h < 0 {
		return Figure(ErrCodeInvalidGeometry, id, "negative size %g×%g", w, h)
	}
	return nil
}
