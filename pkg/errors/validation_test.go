package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateFigureID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "idle", false},
		{"valid with dash", "wait-ack", false},
		{"valid uuid", "0f8fad5b-d9cb-469f-a165-70867728950e", false},
		{"valid unicode", "état", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " idle", true},
		{"trailing space", "idle ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFigureID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFigureID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFigureID) {
				t.Errorf("ValidateFigureID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateExtent(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		wantErr    bool
	}{
		{"valid", 10, 20, 30, 40, false},
		{"zero size", 0, 0, 0, 0, false},
		{"negative position", -5, -5, 10, 10, false},

		{"nan x", math.NaN(), 0, 10, 10, true},
		{"inf y", 0, math.Inf(1), 10, 10, true},
		{"inf width", 0, 0, math.Inf(-1), 10, true},
		{"negative width", 0, 0, -1, 10, true},
		{"negative height", 0, 0, 10, -0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtent("f", tt.x, tt.y, tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExtent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGeometry) {
				t.Errorf("ValidateExtent() returned wrong error code: %v", err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidGeometry,
		ErrCodeInvalidFigureID,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeDuplicateFigure,
		ErrCodeLockedFigure,
		ErrCodeUnknownAlgorithm,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeStaleReference,
		ErrCodeEditState,
		ErrCodeIrreversible,
		ErrCodeNothingToUndo,
		ErrCodeNothingToRedo,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
