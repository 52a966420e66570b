package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/figure"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// Marshal converts a document to JSON bytes.
func Marshal(d *figure.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a document to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(d *figure.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeTo(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes a document as JSON to an io.Writer.
func Write(d *figure.Document, w io.Writer) error {
	return writeTo(d, w)
}

// ReadFile reads a JSON file and returns the decoded document.
func ReadFile(path string) (*figure.Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "diagram %s does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := readFrom(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Read decodes a JSON diagram from an io.Reader into a document.
func Read(r io.Reader) (*figure.Document, error) {
	return readFrom(r)
}

// =============================================================================
// Positions
// =============================================================================

// MarshalPositions encodes geometry keyed by figure id. Keys are sorted.
func MarshalPositions(pos map[figure.ID]figure.Geometry) ([]byte, error) {
	return json.Marshal(pos)
}

// UnmarshalPositions decodes the output of MarshalPositions.
func UnmarshalPositions(data []byte) (map[figure.ID]figure.Geometry, error) {
	var pos map[figure.ID]figure.Geometry
	if err := json.Unmarshal(data, &pos); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode positions")
	}
	return pos, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(d *figure.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromDocument(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*figure.Document, error) {
	var data Diagram
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram")
	}
	return ToDocument(data)
}
