package scene

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/placardlabs/placard/pkg/errors"
)

// =============================================================================
// Scene Serialization API
// =============================================================================

// MarshalScene converts a scene to indented JSON bytes.
func MarshalScene(s *Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSceneFile writes a scene to a JSON file.
// The file is created with 0644 permissions.
func WriteSceneFile(s *Scene, path string) error {
	return writeFile(path, s)
}

// WriteScene writes a scene as JSON to an io.Writer.
func WriteScene(s *Scene, w io.Writer) error {
	return writeJSON(w, s)
}

// ReadSceneFile reads and validates a scene from a JSON file.
func ReadSceneFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "open %s", path)
	}
	defer f.Close()
	return ReadScene(f)
}

// ReadScene decodes and validates a JSON scene from an io.Reader.
// Use ReadSceneFile for files or pass bytes.NewReader for in-memory data.
func ReadScene(r io.Reader) (*Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout converts a solved layout to indented JSON bytes.
func MarshalLayout(l *Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLayoutFile writes a solved layout to a JSON file.
func WriteLayoutFile(l *Layout, path string) error {
	return writeFile(path, l)
}

// WriteLayout writes a solved layout as JSON to an io.Writer.
func WriteLayout(l *Layout, w io.Writer) error {
	return writeJSON(w, l)
}

// ReadLayoutFile reads a solved layout from a JSON file.
func ReadLayoutFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadLayout(f)
}

// ReadLayout decodes a JSON layout from an io.Reader.
func ReadLayout(r io.Reader) (*Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	return &l, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

func writeFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return writeJSON(f, v)
}
