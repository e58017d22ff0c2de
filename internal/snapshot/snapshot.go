// Package snapshot provides the image-capture collaborator: a capability
// that yields the active document's encoded bytes for multimodal backends.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
)

// ErrNoDocument is returned when there is nothing to capture.
var ErrNoDocument = errors.New("no active document")

// Image is one captured frame.
type Image struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Source captures the currently active document.
type Source interface {
	Capture(ctx context.Context) (*Image, error)
}

// FileSource captures a PNG snapshot that already exists on disk. This is
// the CLI-side stand-in for a host editor's save-and-read capture.
type FileSource struct {
	Path string
}

func (s *FileSource) Capture(ctx context.Context) (*Image, error) {
	if s.Path == "" {
		return nil, ErrNoDocument
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &Image{
		Data:   data,
		MIME:   "image/png",
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
