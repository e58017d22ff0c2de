package snapshot

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Capture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 32, 16))))
	require.NoError(t, f.Close())

	img, err := (&FileSource{Path: path}).Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, 32, img.Width)
	assert.Equal(t, 16, img.Height)
	assert.NotEmpty(t, img.Data)
}

func TestFileSource_NoDocument(t *testing.T) {
	_, err := (&FileSource{}).Capture(context.Background())
	assert.ErrorIs(t, err, ErrNoDocument)

	_, err = (&FileSource{Path: filepath.Join(t.TempDir(), "gone.png")}).Capture(context.Background())
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestFileSource_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o600))

	_, err := (&FileSource{Path: path}).Capture(context.Background())
	assert.Error(t, err)
}
