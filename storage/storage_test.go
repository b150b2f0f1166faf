package storage_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menudeck/menudeck/storage"
)

// Minimal valid file headers for MIME sniffing.
var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	gifHeader  = []byte("GIF89a")
)

func TestValidateImageAcceptsWhitelistedTypes(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"png", pngHeader, "image/png"},
		{"jpeg", jpegHeader, "image/jpeg"},
		{"gif", gifHeader, "image/gif"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			contentType, err := storage.ValidateImage(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, contentType)
		})
	}
}

func TestValidateImageRejectsOtherTypes(t *testing.T) {
	_, err := storage.ValidateImage([]byte("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, storage.ErrUnsupported)

	_, err = storage.ValidateImage([]byte("<html><body>hi</body></html>"))
	assert.ErrorIs(t, err, storage.ErrUnsupported)
}

func TestValidateImageRejectsOversize(t *testing.T) {
	big := make([]byte, storage.MaxObjectSize+1)
	copy(big, pngHeader)
	_, err := storage.ValidateImage(big)
	assert.ErrorIs(t, err, storage.ErrTooLarge)
}

func TestExtMapping(t *testing.T) {
	assert.Equal(t, ".jpg", storage.Ext("image/jpeg"))
	assert.Equal(t, ".png", storage.Ext("image/png"))
	assert.Equal(t, ".webp", storage.Ext("image/webp"))
	assert.Equal(t, ".gif", storage.Ext("image/gif"))
	assert.Equal(t, "", storage.Ext("application/pdf"))
}

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	local, err := storage.NewLocal(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := local.Put(context.Background(), "abc.png", "image/png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/abc.png", url)

	stored, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	require.NoError(t, local.Delete(context.Background(), "abc.png"))
	_, err = os.Stat(filepath.Join(dir, "abc.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting again reports a missing object, not a backend failure.
	assert.ErrorIs(t, local.Delete(context.Background(), "abc.png"), storage.ErrObjectMissing)
}

func TestLocalPutConfinesKeysToDir(t *testing.T) {
	dir := t.TempDir()
	local, err := storage.NewLocal(dir, "http://localhost:8080")
	require.NoError(t, err)

	// Traversal components are stripped by path cleaning.
	_, err = local.Put(context.Background(), "../escape.png", "image/png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(filepath.Dir(dir), "escape.png"))
	assert.True(t, os.IsNotExist(statErr))
}
