// Package storage is the binary object store boundary for menu images.
// Objects are opaque to the rest of the system; the only rules enforced
// here are the bucket-level ones: a size cap, an image MIME whitelist,
// and public reads. Write access is gated one level up, in the upload
// handler, which requires any authenticated caller.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// MaxObjectSize is the upload cap, 5 MiB.
const MaxObjectSize = 5 << 20

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var (
	ErrTooLarge    = errors.New("object exceeds 5 MiB limit")
	ErrUnsupported = errors.New("unsupported content type")

	// ErrObjectMissing marks a delete of a key that does not exist, as
	// opposed to a backend failure.
	ErrObjectMissing = errors.New("object not found")
)

// ObjectStore stores and removes opaque binary objects. Put returns the
// public URL of the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// ValidateImage checks the bucket policy against the raw object bytes:
// size cap and sniffed MIME type (the client-declared type is not
// trusted). It returns the detected content type.
func ValidateImage(data []byte) (string, error) {
	if len(data) > MaxObjectSize {
		return "", ErrTooLarge
	}
	mtype := mimetype.Detect(data)
	if !allowedTypes[mtype.String()] {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, mtype.String())
	}
	return mtype.String(), nil
}

// Ext returns the canonical file extension for a detected content type.
func Ext(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ""
}
