// Package assets manages image objects on the external asset host.
// Every upload is validated before any network call; deletes are
// best-effort at call sites (logged, never blocking the owning
// mutation).
package assets

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxSize is the upload size cap, matching the 5MB multer limit the
// API has always enforced.
const MaxSize = 5 * 1024 * 1024

var (
	ErrTooLarge    = errors.New("image exceeds the 5MB size limit")
	ErrInvalidType = errors.New("only .png, .jpg, .jpeg and .webp format allowed")
	ErrNotImage    = errors.New("only image files are allowed")
)

// Asset references an uploaded object: the host-side file id used for
// deletion and the public URL stored on the owning record.
type Asset struct {
	FileID string
	URL    string
}

// Uploader stores and removes binary objects on the asset host.
type Uploader interface {
	Upload(ctx context.Context, file multipart.File, folder string) (Asset, error)
	Delete(ctx context.Context, fileID string) error
}

var strictTypes = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

var strictMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateStrict enforces the post/profile picture filter: size cap
// plus extension AND declared MIME type in the jpeg/jpg/png/webp set.
func ValidateStrict(header *multipart.FileHeader) error {
	if header.Size > MaxSize {
		return ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	mime := strings.ToLower(header.Header.Get("Content-Type"))
	if !strictTypes[ext] || !strictMimes[mime] {
		return ErrInvalidType
	}
	return nil
}

// ValidateAnyImage enforces the registration filter: size cap plus any
// image/* MIME type. Looser than ValidateStrict on purpose; the two
// routes have always disagreed and the behavior is kept as observed.
func ValidateAnyImage(header *multipart.FileHeader) error {
	if header.Size > MaxSize {
		return ErrTooLarge
	}
	mime := strings.ToLower(header.Header.Get("Content-Type"))
	if !strings.HasPrefix(mime, "image/") {
		return ErrNotImage
	}
	return nil
}
