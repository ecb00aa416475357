// Package storage keeps uploaded files. Keys are slash-separated paths
// relative to the store root, e.g. "uploads/<uuid>_photo.png".
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"strings"
)

var (
	ErrNotExist   = errors.New("storage: object does not exist")
	ErrInvalidKey = errors.New("storage: invalid key")
)

// BlobStore is the put/get/delete surface the file service needs.
type BlobStore interface {
	// Put writes r under key and returns the number of bytes stored.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	// Open returns the object body and its size. Missing keys yield ErrNotExist.
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	// Delete removes key. Missing keys yield ErrNotExist.
	Delete(ctx context.Context, key string) error
}

// CleanKey normalizes a caller supplied key and rejects anything that is
// empty, absolute or climbs out of the root.
func CleanKey(key string) (string, error) {
	key = strings.ReplaceAll(strings.TrimSpace(key), "\\", "/")
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}

	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", ErrInvalidKey
		}
	}

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == "" {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded name to ASCII letters, digits, dot,
// dash and underscore. Separators become underscores and leading or trailing
// dots and underscores are dropped, so "../../etc/passwd" becomes
// "etc_passwd". The result may be empty.
func SanitizeFilename(name string) string {
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// SanitizeFolder applies SanitizeFilename to every segment of a folder path
// and drops segments that end up empty. It returns "" when nothing is left.
func SanitizeFolder(folder string) string {
	folder = strings.ReplaceAll(folder, "\\", "/")

	var segments []string
	for _, segment := range strings.Split(folder, "/") {
		if s := SanitizeFilename(segment); s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, "/")
}
