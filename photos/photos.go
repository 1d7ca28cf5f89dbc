// Package photos stores uploaded entry photos on the local filesystem,
// keyed by generated filenames so user input never reaches a path.
package photos

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/apex/log"
	"github.com/google/uuid"

	"trashmap/apperrors"
)

// Filenames the store serves back: generated name plus a known image
// extension, nothing else. Anything outside this pattern is rejected
// before any filesystem access.
var safeFilename = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.(jpg|jpeg|png)$`)

type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the photo directory if needed.
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Save validates and writes one uploaded photo, returning the generated
// filename. Only JPEG and PNG payloads up to the size limit are accepted;
// the content type is sniffed from the bytes, not taken from the request.
// JPEGs are normalized (EXIF orientation, size cap) before writing.
func (s *Store) Save(data []byte) (string, error) {
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: photo exceeds %d bytes", apperrors.ErrUnsupportedMedia, s.maxBytes)
	}

	var ext string
	switch http.DetectContentType(data) {
	case "image/jpeg":
		ext = ".jpg"
		normalized, err := normalizeJPEG(data)
		if err != nil {
			log.Warnf("Keeping original JPEG, normalization failed: %v", err)
		} else {
			data = normalized
		}
	case "image/png":
		ext = ".png"
	default:
		return "", fmt.Errorf("%w: only JPEG and PNG are allowed", apperrors.ErrUnsupportedMedia)
	}

	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		log.Errorf("Failed to write photo %s: %v", filename, err)
		return "", err
	}
	return filename, nil
}

// Remove deletes a stored photo, used to clean up after a failed
// submission. A missing file is not an error.
func (s *Store) Remove(filename string) {
	if !safeFilename.MatchString(filename) {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !os.IsNotExist(err) {
		log.Errorf("Failed to remove photo %s: %v", filename, err)
	}
}

// Path resolves a filename to its on-disk location. It returns
// ErrInvalidFilename without touching the filesystem when the name fails
// the safe pattern, and ErrNotFound when the file does not exist.
func (s *Store) Path(filename string) (string, error) {
	if !safeFilename.MatchString(strings.ToLower(filename)) {
		return "", apperrors.ErrInvalidFilename
	}
	full := filepath.Join(s.dir, filename)
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return full, nil
}

// ContentType maps a stored filename to its media type.
func ContentType(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
