package photos

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trashmap/apperrors"
)

// Smallest payloads that pass content sniffing.
var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\nrest-of-file")
	jpegBytes = []byte("\xff\xd8\xff\xe0rest-of-file")
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), 1024)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestSavePNG(t *testing.T) {
	s := newTestStore(t)

	filename, err := s.Save(pngBytes)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(filename, ".png") {
		t.Errorf("filename %q should end in .png", filename)
	}
	if !safeFilename.MatchString(filename) {
		t.Errorf("generated filename %q fails the safe pattern", filename)
	}

	stored, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		t.Fatalf("reading stored photo: %v", err)
	}
	if string(stored) != string(pngBytes) {
		t.Error("png payload modified on save")
	}
}

func TestSaveJPEGKeepsOriginalWhenUndecodable(t *testing.T) {
	s := newTestStore(t)

	// Sniffs as JPEG but does not decode; the store keeps the bytes rather
	// than failing the submission.
	filename, err := s.Save(jpegBytes)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(filename, ".jpg") {
		t.Errorf("filename %q should end in .jpg", filename)
	}
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save([]byte("GIF89a not an allowed format"))
	if !errors.Is(err, apperrors.ErrUnsupportedMedia) {
		t.Errorf("err = %v, want ErrUnsupportedMedia", err)
	}
}

func TestSaveRejectsOversized(t *testing.T) {
	s := newTestStore(t)

	big := append([]byte{}, pngBytes...)
	big = append(big, make([]byte, 2048)...)
	_, err := s.Save(big)
	if !errors.Is(err, apperrors.ErrUnsupportedMedia) {
		t.Errorf("err = %v, want ErrUnsupportedMedia", err)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{
		"../../etc/passwd.jpg",
		"..%2Fpasswd.jpg",
		"no-extension",
		"shell.sh",
		"space name.jpg",
		".jpg",
	} {
		if _, err := s.Path(name); !errors.Is(err, apperrors.ErrInvalidFilename) {
			t.Errorf("Path(%q) err = %v, want ErrInvalidFilename", name, err)
		}
	}
}

func TestPathMissingFile(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Path("deadbeef.jpg"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPathRoundTrip(t *testing.T) {
	s := newTestStore(t)

	filename, err := s.Save(pngBytes)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := s.Path(filename)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if filepath.Dir(path) != s.dir {
		t.Errorf("resolved path %q escapes store dir %q", path, s.dir)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	filename, err := s.Save(pngBytes)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Remove(filename)

	if _, err := s.Path(filename); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("photo still present after Remove: %v", err)
	}

	// Removing twice or removing garbage is harmless.
	s.Remove(filename)
	s.Remove("../../etc/passwd.jpg")
}

func TestContentType(t *testing.T) {
	if got := ContentType("a.png"); got != "image/png" {
		t.Errorf("ContentType(a.png) = %q", got)
	}
	if got := ContentType("a.jpg"); got != "image/jpeg" {
		t.Errorf("ContentType(a.jpg) = %q", got)
	}
}
