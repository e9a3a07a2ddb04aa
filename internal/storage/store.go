// Package storage owns the on-disk attachment tree for spec PDFs. Each
// campaign gets one directory named by its id under the configured root;
// a flat legacy directory is consulted when resolving filenames that
// predate the per-campaign layout.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"spec-tracker/internal/core/port"
)

// Store implements port.FileStore over the local filesystem.
type Store struct {
	root      string
	legacyDir string
}

// New returns a Store rooted at root with legacyDir as the resolution
// fallback.
func New(root, legacyDir string) *Store {
	return &Store{root: root, legacyDir: legacyDir}
}

func (s *Store) campaignDir(campaignID int64) string {
	return filepath.Join(s.root, strconv.FormatInt(campaignID, 10))
}

// EnsureDir creates the campaign's directory if it does not exist yet.
func (s *Store) EnsureDir(campaignID int64) error {
	if err := os.MkdirAll(s.campaignDir(campaignID), 0o755); err != nil {
		return fmt.Errorf("%w: create spec directory: %v", port.ErrIO, err)
	}
	return nil
}

// Exists reports whether filename is already present in the campaign's
// directory.
func (s *Store) Exists(campaignID int64, filename string) bool {
	_, err := os.Stat(filepath.Join(s.campaignDir(campaignID), SafeBasename(filename)))
	return err == nil
}

// Save writes content into the campaign's directory. The bytes go to a
// uniquely named temp file first and are renamed into place, so a crashed
// write never leaves a half-written spec behind.
func (s *Store) Save(campaignID int64, filename string, content []byte) error {
	dir := s.campaignDir(campaignID)
	final := filepath.Join(dir, SafeBasename(filename))
	tmp := final + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("%w: write spec file: %v", port.ErrIO, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: place spec file: %v", port.ErrIO, err)
	}
	return nil
}

// Remove deletes filename from the campaign's directory.
func (s *Store) Remove(campaignID int64, filename string) error {
	if err := os.Remove(filepath.Join(s.campaignDir(campaignID), SafeBasename(filename))); err != nil {
		return fmt.Errorf("%w: remove spec file: %v", port.ErrIO, err)
	}
	return nil
}

// Resolve maps a stored filename to an on-disk path. The per-campaign
// directory is checked first, then the flat legacy directory. A missing
// file is reported as ok=false; the caller renders a warning instead of
// failing the whole read.
func (s *Store) Resolve(campaignID int64, filename string) (string, bool) {
	name := SafeBasename(filename)
	if name == "" || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return "", false
	}
	for _, dir := range []string{s.campaignDir(campaignID), s.legacyDir} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// SafeBasename strips any path components from name and removes characters
// that are unsafe in filenames. Spaces and other ordinary characters are
// preserved because generated spec filenames contain them.
func SafeBasename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return -1
		}
		return r
	}, base)
}
