// Package filestore persists applicant document uploads on local disk,
// scoped by category so crew and staff attachments never mix. Records store
// only the returned filename, never a path, so the storage root can move
// without a data migration.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crewline/platform/internal/domain"
)

// Storage categories. Open rejects anything else.
const (
	CategoryCrew  = "crew"
	CategoryStaff = "staff"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var categories = map[string]bool{
	CategoryCrew:  true,
	CategoryStaff: true,
}

// Store writes and reads uploaded files under a root directory.
type Store struct {
	root string
	now  func() time.Time
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir, now: time.Now}
}

// Save persists an uploaded blob and returns the stored filename. A file
// whose extension is not allowed (or missing) is silently dropped: Save
// returns an empty name and no error, and registration proceeds without the
// attachment.
func (s *Store) Save(data []byte, originalName, category, hint string) (string, error) {
	if !categories[category] {
		return "", fmt.Errorf("unknown file category %q", category)
	}

	// Allowlist check is case-insensitive; the stored name keeps the
	// extension exactly as uploaded.
	ext := filepath.Ext(originalName)
	if !allowedExtensions[strings.ToLower(ext)] {
		return "", nil
	}

	base := sanitizeName(strings.TrimSuffix(filepath.Base(originalName), ext))
	stored := fmt.Sprintf("%s_%s_%s%s", sanitizeName(hint), base, s.now().Format("20060102_150405"), ext)

	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return stored, nil
}

// Open returns a reader over a previously stored file. The filename must be
// a clean single path element with an allowed extension inside a known
// category; anything else reads as not-found rather than reaching the
// filesystem with attacker-controlled paths.
func (s *Store) Open(category, filename string) (io.ReadCloser, int64, error) {
	if !categories[category] || !safeStoredName(filename) {
		return nil, 0, domain.ErrNotFound("file", filename)
	}

	path := filepath.Join(s.root, category, filename)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, 0, domain.ErrNotFound("file", filename)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, domain.ErrInternal("open upload", err)
	}
	return f, info.Size(), nil
}

// safeStoredName reports whether filename could have been issued by Save.
func safeStoredName(filename string) bool {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return false
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(filename))] {
		return false
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base == sanitizeName(base)
}

// sanitizeName reduces a name to [A-Za-z0-9_-], mapping spaces and path
// separators to underscores and dropping everything else.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '/', r == '\\', r == '.':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
