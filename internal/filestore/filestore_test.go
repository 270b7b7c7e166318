package filestore

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir())
}

func TestSave_RejectsDisallowedExtension(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save([]byte("payload"), "malware.exe", CategoryCrew, "jane_passport")
	require.NoError(t, err)
	assert.Empty(t, name)

	entries, err := os.ReadDir(filepath.Join(s.root, CategoryCrew))
	if err == nil {
		assert.Empty(t, entries, "no file should have been written")
	}
}

func TestSave_RejectsMissingExtension(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save([]byte("payload"), "README", CategoryCrew, "jane_resume")
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestSave_AcceptsUppercaseExtension(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save([]byte("%PDF-1.4"), "scan.PDF", CategoryCrew, "jane_passport")
	require.NoError(t, err)
	require.NotEmpty(t, name)
	assert.True(t, strings.HasSuffix(name, ".PDF"), "extension should keep its original case: %s", name)
	assert.True(t, strings.HasPrefix(name, "jane_passport_scan_"), "hint and base should lead: %s", name)

	data, err := os.ReadFile(filepath.Join(s.root, CategoryCrew, name))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestSave_SanitizesTraversalAttempt(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save([]byte("x"), "../../etc/passwd.pdf", CategoryStaff, "intruder")
	require.NoError(t, err)
	require.NotEmpty(t, name)
	assert.NotContains(t, name, "..")
	assert.NotContains(t, name, "/")

	// The blob must land inside the staff category dir.
	_, err = os.Stat(filepath.Join(s.root, CategoryStaff, name))
	assert.NoError(t, err)
}

func TestSave_UnknownCategory(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save([]byte("x"), "cv.pdf", "visitors", "hint")
	assert.Error(t, err)
}

func TestOpen_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save([]byte("resume body"), "cv.docx", CategoryStaff, "kim_resume")
	require.NoError(t, err)
	require.NotEmpty(t, name)

	rc, size, err := s.Open(CategoryStaff, name)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, int64(len("resume body")), size)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "resume body", string(data))
}

func TestOpen_RejectsUnsafeNames(t *testing.T) {
	s := newTestStore(t)

	// Plant a file outside the category dirs to prove traversal cannot reach it.
	require.NoError(t, os.WriteFile(filepath.Join(s.root, "secret.pdf"), []byte("top"), 0o644))

	unsafe := []string{
		"../secret.pdf",
		"..%2Fsecret.pdf",
		"nested/secret.pdf",
		"shell.exe",
		"no-extension",
		"",
	}
	for _, name := range unsafe {
		_, _, err := s.Open(CategoryCrew, name)
		assert.Error(t, err, "Open should reject %q", name)
	}
}

func TestOpen_UnknownCategory(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.Open("visitors", "cv.pdf")
	assert.Error(t, err)
}

func TestOpen_MissingFile(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.Open(CategoryCrew, "never_issued_20260101_000000.pdf")
	assert.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "Jane_Doe"},
		{"a/b\\c", "a_b_c"},
		{"résumé", "rsum"},
		{"", "file"},
		{"###", "file"},
		{"ok-name_1", "ok-name_1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), "input %q", tt.in)
	}
}
