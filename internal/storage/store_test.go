package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	legacy := t.TempDir()
	return New(root, legacy)
}

func TestSaveAndResolveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureDir(7))

	content := []byte("%PDF-1.4 test payload")
	require.NoError(t, s.Save(7, "Acme - Posting Instructions v1_20240101_120000.pdf", content))

	path, ok := s.Resolve(7, "Acme - Posting Instructions v1_20240101_120000.pdf")
	require.True(t, ok)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestResolveFallsBackToLegacyDir(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.legacyDir, "Old Spec.pdf"), []byte("x"), 0o644))

	path, ok := s.Resolve(42, "Old Spec.pdf")
	require.True(t, ok)
	require.Equal(t, filepath.Join(s.legacyDir, "Old Spec.pdf"), path)
}

func TestResolveMissingFileIsNotAnError(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.Resolve(1, "nope.pdf")
	require.False(t, ok)
}

func TestResolveRejectsNonPDF(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureDir(1))
	require.NoError(t, s.Save(1, "sneaky.txt", []byte("x")))

	_, ok := s.Resolve(1, "sneaky.txt")
	require.False(t, ok)
}

func TestResolveStripsPathTraversal(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureDir(3))
	require.NoError(t, s.Save(3, "spec.pdf", []byte("x")))

	path, ok := s.Resolve(3, "../../3/spec.pdf")
	require.True(t, ok)
	require.Equal(t, filepath.Join(s.campaignDir(3), "spec.pdf"), path)
}

func TestExistsAndRemove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureDir(5))
	require.False(t, s.Exists(5, "a.pdf"))

	require.NoError(t, s.Save(5, "a.pdf", []byte("x")))
	require.True(t, s.Exists(5, "a.pdf"))

	require.NoError(t, s.Remove(5, "a.pdf"))
	require.False(t, s.Exists(5, "a.pdf"))
}

func TestSafeBasename(t *testing.T) {
	cases := map[string]string{
		"plain.pdf":             "plain.pdf",
		"dir/evil.pdf":          "evil.pdf",
		"..\\..\\win.pdf":       "win.pdf",
		`we<ird>:"name".pdf`:    "weirdname.pdf",
		"Acme - Spec v1_ts.pdf": "Acme - Spec v1_ts.pdf",
	}
	for in, want := range cases {
		require.Equal(t, want, SafeBasename(in), "input %q", in)
	}
}
