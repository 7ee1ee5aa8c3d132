package meta

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("workspace", "docs.meta.json"),
		Path("workspace", "docs"))
}

func TestLoadMissingYieldsEmptyDefault(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "absent.meta.json"))
	require.NoError(t, err)
	assert.Equal(t, "", m.Commit)
	assert.Empty(t, m.Files)
}

func TestLoadMalformedIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.meta.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse metadata file")
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir, "docs")

	m := &TranslationMeta{Commit: "abc123", Files: []FileEntry{}}
	m.Record("docs/readme.md", "deadbeef", time.Unix(1700000000, 0))
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", loaded.Commit)
	require.Len(t, loaded.Files, 1)
	assert.Equal(t, "docs/readme.md", loaded.Files[0].Path)
	assert.Equal(t, "deadbeef", loaded.Files[0].Hash)
	assert.Equal(t, int64(1700000000), loaded.Files[0].TranslationTimestamp)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "docs.meta.json")
	m := &TranslationMeta{}
	require.NoError(t, m.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestHasTranslation(t *testing.T) {
	m := &TranslationMeta{}
	m.Record("a.md", "hash-1", time.Now())

	assert.True(t, m.HasTranslation("a.md", "hash-1"))
	assert.False(t, m.HasTranslation("a.md", "hash-2"), "changed content needs retranslation")
	assert.False(t, m.HasTranslation("b.md", "hash-1"))
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("Hello"), 0644))

	sum := sha256.Sum256([]byte("Hello"))
	want := hex.EncodeToString(sum[:])

	got, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, got, 64)
}

func TestHashFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.md")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	got, err := HashFile(path)
	require.NoError(t, err)

	sum := sha256.Sum256(nil)
	assert.Equal(t, hex.EncodeToString(sum[:]), got)
}

func TestHashFileMissing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
