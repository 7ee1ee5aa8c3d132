// Package meta persists per-file translation progress between runs.
package meta

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileEntry records one translated file: its workspace-relative path, the
// SHA-256 of its content at translation time, and when it was translated.
type FileEntry struct {
	Path                 string `json:"path"`
	Hash                 string `json:"hash"`
	TranslationTimestamp int64  `json:"translation_timestamp"`
}

// TranslationMeta is the durable record of the last-seen commit and every
// completed translation. It is the sole durable state of a run; losing it
// forces full retranslation but no correctness violation.
type TranslationMeta struct {
	Commit string      `json:"commit"`
	Files  []FileEntry `json:"files"`
}

// Path returns the metadata file location for a repository inside a workspace.
func Path(workspace, repoName string) string {
	return filepath.Join(workspace, repoName+".meta.json")
}

// Load reads the metadata record at path. A missing file yields an empty
// default; malformed JSON is an error and must abort the run.
func Load(path string) (*TranslationMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &TranslationMeta{Files: []FileEntry{}}, nil
		}
		return nil, fmt.Errorf("failed to read metadata file %s: %w", path, err)
	}

	var m TranslationMeta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file %s: %w", path, err)
	}
	if m.Files == nil {
		m.Files = []FileEntry{}
	}

	return &m, nil
}

// Save writes the metadata record to path, creating parent directories as
// needed.
func (m *TranslationMeta) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file %s: %w", path, err)
	}
	return nil
}

// HasTranslation reports whether an entry exists for the exact (path, hash)
// pair, meaning the file was already translated for this content.
func (m *TranslationMeta) HasTranslation(path, hash string) bool {
	for _, f := range m.Files {
		if f.Path == path && f.Hash == hash {
			return true
		}
	}
	return false
}

// Record appends a FileEntry for a completed translation.
func (m *TranslationMeta) Record(path, hash string, at time.Time) {
	m.Files = append(m.Files, FileEntry{
		Path:                 path,
		Hash:                 hash,
		TranslationTimestamp: at.Unix(),
	})
}

// HashFile computes the lowercase hex SHA-256 of the file content at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
