package file

import (
	"path/filepath"
	"strings"
)

// MapToRoot rewrites path so that the srcRoot prefix is replaced by dstRoot.
// The path must live under srcRoot; otherwise it is returned unchanged.
func MapToRoot(path, srcRoot, dstRoot string) string {
	rel, err := filepath.Rel(srcRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.Join(dstRoot, rel)
}

// Name returns the last path element, e.g. "/path/to/file.txt" -> "file.txt".
func Name(path string) string {
	return filepath.Base(path)
}

// Ext returns the lowercase extension without the leading dot,
// e.g. "README.MD" -> "md". Files without an extension return "".
func Ext(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
