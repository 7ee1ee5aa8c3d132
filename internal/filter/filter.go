// Package filter classifies repository files as translatable or pass-through.
package filter

import (
	"strings"

	"github.com/enkerewpo/autodocs/pkg/file"
)

// Filter decides which files are candidates for translation.
//
// target patterns are glob-like suffix patterns ("*.md *.txt"); include and
// exclude are plain substring lists. Exclusion always wins over candidacy.
type Filter struct {
	suffixes []string
	include  []string
	exclude  []string

	// legacy selects the original raw string-suffix test instead of
	// extension comparison: with legacy on, "notes.xmd" matches "md".
	legacy bool
}

// Option configures a Filter.
type Option func(*Filter)

// WithLegacySuffixMatch enables the raw string-suffix test.
func WithLegacySuffixMatch() Option {
	return func(f *Filter) {
		f.legacy = true
	}
}

// New builds a Filter from the target pattern string and the include/exclude
// substring lists.
func New(target string, include, exclude []string, opts ...Option) *Filter {
	f := &Filter{
		suffixes: ParseTargetSuffixes(target),
		include:  include,
		exclude:  exclude,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ParseTargetSuffixes parses the target pattern string into suffix tokens by
// removing all '*' and '.' characters and splitting on whitespace.
// For example, "*.md *.txt" parses into ["md", "txt"].
func ParseTargetSuffixes(target string) []string {
	stripped := strings.ReplaceAll(target, "*", "")
	stripped = strings.ReplaceAll(stripped, ".", "")
	return strings.Fields(stripped)
}

// Translatable reports whether path should be translated.
func (f *Filter) Translatable(path string) bool {
	if !f.candidate(path) {
		return false
	}
	for _, e := range f.exclude {
		if e == "" {
			continue
		}
		if strings.Contains(path, e) {
			return false
		}
	}
	return true
}

// candidate reports whether path matches the suffix tokens, or is rescued by
// an include substring.
func (f *Filter) candidate(path string) bool {
	for _, suffix := range f.suffixes {
		if f.legacy {
			if strings.HasSuffix(path, suffix) {
				return true
			}
			continue
		}
		if file.Ext(path) == strings.ToLower(suffix) {
			return true
		}
	}
	return matchesInclude(path, f.include)
}

// Split partitions paths into translatable and pass-through sets.
// Order follows the input; no ordering guarantee beyond that.
func (f *Filter) Split(paths []string) (translatable, passThrough []string) {
	translatable = make([]string, 0, len(paths))
	passThrough = make([]string, 0, len(paths))
	for _, p := range paths {
		if f.Translatable(p) {
			translatable = append(translatable, p)
		} else {
			passThrough = append(passThrough, p)
		}
	}
	return translatable, passThrough
}

// matchesInclude reports whether path contains any of the provided substrings
// (case-insensitive). Empty include list returns false.
func matchesInclude(path string, includes []string) bool {
	if len(includes) == 0 {
		return false
	}
	lc := strings.ToLower(path)
	for _, inc := range includes {
		if inc == "" {
			continue
		}
		if strings.Contains(lc, strings.ToLower(inc)) {
			return true
		}
	}
	return false
}
