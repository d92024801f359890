package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts forward slashes to the platform separator and
// cleans the result. A backslash is only a separator on Windows; elsewhere it
// is an ordinary filename character and is kept.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(filepath.FromSlash(p))
}

// DisplayName is the final path segment, the name shown for a tree entry.
func DisplayName(p string) string {
	cleaned := NormalizePath(p)
	if cleaned == "" {
		return ""
	}
	return filepath.Base(cleaned)
}

// Relative returns target relative to root using forward slashes.
func Relative(root, target string) (string, error) {
	rel, err := filepath.Rel(NormalizePath(root), NormalizePath(target))
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// Within reports whether target is root itself or lies below it.
func Within(root, target string) bool {
	rel, err := Relative(root, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, "../"))
}

// Same compares two paths after normalisation.
func Same(a, b string) bool {
	return NormalizePath(a) == NormalizePath(b)
}

// Resolve makes p absolute, treating relative paths as relative to root.
func Resolve(root, p string) string {
	cleaned := NormalizePath(p)
	if cleaned == "" {
		return NormalizePath(root)
	}
	if filepath.IsAbs(cleaned) {
		return cleaned
	}
	return filepath.Join(NormalizePath(root), cleaned)
}
