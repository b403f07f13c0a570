package scanner

import (
	"fmt"
	"path"
	"strings"
)

// excluded reports whether rel matches any of the scanner's exclude patterns.
func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.excludes {
		if matchPattern(rel, pattern) {
			return true
		}
	}
	return false
}

// matchPattern matches a slash-separated relative path against a pattern.
//
// Supported forms:
//   - "dir/" matches everything below dir
//   - "prefix**suffix" matches paths with that prefix and suffix at any depth;
//     the two must not overlap
//   - anything else is a path.Match glob, tried against the full path and
//     against the base name
func matchPattern(rel, pattern string) bool {
	if dir, ok := strings.CutSuffix(pattern, "/"); ok {
		return strings.HasPrefix(rel, dir+"/")
	}

	if prefix, suffix, ok := strings.Cut(pattern, "**"); ok {
		return len(rel) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(rel, prefix) && strings.HasSuffix(rel, suffix)
	}

	if ok, _ := path.Match(pattern, rel); ok {
		return true
	}
	ok, _ := path.Match(pattern, path.Base(rel))
	return ok
}

// ValidatePatterns checks that every exclude pattern is well formed.
func ValidatePatterns(patterns []string) error {
	for i, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude pattern %d is empty", i)
		}
		if strings.Count(pattern, "**") > 1 {
			return fmt.Errorf("exclude pattern %q: only one ** is supported", pattern)
		}
		glob := strings.ReplaceAll(pattern, "**", "*")
		if _, err := path.Match(glob, ""); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}
