// Package service implements the application's business logic on top of
// the repository layer.
package service

import "strings"

// NormalizeTags lowercases and trims tag names, dropping empties and
// duplicates while preserving first-seen order. Normalization is
// idempotent, so stored names can be fed back through it unchanged.
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := strings.ToLower(strings.TrimSpace(name))
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
