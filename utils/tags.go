package utils

import "strings"

// NormalizeTagNames lowercases, trims and deduplicates tag names while
// keeping first-seen order. "Dessert", "dessert", "DESSERT" collapse
// to a single "dessert".
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
