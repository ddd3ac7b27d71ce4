package service

import (
	"sort"
	"strings"
	"unicode"
)

// titleCase normalizes a city name: trimmed, single-spaced, each word
// capitalized. Matching against lane rows relies on this normalization.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// formatTruckType turns a raw type like "dry_van" into "Dry Van".
func formatTruckType(t string) string {
	return titleCase(strings.ReplaceAll(t, "_", " "))
}

// titleCaseSorted normalizes, dedupes, and sorts a list of city names.
func titleCaseSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		tc := titleCase(n)
		if _, dup := seen[tc]; dup {
			continue
		}
		seen[tc] = struct{}{}
		out = append(out, tc)
	}
	sort.Strings(out)
	return out
}
