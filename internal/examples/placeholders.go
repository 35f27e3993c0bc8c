// SPDX-License-Identifier: MPL-2.0

package examples

import "strings"

// DefaultPlaceholderPatterns are the substrings that indicate template text
// was never filled in. Placeholder hits warn, they never fail validation.
var DefaultPlaceholderPatterns = []string{
	"TODO",
	"FIXME",
	"PLACEHOLDER",
	"XXX",
	"example.com",
	"changeme",
}

// PlaceholderHit records one placeholder occurrence in an example file.
type PlaceholderHit struct {
	File    string
	Pattern string
	Line    int
}

// scanPlaceholders returns a hit for each line containing one of the
// patterns. Matching is plain substring search.
func scanPlaceholders(file, content string, patterns []string) []PlaceholderHit {
	var hits []PlaceholderHit
	for i, line := range strings.Split(content, "\n") {
		for _, pattern := range patterns {
			if strings.Contains(line, pattern) {
				hits = append(hits, PlaceholderHit{
					File:    file,
					Pattern: pattern,
					Line:    i + 1,
				})
			}
		}
	}
	return hits
}
