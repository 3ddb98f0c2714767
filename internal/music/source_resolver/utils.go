package source_resolver

import "strings"

// isURL distinguishes direct links from title search queries.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
