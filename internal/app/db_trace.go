package app

import "strings"

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace and caps the statement length
// recorded on DB spans.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
