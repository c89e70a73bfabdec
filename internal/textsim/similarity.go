// Package textsim provides the normalized edit-distance similarity used
// to decide whether two detections quote the same passage.
package textsim

import "strings"

// Similarity returns how alike two strings are on a 0-100 scale.
// Empty input on either side scores 0. Exact (case-sensitive) equality
// short-circuits to 100; otherwise the score is derived from the
// Levenshtein distance between the lower-cased strings:
//
//	100 * (maxLen - distance) / maxLen
//
// No unicode normalization beyond lower-casing is attempted.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	d := levenshtein(ra, rb)
	return 100 * float64(maxLen-d) / float64(maxLen)
}

// levenshtein computes the edit distance with a rolling two-row table
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
