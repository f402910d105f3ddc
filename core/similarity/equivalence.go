package similarity

import "strings"

// DefaultThreshold is the edit-ratio threshold for loose single-pass
// normalization; cross-video merging uses the stricter 0.85.
const DefaultThreshold = 0.7

// NamesEquivalent reports whether two raw names plausibly refer to the
// same entity. Both names are cleaned first; equivalence holds on
// case-insensitive equality, substring containment (both names longer
// than 2 characters), acronym expansion, or an edit ratio at or above
// threshold.
func NamesEquivalent(n1, n2 string, threshold float64) bool {
	a := strings.ToLower(CleanName(n1))
	b := strings.ToLower(CleanName(n2))
	if a == "" || b == "" {
		return false
	}

	if a == b {
		return true
	}

	// "Biden" vs "Joe Biden"
	if len(a) > 2 && len(b) > 2 && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return true
	}

	if isAcronymOf(a, b) || isAcronymOf(b, a) {
		return true
	}

	return EditRatio(a, b) >= threshold
}

// isAcronymOf reports whether short is the first-letter concatenation
// of long's words.
func isAcronymOf(short, long string) bool {
	words := strings.Fields(long)
	if len(words) < 2 || len([]rune(short)) != len(words) {
		return false
	}
	for i, word := range words {
		if []rune(short)[i] != []rune(word)[0] {
			return false
		}
	}
	return true
}

// EditRatio returns a similarity ratio in [0,1] based on Levenshtein
// distance: 1.0 for identical strings, 0.0 for fully different ones.
func EditRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes the edit distance with a two-row matrix.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	previous := make([]int, len(b)+1)
	current := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		previous[j] = j
	}

	for i := 1; i <= len(a); i++ {
		current[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[j] = min3(current[j-1]+1, previous[j]+1, previous[j-1]+cost)
		}
		previous, current = current, previous
	}

	return previous[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
