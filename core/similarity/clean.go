package similarity

import (
	"strings"
	"unicode"
)

// wrapping pairs stripped from entity names
var wrapPairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
	{"(", ")"},
	{"[", "]"},
	{"{", "}"},
}

// CleanName normalizes a raw entity name for matching. It trims
// whitespace, strips wrapping quotes and brackets, strips trailing
// punctuation while preserving abbreviation periods, collapses
// spaced single-letter acronyms ("U S A" -> "USA") and title-cases
// all-caps or all-lowercase words. CleanName is idempotent.
func CleanName(name string) string {
	cleaned := strings.TrimSpace(name)
	cleaned = stripWrapping(cleaned)
	cleaned = stripTrailingPunctuation(cleaned)
	cleaned = repairSpacedAcronyms(cleaned)
	cleaned = titleCaseMonocaseWords(cleaned)
	return strings.TrimSpace(cleaned)
}

func stripWrapping(name string) string {
	for {
		stripped := false
		for _, pair := range wrapPairs {
			if len(name) > len(pair[0])+len(pair[1]) &&
				strings.HasPrefix(name, pair[0]) && strings.HasSuffix(name, pair[1]) {
				name = strings.TrimSpace(name[len(pair[0]) : len(name)-len(pair[1])])
				stripped = true
			}
		}
		if !stripped {
			return name
		}
	}
}

func stripTrailingPunctuation(name string) string {
	name = strings.TrimRight(name, ",;:!?*")

	// A trailing period is kept when the last word looks like an
	// abbreviation ("Inc.", "Jr.", "U.S.A."), dropped otherwise.
	if strings.HasSuffix(name, ".") {
		words := strings.Fields(name)
		if len(words) > 0 {
			last := words[len(words)-1]
			if strings.Count(last, ".") == 1 && len(last) > 4 {
				name = strings.TrimSuffix(name, ".")
			}
		}
	}
	return name
}

// repairSpacedAcronyms joins runs of two or more single-letter words
// into one uppercase token.
func repairSpacedAcronyms(name string) string {
	words := strings.Fields(name)
	if len(words) < 2 {
		return name
	}

	var result []string
	var run []string
	flush := func() {
		if len(run) >= 2 {
			result = append(result, strings.ToUpper(strings.Join(run, "")))
		} else {
			result = append(result, run...)
		}
		run = nil
	}

	for _, word := range words {
		if len([]rune(word)) == 1 && unicode.IsLetter([]rune(word)[0]) {
			run = append(run, word)
			continue
		}
		flush()
		result = append(result, word)
	}
	flush()

	return strings.Join(result, " ")
}

// titleCaseMonocaseWords title-cases words that are entirely lowercase
// or entirely uppercase. Short all-caps words are treated as acronyms
// and left alone; mixed-case words are already deliberate.
func titleCaseMonocaseWords(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		switch {
		case isAllLower(word):
			words[i] = titleCase(word)
		case isAllUpper(word) && letterCount(word) > 4:
			words[i] = titleCase(word)
		}
	}
	return strings.Join(words, " ")
}

func titleCase(word string) string {
	runes := []rune(word)
	for i := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(runes[i])
		} else {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	return string(runes)
}

func letterCount(word string) int {
	count := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			count++
		}
	}
	return count
}

func isAllLower(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isAllUpper(word string) bool {
	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
