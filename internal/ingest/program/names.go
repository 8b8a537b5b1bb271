package program

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const minNameLength = 3

var (
	leadingMarkerRe   = regexp.MustCompile(`^[\d.)\-\s]+`)
	trailingPunctRe   = regexp.MustCompile(`[:\-*.]+$`)
	alphaRunRe        = regexp.MustCompile(`[a-zA-Z]{3,}`)
	lowercaseFunction = map[string]bool{
		"of": true, "the": true, "to": true, "a": true, "an": true,
		"and": true, "or": true, "for": true, "with": true,
	}
)

// NormalizeName cleans a candidate exercise name: ordinal and bullet markers
// are removed from the front, trailing punctuation from the end, and the
// result is title-cased. It reports false when fewer than 3 characters
// remain.
func NormalizeName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	name = strings.TrimSpace(leadingMarkerRe.ReplaceAllString(name, ""))
	name = strings.TrimSpace(trailingPunctRe.ReplaceAllString(name, ""))
	name = TitleCase(name)
	if utf8.RuneCountInString(name) < minNameLength {
		return "", false
	}
	return name, true
}

// TitleCase capitalises each word. Short function words stay lower-case
// unless they start the name.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if i > 0 && lowercaseFunction[strings.ToLower(w)] {
			words[i] = strings.ToLower(w)
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// titleWords title-cases every word, including after hyphens ("Full Body").
// A Caser carries state, so one is built per call.
func titleWords(s string) string {
	return cases.Title(language.English).String(s)
}

// hasAlphaRun reports whether s contains at least three consecutive letters.
func hasAlphaRun(s string) bool {
	return alphaRunRe.MatchString(s)
}
