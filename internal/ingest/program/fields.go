package program

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultSets   = "3"
	DefaultReps   = "10-12"
	DefaultRounds = 3
)

var (
	// combinedRe matches "4x8", "3 X 10-12", "5×5,5,3".
	combinedRe = regexp.MustCompile(`(\d+)\s*[xX×]\s*(\d+(?:\s*[-,]\s*\d+)*)`)

	setsRe = regexp.MustCompile(`(?i)(\d+)\s*sets?`)
	repsRe = regexp.MustCompile(`(?i)(\d+(?:\s*[-,]\s*\d+)*)\s*reps?`)

	// pyramidRe matches a bare descending scheme such as "15, 12, 10".
	pyramidRe = regexp.MustCompile(`(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)

	weightRe = regexp.MustCompile(`(?i)(\d+(?:\s*[-–]\s*\d+)?)\s*(lbs?|kg|pounds?|kilos?)`)
	roundsRe = regexp.MustCompile(`(?i)(\d+)\s*rounds?`)

	firstDigitsRe = regexp.MustCompile(`\d+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// ExtractSetsReps pulls a sets count and a rep scheme out of s. The combined
// "N x M" form wins over separate "N sets" / "M reps" mentions; a bare
// three-number comma list then overrides reps. Defaults are "3" and "10-12".
func ExtractSetsReps(s string) (sets, reps string) {
	sets, reps = DefaultSets, DefaultReps

	if m := combinedRe.FindStringSubmatch(s); m != nil {
		return m[1], whitespaceRe.ReplaceAllString(m[2], "")
	}

	if m := setsRe.FindStringSubmatch(s); m != nil {
		sets = m[1]
	}
	if m := repsRe.FindStringSubmatch(s); m != nil {
		reps = whitespaceRe.ReplaceAllString(m[1], "")
	}
	if m := pyramidRe.FindStringSubmatch(s); m != nil {
		reps = fmt.Sprintf("%s, %s, %s", m[1], m[2], m[3])
	}
	return sets, reps
}

// ExtractWeight returns a weight recommendation such as "45-55 lbs", or nil.
func ExtractWeight(s string) *string {
	m := weightRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	w := m[1] + " " + m[2]
	return &w
}

// ExtractRounds returns the "N rounds" count in s, or DefaultRounds.
func ExtractRounds(s string) int {
	m := roundsRe.FindStringSubmatch(s)
	if m == nil {
		return DefaultRounds
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return DefaultRounds
	}
	return n
}

// firstNumber returns the first digit run in s, or def.
func firstNumber(s, def string) string {
	if m := firstDigitsRe.FindString(s); m != "" {
		return m
	}
	return def
}

// repsCell interprets a table reps cell: AMRAP/ALAP tokens are normalised to
// upper case, anything else is kept verbatim.
func repsCell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultReps
	}
	switch up := strings.ToUpper(s); up {
	case "AMRAP", "ALAP":
		return up
	}
	return s
}
