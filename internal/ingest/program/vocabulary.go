package program

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary is the set of lookup tables the classifier consults. All entries
// are matched as lower-case substrings, except SkipPatterns which are regular
// expressions applied to the lower-cased fragment.
//
// A Vocabulary is immutable once built; use DefaultVocabulary or
// LoadVocabulary to obtain one.
type Vocabulary struct {
	ExerciseKeywords  []string `yaml:"exercise_keywords"`
	MuscleGroups      []string `yaml:"muscle_groups"`
	DayHeaderKeywords []string `yaml:"day_header_keywords"`
	SkipPatterns      []string `yaml:"skip_patterns"`
	ColumnHeaders     []string `yaml:"column_headers"`

	skip         []*regexp.Regexp
	columnHeader *regexp.Regexp
}

var defaultExerciseKeywords = []string{
	"press", "curl", "row", "squat", "deadlift", "lunge", "fly",
	"extension", "raise", "pulldown", "pushup", "push-up", "push up",
	"crunch", "plank", "dip", "shrug", "kickback", "pullover",
	"skull crusher", "hammer", "preacher", "concentration", "cable",
	"dumbbell", "barbell", "machine", "smith", "bench", "incline",
	"decline", "overhead", "lateral", "front", "rear", "face pull",
	"tricep", "bicep", "pull up", "pullup", "chin up", "lat",
	"muscle up", "leg raise", "sit up", "l-sit", "rope", "hand stand",
	"handstand", "push down", "pushdown",
}

var defaultMuscleGroups = []string{
	"chest", "back", "shoulders", "biceps", "triceps", "arms",
	"legs", "quads", "hamstrings", "glutes", "calves", "abs",
	"core", "full body", "upper body", "lower body", "push", "pull",
}

var defaultDayHeaderKeywords = []string{
	"push", "pull", "leg", "upper", "lower", "chest", "back", "arm",
}

var defaultSkipPatterns = []string{
	`^\*`,
	`^the intent`,
	`^these are`,
	`^bar or rings`,
	`^as long as`,
	`^warm up`,
	`^rest`,
	`^note:`,
	`^tip:`,
	`^\d+\s*-?\s*rm\s*x`, // "3-RM x 3 sets"
	`^rm\s*x`,
}

var defaultColumnHeaders = []string{"exercise", "sets", "reps", "notes"}

// DefaultVocabulary returns the vocabulary tuned for common resistance
// training program layouts.
func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{
		ExerciseKeywords:  defaultExerciseKeywords,
		MuscleGroups:      defaultMuscleGroups,
		DayHeaderKeywords: defaultDayHeaderKeywords,
		SkipPatterns:      defaultSkipPatterns,
		ColumnHeaders:     defaultColumnHeaders,
	}
	if err := v.compile(); err != nil {
		panic(fmt.Sprintf("default vocabulary: %v", err))
	}
	return v
}

// LoadVocabulary reads a YAML file whose lists replace the matching default
// lists. Lists absent from the file keep their defaults.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}
	return ParseVocabulary(data)
}

// ParseVocabulary is LoadVocabulary for in-memory YAML.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var overlay Vocabulary
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing vocabulary: %w", err)
	}

	v := &Vocabulary{
		ExerciseKeywords:  pick(overlay.ExerciseKeywords, defaultExerciseKeywords, true),
		MuscleGroups:      pick(overlay.MuscleGroups, defaultMuscleGroups, true),
		DayHeaderKeywords: pick(overlay.DayHeaderKeywords, defaultDayHeaderKeywords, true),
		SkipPatterns:      pick(overlay.SkipPatterns, defaultSkipPatterns, false),
		ColumnHeaders:     pick(overlay.ColumnHeaders, defaultColumnHeaders, true),
	}
	if err := v.compile(); err != nil {
		return nil, err
	}
	return v, nil
}

func pick(override, def []string, lower bool) []string {
	if len(override) == 0 {
		return def
	}
	out := make([]string, len(override))
	for i, s := range override {
		s = strings.TrimSpace(s)
		if lower {
			s = strings.ToLower(s)
		}
		out[i] = s
	}
	return out
}

func (v *Vocabulary) compile() error {
	v.skip = make([]*regexp.Regexp, 0, len(v.SkipPatterns))
	for _, p := range v.SkipPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("compiling skip pattern %q: %w", p, err)
		}
		v.skip = append(v.skip, re)
	}

	quoted := make([]string, len(v.ColumnHeaders))
	for i, h := range v.ColumnHeaders {
		quoted[i] = regexp.QuoteMeta(h)
	}
	re, err := regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return fmt.Errorf("compiling column headers: %w", err)
	}
	v.columnHeader = re
	return nil
}

// IsSkipped reports whether a lower-cased fragment is a note or instruction.
func (v *Vocabulary) IsSkipped(lower string) bool {
	for _, re := range v.skip {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// HasExerciseKeyword reports whether a lower-cased fragment mentions a
// movement or piece of equipment.
func (v *Vocabulary) HasExerciseKeyword(lower string) bool {
	return containsAny(lower, v.ExerciseKeywords)
}

// HasDayHeaderKeyword reports whether a lower-cased fragment names a split
// or body region used in day headers ("push", "leg", ...).
func (v *Vocabulary) HasDayHeaderKeyword(lower string) bool {
	return containsAny(lower, v.DayHeaderKeywords)
}

// IsColumnHeader reports whether a lower-cased fragment contains one of the
// column header words as a whole word.
func (v *Vocabulary) IsColumnHeader(lower string) bool {
	return len(v.ColumnHeaders) > 0 && v.columnHeader.MatchString(lower)
}

// FindMuscleGroups returns the title-cased muscle groups mentioned in text,
// in vocabulary order.
func (v *Vocabulary) FindMuscleGroups(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, mg := range v.MuscleGroups {
		if strings.Contains(lower, mg) {
			found = append(found, titleWords(mg))
		}
	}
	return found
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
