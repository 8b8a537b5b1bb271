package program

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/claude/liftplan/internal/models"
)

// Kind is the structural role of a fragment.
type Kind int

const (
	KindNoise Kind = iota
	KindDayHeader
	KindColumnHeader
	KindCircuitHeader
	KindSkip
	KindExercise
)

func (k Kind) String() string {
	switch k {
	case KindDayHeader:
		return "day_header"
	case KindColumnHeader:
		return "column_header"
	case KindCircuitHeader:
		return "circuit_header"
	case KindSkip:
		return "skip"
	case KindExercise:
		return "exercise"
	default:
		return "noise"
	}
}

const (
	maxDayNameLength   = 50
	maxExerciseLine    = 100
	maxFallbackNameLen = 50
)

var (
	// weekDayRe matches "Week 1, Day 2: Push" and captures week, day and label.
	weekDayRe = regexp.MustCompile(`\bweek\s*(\d+).*\bday\s*(\d+)\s*[:\-]?\s*(\w+)?`)
	// dayWordRe matches "day" as a word, not inside "today" or "monday".
	dayWordRe = regexp.MustCompile(`\bday(?:\b|\d)`)

	circuitRe  = regexp.MustCompile(`circuit\s*(\d+)`)
	supersetRe = regexp.MustCompile(`superset\s*(\d+)?`)

	digitsPunctOnlyRe = regexp.MustCompile(`^[\d\p{P}\p{S}\s]+$`)

	setsRepsShapeRe = regexp.MustCompile(`(?i)\d+\s*[xX×]\s*\d+|\d+\s*reps?|\d+\s*sets?`)

	// lineNameRe captures the text before the first digit: "Bench Press - 3x10".
	lineNameRe = regexp.MustCompile(`(?i)^[\d.)]*\s*(.+?)(?:\s*[-–:]\s*|\s+)\d`)
	// lineAlphaRe captures a leading alphabetic run.
	lineAlphaRe = regexp.MustCompile(`^[\d.)]*\s*([A-Za-z][A-Za-z\s\-&]+)`)
)

// Fragment is a unit of document content presented to the classifier: either
// one table row or one text line.
type Fragment struct {
	cells []string
	text  string
	lower string
	row   bool
}

// RowFragment adapts a table row. Nil cells become empty strings and every
// cell is trimmed.
func RowFragment(row []*string) Fragment {
	cells := make([]string, len(row))
	for i, c := range row {
		if c != nil {
			cells[i] = strings.TrimSpace(*c)
		}
	}
	text := strings.TrimSpace(strings.Join(cells, " "))
	return Fragment{cells: cells, text: text, lower: strings.ToLower(text), row: true}
}

// LineFragment adapts a single text line.
func LineFragment(line string) Fragment {
	text := strings.TrimSpace(line)
	return Fragment{text: text, lower: strings.ToLower(text)}
}

// Text returns the fragment flattened to one string.
func (f Fragment) Text() string { return f.text }

// Empty reports whether the fragment carries no text.
func (f Fragment) Empty() bool { return f.text == "" }

// Classification is the classifier's verdict for one fragment. Exercise is
// set only for KindExercise; its Order is assigned by the assembler.
type Classification struct {
	Kind     Kind
	Exercise *models.ParsedExercise
}

// Classifier assigns structural roles to fragments. It holds no per-document
// state and is safe for concurrent use.
type Classifier struct {
	vocab *Vocabulary
}

// NewClassifier returns a classifier backed by vocab, or by the default
// vocabulary when vocab is nil.
func NewClassifier(vocab *Vocabulary) *Classifier {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Classifier{vocab: vocab}
}

// Classify decides the role of f. The first matching rule wins: day header,
// column header (rows only), circuit header, skip pattern, exercise.
func (c *Classifier) Classify(f Fragment) Classification {
	switch {
	case f.Empty():
		return Classification{Kind: KindNoise}
	case c.IsDayHeader(f):
		return Classification{Kind: KindDayHeader}
	case f.row && c.vocab.IsColumnHeader(f.lower):
		return Classification{Kind: KindColumnHeader}
	case isCircuitHeader(f.lower):
		return Classification{Kind: KindCircuitHeader}
	case c.vocab.IsSkipped(f.lower):
		return Classification{Kind: KindSkip}
	}

	var ex *models.ParsedExercise
	if f.row {
		ex = c.rowExercise(f)
	} else {
		ex = c.lineExercise(f)
	}
	if ex == nil {
		return Classification{Kind: KindNoise}
	}
	return Classification{Kind: KindExercise, Exercise: ex}
}

// IsDayHeader reports whether f opens a training day: either the structured
// "week N ... day M" form, or the word "day" together with a split or
// body-part keyword ("Push Day", "Leg Day").
func (c *Classifier) IsDayHeader(f Fragment) bool {
	if weekDayRe.MatchString(f.lower) {
		return true
	}
	return dayWordRe.MatchString(f.lower) && c.vocab.HasDayHeaderKeyword(f.lower)
}

func isCircuitHeader(lower string) bool {
	return circuitRe.MatchString(lower) || supersetRe.MatchString(lower)
}

// DayName derives the display name for a day header fragment. The structured
// week/day form is preferred ("Week 1, Day 2: PUSH"); otherwise the raw
// header text is used, truncated.
func (c *Classifier) DayName(f Fragment) string {
	if m := weekDayRe.FindStringSubmatch(f.lower); m != nil {
		name := fmt.Sprintf("Week %s, Day %s", m[1], m[2])
		if m[3] != "" {
			name += ": " + strings.ToUpper(m[3])
		}
		return name
	}
	return truncate(f.text, maxDayNameLength)
}

// MuscleGroups returns the comma-joined muscle groups mentioned in text, or
// nil when none are.
func (c *Classifier) MuscleGroups(text string) *string {
	return joinGroups(c.vocab.FindMuscleGroups(text))
}

func joinGroups(groups []string) *string {
	if len(groups) == 0 {
		return nil
	}
	s := strings.Join(groups, ", ")
	return &s
}

// rowExercise builds an exercise from a table row laid out as
// Exercise | Sets | Reps | Notes.
func (c *Classifier) rowExercise(f Fragment) *models.ParsedExercise {
	if len(f.cells) < 2 {
		return nil
	}

	raw := f.cells[0]
	lower := strings.ToLower(raw)
	switch {
	case c.vocab.IsSkipped(lower),
		utf8.RuneCountInString(raw) < minNameLength,
		digitsPunctOnlyRe.MatchString(raw),
		strings.HasPrefix(raw, "*"),
		strings.HasPrefix(raw, "("),
		!hasAlphaRun(raw):
		return nil
	}

	name, ok := NormalizeName(raw)
	if !ok || !hasAlphaRun(name) {
		return nil
	}

	ex := &models.ParsedExercise{
		Name:                 name,
		Sets:                 firstNumber(f.cells[1], DefaultSets),
		Reps:                 DefaultReps,
		WeightRecommendation: cellWeight(f.cells[1:]),
	}
	if len(f.cells) > 2 {
		ex.Reps = repsCell(f.cells[2])
	}
	if len(f.cells) > 3 {
		if notes := f.cells[3]; utf8.RuneCountInString(notes) > 3 {
			ex.Notes = &notes
		}
	}
	return ex
}

// cellWeight returns the first weight found within a single cell. Cells are
// never joined, so a reps cell cannot pair with a unit in the notes.
func cellWeight(cells []string) *string {
	for _, cell := range cells {
		if w := ExtractWeight(cell); w != nil {
			return w
		}
	}
	return nil
}

// lineExercise builds an exercise from a free-text line such as
// "Bench Press - 3x10 @ 135 lbs".
func (c *Classifier) lineExercise(f Fragment) *models.ParsedExercise {
	if !c.vocab.HasExerciseKeyword(f.lower) && !setsRepsShapeRe.MatchString(f.text) {
		return nil
	}
	if utf8.RuneCountInString(f.text) > maxExerciseLine {
		return nil
	}

	var raw string
	if m := lineNameRe.FindStringSubmatch(f.text); m != nil {
		raw = m[1]
	} else if m := lineAlphaRe.FindStringSubmatch(f.text); m != nil {
		raw = m[1]
	} else {
		raw = truncate(f.text, maxFallbackNameLen)
	}

	name, ok := NormalizeName(raw)
	if !ok || !hasAlphaRun(name) {
		return nil
	}

	sets, reps := ExtractSetsReps(f.text)
	return &models.ParsedExercise{
		Name:                 name,
		Sets:                 sets,
		Reps:                 reps,
		WeightRecommendation: ExtractWeight(f.text),
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
