// Package program recovers structured workout programs (days, circuits and
// exercises) from the text and table grids extracted from a document.
//
// Extraction is heuristic. Fragments are classified into structural roles by
// a Classifier driven by a replaceable Vocabulary; fragments that fit no role
// are dropped silently.
package program

import (
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/claude/liftplan/internal/models"
)

// PlaceholderPlanName is used when no title can be found in the document.
const PlaceholderPlanName = "Imported Workout Plan"

var (
	// ErrDocumentUnreadable is returned when a document yields neither text
	// nor tables.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrNothingImportable is returned by Provider when parsing succeeded but
	// found no days.
	ErrNothingImportable = errors.New("no workout structure found")
)

var (
	planNameCleanRe = regexp.MustCompile(`[^\p{L}\p{N}_\s&\-]`)
	planKeywords    = []string{"program", "training", "week", "workout"}
	bulletPrefixes  = []string{"•", "-", "*", "1", "2", "3"}
)

// Table is one extracted grid: rows of nullable cells.
type Table [][]*string

// Document is the content handed over by the ingestion layer.
type Document struct {
	Pages  []string
	Tables []Table
}

// Text returns the pages joined with newlines.
func (d Document) Text() string {
	return strings.Join(d.Pages, "\n")
}

// Lines returns the trimmed, non-blank lines of all pages.
func (d Document) Lines() []string {
	var lines []string
	for _, l := range strings.Split(d.Text(), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func (d Document) hasTables() bool {
	for _, t := range d.Tables {
		if len(t) > 0 {
			return true
		}
	}
	return false
}

// Parser turns extracted document content into a ParsedPlan. A Parser is
// immutable and may be shared between goroutines.
type Parser struct {
	vocab      *Vocabulary
	classifier *Classifier
	log        *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithVocabulary replaces the default lookup tables.
func WithVocabulary(v *Vocabulary) Option {
	return func(p *Parser) {
		if v != nil {
			p.vocab = v
		}
	}
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		vocab: DefaultVocabulary(),
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.classifier = NewClassifier(p.vocab)
	return p
}

// Vocabulary returns the lookup tables the parser classifies with.
func (p *Parser) Vocabulary() *Vocabulary {
	return p.vocab
}

// Parse builds a plan from doc. Tables take precedence: when any grid was
// extracted the plan is assembled from rows only, otherwise from the text.
// A plan with no days is a valid result.
func (p *Parser) Parse(doc Document) (*models.ParsedPlan, error) {
	lines := doc.Lines()
	tabular := doc.hasTables()
	if len(lines) == 0 && !tabular {
		return nil, ErrDocumentUnreadable
	}

	plan := &models.ParsedPlan{Name: ExtractPlanName(lines)}
	mode := "text"
	if tabular {
		mode = "table"
		plan.Days = p.parseTables(doc.Tables)
	} else {
		plan.Days = p.parseText(lines)
	}

	p.log.Info("parsed program",
		"name", plan.Name,
		"mode", mode,
		"pages", len(doc.Pages),
		"tables", len(doc.Tables),
		"days", len(plan.Days),
		"exercises", plan.ExerciseCount(),
	)
	return plan, nil
}

// ParseText parses plain text as a single-page document.
func (p *Parser) ParseText(text string) (*models.ParsedPlan, error) {
	return p.Parse(Document{Pages: []string{text}})
}

// ExtractPlanName picks a title from the leading lines: first a line that
// mentions a program keyword, then any reasonably long non-bullet line.
func ExtractPlanName(lines []string) string {
	for _, line := range head(lines, 10) {
		if !containsAny(strings.ToLower(line), planKeywords) {
			continue
		}
		clean := cleanPlanName(line)
		if n := utf8.RuneCountInString(clean); n > 10 && n < 100 {
			return clean
		}
	}

	for _, line := range head(lines, 5) {
		if utf8.RuneCountInString(line) <= 5 || hasAnyPrefix(line, bulletPrefixes) {
			continue
		}
		clean := cleanPlanName(line)
		if clean != "" && utf8.RuneCountInString(clean) < 100 {
			return clean
		}
	}

	return PlaceholderPlanName
}

func cleanPlanName(s string) string {
	return strings.TrimSpace(planNameCleanRe.ReplaceAllString(s, ""))
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
