package program

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/claude/liftplan/internal/models"
)

const (
	maxDayMarkerLine = 80
	dayPreviewLines  = 5
)

var (
	dayMarkerRes = []*regexp.Regexp{
		regexp.MustCompile(`\bweek\s*\d+.*\bday\s*\d+`),
		regexp.MustCompile(`\bday\s*\d+`),
		regexp.MustCompile(`\bworkout\s*\d+`),
		regexp.MustCompile(`\bsession\s*\d+`),
	}

	dayPhraseRe  = regexp.MustCompile(`(\bweek\s*\d+.*\bday\s*\d+|\bday\s*\d+)`)
	genericDayRe = regexp.MustCompile(`(?i)^day\s*\d+$`)
)

// parseText assembles days from free text. The lines are first cut into
// day-sized blocks, then every block is classified line by line.
func (p *Parser) parseText(lines []string) []models.ParsedDay {
	var acc accumulator

	for _, block := range p.splitIntoDays(lines) {
		acc.closeDay()
		name, groups := p.describeDay(block, acc.nextDayNumber())
		acc.openDay(name, joinGroups(groups))

		for _, line := range block {
			cls := p.classifier.Classify(LineFragment(line))
			switch cls.Kind {
			case KindCircuitHeader:
				acc.openCircuit(ExtractRounds(line))
			case KindExercise:
				acc.addExercise(*cls.Exercise)
			}
		}
	}

	return acc.finish()
}

// splitIntoDays partitions lines at day markers. Index 0 always starts the
// first block; without markers the whole input is a single block.
func (p *Parser) splitIntoDays(lines []string) [][]string {
	if len(lines) == 0 {
		return nil
	}

	starts := []int{0}
	for i := 1; i < len(lines); i++ {
		if p.isDayMarker(lines[i]) {
			starts = append(starts, i)
		}
	}

	blocks := make([][]string, 0, len(starts))
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		blocks = append(blocks, lines[start:end])
	}
	return blocks
}

// isDayMarker reports whether a line starts a new day block. Headers are
// short, so long lines never qualify.
func (p *Parser) isDayMarker(line string) bool {
	if utf8.RuneCountInString(line) >= maxDayMarkerLine {
		return false
	}
	lower := strings.ToLower(line)
	for _, re := range dayMarkerRes {
		if re.MatchString(lower) {
			return true
		}
	}
	return p.classifier.IsDayHeader(LineFragment(line))
}

// describeDay derives a block's display name and muscle groups from its
// first few lines.
func (p *Parser) describeDay(block []string, dayNum int) (string, []string) {
	name := fmt.Sprintf("Day %d", dayNum)
	var groups []string
	seen := map[string]bool{}

	preview := block
	if len(preview) > dayPreviewLines {
		preview = preview[:dayPreviewLines]
	}

	for i, line := range preview {
		for _, g := range p.vocab.FindMuscleGroups(line) {
			if !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}

		lower := strings.ToLower(line)
		if m := dayPhraseRe.FindStringSubmatch(lower); m != nil {
			name = line
			if utf8.RuneCountInString(name) > maxDayNameLength {
				name = titleWords(m[1])
			}
		} else if i == 0 && p.classifier.IsDayHeader(LineFragment(line)) {
			name = truncate(line, maxDayNameLength)
		}
	}

	if len(groups) > 0 && genericDayRe.MatchString(name) {
		name += " - " + strings.Join(groups, ", ")
	}
	return name, groups
}
