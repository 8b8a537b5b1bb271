package document

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/claude/liftplan/internal/ingest/program"
)

const sniffLines = 5

// extractCSV reads a delimited export as a single table. The delimiter is
// whichever of ';', tab or ',' occurs most in the first few non-blank
// lines, since app exports commonly use semicolons.
func extractCSV(path string) (program.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return program.Document{}, fmt.Errorf("reading file: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var grid program.Table
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return program.Document{}, fmt.Errorf("parsing csv: %w", err)
		}
		if row := rowCells(rec); row != nil {
			grid = append(grid, row)
		}
	}

	var doc program.Document
	if len(grid) > 0 {
		doc.Tables = append(doc.Tables, grid)
	}
	return doc, nil
}

func sniffDelimiter(data []byte) rune {
	counts := map[rune]int{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for lines := 0; lines < sniffLines && sc.Scan(); {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines++
		for _, d := range []rune{',', ';', '\t'} {
			counts[d] += strings.Count(line, string(d))
		}
	}

	best := ','
	for _, d := range []rune{';', '\t'} {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}
