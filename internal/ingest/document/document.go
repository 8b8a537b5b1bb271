// Package document turns uploaded program files into the page text and
// table grids the program parser consumes.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/liftplan/internal/ingest/program"
	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
)

// ErrUnsupportedFormat is returned for file extensions no extractor handles.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extensions lists the accepted file extensions, lower-case with the dot.
var Extensions = []string{".pdf", ".docx", ".odt", ".xlsx", ".csv", ".txt", ".md"}

// Supported reports whether name has an extension Extract can read.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Extract reads the file at path and returns its pages and tables. Read
// failures and documents with no content wrap program.ErrDocumentUnreadable.
func Extract(ctx context.Context, path string) (program.Document, error) {
	if err := ctx.Err(); err != nil {
		return program.Document{}, err
	}

	var (
		doc program.Document
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf", ".docx", ".odt":
		doc, err = extractLayout(path)
	case ".xlsx":
		doc, err = extractSpreadsheet(path)
	case ".csv":
		doc, err = extractCSV(path)
	case ".txt", ".md":
		doc, err = extractText(path)
	default:
		return program.Document{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return program.Document{}, fmt.Errorf("%w: %s: %v", program.ErrDocumentUnreadable, filepath.Base(path), err)
	}

	if len(doc.Lines()) == 0 && len(doc.Tables) == 0 {
		return program.Document{}, fmt.Errorf("%w: %s: no text or tables", program.ErrDocumentUnreadable, filepath.Base(path))
	}
	return doc, nil
}

// extractLayout uses tabula for PDF and word-processor documents.
func extractLayout(path string) (program.Document, error) {
	parsed, _, err := tabula.Open(path).Document()
	if err != nil {
		return program.Document{}, fmt.Errorf("opening document: %w", err)
	}

	var doc program.Document
	for _, page := range parsed.Pages {
		doc.Pages = append(doc.Pages, page.ExtractText())
		for _, t := range page.ExtractTables() {
			if grid := tableGrid(t); len(grid) > 0 {
				doc.Tables = append(doc.Tables, grid)
			}
		}
	}
	return doc, nil
}

func tableGrid(t *model.Table) program.Table {
	var grid program.Table
	for _, r := range t.Rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = c.Text
		}
		if row := rowCells(cells); row != nil {
			grid = append(grid, row)
		}
	}
	return grid
}

// rowCells converts raw cell strings to nullable cells. Blank cells become
// nil and fully blank rows are dropped.
func rowCells(cells []string) []*string {
	row := make([]*string, len(cells))
	blank := true
	for i, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		c := c
		row[i] = &c
		blank = false
	}
	if blank {
		return nil
	}
	return row
}

func extractText(path string) (program.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return program.Document{}, fmt.Errorf("reading file: %w", err)
	}
	return program.Document{Pages: []string{string(data)}}, nil
}
