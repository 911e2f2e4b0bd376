package intake

import (
	"regexp"
	"strings"

	"github.com/cdsupport/poscan/internal/core/domain"
)

var columnGap = regexp.MustCompile(`\s{2,}`)

// Parse splits raw text into pages on form feeds and recovers tables
// from each page. Table recovery is tolerant of the irregular layouts
// text exporters produce: cells may be separated by pipes, tabs, or
// runs of spaces, and a table is any run of two or more consecutive
// lines that split into cells the same way. The first row of a run is
// taken as the header. Table lines stay in the page text as well, so
// line-oriented extraction still sees them.
func Parse(raw string) *domain.Document {
	doc := &domain.Document{}
	for _, pageText := range strings.Split(raw, "\f") {
		page := domain.Page{
			Text:   pageText,
			Tables: parseTables(pageText),
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc
}

// parseTables finds runs of cell-splittable lines in a page.
func parseTables(text string) []domain.Table {
	var tables []domain.Table
	var run [][]string

	flush := func() {
		if len(run) >= 2 {
			tables = append(tables, domain.Table{
				Header: run[0],
				Rows:   run[1:],
			})
		}
		run = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitCells(line)
		if cells == nil {
			flush()
			continue
		}
		run = append(run, cells)
	}
	flush()

	return tables
}

// splitCells breaks one line into cells, or returns nil when the line
// does not look like a table row. Pipe-delimited rows win over tab
// rows, and space-gap rows need at least three cells so prose with an
// accidental double space does not read as a table.
func splitCells(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if strings.Contains(line, "|") {
		parts := strings.Split(line, "|")
		// Leading and trailing pipes produce empty edge cells.
		if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
			parts = parts[1:]
		}
		if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
			parts = parts[:len(parts)-1]
		}
		return trimCells(parts)
	}

	if strings.Contains(line, "\t") {
		parts := strings.Split(line, "\t")
		if cells := trimCells(parts); len(cells) >= 2 {
			return cells
		}
		return nil
	}

	parts := columnGap.Split(strings.TrimSpace(line), -1)
	if cells := trimCells(parts); len(cells) >= 3 {
		return cells
	}
	return nil
}

// trimCells trims every cell and drops the row if nothing survives.
func trimCells(parts []string) []string {
	cells := make([]string, 0, len(parts))
	nonEmpty := false
	for _, part := range parts {
		cell := strings.TrimSpace(part)
		if cell != "" {
			nonEmpty = true
		}
		cells = append(cells, cell)
	}
	if !nonEmpty {
		return nil
	}
	return cells
}
