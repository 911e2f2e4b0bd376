package domain

import "strings"

// Document is the parsed form of a purchase-order document: pages of free
// text with zero or more tables recognised per page.
type Document struct {
	Pages []Page
}

// Page holds the raw text of one page plus any tables found on it.
// Table lines remain part of Text so marker rules keep seeing them.
type Page struct {
	Text   string
	Tables []Table
}

// Table is one recognised table. Rows may be ragged; consumers must
// tolerate rows shorter than the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Text returns the full document text with pages joined by newlines.
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}

// FirstLine returns the first non-blank line of the document text. It
// carries the buyer heading in the fixed PO layout and feeds buyer
// classification. Empty documents yield "".
func (d *Document) FirstLine() string {
	for _, line := range strings.Split(d.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
