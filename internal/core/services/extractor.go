package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cdsupport/poscan/internal/core/domain"
)

// Extractor pulls structured fields out of a parsed purchase-order
// document. Extraction is best effort and never fails: every rule
// degrades to its sentinel default when the document yields no value, and
// a malformed table or cell is skipped without aborting the remaining
// rules.
type Extractor struct {
	emailPattern *regexp.Regexp
}

var (
	poNumberPattern = regexp.MustCompile(`(?i)PO#:\s*(\d{6,})`)
	sellerPattern   = regexp.MustCompile(`(?is)SELLER:\s*(.*?)\s*BUYER:`)
	vatPattern      = regexp.MustCompile(`(\d{1,2})\s*%\s+\d`)
	currencyPattern = regexp.MustCompile(`(?i)\b(VND|USD|EUR|JPY)\b`)
)

// maxUOMLen bounds table cells accepted as units of measure; anything
// longer is free text that leaked into the column.
const maxUOMLen = 10

// NewExtractor creates an extractor. endUserDomain is the corporate mail
// domain an end-user address must belong to.
func NewExtractor(endUserDomain string) *Extractor {
	return &Extractor{
		emailPattern: regexp.MustCompile(`(?i)[A-Za-z0-9._%+-]+@` + regexp.QuoteMeta(endUserDomain)),
	}
}

// Extract runs every field rule over the document.
func (e *Extractor) Extract(doc *domain.Document) domain.Fields {
	text := doc.Text()
	return domain.Fields{
		PONumber:     extractPONumber(text),
		BuyerRaw:     doc.FirstLine(),
		Seller:       extractSeller(text),
		VAT:          extractVAT(text),
		Currency:     extractCurrency(text),
		UOM:          extractUOM(doc),
		MaxUnitPrice: extractMaxUnitPrice(doc),
		EndUserEmail: e.extractEndUserEmail(text),
	}
}

// extractPONumber returns the first run of six-plus digits after a
// "PO#:" marker.
func extractPONumber(text string) string {
	if m := poNumberPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return domain.Unknown
}

// extractSeller returns the block between the SELLER: and BUYER: markers
// with its lines collapsed to one.
func extractSeller(text string) string {
	m := sellerPattern.FindStringSubmatch(text)
	if m == nil {
		return domain.Unknown
	}
	var lines []string
	for _, line := range strings.Split(m[1], "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return domain.Unknown
	}
	return strings.Join(lines, " ")
}

// extractVAT collects every rate preceding an amount column anywhere in
// the text, deduplicated and sorted.
func extractVAT(text string) string {
	rates := make(map[string]struct{})
	for _, m := range vatPattern.FindAllStringSubmatch(text, -1) {
		rates[m[1]+"%"] = struct{}{}
	}
	return joinSorted(rates)
}

// extractCurrency collects every whitelisted three-letter currency code,
// deduplicated and sorted.
func extractCurrency(text string) string {
	codes := make(map[string]struct{})
	for _, m := range currencyPattern.FindAllStringSubmatch(text, -1) {
		codes[strings.ToUpper(m[1])] = struct{}{}
	}
	return joinSorted(codes)
}

// extractUOM scans pages in order for the first table whose header has a
// "uom" cell and collects the distinct values in that column. The search
// stops at the first matching table even when it yields no values.
func extractUOM(doc *domain.Document) string {
	for _, page := range doc.Pages {
		for _, table := range page.Tables {
			col := headerIndex(table.Header, "uom")
			if col < 0 {
				continue
			}
			uoms := make(map[string]struct{})
			for _, row := range table.Rows {
				if len(row) <= col {
					continue
				}
				val := strings.TrimSpace(row[col])
				if val != "" && len(val) <= maxUOMLen {
					uoms[val] = struct{}{}
				}
			}
			return joinSorted(uoms)
		}
	}
	return domain.Unknown
}

// extractMaxUnitPrice takes the maximum positive price across every table
// whose header has a cell naming both "unit" and "price". Unparsable
// cells are skipped.
func extractMaxUnitPrice(doc *domain.Document) float64 {
	var best float64
	for _, page := range doc.Pages {
		for _, table := range page.Tables {
			col := headerIndex(table.Header, "unit", "price")
			if col < 0 {
				continue
			}
			for _, row := range table.Rows {
				if len(row) <= col {
					continue
				}
				if val, ok := parsePrice(row[col]); ok && val > best {
					best = val
				}
			}
		}
	}
	return best
}

// extractEndUserEmail returns the first address at the corporate domain,
// or "".
func (e *Extractor) extractEndUserEmail(text string) string {
	return e.emailPattern.FindString(text)
}

// headerIndex returns the index of the first header cell containing all
// needles case-insensitively, or -1.
func headerIndex(header []string, needles ...string) int {
	for i, cell := range header {
		lower := strings.ToLower(cell)
		found := true
		for _, needle := range needles {
			if !strings.Contains(lower, needle) {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

// parsePrice reads a table cell as a positive number, tolerating
// thousands separators and stray spaces.
func parsePrice(cell string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(cell)
	if cleaned == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || val <= 0 {
		return 0, false
	}
	return val, true
}

// joinSorted renders a value set as a sorted, slash-joined list, or the
// Unknown sentinel when empty.
func joinSorted(values map[string]struct{}) string {
	if len(values) == 0 {
		return domain.Unknown
	}
	sorted := make([]string, 0, len(values))
	for v := range values {
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, "/")
}
