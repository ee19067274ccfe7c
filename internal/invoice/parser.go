package invoice

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

var (
	reInvoiceNo = regexp.MustCompile(`(?is)No:\s*(\d+)`)

	// Customer name runs until the next known field label (or end of text).
	reCustomer = regexp.MustCompile(`(?is)Customer:\s*(.+?)\n(?:Date|TAX NUMBER|Al-Muqabalein|No|$)`)

	reDate      = regexp.MustCompile(`(?is)Date:\s*(\d{2}/\d{2}/\d{4})`)
	reTaxNumber = regexp.MustCompile(`(?is)TAX NUMBER:\s*(\d+)`)

	reCompany = regexp.MustCompile(`(?i)(BREAD BASKET.*COMPANY.*)`)

	// The address/contact block sits below the company name and ends where
	// the invoice header or item table starts.
	reContact = regexp.MustCompile(`(?is)BREAD BASKET.*?COMPANY.*?\n(.+?)\n(?:Sales Invoice No|No|Item No|QTY|No\s*Item)`)

	// One item table row: no, name, qty, unit, price, total.
	reItemRow = regexp.MustCompile(`(?m)^\s*(\d+)\s+(.+?)\s+([\d.]+)\s+([A-Za-z]+)\s+([\d.]+)\s+([\d.]+)$`)

	// Summary labels as Tesseract actually reads them off these invoices.
	reTotal    = regexp.MustCompile(`(?is)(?:Total|Tota|otal)\s*~?\s*([\d.]+)`)
	reDiscount = regexp.MustCompile(`(?is)Discount\s*([\d.]+)`)
	reNet      = regexp.MustCompile(`(?is)(?:Net|Nets?|Sone)\s*\|\s*([\d.]+)`)
	reSalesTax = regexp.MustCompile(`(?is)Sales tax\s*\|\s*([\d.]+)`)

	reNote = regexp.MustCompile(`(?is)Note\s*(\d+)`)

	// Junk the OCR consistently produces from the Arabic half of the
	// header, removed from the address/contact block.
	reContactJunk = regexp.MustCompile(`(?i)WO \\ |AlMugabalein, Arman\. Jo a|ad a|infobreadbasteteo con`)
)

// customerArtifact is the garbled Arabic label that bleeds into the
// customer name on nearly every scan.
const customerArtifact = `s) Cle al ¢ 6 8 ae`

// ParseText extracts an Invoice from raw OCR text.
//
// Parsing never fails: fields that cannot be found come back as "N/A"
// (strings) or 0 (numbers), and item rows that do not parse numerically
// are skipped. Callers decide what an unusable parse means; see
// Invoice.HasInvoiceNo.
func ParseText(raw string) *Invoice {
	inv := &Invoice{
		SalesInvoiceNo: searchString(reInvoiceNo, raw),
		Date:           searchString(reDate, raw),
		TaxNumber:      searchString(reTaxNumber, raw),
		Note:           searchString(reNote, raw),
		TotalSummary:   searchFloat(reTotal, raw),
		Discount:       searchFloat(reDiscount, raw),
		NetAmount:      searchFloat(reNet, raw),
		SalesTax:       searchFloat(reSalesTax, raw),
		Items:          []LineItem{},
	}

	inv.CustomerName = strings.TrimSpace(
		strings.ReplaceAll(searchString(reCustomer, raw), customerArtifact, ""))

	inv.CompanyName = parseCompanyName(raw)
	inv.CompanyAddressContact = parseContactBlock(raw)
	inv.Items = parseItems(raw)

	return inv
}

func parseCompanyName(raw string) string {
	m := reCompany.FindStringSubmatch(raw)
	if m == nil {
		return missing
	}
	name := m[1]
	name = strings.ReplaceAll(name, "% whistle", "")
	name = strings.ReplaceAll(name, "=", "")
	name = strings.ReplaceAll(name, `"`, "")
	return strings.TrimSpace(name)
}

func parseContactBlock(raw string) string {
	m := reContact.FindStringSubmatch(raw)
	if m == nil {
		return missing
	}
	block := strings.TrimSpace(strings.ReplaceAll(m[1], "\n", " "))
	block = reContactJunk.ReplaceAllString(block, "")
	return strings.TrimSpace(block)
}

func parseItems(raw string) []LineItem {
	items := []LineItem{}
	for _, row := range reItemRow.FindAllStringSubmatch(raw, -1) {
		// Quantities come through as "100.000"; parse as float, keep the
		// integral part.
		qtyF, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			log.Printf("skipping malformed item row %q: %v", row[0], err)
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			log.Printf("skipping malformed item row %q: %v", row[0], err)
			continue
		}
		total, err := strconv.ParseFloat(strings.TrimSpace(row[6]), 64)
		if err != nil {
			log.Printf("skipping malformed item row %q: %v", row[0], err)
			continue
		}

		items = append(items, LineItem{
			ItemNo:     strings.TrimSpace(row[1]),
			ItemName:   strings.TrimSpace(strings.ReplaceAll(row[2], `"`, "")),
			Qty:        int(qtyF),
			Unit:       strings.TrimSpace(row[4]),
			Price:      price,
			TotalPrice: total,
		})
	}
	return items
}

// searchString returns the first capture group of the first match, or
// "N/A" when the pattern does not match.
func searchString(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return missing
	}
	return strings.TrimSpace(m[1])
}

// searchFloat returns the first capture group parsed as a float, or 0 when
// the pattern does not match or the capture is not a number (OCR can read
// "12.3.4" out of a smudged total).
func searchFloat(re *regexp.Regexp, text string) float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
	if err != nil {
		return 0
	}
	return f
}
