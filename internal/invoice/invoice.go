// Package invoice extracts structured data from raw OCR text of Bread
// Basket sales invoices.
//
// The invoice layout is fixed: a header (invoice number, customer, date,
// tax number, company block), an itemized table, a summary section
// (total, discount, net, sales tax) and a footer note. Parsing is
// tolerant of the OCR errors this layout reliably produces ("Tota" for
// "Total", "Sone" for "Net", stray pipes and tildes) and scrubs the junk
// strings Tesseract consistently reads out of the Arabic portions of the
// header.
package invoice

// missing is the placeholder for string fields the OCR text did not
// contain. Numeric fields default to zero instead.
const missing = "N/A"

// LineItem is a single row of the itemized table.
type LineItem struct {
	ItemNo     string  `json:"Item_No"`
	ItemName   string  `json:"Item_Name"`
	Qty        int     `json:"Qty"`
	Unit       string  `json:"Unit"`
	Price      float64 `json:"Price"`
	TotalPrice float64 `json:"Total_Price"`
}

// Invoice is the structured form of one parsed invoice. The JSON field
// names are the spreadsheet column names and are part of the API response
// contract.
type Invoice struct {
	SalesInvoiceNo        string     `json:"Sales_Invoice_No"`
	CustomerName          string     `json:"Customer_Name"`
	Date                  string     `json:"Date"`
	TaxNumber             string     `json:"TAX_NUMBER"`
	CompanyName           string     `json:"Company_Name"`
	CompanyAddressContact string     `json:"Company_Address_Contact"`
	Items                 []LineItem `json:"Items"`
	TotalSummary          float64    `json:"Total_Summary"`
	Discount              float64    `json:"Discount"`
	NetAmount             float64    `json:"Net_Amount"`
	SalesTax              float64    `json:"Sales_Tax"`
	Note                  string     `json:"Note"`
}

// HasInvoiceNo reports whether an invoice number was recognized. The
// summary row is only exported when this holds; an itemless unnumbered
// parse is almost always a failed scan.
func (inv *Invoice) HasInvoiceNo() bool {
	return inv.SalesInvoiceNo != missing && inv.SalesInvoiceNo != ""
}

// SummaryRow returns the invoice header and totals in the column order of
// the summary sheet.
func (inv *Invoice) SummaryRow() []interface{} {
	return []interface{}{
		inv.SalesInvoiceNo,
		inv.CustomerName,
		inv.Date,
		inv.TaxNumber,
		inv.CompanyName,
		inv.CompanyAddressContact,
		inv.TotalSummary,
		inv.Discount,
		inv.NetAmount,
		inv.SalesTax,
		inv.Note,
	}
}

// ItemRows returns one row per line item in the column order of the items
// sheet. Each row leads with the invoice number so items link back to
// their invoice.
func (inv *Invoice) ItemRows() [][]interface{} {
	rows := make([][]interface{}, 0, len(inv.Items))
	for _, item := range inv.Items {
		rows = append(rows, []interface{}{
			inv.SalesInvoiceNo,
			item.ItemNo,
			item.ItemName,
			item.Qty,
			item.Unit,
			item.Price,
			item.TotalPrice,
		})
	}
	return rows
}
