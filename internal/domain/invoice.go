package domain

// LineItem is one row of the invoice body. Quantity and Rate keep the text the
// user typed; numeric values are derived only when totals are computed.
type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
}

// LineField names an editable column of a LineItem.
type LineField string

const (
	LineDescription LineField = "description"
	LineQuantity    LineField = "quantity"
	LineRate        LineField = "rate"
)

// Invoice is the flat document record persisted as a single JSON snapshot.
// Dates are kept in their display form (see DateLayout).
type Invoice struct {
	Logo            string  `json:"logo"`
	LogoWidth       float64 `json:"logoWidth"`
	Title           string  `json:"title"`
	CompanyName     string  `json:"companyName"`
	Name            string  `json:"name"`
	CompanyAddress  string  `json:"companyAddress"`
	CompanyAddress2 string  `json:"companyAddress2"`
	CompanyCountry  string  `json:"companyCountry"`

	BillTo             string `json:"billTo"`
	ClientName         string `json:"clientName"`
	ClientAddress      string `json:"clientAddress"`
	ClientAddress2     string `json:"clientAddress2"`
	ClientCountry      string `json:"clientCountry"`
	ClientPhone        string `json:"clientPhone"`
	ClientMail         string `json:"clientMail"`
	ClientContactName  string `json:"clientContactName"`
	ClientContactPhone string `json:"clientContactPhone"`
	ClientRemarks      string `json:"clientRemarks"`
	ClientProject      string `json:"clientProject"`
	OtherProject       string `json:"otherProject"`
	InvoiceNumber      string `json:"invoiceNumber"`

	Heading string `json:"heading"`

	InvoiceTitleLabel   string `json:"invoiceTitleLabel"`
	InvoiceTitle        string `json:"invoiceTitle"`
	InvoiceDateLabel    string `json:"invoiceDateLabel"`
	InvoiceDate         string `json:"invoiceDate"`
	InvoiceDueDateLabel string `json:"invoiceDueDateLabel"`
	InvoiceDueDate      string `json:"invoiceDueDate"`

	InvoiceFrom  string `json:"invoiceFrom"`
	DeliveryDate string `json:"deliveryDate"`

	ProductLineDescription    string `json:"productLineDescription"`
	ProductLineQuantity       string `json:"productLineQuantity"`
	ProductLineQuantityRate   string `json:"productLineQuantityRate"`
	ProductLineQuantityAmount string `json:"productLineQuantityAmount"`

	ProductLines []LineItem `json:"productLines"`

	SubTotalLabel string `json:"subTotalLabel"`
	DiscountLabel string `json:"discountLabel"`
	TotalLabel    string `json:"totalLabel"`
	Currency      string `json:"currency"`

	NotesLabel string `json:"notesLabel"`
	Notes      string `json:"notes"`
	TermLabel  string `json:"termLabel"`
	Term       string `json:"term"`
}

// Clone returns a copy that shares no line item storage with i.
func (i Invoice) Clone() Invoice {
	out := i
	if i.ProductLines != nil {
		out.ProductLines = make([]LineItem, len(i.ProductLines))
		copy(out.ProductLines, i.ProductLines)
	}
	return out
}

// NewLineItem returns the blank row appended by AddLineItem.
func NewLineItem() LineItem {
	return LineItem{Quantity: "1", Rate: "0.00"}
}

// DefaultInvoice returns the built-in template used when no snapshot exists.
func DefaultInvoice() Invoice {
	return Invoice{
		LogoWidth:                 100,
		Title:                     "INVOICE",
		BillTo:                    "報價給予",
		InvoiceTitleLabel:         "發票號碼",
		InvoiceDateLabel:          "日期",
		InvoiceDueDateLabel:       "交貨日期",
		ProductLineDescription:    "項目描述",
		ProductLineQuantity:       "數量",
		ProductLineQuantityRate:   "單價",
		ProductLineQuantityAmount: "金額",
		ProductLines: []LineItem{
			{Description: "", Quantity: "1", Rate: "0.00"},
			{Description: "", Quantity: "1", Rate: "0.00"},
		},
		SubTotalLabel: "小計",
		DiscountLabel: "折扣 (0%)",
		TotalLabel:    "總計",
		Currency:      "MOP$",
		NotesLabel:    "備註",
		TermLabel:     "Terms & Conditions",
	}
}
