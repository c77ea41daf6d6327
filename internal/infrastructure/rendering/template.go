package rendering

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates/invoice.html
var invoiceTemplateHTML string

// InvoiceTemplateConfig carries the fixed texts printed on every invoice and
// the path of the Persian TTF font embedded into the document.
type InvoiceTemplateConfig struct {
	ShopTitle     string
	ContactPhone  string
	IBAN          string
	CardNumber    string
	AccountHolder string
	FontPath      string
}

// InvoiceRow is one order line in the invoice table.
type InvoiceRow struct {
	Index      int
	Title      string
	Dimensions string
	Amount     int64
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
	Payment    decimal.Decimal
	Remaining  decimal.Decimal
}

// InvoicePage is one printed invoice, a single billee's orders with totals.
type InvoicePage struct {
	Number           int64
	BilleeName       string
	PhoneNumber      string
	IssuedAt         time.Time
	Rows             []InvoiceRow
	TotalCost        decimal.Decimal
	TotalPayment     decimal.Decimal
	RemainingPayment decimal.Decimal
}

// InvoiceDocument is the full render input, one page per billee group.
type InvoiceDocument struct {
	Pages []InvoicePage
}

// InvoiceTemplate renders invoice documents to HTML for PDF printing. The
// font is read and embedded at construction time so that a missing font file
// fails at startup, not in the middle of an invoice batch.
type InvoiceTemplate struct {
	tmpl   *template.Template
	config InvoiceTemplateConfig
	font   template.URL
}

// NewInvoiceTemplate parses the invoice template and embeds the configured
// font as a base64 data URI.
func NewInvoiceTemplate(config InvoiceTemplateConfig) (*InvoiceTemplate, error) {
	fontData, err := os.ReadFile(config.FontPath)
	if err != nil {
		return nil, NewRenderError(ErrCodeFontNotFound,
			"invoice font could not be loaded from "+config.FontPath, err)
	}

	fontURI := template.URL("data:font/ttf;base64," + base64.StdEncoding.EncodeToString(fontData))

	funcMap := template.FuncMap{
		"money":      FormatMoney,
		"words":      NumberToWords,
		"digits":     ToPersianDigits,
		"jalali":     JalaliDate,
		"formatInt":  func(n int64) string { return ToPersianDigits(fmt.Sprintf("%d", n)) },
		"dimensions": ToPersianDigits,
	}

	tmpl, err := template.New("invoice").Funcs(funcMap).Parse(invoiceTemplateHTML)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "invoice template is invalid", err)
	}

	return &InvoiceTemplate{
		tmpl:   tmpl,
		config: config,
		font:   fontURI,
	}, nil
}

// Render produces the HTML document for a batch of invoices.
func (t *InvoiceTemplate) Render(doc InvoiceDocument) (string, error) {
	data := struct {
		InvoiceDocument
		Config  InvoiceTemplateConfig
		FontURI template.URL
	}{
		InvoiceDocument: doc,
		Config:          t.config,
		FontURI:         t.font,
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "invoice template execution failed", err)
	}

	return buf.String(), nil
}
