package handler

import (
	"strings"
	"time"

	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

const dateLayout = "2006-01-02"

type contactRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"`
}

type lineItemRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"   validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// invoiceRequest dates use the YYYY-MM-DD form of an HTML date input.
type invoiceRequest struct {
	Number    string            `json:"number"     validate:"required,max=64"`
	IssueDate string            `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate   string            `json:"due_date"   validate:"omitempty,datetime=2006-01-02"`
	Currency  string            `json:"currency"   validate:"omitempty,iso4217"`
	Company   contactRequest    `json:"company"`
	Client    contactRequest    `json:"client"`
	Items     []lineItemRequest `json:"items"      validate:"required,min=1,dive"`
	Notes     string            `json:"notes"`
}

type invoiceLineResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
	UnitText    string  `json:"unit_price_text"`
	AmountText  string  `json:"amount_text"`
}

type invoicePreviewResponse struct {
	Number         string                `json:"number"`
	Currency       string                `json:"currency"`
	CurrencySymbol string                `json:"currency_symbol"`
	Lines          []invoiceLineResponse `json:"lines"`
	Subtotal       float64               `json:"subtotal"`
	SubtotalText   string                `json:"subtotal_text"`
	FileName       string                `json:"file_name"`
}

func toInvoice(req invoiceRequest, now time.Time) domain.Invoice {
	inv := domain.NewInvoice(now)
	inv.Number = req.Number
	if d, ok := parseDate(req.IssueDate); ok {
		inv.IssueDate = d
	}
	if d, ok := parseDate(req.DueDate); ok {
		inv.DueDate = &d
	}
	if req.Currency != "" {
		inv.Currency = strings.ToUpper(req.Currency)
	}
	if req.Company.Name != "" {
		inv.Company = toContact(req.Company)
	}
	inv.Client = toContact(req.Client)
	inv.Notes = req.Notes

	inv.Items = make([]domain.LineItem, len(req.Items))
	for i, li := range req.Items {
		inv.Items[i] = domain.LineItem{
			Description: strings.TrimSpace(li.Description),
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
	}
	return inv
}

func toContact(c contactRequest) domain.Contact {
	return domain.Contact{
		Name:    strings.TrimSpace(c.Name),
		Address: strings.TrimSpace(c.Address),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
	}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

func toInvoicePreviewResponse(s ports.InvoiceSummary) invoicePreviewResponse {
	lines := make([]invoiceLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = invoiceLineResponse{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
			UnitText:    l.FormattedUnitPrice,
			AmountText:  l.FormattedAmount,
		}
	}
	return invoicePreviewResponse{
		Number:         s.Number,
		Currency:       s.Currency,
		CurrencySymbol: s.CurrencySymbol,
		Lines:          lines,
		Subtotal:       s.Subtotal,
		SubtotalText:   s.FormattedSubtotal,
		FileName:       s.FileName,
	}
}
