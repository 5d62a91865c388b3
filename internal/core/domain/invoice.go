package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// DefaultCompanyName is the issuer printed on new invoices.
const DefaultCompanyName = "SwiftEx Logistics"

// Contact is the sender (company) or client block of an invoice.
type Contact struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// LineItem is a single billable row.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Amount is quantity times unit price, rounded to cents.
func (li LineItem) Amount() float64 {
	return roundCents(li.Quantity * li.UnitPrice)
}

// Invoice is the document rendered for download. It is never persisted.
type Invoice struct {
	Number    string     `json:"number"`
	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Currency  string     `json:"currency"`
	Company   Contact    `json:"company"`
	Client    Contact    `json:"client"`
	Items     []LineItem `json:"items"`
	Notes     string     `json:"notes,omitempty"`
}

// NewInvoice returns an invoice pre-filled with defaults: a time-derived
// number, today's date, USD and a single empty line.
func NewInvoice(now time.Time) Invoice {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	y, m, d := now.Date()
	return Invoice{
		Number:    "INV-" + ms,
		IssueDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Currency:  DefaultCurrency,
		Company:   Contact{Name: DefaultCompanyName},
		Items:     []LineItem{{Quantity: 1}},
	}
}

// Subtotal sums every line amount.
func (inv Invoice) Subtotal() float64 {
	var sum float64
	for _, li := range inv.Items {
		sum += li.Quantity * li.UnitPrice
	}
	return roundCents(sum)
}

// Format renders amount in the invoice currency.
func (inv Invoice) Format(amount float64) string {
	return FormatAmount(inv.Currency, amount)
}

// FileName is the download name of the rendered document.
func (inv Invoice) FileName() string {
	return inv.Number + ".pdf"
}

// Validate checks the invariants a renderable invoice must satisfy.
func (inv Invoice) Validate() error {
	if inv.Number == "" {
		return fmt.Errorf("%w: number is required", ErrInvalidInvoice)
	}
	if len(inv.Items) == 0 {
		return fmt.Errorf("%w: at least one line item is required", ErrInvalidInvoice)
	}
	for i, li := range inv.Items {
		if li.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be greater than 0", ErrInvalidInvoice, i)
		}
		if li.UnitPrice < 0 {
			return fmt.Errorf("%w: item %d unit price must not be negative", ErrInvalidInvoice, i)
		}
	}
	if inv.DueDate != nil && inv.DueDate.Before(inv.IssueDate) {
		return fmt.Errorf("%w: due date is before issue date", ErrInvalidInvoice)
	}
	return nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
