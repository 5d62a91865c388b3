package ports

import (
	"context"

	"github.com/swiftex/tracking-service/internal/core/domain"
)

// RenderedDocument is a downloadable file.
type RenderedDocument struct {
	FileName    string
	ContentType string
	Body        []byte
}

// DocumentRenderer turns an invoice into a paginated document.
type DocumentRenderer interface {
	RenderInvoice(ctx context.Context, inv domain.Invoice) ([]byte, error)
	ContentType() string
}

// InvoiceLine is a priced line of an InvoiceSummary.
type InvoiceLine struct {
	Description        string
	Quantity           float64
	UnitPrice          float64
	Amount             float64
	FormattedUnitPrice string
	FormattedAmount    string
}

// InvoiceSummary is the computed preview of an invoice.
type InvoiceSummary struct {
	Number            string
	Currency          string
	CurrencySymbol    string
	Lines             []InvoiceLine
	Subtotal          float64
	FormattedSubtotal string
	FileName          string
}

// InvoiceService previews and renders invoices.
type InvoiceService interface {
	Summarize(inv domain.Invoice) InvoiceSummary
	Render(ctx context.Context, inv domain.Invoice) (*RenderedDocument, error)
}
