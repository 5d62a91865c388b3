package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/swiftex/tracking-service/internal/core/domain"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

// InvoiceService computes invoice totals and hands rendering to a DocumentRenderer.
type InvoiceService struct {
	renderer ports.DocumentRenderer
	logger   zerolog.Logger
}

func NewInvoiceService(renderer ports.DocumentRenderer, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{renderer: renderer, logger: logger}
}

// Summarize prices every line and formats amounts in the invoice currency.
func (s *InvoiceService) Summarize(inv domain.Invoice) ports.InvoiceSummary {
	inv = normalizeInvoice(inv)

	lines := make([]ports.InvoiceLine, len(inv.Items))
	for i, li := range inv.Items {
		lines[i] = ports.InvoiceLine{
			Description:        li.Description,
			Quantity:           li.Quantity,
			UnitPrice:          li.UnitPrice,
			Amount:             li.Amount(),
			FormattedUnitPrice: inv.Format(li.UnitPrice),
			FormattedAmount:    inv.Format(li.Amount()),
		}
	}

	subtotal := inv.Subtotal()
	return ports.InvoiceSummary{
		Number:            inv.Number,
		Currency:          inv.Currency,
		CurrencySymbol:    domain.CurrencySymbol(inv.Currency),
		Lines:             lines,
		Subtotal:          subtotal,
		FormattedSubtotal: inv.Format(subtotal),
		FileName:          inv.FileName(),
	}
}

// Render validates inv and produces the downloadable document. The invoice
// passed in is never modified.
func (s *InvoiceService) Render(ctx context.Context, inv domain.Invoice) (*ports.RenderedDocument, error) {
	inv = normalizeInvoice(inv)
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	body, err := s.renderer.RenderInvoice(ctx, inv)
	if err != nil {
		s.logger.Error().Err(err).Str("invoice", inv.Number).Msg("invoice rendering failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	s.logger.Info().Str("invoice", inv.Number).Int("bytes", len(body)).Msg("invoice rendered")
	return &ports.RenderedDocument{
		FileName:    inv.FileName(),
		ContentType: s.renderer.ContentType(),
		Body:        body,
	}, nil
}

// normalizeInvoice returns a copy with trimmed identifiers and the default
// currency applied.
func normalizeInvoice(inv domain.Invoice) domain.Invoice {
	inv.Number = strings.TrimSpace(inv.Number)
	inv.Currency = strings.ToUpper(strings.TrimSpace(inv.Currency))
	if inv.Currency == "" {
		inv.Currency = domain.DefaultCurrency
	}
	if inv.Company.Name == "" {
		inv.Company.Name = domain.DefaultCompanyName
	}
	items := make([]domain.LineItem, len(inv.Items))
	copy(items, inv.Items)
	inv.Items = items
	return inv
}
