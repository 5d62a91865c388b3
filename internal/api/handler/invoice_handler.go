package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftex/tracking-service/internal/api/metrics"
	"github.com/swiftex/tracking-service/internal/core/ports"
)

// InvoiceHandler previews and downloads invoices. Nothing is persisted.
type InvoiceHandler struct {
	service ports.InvoiceService
	now     func() time.Time
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service, now: time.Now}
}

// Preview handles POST /v1/admin/invoices/preview.
//
// @Summary      Preview invoice totals
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      invoiceRequest  true  "Invoice"
// @Success      200   {object}  invoicePreviewResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/invoices/preview [post]
func (h *InvoiceHandler) Preview(c echo.Context) error {
	var req invoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	summary := h.service.Summarize(toInvoice(req, h.now()))
	return c.JSON(http.StatusOK, toInvoicePreviewResponse(summary))
}

// PDF handles POST /v1/admin/invoices/pdf and returns the rendered document
// as an attachment.
//
// @Summary      Download an invoice
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        body  body      invoiceRequest  true  "Invoice"
// @Success      200   {file}    file
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/admin/invoices/pdf [post]
func (h *InvoiceHandler) PDF(c echo.Context) error {
	var req invoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	doc, err := h.service.Render(c.Request().Context(), toInvoice(req, h.now()))
	if err != nil {
		metrics.InvoicesRenderedTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.InvoicesRenderedTotal.WithLabelValues("ok").Inc()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Body)
}
