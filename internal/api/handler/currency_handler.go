package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swiftex/tracking-service/internal/core/domain"
)

type currencyResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type currenciesResponse struct {
	Default string             `json:"default"`
	Data    []currencyResponse `json:"data"`
}

// CurrencyHandler feeds the currency pickers of the shipment and invoice forms.
type CurrencyHandler struct{}

func NewCurrencyHandler() *CurrencyHandler {
	return &CurrencyHandler{}
}

// List handles GET /v1/admin/currencies.
//
// @Summary      Supported currencies
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  currenciesResponse
// @Router       /v1/admin/currencies [get]
func (h *CurrencyHandler) List(c echo.Context) error {
	list := domain.Currencies()
	out := make([]currencyResponse, len(list))
	for i, cur := range list {
		out[i] = currencyResponse{Code: cur.Code, Name: cur.Name, Symbol: cur.Symbol}
	}
	return c.JSON(http.StatusOK, currenciesResponse{Default: domain.DefaultCurrency, Data: out})
}
