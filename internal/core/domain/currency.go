package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Currency describes an ISO 4217 currency offered to administrators.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var currencies = map[string]Currency{
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$"},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€"},
	"GBP": {Code: "GBP", Name: "British Pound", Symbol: "£"},
	"JPY": {Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	"CNY": {Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	"CAD": {Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	"AUD": {Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	"NZD": {Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$"},
	"CHF": {Code: "CHF", Name: "Swiss Franc", Symbol: "CHF"},
	"SEK": {Code: "SEK", Name: "Swedish Krona", Symbol: "kr"},
	"NOK": {Code: "NOK", Name: "Norwegian Krone", Symbol: "kr"},
	"DKK": {Code: "DKK", Name: "Danish Krone", Symbol: "kr"},
	"INR": {Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	"NGN": {Code: "NGN", Name: "Nigerian Naira", Symbol: "₦"},
	"GHS": {Code: "GHS", Name: "Ghanaian Cedi", Symbol: "₵"},
	"KES": {Code: "KES", Name: "Kenyan Shilling", Symbol: "KSh"},
	"ZAR": {Code: "ZAR", Name: "South African Rand", Symbol: "R"},
	"AED": {Code: "AED", Name: "UAE Dirham", Symbol: "د.إ"},
	"SAR": {Code: "SAR", Name: "Saudi Riyal", Symbol: "﷼"},
	"BRL": {Code: "BRL", Name: "Brazilian Real", Symbol: "R$"},
	"MXN": {Code: "MXN", Name: "Mexican Peso", Symbol: "MX$"},
	"SGD": {Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
	"HKD": {Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$"},
	"KRW": {Code: "KRW", Name: "South Korean Won", Symbol: "₩"},
	"TRY": {Code: "TRY", Name: "Turkish Lira", Symbol: "₺"},
	"PHP": {Code: "PHP", Name: "Philippine Peso", Symbol: "₱"},
}

// Currencies returns the lookup table sorted by code.
func Currencies() []Currency {
	out := make([]Currency, 0, len(currencies))
	for _, c := range currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// CurrencySymbol returns the display symbol for code, falling back to the code itself.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c, ok := currencies[code]; ok {
		return c.Symbol
	}
	return code
}

// FormatAmount renders amount with the currency symbol and two decimals, e.g. "$25.00".
func FormatAmount(code string, amount float64) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol(code), amount)
}
