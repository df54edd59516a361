package services

import (
	"fmt"
	"strings"

	"splitsight-bff/models"
)

// currencySymbols covers the currencies the product supports. Unknown codes
// fall back to a "<CODE> " prefix in FormatMoney instead of failing, so
// presentation never hard-fails on an unrecognized currency.
var currencySymbols = map[string]string{
	"USD": "$", "EUR": "€", "GBP": "£", "LKR": "Rs", "INR": "₹",
	"AUD": "A$", "CAD": "C$", "JPY": "¥", "CNY": "¥", "CHF": "Fr",
	"SGD": "S$", "AED": "د.إ", "MYR": "RM", "THB": "฿", "KRW": "₩",
	"BRL": "R$", "ZAR": "R", "SEK": "kr", "NZD": "NZ$", "PKR": "₨",
}

var countryToCurrency = map[string]string{
	// USD
	"US": "USD",
	// EUR (Eurozone)
	"DE": "EUR", "FR": "EUR", "IT": "EUR", "ES": "EUR", "NL": "EUR",
	"BE": "EUR", "AT": "EUR", "PT": "EUR", "IE": "EUR", "FI": "EUR",
	"GR": "EUR", "SK": "EUR", "SI": "EUR", "EE": "EUR", "LV": "EUR",
	"LT": "EUR", "CY": "EUR", "MT": "EUR", "LU": "EUR",
	// Others
	"GB": "GBP",
	"LK": "LKR",
	"IN": "INR",
	"AU": "AUD",
	"CA": "CAD",
	"JP": "JPY",
	"CN": "CNY",
	"CH": "CHF", "LI": "CHF",
	"SG": "SGD",
	"AE": "AED",
	"MY": "MYR",
	"TH": "THB",
	"KR": "KRW",
	"BR": "BRL",
	"ZA": "ZAR",
	"SE": "SEK",
	"NZ": "NZD",
	"PK": "PKR",
}

var timezoneToCurrency = map[string]string{
	"Asia/Colombo": "LKR",
	"Asia/Kolkata": "INR", "Asia/Calcutta": "INR",
	"Europe/London": "GBP",
	"America/New_York": "USD", "America/Chicago": "USD", "America/Denver": "USD",
	"America/Los_Angeles": "USD", "America/Anchorage": "USD", "Pacific/Honolulu": "USD",
	"Europe/Berlin": "EUR", "Europe/Paris": "EUR", "Europe/Rome": "EUR",
	"Europe/Madrid": "EUR", "Europe/Amsterdam": "EUR", "Europe/Brussels": "EUR",
	"Europe/Vienna": "EUR", "Europe/Lisbon": "EUR", "Europe/Dublin": "EUR",
	"Europe/Helsinki": "EUR", "Europe/Athens": "EUR", "Europe/Luxembourg": "EUR",
	"Australia/Sydney": "AUD", "Australia/Melbourne": "AUD", "Australia/Brisbane": "AUD",
	"Australia/Perth": "AUD", "Australia/Adelaide": "AUD",
	"America/Toronto": "CAD", "America/Vancouver": "CAD",
	"Asia/Tokyo":     "JPY",
	"Asia/Shanghai":  "CNY", "Asia/Hong_Kong": "CNY",
	"Europe/Zurich":  "CHF",
	"Asia/Singapore": "SGD",
	"Asia/Dubai":     "AED",
	"Asia/Kuala_Lumpur": "MYR",
	"Asia/Bangkok":      "THB",
	"Asia/Seoul":        "KRW",
	"America/Sao_Paulo": "BRL",
	"Africa/Johannesburg": "ZAR",
	"Europe/Stockholm":    "SEK",
	"Pacific/Auckland":    "NZD",
	"Asia/Karachi":        "PKR",
}

// CurrencySymbol returns the display symbol for a currency code, or the code
// itself with a trailing space for unrecognized codes.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code + " "
}

// FormatMoney renders a Money value for display: symbol plus the absolute
// amount with two decimals. Sign and direction wording are the caller's job.
func FormatMoney(m models.Money) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol(m.Currency), m.Abs().Float())
}

// DefaultCurrency infers a sensible default currency for a new user or
// group. The IANA timezone is tried first (the most stable signal, unaffected
// by language settings), then the region tail of a BCP-47 locale like
// "en-LK", then USD. It never fails.
func DefaultCurrency(timezone, locale string) string {
	if currency, ok := timezoneToCurrency[timezone]; ok {
		return currency
	}

	parts := strings.Split(locale, "-")
	if len(parts) >= 2 {
		region := strings.ToUpper(parts[len(parts)-1])
		if currency, ok := countryToCurrency[region]; ok {
			if _, known := currencySymbols[currency]; known {
				return currency
			}
		}
	}

	return "USD"
}
