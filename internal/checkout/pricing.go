package checkout

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency enumerates the checkout display currencies.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyPKR Currency = "PKR"
)

const (
	// BaseMonthlyUSD is the PRO plan's monthly list price.
	BaseMonthlyUSD = 29.00
	// AnnualDiscount is applied to the monthly price on annual billing.
	AnnualDiscount = 0.16
	// PKRRate is the fixed USD to PKR conversion used for display.
	PKRRate = 278.50
)

// Quote is the price shown on the checkout screen for the PRO plan.
type Quote struct {
	Plan           string   `json:"plan"`
	Currency       Currency `json:"currency"`
	AnnualBilling  bool     `json:"annual_billing"`
	MonthlyUSD     float64  `json:"monthly_usd"`
	Amount         float64  `json:"amount"`
	Display        string   `json:"display"`
	MonthlyCredits int      `json:"monthly_credits"`
}

// NewQuote computes the PRO price for the requested currency and billing
// cycle: $29.00/month, 16% off on annual billing, PKR at the fixed rate.
func NewQuote(cur Currency, annual bool) Quote {
	usd := BaseMonthlyUSD
	if annual {
		usd = usd * (1 - AnnualDiscount)
	}
	amount := usd
	if cur == CurrencyPKR {
		amount = usd * PKRRate
	}
	return Quote{
		Plan:           "PRO",
		Currency:       cur,
		AnnualBilling:  annual,
		MonthlyUSD:     usd,
		Amount:         amount,
		Display:        FormatAmount(cur, amount),
		MonthlyCredits: 1000,
	}
}

// FormatAmount renders an amount with locale-aware digit grouping, e.g.
// "$29.00" or "PKR 8,076.50".
func FormatAmount(cur Currency, amount float64) string {
	p := message.NewPrinter(language.English)
	value := p.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	if cur == CurrencyUSD {
		return "$" + value
	}
	return string(cur) + " " + value
}

// ParseCurrency normalizes input to a supported currency, defaulting to USD.
func ParseCurrency(s string) Currency {
	if strings.EqualFold(strings.TrimSpace(s), string(CurrencyPKR)) {
		return CurrencyPKR
	}
	return CurrencyUSD
}

// CurrencyForCountry picks the default checkout currency from an ISO
// country code resolved for the client.
func CurrencyForCountry(iso string) Currency {
	if strings.EqualFold(strings.TrimSpace(iso), "PK") {
		return CurrencyPKR
	}
	return CurrencyUSD
}
