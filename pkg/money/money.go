package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code with its display symbol and the
// number of minor-unit digits amounts are settled in.
type Currency struct {
	code     string
	symbol   string
	exponent int32
}

// NewCurrency creates a Currency after validating the code is exactly 3
// uppercase letters and the exponent is in [0,4].
func NewCurrency(code, symbol string, exponent int32) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	if exponent < 0 || exponent > 4 {
		return Currency{}, fmt.Errorf("invalid exponent %d for %s", exponent, code)
	}
	if symbol == "" {
		symbol = code + " "
	}
	return Currency{code: code, symbol: symbol, exponent: exponent}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code, symbol string, exponent int32) Currency {
	c, err := NewCurrency(code, symbol, exponent)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string { return c.code }

// Symbol returns the display symbol.
func (c Currency) Symbol() string { return c.symbol }

// Exponent returns the number of minor-unit digits.
func (c Currency) Exponent() int32 { return c.exponent }

// String returns the currency code.
func (c Currency) String() string { return c.code }

// KRW is the South Korean won. Amounts settle in whole won.
var KRW = MustCurrency("KRW", "₩", 0)

// Money represents an immutable monetary amount with currency.
// Fields are unexported to enforce immutability.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// Won creates a KRW amount.
func Won(amount decimal.Decimal) Money {
	return New(amount, KRW)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency.
func (m Money) Currency() Currency { return m.currency }

// Floor truncates the amount toward negative infinity at the currency's
// minor unit.
func (m Money) Floor() Money {
	return Money{amount: m.amount.RoundFloor(m.currency.exponent), currency: m.currency}
}

// Format renders the amount with the currency symbol and locale digit
// grouping, e.g. "₩450,000,000" for language.English.
func (m Money) Format(tag language.Tag) string {
	p := message.NewPrinter(tag)
	rounded := m.amount.Round(m.currency.exponent)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := rounded.Truncate(0)
	s := sign + m.currency.symbol + p.Sprintf("%d", whole.IntPart())
	if m.currency.exponent > 0 {
		frac := rounded.Sub(whole).Shift(m.currency.exponent).IntPart()
		s += fmt.Sprintf(".%0*d", m.currency.exponent, frac)
	}
	return s
}

// String formats the value with English digit grouping.
func (m Money) String() string {
	return m.Format(language.English)
}
