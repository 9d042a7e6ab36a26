package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewCurrency(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, err := NewCurrency("JPY", "¥", 0)
		require.NoError(t, err)
		assert.Equal(t, "JPY", c.Code())
		assert.Equal(t, "¥", c.Symbol())
		assert.Equal(t, int32(0), c.Exponent())
	})

	t.Run("missing symbol falls back to code", func(t *testing.T) {
		c, err := NewCurrency("CHF", "", 2)
		require.NoError(t, err)
		assert.Equal(t, "CHF ", c.Symbol())
	})

	invalid := []string{"", "us", "usd", "USDD", "U1D"}
	for _, code := range invalid {
		t.Run("invalid "+code, func(t *testing.T) {
			_, err := NewCurrency(code, "", 2)
			assert.Error(t, err)
		})
	}

	t.Run("invalid exponent", func(t *testing.T) {
		_, err := NewCurrency("USD", "$", 5)
		assert.Error(t, err)
	})
}

func TestMustCurrency_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCurrency("bad", "", 0) })
}

func TestMoney_Floor(t *testing.T) {
	usd := MustCurrency("USD", "$", 2)

	tests := []struct {
		name string
		in   Money
		want string
	}{
		{"won drops fraction", Won(decimal.RequireFromString("1234.99")), "1234"},
		{"won negative rounds down", Won(decimal.RequireFromString("-0.5")), "-1"},
		{"whole won unchanged", Won(decimal.NewFromInt(3_000_000)), "3000000"},
		{"cents", New(decimal.RequireFromString("1.239"), usd), "1.23"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Floor()
			assert.Equal(t, tt.want, got.Amount().String())
			assert.Equal(t, tt.in.Currency(), got.Currency())
		})
	}
}

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		name string
		m    Money
		want string
	}{
		{"won", Won(decimal.NewFromInt(450_000_000)), "₩450,000,000"},
		{"won rounds", Won(decimal.RequireFromString("999.6")), "₩1,000"},
		{"zero", Won(decimal.Zero), "₩0"},
		{"negative", Won(decimal.NewFromInt(-1_500)), "-₩1,500"},
		{"dollars", New(decimal.RequireFromString("1234.5"), MustCurrency("USD", "$", 2)), "$1,234.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.String())
		})
	}

	assert.Equal(t, "₩1,000", Won(decimal.NewFromInt(1_000)).Format(language.Korean))
}
