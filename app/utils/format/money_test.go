package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyFormat(t *testing.T) {
	m := NewMoney("$")

	tests := []struct {
		amount string
		want   string
	}{
		{"149.97", "$149.97"},
		{"1234.5", "$1,234.50"},
		{"0", "$0.00"},
		{"45.999", "$46.00"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Format(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestMoneyFormatNullable(t *testing.T) {
	m := NewMoney("€")
	assert.Equal(t, "-", m.FormatNullable(decimal.NullDecimal{}))
	assert.Equal(t, "€12.00", m.FormatNullable(decimal.NewNullDecimal(decimal.NewFromInt(12))))
}
