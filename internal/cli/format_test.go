package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"45", "R$ 45,00"},
		{"120.5", "R$ 120,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-99.99", "-R$ 99,99"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := formatMoney(decimal.RequireFromString(tt.in))
			if got != tt.want {
				t.Errorf("formatMoney(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
