package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		amount   *float64
		expected string
	}{
		{"nil", nil, "(n/a)"},
		{"nan", f(math.NaN()), "(n/a)"},
		{"positive infinity", f(math.Inf(1)), "(n/a)"},
		{"negative infinity", f(math.Inf(-1)), "(n/a)"},
		{"zero", f(0), "$0.00"},
		{"small", f(5), "$5.00"},
		{"rounding", f(5.675), "$5.67"},
		{"hundreds", f(245.5), "$245.50"},
		{"thousands", f(1234.5), "$1,234.50"},
		{"millions", f(1234567.89), "$1,234,567.89"},
		{"negative", f(-1234.5), "$-1,234.50"},
		{"negative small", f(-0.25), "$-0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(tt.amount))
		})
	}
}
