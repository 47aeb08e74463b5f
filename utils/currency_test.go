package utils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10, 10},
		{9.999, 10},
		{4.256, 4.26},
		{4.254, 4.25},
		{0.1, 0.1},
	}
	for _, tt := range tests {
		got, err := RoundMoney("price", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestRoundMoney_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := RoundMoney("unit_price", v)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "unit_price", verr.Field)
		assert.Contains(t, err.Error(), "unit_price")
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "15,000.50", FormatCurrency(15000.5))
	assert.Equal(t, "0.00", FormatCurrency(0))
	assert.Equal(t, "999.99", FormatCurrency(999.99))
	assert.Equal(t, "1,234,567.00", FormatCurrency(1234567))
	assert.Equal(t, "-2,500.00", FormatCurrency(-2500))
}
