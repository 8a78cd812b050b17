package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{123456, "1,234.56"},
		{100000000, "1,000,000.00"},
		{-123456, "-1,234.56"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.amount))
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "1,234.56 GBP", New(123456, "GBP").String())
	assert.Equal(t, "1,234.56 GBP", New(123456, "").String(), "currency defaults to GBP")
}

func TestAdd(t *testing.T) {
	sum, err := New(100, "GBP").Add(New(250, "GBP"))
	require.NoError(t, err)
	assert.Equal(t, New(350, "GBP"), sum)

	_, err = New(100, "GBP").Add(New(100, "EUR"))
	require.Error(t, err)
}

func TestPercentOf(t *testing.T) {
	// 20% VAT with half-up rounding.
	assert.Equal(t, int64(2000), PercentOf(10000, 20))
	assert.Equal(t, int64(20), PercentOf(99, 20))  // 19.8 rounds up
	assert.Equal(t, int64(19), PercentOf(97, 20))  // 19.4 rounds down
	assert.Equal(t, int64(1), PercentOf(3, 20))    // 0.6 rounds up
	assert.Equal(t, int64(0), PercentOf(2, 20))    // 0.4 rounds down
	assert.Equal(t, int64(-20), PercentOf(-99, 20))
}
