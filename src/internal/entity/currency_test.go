package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsdFromSpy(t *testing.T) {
	cases := []struct {
		amountSpy int64
		expected  string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{55, "0.50"},
		{110, "1.00"},
		{111, "1.01"},
		{500, "4.55"},
		{5500, "50.00"},
		{1000000, "9090.91"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, UsdFromSpy(tc.amountSpy), "amountSpy=%d", tc.amountSpy)
	}
}

func TestUsdFromSpyIsDeterministic(t *testing.T) {
	first := UsdFromSpy(123456789)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, UsdFromSpy(123456789))
	}
}
