package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := map[int64]string{
		0:         "₹0.00",
		5:         "₹0.05",
		8000:      "₹80.00",
		99999:     "₹999.99",
		100000:    "₹1,000.00",
		12345650:  "₹1,23,456.50",
		123456789: "₹12,34,567.89",
		-250050:   "-₹2,500.50",
	}
	for paise, want := range cases {
		assert.Equal(t, want, FormatINR(paise), "paise=%d", paise)
	}
}

func TestToPaiseRounds(t *testing.T) {
	assert.Equal(t, int64(30), ToPaise(0.1+0.2))
	assert.Equal(t, int64(8050), ToPaise(80.5))
	assert.Equal(t, int64(1999), ToPaise(19.99))
	assert.Equal(t, 12.34, FromPaise(1234))
}
