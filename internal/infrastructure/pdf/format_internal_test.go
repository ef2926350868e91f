package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "R$ 0,00",
		"25.5":     "R$ 25,50",
		"1234.567": "R$ 1.234,57",
		"1000000":  "R$ 1.000.000,00",
		"-3.1":     "-R$ 3,10",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}
