package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$25.00", Money(decimal.RequireFromString("25.00")))
	assert.Equal(t, "$1,234.50", Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", Money(decimal.Zero))
}
