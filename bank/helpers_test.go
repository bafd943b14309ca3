package bank

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = date(2025, time.January, 15)

func date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func days(n int) civil.Date {
	return day0.AddDays(n)
}

// assertDecimal compares decimals by value, ignoring representation.
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg ...string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %s", want, got, strings.Join(msg, " "))
}

func newTestBank(t *testing.T) *Bank {
	t.Helper()
	b, err := NewBank(1, "Test Bank PJSC", "TestBank", dec("1.2"))
	require.NoError(t, err)
	return b
}

func depositParams() DepositParams {
	return DepositParams{
		Amount:       dec("100000"),
		TermMonths:   6,
		MinBalance:   dec("1000"),
		InterestRate: dec("20"),
	}
}
