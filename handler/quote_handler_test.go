package handler

import (
	"net/http"
	"testing"

	"retail-banking/bank"
	"retail-banking/model"
	"retail-banking/service"
	"retail-banking/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositIncomeHandler(t *testing.T) {
	api := newTestAPI(t, storage.NewMemoryStore())

	t.Run("monthly", func(t *testing.T) {
		rr := api.do("POST", "/quotes/deposit-income", `{"bank_id": 1, "amount": "100000", "term_months": 12, "interest_rate": "20"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		var q model.DepositIncomeQuote
		decodeBody(t, rr, &q)
		requireDecimal(t, "20000.00", q.Income)
		requireDecimal(t, "120000.00", q.Total)
	})

	t.Run("daily", func(t *testing.T) {
		rr := api.do("POST", "/quotes/deposit-income", `{"bank_id": 1, "amount": "100000", "term_months": 12, "interest_rate": "20", "daily_capitalization": true}`)

		require.Equal(t, http.StatusOK, rr.Code)
		var q model.DepositIncomeQuote
		decodeBody(t, rr, &q)
		requireDecimal(t, "21799.52", q.Income)
	})

	t.Run("unknown bank", func(t *testing.T) {
		rr := api.do("POST", "/quotes/deposit-income", `{"bank_id": 9, "amount": "100000", "term_months": 12, "interest_rate": "20"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid amount", func(t *testing.T) {
		rr := api.do("POST", "/quotes/deposit-income", `{"bank_id": 1, "amount": "0", "term_months": 12, "interest_rate": "20"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCreditQuoteHandlers(t *testing.T) {
	api := newTestAPI(t, storage.NewMemoryStore())
	body := `{"bank_id": 1, "amount": "120000", "term_months": 12, "interest_rate": "20", "start_date": "2025-01-31"}`

	t.Run("overpayment", func(t *testing.T) {
		rr := api.do("POST", "/quotes/credit-overpayment", body)

		require.Equal(t, http.StatusOK, rr.Code)
		var q service.CreditQuote
		decodeBody(t, rr, &q)
		requireDecimal(t, "11116.14", q.MonthlyPayment)
		requireDecimal(t, "13393.69", q.Overpayment)
	})

	t.Run("schedule", func(t *testing.T) {
		rr := api.do("POST", "/quotes/credit-schedule", body)

		require.Equal(t, http.StatusOK, rr.Code)
		var schedule []bank.CreditPayment
		decodeBody(t, rr, &schedule)
		require.Len(t, schedule, 12)
		assert.Equal(t, "2025-02-28", schedule[0].DueDate.String())
		requireDecimal(t, "2000.00", schedule[0].Interest)
	})

	t.Run("invalid term", func(t *testing.T) {
		rr := api.do("POST", "/quotes/credit-schedule", `{"bank_id": 1, "amount": "1000", "term_months": 0, "interest_rate": "20"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown bank", func(t *testing.T) {
		rr := api.do("POST", "/quotes/credit-overpayment", `{"bank_id": 4, "amount": "1000", "term_months": 6, "interest_rate": "20"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
