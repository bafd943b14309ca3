// Package model defines the request and response bodies of the HTTP API.
//
// Every amount and rate is a decimal.Decimal. A float64 cannot hold most
// decimal fractions exactly (0.1 + 0.2 != 0.3), and those errors accumulate
// in balances and interest. Decimals travel as JSON strings ("100.50") and
// calendar dates as "YYYY-MM-DD".
package model

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// CreateBankRequest defines the expected JSON body for registering a bank.
type CreateBankRequest struct {
	FullName          string          `json:"full_name"`
	ShortName         string          `json:"short_name"`
	TransactionalRate decimal.Decimal `json:"transactional_rate"`
}

// UpdateRateRequest defines the expected JSON body for changing a bank's rate.
type UpdateRateRequest struct {
	TransactionalRate decimal.Decimal `json:"transactional_rate"`
}

// CreateClientRequest defines the expected JSON body for registering a client.
type CreateClientRequest struct {
	FullName       string `json:"full_name"`
	TaxID          string `json:"tax_id"`
	PassportSeries string `json:"passport_series"`
	PassportNumber string `json:"passport_number"`
}

// OpenAccountRequest defines the expected JSON body for opening a transactional account.
type OpenAccountRequest struct {
	BankID   int64 `json:"bank_id"`
	ClientID int64 `json:"client_id"`
}

// OpenDepositRequest defines the expected JSON body for opening a term deposit.
type OpenDepositRequest struct {
	BankID              int64           `json:"bank_id"`
	ClientID            int64           `json:"client_id"`
	Amount              decimal.Decimal `json:"amount"`
	TermMonths          int             `json:"term_months"`
	MinBalance          decimal.Decimal `json:"min_balance"`
	Replenishable       bool            `json:"replenishable"`
	Withdrawable        bool            `json:"withdrawable"`
	InterestRate        decimal.Decimal `json:"interest_rate"`
	DailyCapitalization bool            `json:"daily_capitalization"`
	Renewable           bool            `json:"renewable"`
}

// OpenCreditRequest defines the expected JSON body for opening an installment credit.
type OpenCreditRequest struct {
	BankID       int64           `json:"bank_id"`
	ClientID     int64           `json:"client_id"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermMonths   int             `json:"term_months"`
	StartDate    civil.Date      `json:"start_date"`
}

// AmountRequest defines the expected JSON body for deposits, withdrawals and credit payments.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransactionRequest defines the expected JSON body for submitting a transfer.
type TransactionRequest struct {
	SourceAccountID      int64           `json:"source_account_id"`
	DestinationAccountID int64           `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
}

// OperationResult reports whether a deposit, withdrawal or transfer was applied.
type OperationResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// DepositIncomeQuoteRequest defines the expected JSON body for a deposit income quote.
type DepositIncomeQuoteRequest struct {
	BankID              int64           `json:"bank_id"`
	Amount              decimal.Decimal `json:"amount"`
	TermMonths          int             `json:"term_months"`
	InterestRate        decimal.Decimal `json:"interest_rate"`
	DailyCapitalization bool            `json:"daily_capitalization"`
}

// DepositIncomeQuote is the response to a deposit income quote.
type DepositIncomeQuote struct {
	Income decimal.Decimal `json:"income"`
	Total  decimal.Decimal `json:"total"`
}

// CreditQuoteRequest defines the expected JSON body for credit overpayment and schedule quotes.
type CreditQuoteRequest struct {
	BankID       int64           `json:"bank_id"`
	Amount       decimal.Decimal `json:"amount"`
	TermMonths   int             `json:"term_months"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	StartDate    civil.Date      `json:"start_date"`
}
