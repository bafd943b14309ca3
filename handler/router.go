package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every handler onto a router. gatherer backs /metrics.
func NewRouter(banks *BankHandler, clients *ClientHandler, accounts *AccountHandler,
	transactions *TransactionHandler, credits *CreditHandler, quotes *QuoteHandler,
	jobs *JobHandler, gatherer prometheus.Gatherer) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/banks", banks.CreateBankHandler).Methods("POST")
	r.HandleFunc("/banks", banks.ListBanksHandler).Methods("GET")
	r.HandleFunc("/banks/{bank_id}", banks.GetBankHandler).Methods("GET")
	r.HandleFunc("/banks/{bank_id}/rate", banks.UpdateRateHandler).Methods("PUT")

	r.HandleFunc("/clients", clients.CreateClientHandler).Methods("POST")
	r.HandleFunc("/clients", clients.ListClientsHandler).Methods("GET")
	r.HandleFunc("/clients/{client_id}", clients.GetClientHandler).Methods("GET")
	r.HandleFunc("/clients/{client_id}/accounts", clients.ClientAccountsHandler).Methods("GET")

	r.HandleFunc("/accounts/transactional", accounts.OpenTransactionalHandler).Methods("POST")
	r.HandleFunc("/accounts/deposits", accounts.OpenDepositHandler).Methods("POST")
	r.HandleFunc("/accounts/credits", accounts.OpenCreditHandler).Methods("POST")
	r.HandleFunc("/accounts/{account_id}", accounts.GetAccountHandler).Methods("GET")
	r.HandleFunc("/accounts/{account_id}/deposit", accounts.DepositHandler).Methods("POST")
	r.HandleFunc("/accounts/{account_id}/withdraw", accounts.WithdrawHandler).Methods("POST")
	r.HandleFunc("/accounts/{account_id}/operations", accounts.OperationsHandler).Methods("GET")

	r.HandleFunc("/transfers", transactions.CreateTransactionHandler).Methods("POST")

	r.HandleFunc("/credits/{account_id}/payments", credits.PaymentHandler).Methods("POST")
	r.HandleFunc("/credits/{account_id}/repayment-quote", credits.RepaymentQuoteHandler).Methods("GET")

	r.HandleFunc("/quotes/deposit-income", quotes.DepositIncomeHandler).Methods("POST")
	r.HandleFunc("/quotes/credit-overpayment", quotes.CreditOverpaymentHandler).Methods("POST")
	r.HandleFunc("/quotes/credit-schedule", quotes.CreditScheduleHandler).Methods("POST")

	r.HandleFunc("/jobs/interest-accrual", jobs.InterestAccrualHandler).Methods("POST")
	r.HandleFunc("/jobs/deposit-expiration", jobs.DepositExpirationHandler).Methods("POST")

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
	return r
}
