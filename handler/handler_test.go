package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"retail-banking/bank"
	"retail-banking/service"
	"retail-banking/storage"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// MockStore provides a mock implementation of the storage.Store for testing.
type MockStore struct {
	RecordFunc        func(ctx context.Context, op storage.Operation) error
	ListByAccountFunc func(ctx context.Context, accountID int64) ([]storage.Operation, error)
}

func (m *MockStore) Record(ctx context.Context, op storage.Operation) error {
	return m.RecordFunc(ctx, op)
}

func (m *MockStore) ListByAccount(ctx context.Context, accountID int64) ([]storage.Operation, error) {
	return m.ListByAccountFunc(ctx, accountID)
}

// recorder is a MockStore that keeps what it was given.
type recorder struct {
	mu  sync.Mutex
	ops []storage.Operation
}

func (r *recorder) store() *MockStore {
	return &MockStore{
		RecordFunc: func(ctx context.Context, op storage.Operation) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.ops = append(r.ops, op)
			return nil
		},
		ListByAccountFunc: func(ctx context.Context, accountID int64) ([]storage.Operation, error) {
			return nil, nil
		},
	}
}

func (r *recorder) last(t *testing.T) storage.Operation {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.ops, "no operation recorded")
	return r.ops[len(r.ops)-1]
}

var testDay = time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)

// testAPI is a router over a service holding bank 1 and client 1.
type testAPI struct {
	svc     *service.Service
	now     time.Time
	reg     *prometheus.Registry
	metrics *Metrics
	router  *mux.Router
}

func newTestAPI(t *testing.T, store storage.Store) *testAPI {
	t.Helper()
	api := &testAPI{now: testDay, reg: prometheus.NewRegistry()}
	api.svc = service.New(service.WithClock(func() time.Time { return api.now }))
	_, err := api.svc.CreateBank("Sberbank PJSC", "Sberbank", decimal.RequireFromString("1.2"))
	require.NoError(t, err)
	_, err = api.svc.CreateClient("Ivanov Ivan", "123456789012", "1234", "567890")
	require.NoError(t, err)

	api.metrics = NewMetrics(api.reg)
	api.router = NewRouter(
		NewBankHandler(api.svc),
		NewClientHandler(api.svc),
		NewAccountHandler(api.svc, store, api.metrics),
		NewTransactionHandler(api.svc, store, api.metrics),
		NewCreditHandler(api.svc, store, api.metrics),
		NewQuoteHandler(api.svc),
		NewJobHandler(api.svc, store, api.metrics),
		api.reg,
	)
	return api
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// fundedAccount opens a transactional account for client 1 at bank 1.
func (a *testAPI) fundedAccount(t *testing.T, amount string) bank.Account {
	t.Helper()
	acc, found, err := a.svc.OpenTransactionalAccount(1, 1)
	require.NoError(t, err)
	require.True(t, found)
	if amount != "" {
		ok, err := a.svc.Deposit(acc.ID, decimal.RequireFromString(amount))
		require.NoError(t, err)
		require.True(t, ok)
	}
	return acc
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
