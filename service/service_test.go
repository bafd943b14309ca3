package service

import (
	"strings"
	"sync"
	"testing"
	"time"

	"retail-banking/bank"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.AddDate(0, 0, days)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg ...string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %s", want, got, strings.Join(msg, " "))
}

// fixture is a directory with one bank and one client.
type fixture struct {
	svc    *Service
	clock  *fakeClock
	bankID int64
	client bank.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &fakeClock{t: day0}
	svc := New(WithClock(clock.now))
	b, err := svc.CreateBank("Sberbank PJSC", "Sberbank", dec("1.2"))
	require.NoError(t, err)
	c, err := svc.CreateClient("Ivanov Ivan", "123456789012", "1234", "567890")
	require.NoError(t, err)
	return &fixture{svc: svc, clock: clock, bankID: b.ID, client: c}
}

func (f *fixture) openFunded(t *testing.T, amount string) bank.Account {
	t.Helper()
	acc, found, err := f.svc.OpenTransactionalAccount(f.bankID, f.client.ID)
	require.NoError(t, err)
	require.True(t, found)
	ok, err := f.svc.Deposit(acc.ID, dec(amount))
	require.NoError(t, err)
	require.True(t, ok)
	return acc
}

func TestCreateBank(t *testing.T) {
	svc := New()

	first, err := svc.CreateBank("First Bank", "First", dec("1"))
	require.NoError(t, err)
	_, err = svc.CreateBank("Bad Bank", "Bad", dec("5"))
	assert.ErrorIs(t, err, bank.ErrRateOutOfRange)
	second, err := svc.CreateBank("Second Bank", "Second", dec("2"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID, "rejected banks do not consume ids")
	assert.Len(t, svc.Banks(), 2)

	updated, found, err := svc.UpdateBankRate(first.ID, dec("0.5"))
	require.NoError(t, err)
	assert.True(t, found)
	assertDecimal(t, "0.5", updated.TransactionalRate)

	_, found, err = svc.UpdateBankRate(99, dec("0.5"))
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestCreateClient(t *testing.T) {
	t.Run("Duplicate identity", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateClient("Someone Else", "123456789012", "9999", "999999")
		assert.ErrorIs(t, err, ErrDuplicateClient)

		_, err = f.svc.CreateClient("Someone Else", "999999999999", "1234", "567890")
		assert.ErrorIs(t, err, ErrDuplicateClient)

		assert.Len(t, f.svc.Clients(), 1)
	})

	t.Run("Invalid data", func(t *testing.T) {
		svc := New()

		_, err := svc.CreateClient("Ivan", "123", "1234", "567890")

		assert.ErrorIs(t, err, bank.ErrInvalidClientData)
	})

	t.Run("Lookup", func(t *testing.T) {
		f := newFixture(t)

		c, ok := f.svc.Client(f.client.ID)
		require.True(t, ok)
		assert.Equal(t, "Ivanov Ivan", c.FullName)

		_, ok = f.svc.Client(42)
		assert.False(t, ok)
	})
}

func TestOpenAccounts(t *testing.T) {
	t.Run("Unknown bank or client", func(t *testing.T) {
		f := newFixture(t)

		_, found, err := f.svc.OpenTransactionalAccount(99, f.client.ID)
		assert.NoError(t, err)
		assert.False(t, found)

		_, found, err = f.svc.OpenInstallmentCredit(f.bankID, 99, bank.CreditParams{Amount: dec("1"), TermMonths: 1})
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Transactional uses the bank rate and today", func(t *testing.T) {
		f := newFixture(t)

		acc, found, err := f.svc.OpenTransactionalAccount(f.bankID, f.client.ID)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, int64(1), acc.ID)
		assert.Equal(t, civil.Date{Year: 2025, Month: time.January, Day: 15}, acc.CreatedAt)
		assertDecimal(t, "1.2", acc.TransactionalTerms.InterestRate)
		c, _ := f.svc.Client(f.client.ID)
		assert.Equal(t, []int64{acc.ID}, c.TransactionalIDs)
		b, _ := f.svc.Bank(f.bankID)
		assert.Equal(t, []int64{f.client.ID}, b.ClientIDs)
	})

	t.Run("Term deposit needs a funding account", func(t *testing.T) {
		f := newFixture(t)
		p := bank.DepositParams{Amount: dec("50000"), TermMonths: 6, MinBalance: dec("1000"), InterestRate: dec("20")}

		_, found, err := f.svc.OpenTermDeposit(f.bankID, f.client.ID, p)
		assert.True(t, found)
		assert.ErrorIs(t, err, ErrNoFundingAccount)

		funding := f.openFunded(t, "49999.99")
		_, _, err = f.svc.OpenTermDeposit(f.bankID, f.client.ID, p)
		assert.ErrorIs(t, err, ErrNoFundingAccount)

		_, err = f.svc.Deposit(funding.ID, dec("0.01"))
		require.NoError(t, err)
		dep, found, err := f.svc.OpenTermDeposit(f.bankID, f.client.ID, p)
		require.NoError(t, err)
		assert.True(t, found)
		assertDecimal(t, "50000", dep.Balance)

		after, _ := f.svc.Account(funding.ID)
		assertDecimal(t, "50000", after.Balance, "funding account is not debited")
	})

	t.Run("Product limits", func(t *testing.T) {
		f := newFixture(t)
		for i := 0; i < bank.MaxTransactionalPerClient; i++ {
			_, _, err := f.svc.OpenTransactionalAccount(f.bankID, f.client.ID)
			require.NoError(t, err)
		}

		_, found, err := f.svc.OpenTransactionalAccount(f.bankID, f.client.ID)

		assert.True(t, found)
		assert.ErrorIs(t, err, bank.ErrProductLimit)
		next, _, err := f.svc.OpenInstallmentCredit(f.bankID, f.client.ID, bank.CreditParams{Amount: dec("100"), InterestRate: dec("10"), TermMonths: 12})
		require.NoError(t, err)
		assert.Equal(t, int64(4), next.ID, "refused opens do not consume ids")
	})
}

func TestAccountOperations(t *testing.T) {
	t.Run("Unknown accounts", func(t *testing.T) {
		f := newFixture(t)
		acc := f.openFunded(t, "100")

		ok, err := f.svc.Deposit(99, dec("1"))
		assert.NoError(t, err)
		assert.False(t, ok)
		ok, err = f.svc.Withdraw(99, dec("1"))
		assert.NoError(t, err)
		assert.False(t, ok)
		ok, err = f.svc.Transfer(acc.ID, 99, dec("1"))
		assert.NoError(t, err)
		assert.False(t, ok)
		_, found := f.svc.Account(99)
		assert.False(t, found)

		after, _ := f.svc.Account(acc.ID)
		assertDecimal(t, "100", after.Balance)
	})

	t.Run("Transfer across banks", func(t *testing.T) {
		f := newFixture(t)
		other, err := f.svc.CreateBank("VTB Bank", "VTB", dec("0.8"))
		require.NoError(t, err)
		src := f.openFunded(t, "1000")
		dst, _, err := f.svc.OpenTransactionalAccount(other.ID, f.client.ID)
		require.NoError(t, err)

		ok, err := f.svc.Transfer(src.ID, dst.ID, dec("400"))

		require.NoError(t, err)
		assert.True(t, ok)
		a, _ := f.svc.Account(src.ID)
		b, _ := f.svc.Account(dst.ID)
		assertDecimal(t, "600", a.Balance)
		assertDecimal(t, "400", b.Balance)
	})

	t.Run("Returned accounts are copies", func(t *testing.T) {
		f := newFixture(t)
		acc := f.openFunded(t, "100")

		acc.Balance = dec("1000000")
		acc.TransactionalTerms.InterestRate = dec("99")

		fresh, _ := f.svc.Account(acc.ID)
		assertDecimal(t, "100", fresh.Balance)
		assertDecimal(t, "1.2", fresh.TransactionalTerms.InterestRate)
	})
}

func TestMakeCreditPayment(t *testing.T) {
	f := newFixture(t)
	credit, _, err := f.svc.OpenInstallmentCredit(f.bankID, f.client.ID, bank.CreditParams{
		Amount:       dec("120000"),
		InterestRate: dec("20"),
		TermMonths:   12,
	})
	require.NoError(t, err)
	plain := f.openFunded(t, "10")
	f.clock.advance(30)

	res, found := f.svc.MakeCreditPayment(credit.ID, dec("11116.14"))
	require.True(t, found)
	assert.Equal(t, bank.PaymentAccepted, res.Code)
	assertDecimal(t, "110856.46", res.Remaining)

	_, found = f.svc.MakeCreditPayment(plain.ID, dec("10"))
	assert.False(t, found)
	_, found = f.svc.MakeCreditPayment(99, dec("10"))
	assert.False(t, found)
}

func TestClientPortfolio(t *testing.T) {
	f := newFixture(t)
	f.openFunded(t, "100.50")
	f.openFunded(t, "200")
	_, _, err := f.svc.OpenInstallmentCredit(f.bankID, f.client.ID, bank.CreditParams{Amount: dec("5000"), InterestRate: dec("10"), TermMonths: 12})
	require.NoError(t, err)

	p, ok := f.svc.ClientPortfolio(f.client.ID)

	require.True(t, ok)
	assert.Len(t, p.Transactional.Accounts, 2)
	assertDecimal(t, "300.50", p.Transactional.Total)
	assert.Empty(t, p.TermDeposits.Accounts)
	assert.True(t, p.TermDeposits.Total.IsZero())
	assertDecimal(t, "5000", p.Credits.Total)

	accounts, ok := f.svc.ClientAccounts(f.client.ID, bank.KindInstallmentCredit)
	require.True(t, ok)
	assert.Len(t, accounts, 1)

	_, ok = f.svc.ClientPortfolio(99)
	assert.False(t, ok)
}

func TestConcurrentTransfers(t *testing.T) {
	// Arrange
	f := newFixture(t)
	other, err := f.svc.CreateClient("Petrov Petr", "987654321098", "5678", "123456")
	require.NoError(t, err)
	a := f.openFunded(t, "1000")
	b, _, err := f.svc.OpenTransactionalAccount(f.bankID, other.ID)
	require.NoError(t, err)
	_, err = f.svc.Deposit(b.ID, dec("1000"))
	require.NoError(t, err)

	// Act
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = f.svc.Transfer(a.ID, b.ID, dec("7"))
		}()
		go func() {
			defer wg.Done()
			_, _ = f.svc.Transfer(b.ID, a.ID, dec("3"))
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.svc.RunInterestAccrual()
	}()
	wg.Wait()

	// Assert
	x, _ := f.svc.Account(a.ID)
	y, _ := f.svc.Account(b.ID)
	assertDecimal(t, "2000", x.Balance.Add(y.Balance))
	assertDecimal(t, "800", x.Balance)
}
