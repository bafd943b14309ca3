package bank

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	taxIDPattern          = regexp.MustCompile(`^\d{12}$`)
	passportSeriesPattern = regexp.MustCompile(`^\d{4}$`)
	passportNumberPattern = regexp.MustCompile(`^\d{6}$`)
)

// Client is a retail customer. Identity fields never change after creation;
// only the per-product account id lists grow.
type Client struct {
	ID               int64   `json:"id"`
	FullName         string  `json:"full_name"`
	TaxID            string  `json:"tax_id"`
	PassportSeries   string  `json:"passport_series"`
	PassportNumber   string  `json:"passport_number"`
	TransactionalIDs []int64 `json:"transactional_account_ids"`
	DepositIDs       []int64 `json:"term_deposit_ids"`
	CreditIDs        []int64 `json:"installment_credit_ids"`
}

// NewClient validates the identity fields: a 12-digit tax id, a 4-digit
// passport series and a 6-digit passport number.
func NewClient(id int64, fullName, taxID, passportSeries, passportNumber string) (*Client, error) {
	fullName = strings.TrimSpace(fullName)
	switch {
	case fullName == "":
		return nil, fmt.Errorf("full name is empty: %w", ErrInvalidClientData)
	case !taxIDPattern.MatchString(taxID):
		return nil, fmt.Errorf("tax id must have 12 digits: %w", ErrInvalidClientData)
	case !passportSeriesPattern.MatchString(passportSeries):
		return nil, fmt.Errorf("passport series must have 4 digits: %w", ErrInvalidClientData)
	case !passportNumberPattern.MatchString(passportNumber):
		return nil, fmt.Errorf("passport number must have 6 digits: %w", ErrInvalidClientData)
	}
	return &Client{
		ID:               id,
		FullName:         fullName,
		TaxID:            taxID,
		PassportSeries:   passportSeries,
		PassportNumber:   passportNumber,
		TransactionalIDs: []int64{},
		DepositIDs:       []int64{},
		CreditIDs:        []int64{},
	}, nil
}

// SameIdentity reports whether c and other share a tax id or a passport.
func (c *Client) SameIdentity(other *Client) bool {
	if c.TaxID == other.TaxID {
		return true
	}
	return c.PassportSeries == other.PassportSeries && c.PassportNumber == other.PassportNumber
}

// AddAccount records that the client owns account id of the given kind.
func (c *Client) AddAccount(kind Kind, id int64) {
	switch kind {
	case KindTransactional:
		c.TransactionalIDs = append(c.TransactionalIDs, id)
	case KindTermDeposit:
		c.DepositIDs = append(c.DepositIDs, id)
	case KindInstallmentCredit:
		c.CreditIDs = append(c.CreditIDs, id)
	}
}

// Snapshot returns a copy that shares no slices with c.
func (c *Client) Snapshot() Client {
	cp := *c
	cp.TransactionalIDs = append([]int64{}, c.TransactionalIDs...)
	cp.DepositIDs = append([]int64{}, c.DepositIDs...)
	cp.CreditIDs = append([]int64{}, c.CreditIDs...)
	return cp
}
