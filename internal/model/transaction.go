package model

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// MissingMerchant replaces an empty merchant cell after cleaning.
const MissingMerchant = "—"

// Transaction represents one row of the raw transaction file.
type Transaction struct {
	TransactionID string
	Date          civil.Date
	Amount        decimal.NullDecimal // positive = inflow, negative = outflow; invalid when the cell is empty or NaN
	Merchant      string
	HasMerchant   bool
	TxnType       string
	Region        string

	// Source holds every column of the row in header order, as read.
	Source []string
}

// Table is the extracted file: its header plus rows in file order.
type Table struct {
	Header []string
	Rows   []Transaction
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// EnrichedTransaction is a cleaned Transaction with derived flow fields.
type EnrichedTransaction struct {
	Transaction

	Inflow    decimal.Decimal
	Outflow   decimal.Decimal
	Net       decimal.Decimal
	YearMonth string // "YYYY-MM"
}
