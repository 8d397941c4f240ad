package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/etlerr"
	"github.com/cleared-dev/cashflow/internal/model"
)

// Required column names. Any other columns are carried through untouched.
const (
	ColTransactionID = "transaction_id"
	ColDate          = "date"
	ColAmount        = "amount"
	ColMerchant      = "merchant"
	ColTxnType       = "txn_type"
	ColRegion        = "region"
)

// RequiredColumns lists the columns every input file must have.
var RequiredColumns = []string{ColTransactionID, ColDate, ColAmount, ColMerchant, ColTxnType, ColRegion}

// dateLayouts are tried in order.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2006-1-2 15:04:05",
	time.RFC3339,
}

// columns maps required column names to their header index.
type columns map[string]int

// ReadFile opens path and reads it as a transaction table.
func ReadFile(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening input %s: %w", etlerr.ErrFileAccess, path, err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Read parses a transaction CSV. A header-only file yields an empty table.
func Read(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: input has no header row", etlerr.ErrData)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", etlerr.ErrParse, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}
	cr.FieldsPerRecord = len(header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading transaction CSV: %w", etlerr.ErrParse, err)
	}

	t := &model.Table{Header: header, Rows: make([]model.Transaction, 0, len(records))}
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		row := i + 2
		txn, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if first, dup := seen[txn.TransactionID]; dup {
			return nil, fmt.Errorf("row %d: %w: duplicate transaction_id %q (first seen on row %d)", row, etlerr.ErrData, txn.TransactionID, first)
		}
		seen[txn.TransactionID] = row
		t.Rows = append(t.Rows, txn)
	}
	return t, nil
}

// ColumnIndex returns the index of the named column in header, matching
// case-insensitively and ignoring surrounding spaces, or -1.
func ColumnIndex(header []string, name string) int {
	for i, h := range header {
		if normalizeColumn(h) == name {
			return i
		}
	}
	return -1
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func locateColumns(header []string) (columns, error) {
	cols := make(columns, len(RequiredColumns))
	for i, name := range header {
		key := normalizeColumn(name)
		if _, ok := cols[key]; !ok {
			cols[key] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s", etlerr.ErrData, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(rec []string, cols columns) (model.Transaction, error) {
	id := strings.TrimSpace(rec[cols[ColTransactionID]])
	if id == "" {
		return model.Transaction{}, fmt.Errorf("%w: empty transaction_id", etlerr.ErrData)
	}

	date, err := ParseDate(rec[cols[ColDate]])
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := ParseAmount(rec[cols[ColAmount]])
	if err != nil {
		return model.Transaction{}, err
	}

	// Only an empty cell is a missing merchant; other text is kept verbatim.
	merchant := rec[cols[ColMerchant]]

	return model.Transaction{
		TransactionID: id,
		Date:          date,
		Amount:        amount,
		Merchant:      merchant,
		HasMerchant:   merchant != "",
		TxnType:       strings.TrimSpace(rec[cols[ColTxnType]]),
		Region:        strings.TrimSpace(rec[cols[ColRegion]]),
		Source:        rec,
	}, nil
}

// ParseDate parses a calendar date in any of the accepted layouts.
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("%w: parsing date %q", etlerr.ErrParse, s)
}

// ParseAmount parses a signed amount. An empty or NaN cell is returned as
// an invalid NullDecimal rather than an error.
func ParseAmount(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: parsing amount %q: %w", etlerr.ErrParse, s, err)
	}
	return decimal.NewNullDecimal(d), nil
}
