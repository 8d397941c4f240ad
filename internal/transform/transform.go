// Package transform derives flow fields from extracted transactions and
// builds the monthly, regional and top-merchant summaries. Every function
// here is pure: inputs are never modified.
package transform

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cleared-dev/cashflow/internal/model"
)

// Run enriches every row of t and computes the three summaries.
func Run(t *model.Table) *model.Result {
	var header []string
	if t != nil {
		header = t.Header
	}
	rows := Enrich(t)
	return &model.Result{
		Header:       header,
		Transactions: rows,
		Monthly:      Monthly(rows),
		Regional:     Regional(rows),
		TopMerchants: TopMerchants(rows, model.TopMerchantLimit),
	}
}

// Enrich cleans each transaction and adds inflow, outflow, net and year_month.
func Enrich(t *model.Table) []model.EnrichedTransaction {
	if t == nil {
		return nil
	}
	out := make([]model.EnrichedTransaction, 0, len(t.Rows))
	for _, txn := range t.Rows {
		txn.Merchant = FillMerchant(txn)
		txn.TxnType = TitleCase(txn.TxnType)

		inflow, outflow, net := Split(txn.Amount)
		out = append(out, model.EnrichedTransaction{
			Transaction: txn,
			Inflow:      inflow,
			Outflow:     outflow,
			Net:         net,
			YearMonth:   YearMonth(txn.Date),
		})
	}
	return out
}

// FillMerchant returns the merchant, or the placeholder when it is missing.
func FillMerchant(txn model.Transaction) string {
	if !txn.HasMerchant || txn.Merchant == "" {
		return model.MissingMerchant
	}
	return txn.Merchant
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// YearMonth truncates d to its calendar month as "YYYY-MM".
func YearMonth(d civil.Date) string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// Split separates a signed amount into non-negative inflow and outflow parts.
// An invalid amount yields zero for all three values.
func Split(amount decimal.NullDecimal) (inflow, outflow, net decimal.Decimal) {
	if !amount.Valid {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	a := amount.Decimal
	switch {
	case a.IsPositive():
		return a, decimal.Zero, a
	case a.IsNegative():
		return decimal.Zero, a.Neg(), a
	default:
		return decimal.Zero, decimal.Zero, a
	}
}
