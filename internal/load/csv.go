package load

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/extract"
	"github.com/cleared-dev/cashflow/internal/model"
)

// Derived columns appended to the cleaned transaction table.
var derivedColumns = []string{"year_month", "inflow", "outflow", "net"}

// Summary file headers.
var (
	MonthlyHeader      = []string{"year_month", "total_inflow", "total_outflow", "net_flow", "txn_count"}
	RegionalHeader     = []string{"region", "total_inflow", "total_outflow", "net_flow", "txn_count"}
	TopMerchantsHeader = []string{"merchant", "spend", "txns"}
)

const (
	colFlowKey     = 0
	colFlowInflow  = 1
	colFlowOutflow = 2
	colFlowNet     = 3
	colFlowCount   = 4

	colMerchantName  = 0
	colMerchantSpend = 1
	colMerchantTxns  = 2
)

// money formats d with two decimals unless that would drop sub-cent digits.
func money(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

// WriteTransactions writes the cleaned table: source columns with normalized
// values, followed by year_month, inflow, outflow and net.
func WriteTransactions(w io.Writer, header []string, rows []model.EnrichedTransaction) error {
	cw := csv.NewWriter(w)

	out := make([]string, 0, len(header)+len(derivedColumns))
	out = append(out, header...)
	out = append(out, derivedColumns...)
	if err := cw.Write(out); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	idx := struct{ id, date, amount, merchant, txnType, region int }{
		id:       extract.ColumnIndex(header, extract.ColTransactionID),
		date:     extract.ColumnIndex(header, extract.ColDate),
		amount:   extract.ColumnIndex(header, extract.ColAmount),
		merchant: extract.ColumnIndex(header, extract.ColMerchant),
		txnType:  extract.ColumnIndex(header, extract.ColTxnType),
		region:   extract.ColumnIndex(header, extract.ColRegion),
	}

	for i, r := range rows {
		row := make([]string, len(header), len(header)+len(derivedColumns))
		copy(row, r.Source)

		set := func(col int, v string) {
			if col >= 0 {
				row[col] = v
			}
		}
		set(idx.id, r.TransactionID)
		set(idx.date, r.Date.String())
		set(idx.amount, "")
		if r.Amount.Valid {
			set(idx.amount, money(r.Amount.Decimal))
		}
		set(idx.merchant, r.Merchant)
		set(idx.txnType, r.TxnType)
		set(idx.region, r.Region)

		row = append(row, r.YearMonth, money(r.Inflow), money(r.Outflow), money(r.Net))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMonthly writes the monthly summary with its header row.
func WriteMonthly(w io.Writer, rows []model.MonthlySummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(MonthlyHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, m := range rows {
		rec := []string{m.YearMonth, money(m.TotalInflow), money(m.TotalOutflow), money(m.NetFlow), strconv.Itoa(m.TxnCount)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRegional writes the regional summary with its header row.
func WriteRegional(w io.Writer, rows []model.RegionalSummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(RegionalHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		rec := []string{r.Region, money(r.TotalInflow), money(r.TotalOutflow), money(r.NetFlow), strconv.Itoa(r.TxnCount)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTopMerchants writes the merchant ranking with its header row.
func WriteTopMerchants(w io.Writer, rows []model.MerchantSpend) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(TopMerchantsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, m := range rows {
		if err := cw.Write([]string{m.Merchant, money(m.Spend), strconv.Itoa(m.Txns)}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// readRecords reads a summary file and returns its data rows.
func readRecords(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading summary CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	for i, name := range header {
		if records[0][i] != name {
			return nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i, records[0][i], name)
		}
	}
	return records[1:], nil
}

type flowRow struct {
	key                  string
	inflow, outflow, net decimal.Decimal
	count                int
}

func unmarshalFlow(rec []string) (flowRow, error) {
	var f flowRow
	var err error
	f.key = rec[colFlowKey]
	if f.inflow, err = decimal.NewFromString(rec[colFlowInflow]); err != nil {
		return f, fmt.Errorf("parsing total_inflow %q: %w", rec[colFlowInflow], err)
	}
	if f.outflow, err = decimal.NewFromString(rec[colFlowOutflow]); err != nil {
		return f, fmt.Errorf("parsing total_outflow %q: %w", rec[colFlowOutflow], err)
	}
	if f.net, err = decimal.NewFromString(rec[colFlowNet]); err != nil {
		return f, fmt.Errorf("parsing net_flow %q: %w", rec[colFlowNet], err)
	}
	if f.count, err = strconv.Atoi(rec[colFlowCount]); err != nil {
		return f, fmt.Errorf("parsing txn_count %q: %w", rec[colFlowCount], err)
	}
	return f, nil
}

// ReadMonthly reads a file written by WriteMonthly.
func ReadMonthly(r io.Reader) ([]model.MonthlySummary, error) {
	records, err := readRecords(r, MonthlyHeader)
	if err != nil {
		return nil, err
	}
	var out []model.MonthlySummary
	for i, rec := range records {
		f, err := unmarshalFlow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, model.MonthlySummary{
			YearMonth:    f.key,
			TotalInflow:  f.inflow,
			TotalOutflow: f.outflow,
			NetFlow:      f.net,
			TxnCount:     f.count,
		})
	}
	return out, nil
}

// ReadRegional reads a file written by WriteRegional.
func ReadRegional(r io.Reader) ([]model.RegionalSummary, error) {
	records, err := readRecords(r, RegionalHeader)
	if err != nil {
		return nil, err
	}
	var out []model.RegionalSummary
	for i, rec := range records {
		f, err := unmarshalFlow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, model.RegionalSummary{
			Region:       f.key,
			TotalInflow:  f.inflow,
			TotalOutflow: f.outflow,
			NetFlow:      f.net,
			TxnCount:     f.count,
		})
	}
	return out, nil
}

// ReadTopMerchants reads a file written by WriteTopMerchants.
func ReadTopMerchants(r io.Reader) ([]model.MerchantSpend, error) {
	records, err := readRecords(r, TopMerchantsHeader)
	if err != nil {
		return nil, err
	}
	var out []model.MerchantSpend
	for i, rec := range records {
		spend, err := decimal.NewFromString(rec[colMerchantSpend])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing spend %q: %w", i+2, rec[colMerchantSpend], err)
		}
		txns, err := strconv.Atoi(rec[colMerchantTxns])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing txns %q: %w", i+2, rec[colMerchantTxns], err)
		}
		out = append(out, model.MerchantSpend{Merchant: rec[colMerchantName], Spend: spend, Txns: txns})
	}
	return out, nil
}
