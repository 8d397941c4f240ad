package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashflow/internal/etlerr"
)

const header = "transaction_id,date,amount,merchant,txn_type,region\n"

func TestReadFile_Sample(t *testing.T) {
	tbl, err := ReadFile("../../testdata/bank_transactions_sample.csv")
	require.NoError(t, err)
	require.Equal(t, 8, tbl.Len())

	assert.Equal(t, []string{"transaction_id", "date", "amount", "merchant", "txn_type", "region", "channel"}, tbl.Header)

	first := tbl.Rows[0]
	assert.Equal(t, "1", first.TransactionID)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 15}, first.Date)
	require.True(t, first.Amount.Valid)
	assert.Equal(t, "100.00", first.Amount.Decimal.StringFixed(2))
	assert.False(t, first.HasMerchant)
	assert.Equal(t, "deposit", first.TxnType)
	assert.Equal(t, "East", first.Region)
	assert.Equal(t, "branch", first.Source[6])

	// Row order is file order.
	for i, row := range tbl.Rows {
		assert.Equal(t, string(rune('1'+i)), row.TransactionID)
	}

	// Row 7 has an empty amount.
	assert.False(t, tbl.Rows[6].Amount.Valid)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, etlerr.ErrFileAccess)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_EmptyFile(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, etlerr.ErrData)
}

func TestRead_HeaderOnly(t *testing.T) {
	tbl, err := Read(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Len(t, tbl.Header, 6)
}

func TestRead_MissingColumns(t *testing.T) {
	_, err := Read(strings.NewReader("transaction_id,date,amount\n1,2024-01-01,5\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, etlerr.ErrData)
	assert.Contains(t, err.Error(), "merchant, txn_type, region")
}

func TestRead_HeaderCaseAndOrder(t *testing.T) {
	csv := "Region, TXN_TYPE ,Merchant,Amount,Date,Transaction_ID\nEast,deposit,,10,2024-05-01,a1\n"
	tbl, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "a1", tbl.Rows[0].TransactionID)
	assert.Equal(t, "East", tbl.Rows[0].Region)
	assert.Equal(t, civil.Date{Year: 2024, Month: 5, Day: 1}, tbl.Rows[0].Date)
}

func TestRead_ByteOrderMark(t *testing.T) {
	tbl, err := Read(strings.NewReader("\ufeff" + header + "1,2024-01-01,5,X,deposit,East\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", tbl.Rows[0].TransactionID)
}

func TestRead_BadDate(t *testing.T) {
	_, err := Read(strings.NewReader(header + "1,2024-01-01,5,X,deposit,East\n2,NOTADATE,5,X,deposit,East\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, etlerr.ErrParse)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "parsing date")
}

func TestRead_BadAmount(t *testing.T) {
	_, err := Read(strings.NewReader(header + "1,2024-01-01,lots,X,deposit,East\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, etlerr.ErrParse)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestRead_DuplicateID(t *testing.T) {
	_, err := Read(strings.NewReader(header + "1,2024-01-01,5,X,deposit,East\n1,2024-01-02,6,Y,deposit,East\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, etlerr.ErrData)
	assert.Contains(t, err.Error(), "duplicate transaction_id")
}

func TestRead_EmptyID(t *testing.T) {
	_, err := Read(strings.NewReader(header + ",2024-01-01,5,X,deposit,East\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, etlerr.ErrData)
}

func TestRead_RaggedRow(t *testing.T) {
	_, err := Read(strings.NewReader(header + "1,2024-01-01,5\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, etlerr.ErrParse)
}

func TestParseDate_Layouts(t *testing.T) {
	want := civil.Date{Year: 2024, Month: 3, Day: 9}
	for _, in := range []string{"2024-03-09", "2024/03/09", "03/09/2024", "2024-03-09 13:45:00", "2024-03-09T13:45:00Z", " 2024-03-09 "} {
		got, err := ParseDate(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{"100", true, "100.00"},
		{"-50.5", true, "-50.50"},
		{" 0 ", true, "0.00"},
		{"", false, ""},
		{"NaN", false, ""},
		{"nan", false, ""},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.valid, got.Valid, "input %q", tt.in)
		if tt.valid {
			assert.Equal(t, tt.want, got.Decimal.StringFixed(2))
		}
	}
}

func TestParseDate_UnpaddedLayouts(t *testing.T) {
	want := civil.Date{Year: 2024, Month: 1, Day: 5}
	for _, in := range []string{"2024-1-5", "2024/1/5", "1/5/2024", "2024-1-5 08:00:00"} {
		got, err := ParseDate(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestRead_WhitespaceMerchantIsNotMissing(t *testing.T) {
	tbl, err := Read(strings.NewReader(header + "1,2024-01-01,-5,  ,card,East\n2,2024-01-02,-6,,card,East\n"))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	assert.True(t, tbl.Rows[0].HasMerchant)
	assert.Equal(t, "  ", tbl.Rows[0].Merchant)
	assert.False(t, tbl.Rows[1].HasMerchant)
}
