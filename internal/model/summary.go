package model

import "github.com/shopspring/decimal"

// TopMerchantLimit is how many merchants the spend ranking keeps.
const TopMerchantLimit = 10

// MonthlySummary aggregates one calendar month.
type MonthlySummary struct {
	YearMonth    string
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	NetFlow      decimal.Decimal
	TxnCount     int
}

// RegionalSummary aggregates one region.
type RegionalSummary struct {
	Region       string
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	NetFlow      decimal.Decimal
	TxnCount     int
}

// MerchantSpend is one row of the top-merchant ranking.
type MerchantSpend struct {
	Merchant string
	Spend    decimal.Decimal
	Txns     int
}

// Result is everything the transform stage produces.
type Result struct {
	Header       []string
	Transactions []EnrichedTransaction
	Monthly      []MonthlySummary
	Regional     []RegionalSummary
	TopMerchants []MerchantSpend
}
