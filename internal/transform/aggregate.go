package transform

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/model"
)

type flowTotals struct {
	inflow  decimal.Decimal
	outflow decimal.Decimal
	net     decimal.Decimal
	count   int
}

func (f *flowTotals) add(r model.EnrichedTransaction) {
	f.inflow = f.inflow.Add(r.Inflow)
	f.outflow = f.outflow.Add(r.Outflow)
	f.net = f.net.Add(r.Net)
	f.count++
}

// groupFlows sums rows per key. Keys are returned in first-seen order.
func groupFlows(rows []model.EnrichedTransaction, key func(model.EnrichedTransaction) string) ([]string, map[string]*flowTotals) {
	var order []string
	groups := make(map[string]*flowTotals)
	for _, r := range rows {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &flowTotals{}
			groups[k] = g
			order = append(order, k)
		}
		g.add(r)
	}
	return order, groups
}

// Monthly groups rows by year_month in the order months first appear.
func Monthly(rows []model.EnrichedTransaction) []model.MonthlySummary {
	order, groups := groupFlows(rows, func(r model.EnrichedTransaction) string { return r.YearMonth })

	out := make([]model.MonthlySummary, 0, len(order))
	for _, ym := range order {
		g := groups[ym]
		out = append(out, model.MonthlySummary{
			YearMonth:    ym,
			TotalInflow:  g.inflow,
			TotalOutflow: g.outflow,
			NetFlow:      g.net,
			TxnCount:     g.count,
		})
	}
	return out
}

// Regional groups rows by region, ordered by net flow descending.
// Regions with equal net flow keep first-seen order.
func Regional(rows []model.EnrichedTransaction) []model.RegionalSummary {
	order, groups := groupFlows(rows, func(r model.EnrichedTransaction) string { return r.Region })

	out := make([]model.RegionalSummary, 0, len(order))
	for _, region := range order {
		g := groups[region]
		out = append(out, model.RegionalSummary{
			Region:       region,
			TotalInflow:  g.inflow,
			TotalOutflow: g.outflow,
			NetFlow:      g.net,
			TxnCount:     g.count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetFlow.GreaterThan(out[j].NetFlow)
	})
	return out
}

// TopMerchants ranks merchants by total outflow and keeps the first limit.
// Rows with the missing-merchant placeholder are excluded. Ties keep
// first-seen order.
func TopMerchants(rows []model.EnrichedTransaction, limit int) []model.MerchantSpend {
	var order []string
	byMerchant := make(map[string]*model.MerchantSpend)
	for _, r := range rows {
		if r.Merchant == model.MissingMerchant {
			continue
		}
		m, ok := byMerchant[r.Merchant]
		if !ok {
			m = &model.MerchantSpend{Merchant: r.Merchant}
			byMerchant[r.Merchant] = m
			order = append(order, r.Merchant)
		}
		m.Spend = m.Spend.Add(r.Outflow)
		m.Txns++
	}

	out := make([]model.MerchantSpend, 0, len(order))
	for _, name := range order {
		out = append(out, *byMerchant[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Spend.GreaterThan(out[j].Spend)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
