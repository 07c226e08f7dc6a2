package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// FilterAll selects every person or card when used as a filter value.
const FilterAll = "ALL"

// Filter holds the view filters applied to the transaction collection.
type Filter struct {
	Month  string
	Person string // FilterAll selects everyone
	Card   string // FilterAll selects every card
	Query  string // substring match over desc, notes and installment
}

// Apply returns the transactions matching the filter, sorted by date.
func (f Filter) Apply(txs []Transaction) []Transaction {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	var out []Transaction
	for _, t := range txs {
		if f.Month != "" && t.Month != f.Month {
			continue
		}
		if f.Person != "" && f.Person != FilterAll && t.Person != f.Person {
			continue
		}
		if f.Card != "" && f.Card != FilterAll && t.Card != f.Card {
			continue
		}
		if q != "" {
			hay := strings.ToLower(t.Desc + " " + t.Notes + " " + t.Installment)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Totals summarizes a set of transactions.
type Totals struct {
	Total decimal.Decimal
	Paid  decimal.Decimal
	Open  decimal.Decimal
	Count int
}

// Summarize accumulates total, paid and open amounts.
func Summarize(txs []Transaction) Totals {
	t := Totals{Total: decimal.Zero, Paid: decimal.Zero, Open: decimal.Zero}
	for _, tx := range txs {
		t.Total = t.Total.Add(tx.Amount)
		if tx.Status == StatusPaid {
			t.Paid = t.Paid.Add(tx.Amount)
		}
		t.Count++
	}
	t.Open = t.Total.Sub(t.Paid)
	return t
}

// TotalsForPersonMonth summarizes one person's transactions in one month.
func TotalsForPersonMonth(txs []Transaction, person, month string) Totals {
	var rows []Transaction
	for _, t := range txs {
		if t.Person == person && t.Month == month {
			rows = append(rows, t)
		}
	}
	return Summarize(rows)
}

// KeyedAmount is an aggregation bucket.
type KeyedAmount struct {
	Key    string
	Amount decimal.Decimal
}

// SumByPerson aggregates amounts per person, largest first.
func SumByPerson(txs []Transaction) []KeyedAmount {
	return sumBy(txs, func(t Transaction) string { return t.Person })
}

// SumByCard aggregates amounts per card, largest first.
func SumByCard(txs []Transaction) []KeyedAmount {
	return sumBy(txs, func(t Transaction) string { return t.Card })
}

func sumBy(txs []Transaction, key func(Transaction) string) []KeyedAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txs {
		k := key(t)
		sums[k] = sums[k].Add(t.Amount)
	}
	out := make([]KeyedAmount, 0, len(sums))
	for k, v := range sums {
		out = append(out, KeyedAmount{Key: k, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Months returns the sorted set of billing months present in the collection.
func Months(txs []Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range txs {
		if t.Month != "" && !seen[t.Month] {
			seen[t.Month] = true
			out = append(out, t.Month)
		}
	}
	sort.Strings(out)
	return out
}

// People returns the default people merged with everyone appearing in the
// collection, sorted.
func People(txs []Transaction) []string {
	seen := make(map[string]bool)
	out := append([]string(nil), DefaultPeople...)
	for _, p := range out {
		seen[p] = true
	}
	for _, t := range txs {
		if t.Person != "" && !seen[t.Person] {
			seen[t.Person] = true
			out = append(out, t.Person)
		}
	}
	sort.Strings(out)
	return out
}
