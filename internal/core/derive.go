package core

import "strings"

// ComputeDerived normalizes a raw transaction into the canonical shape:
// trimmed strings, canonical person ids, coerced status. It is applied on
// every read from storage and before every write, and is idempotent.
func ComputeDerived(t Transaction) Transaction {
	t.Person = NormalizePerson(t.Person)
	t.DividedWith = NormalizePersonNullable(t.DividedWith)
	t.Card = strings.TrimSpace(t.Card)
	t.Desc = strings.TrimSpace(t.Desc)
	t.Installment = strings.TrimSpace(t.Installment)
	t.Notes = strings.TrimSpace(t.Notes)
	t.Status = CoerceStatus(t.Status)
	t.Month = strings.TrimSpace(t.Month)
	t.Date = strings.TrimSpace(t.Date)
	t.Due = strings.TrimSpace(t.Due)
	return t
}

// DeriveAll maps ComputeDerived over a stored collection.
func DeriveAll(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, t := range txs {
		out[i] = ComputeDerived(t)
	}
	return out
}
