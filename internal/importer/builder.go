package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"organizador/internal/core"
)

// buildTransactions turns a classified transaction row into one canonical
// transaction, or two when the row describes a shared expense. Emitted
// records already went through core.ComputeDerived; rows carrying neither a
// description nor an amount come back empty.
func buildTransactions(r Record, now time.Time) []core.Transaction {
	who := Resolve(r, FieldWho)
	shared := core.ParseSharedPeople(who)

	date, _ := core.ParseDate(Resolve(r, FieldDate))
	due, _ := core.ParseDate(Resolve(r, FieldDue))

	month := Resolve(r, FieldMonth)
	if month == "" {
		// billing month falls back: due month, then purchase month, then now
		switch {
		case core.MonthKey(due) != "":
			month = core.MonthKey(due)
		case core.MonthKey(date) != "":
			month = core.MonthKey(date)
		default:
			month = core.MonthKey(now)
		}
	}

	amount := core.ParseMoney(Resolve(r, FieldAmount))

	installment := Resolve(r, FieldInstallment)
	if core.IsISODate(installment) {
		// a date in the installment column means the source sheet was
		// misaligned; drop it rather than store a bogus label
		installment = ""
	}

	base := core.Transaction{
		Month:       month,
		Card:        Resolve(r, FieldCard),
		Date:        core.ToISODate(date),
		Desc:        Resolve(r, FieldDesc),
		Installment: installment,
		Due:         core.ToISODate(due),
		Status:      core.StatusOpen,
	}

	divPerson := core.NormalizePersonNullable(Resolve(r, FieldDivided))
	whoNorm := core.NormalizePerson(who)

	if len(shared) == 2 || (divPerson != "" && divPerson != whoNorm) {
		a, b := whoNorm, divPerson
		if len(shared) == 2 {
			a, b = shared[0], shared[1]
		}
		half, other := core.SplitAmountTwo(amount)

		first, second := base, base
		first.ID, second.ID = uuid.NewString(), uuid.NewString()
		first.Person, first.DividedWith, first.Amount = a, b, half
		second.Person, second.DividedWith, second.Amount = b, a, other
		first.Notes = splitNote(b)
		second.Notes = splitNote(a)

		var out []core.Transaction
		for _, t := range []core.Transaction{first, second} {
			if t = core.ComputeDerived(t); !t.IsEmpty() {
				out = append(out, t)
			}
		}
		return out
	}

	tx := base
	tx.ID = uuid.NewString()
	tx.Person = whoNorm
	tx.Amount = amount
	tx = core.ComputeDerived(tx)
	if tx.IsEmpty() {
		return nil
	}
	return []core.Transaction{tx}
}

func splitNote(other string) string {
	return fmt.Sprintf("Dividido com %s (1/2)", core.DisplayPerson(other))
}

// buildCardMeta turns a classified card-status row into an upsert candidate.
func buildCardMeta(r Record) core.CardMeta {
	paid := core.PaidNo
	if v := strings.ToUpper(Resolve(r, FieldPaid)); strings.Contains(v, "S") || strings.Contains(v, "YES") {
		paid = core.PaidYes
	}
	return core.CardMeta{
		ID:        uuid.NewString(),
		Month:     Resolve(r, FieldMonth),
		Card:      Resolve(r, FieldCard),
		Paid:      paid,
		PaidDate:  Resolve(r, FieldPaidDate),
		Overdraft: core.ParseMoney(Resolve(r, FieldOverdraft)),
		Notes:     Resolve(r, FieldNotes),
	}
}

// buildExtra turns a classified extra row into a record; ok is false when
// the description is empty, which drops the row.
func buildExtra(r Record) (core.Extra, bool) {
	desc := Resolve(r, FieldExtraDesc)
	if desc == "" {
		return core.Extra{}, false
	}
	date, _ := core.ParseDate(Resolve(r, FieldDate))
	typ := Resolve(r, FieldType)
	if typ == "" {
		typ = "Outros"
	}
	return core.Extra{
		ID:     uuid.NewString(),
		Month:  Resolve(r, FieldMonth),
		Person: core.NormalizePerson(Resolve(r, FieldExtraPerson)),
		Date:   core.ToISODate(date),
		Type:   typ,
		Desc:   desc,
		Amount: core.ParseMoney(Resolve(r, FieldAmount)),
	}, true
}
