package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Status marks whether a transaction has been settled.
type Status string

const (
	StatusOpen Status = "OPEN"
	StatusPaid Status = "PAID"
)

// PaidYes/PaidNo are the values CardMeta.Paid takes on. Kept as strings
// because that is how the import/export surface spells them.
const (
	PaidYes = "YES"
	PaidNo  = "NO"
)

// DefaultPeople are the people every view offers even before any data exists.
var DefaultPeople = []string{"Pai", "Mae", "Irmao", "Eu"}

// SelfPerson is the person empty input normalizes to.
const SelfPerson = "Eu"

type (
	// Transaction is one ledger line. A shared expense is stored as two
	// transactions, each holding half the amount and pointing at the other
	// participant through DividedWith.
	Transaction struct {
		ID          string          `json:"id"`
		Month       string          `json:"month"` // billing month "YYYY-MM"
		Card        string          `json:"card"`
		Person      string          `json:"person"`
		DividedWith string          `json:"dividedWith"`
		Date        string          `json:"date"` // "YYYY-MM-DD" or ""
		Desc        string          `json:"desc"`
		Installment string          `json:"installment"`
		Due         string          `json:"due"`
		Amount      decimal.Decimal `json:"amount"`
		Status      Status          `json:"status"`
		Notes       string          `json:"notes"`
	}

	// CardMeta is the per-month-per-card administrative status, keyed by
	// (Month, Card) with last-write-wins on re-import.
	CardMeta struct {
		ID        string          `json:"id"`
		Month     string          `json:"month"`
		Card      string          `json:"card"`
		Paid      string          `json:"paid"` // YES / NO
		PaidDate  string          `json:"paidDate"`
		Overdraft decimal.Decimal `json:"overdraft"`
		Notes     string          `json:"notes"`
	}

	// Extra is an ad-hoc person-level financial event (loan, reimbursement)
	// tracked outside the card ledger.
	Extra struct {
		ID     string          `json:"id"`
		Month  string          `json:"month"`
		Person string          `json:"person"`
		Date   string          `json:"date"`
		Type   string          `json:"type"`
		Desc   string          `json:"desc"`
		Amount decimal.Decimal `json:"amount"`
	}
)

var (
	ErrMissingMonth       = errors.New("month is required")
	ErrMissingMonthCard   = errors.New("month and card are required")
	ErrMissingExtraFields = errors.New("month, person, date and description are required")
	ErrMissingDescAmount  = errors.New("description and amount are required")
	ErrTransactionNotFnd  = errors.New("transaction not found")
)

// CoerceStatus maps any value onto the status enum, defaulting to OPEN.
func CoerceStatus(s Status) Status {
	if s == StatusPaid {
		return StatusPaid
	}
	return StatusOpen
}

// DisplayPerson restores the accented spelling for presentation, exports and
// generated notes. Stored person ids stay accent-free.
func DisplayPerson(p string) string {
	switch p {
	case "Mae":
		return "Mãe"
	case "Irmao":
		return "Irmão"
	}
	return p
}

// Validate reports whether the card meta can be saved. Month and card form
// the upsert key, so both are required.
func (m CardMeta) Validate() error {
	if strings.TrimSpace(m.Month) == "" || strings.TrimSpace(m.Card) == "" {
		return ErrMissingMonthCard
	}
	return nil
}

// Validate reports whether the extra can be saved.
func (e Extra) Validate() error {
	if strings.TrimSpace(e.Month) == "" ||
		strings.TrimSpace(e.Person) == "" ||
		strings.TrimSpace(e.Date) == "" ||
		strings.TrimSpace(e.Desc) == "" {
		return ErrMissingExtraFields
	}
	return nil
}

// IsEmpty reports whether a transaction carries neither a description nor an
// amount. Such rows are dropped during import.
func (t Transaction) IsEmpty() bool {
	return t.Desc == "" && t.Amount.IsZero()
}
