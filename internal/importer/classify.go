package importer

import "strings"

// RowKind is the shape a flat row resolves to.
type RowKind int

const (
	KindTransaction RowKind = iota // default route
	KindClosing
	KindCardStatus
	KindExtra
)

func (k RowKind) String() string {
	switch k {
	case KindClosing:
		return "closing"
	case KindCardStatus:
		return "card-status"
	case KindExtra:
		return "extra"
	}
	return "transaction"
}

// rule pairs a kind with its pure predicate. The slice order IS the
// classification precedence and must not be reordered: closing beats
// card-status beats extra; everything else is a transaction.
var rules = []struct {
	kind RowKind
	pred func(Record) bool
}{
	{KindClosing, isClosingRow},
	{KindCardStatus, isCardStatusRow},
	{KindExtra, isExtraRow},
}

// Classify decides the row shape, first match wins.
func Classify(r Record) RowKind {
	for _, rule := range rules {
		if rule.pred(r) {
			return rule.kind
		}
	}
	return KindTransaction
}

func isClosingRow(r Record) bool {
	return Present(r, FieldClosing) && Resolve(r, FieldMonth) != ""
}

func isCardStatusRow(r Record) bool {
	if !Present(r, FieldPaid) {
		return false
	}
	statusLike := Present(r, FieldOverdraft) ||
		hasChequeEspecialHeader(r) ||
		Present(r, FieldPaidDate) ||
		Present(r, FieldNotes)
	return statusLike && Resolve(r, FieldMonth) != "" && Resolve(r, FieldCard) != ""
}

func isExtraRow(r Record) bool {
	return Present(r, FieldType) &&
		Present(r, FieldExtraDesc) &&
		Present(r, FieldExtraPerson) &&
		Resolve(r, FieldMonth) != ""
}

// hasChequeEspecialHeader catches free-form "Cheque Especial ..." headers
// that do not match any known overdraft spelling.
func hasChequeEspecialHeader(r Record) bool {
	for h := range r {
		if strings.Contains(strings.ToLower(h), "cheque especial") {
			return true
		}
	}
	return false
}
