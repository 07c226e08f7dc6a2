package importer

import "strings"

// Record is one flat imported row: header name -> raw cell text. CSV and
// workbook ingestion both produce it, with "" for missing cells.
type Record map[string]string

// Canonical field names. Each maps to an ordered list of accepted header
// spellings covering the Portuguese/English and accent/case variants seen in
// real sheets.
const (
	FieldMonth       = "month"
	FieldClosing     = "closing"
	FieldCard        = "card"
	FieldPaid        = "paid"
	FieldPaidDate    = "paidDate"
	FieldOverdraft   = "overdraft"
	FieldNotes       = "notes"
	FieldType        = "type"
	FieldExtraDesc   = "extraDesc"
	FieldExtraPerson = "extraPerson"
	FieldWho         = "who"
	FieldAmount      = "amount"
	FieldDesc        = "desc"
	FieldDate        = "date"
	FieldDue         = "due"
	FieldInstallment = "installment"
	FieldDivided     = "divided"
)

// fieldAliases is the data-driven resolver table. Order matters: the first
// header present with a non-empty value wins.
var fieldAliases = map[string][]string{
	FieldMonth:       {"month", "Month", "MONTH", "Mês", "mes", "Mes", "MÊS"},
	FieldClosing:     {"fechamento", "Fechamento", "FECHAMENTO"},
	FieldCard:        {"card", "Cartao", "Cartão", "CARTAO", "cartao"},
	FieldPaid:        {"pago", "Pago", "PAGO"},
	FieldPaidDate:    {"pagoData", "PagoData", "PAGODATA", "dataPagamento", "DataPagamento"},
	FieldOverdraft:   {"chequeEspecialCredito", "ChequeEspecialCredito", "CHEQUEESPECIALCREDITO", "overdraft", "Overdraft"},
	FieldNotes:       {"obs", "Obs", "OBS", "observacao", "Observação"},
	FieldType:        {"tipo", "Tipo", "TIPO"},
	FieldExtraDesc:   {"descricao", "Descrição", "DESCRICAO", "descrição", "Descricao"},
	FieldExtraPerson: {"pessoa", "Pessoa", "PESSOA", "quem", "Quem", "QUEM"},
	FieldWho:         {"quem", "Quem", "QUEM", "pessoa", "Pessoa", "PESSOA"},
	FieldAmount:      {"valor", "Valor", "VALOR", "amount", "Amount"},
	FieldDesc:        {"compra", "Compra", "COMPRA", "descricao", "Descrição", "DESCRIÇÃO", "desc"},
	FieldDate:        {"data", "Data", "DATA", "date", "Date"},
	FieldDue:         {"due", "vencimento", "Vencimento", "VENCIMENTO"},
	FieldInstallment: {"parcelas", "Parcelas", "PARCELAS", "parcela", "Parcela", "installment", "Installment"},
	FieldDivided:     {"dividido", "Dividido", "DIVIDIDO", "dividir", "Dividir", "DIVIDIR"},
}

// Resolve returns the first non-empty value among the accepted spellings of
// a canonical field, trimmed, or "".
func Resolve(r Record, field string) string {
	for _, alias := range fieldAliases[field] {
		if v, ok := r[alias]; ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// Present reports whether any accepted spelling of the field exists as a
// header in the record, regardless of its value. The classifier sniffs on
// header presence, not on cell content.
func Present(r Record, field string) bool {
	for _, alias := range fieldAliases[field] {
		if _, ok := r[alias]; ok {
			return true
		}
	}
	return false
}
