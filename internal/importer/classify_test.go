package importer

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want RowKind
	}{
		{
			"closing row",
			Record{"month": "2024-03", "fechamento": "05/03"},
			KindClosing,
		},
		{
			// first-match-wins: fechamento beats pago even when both present
			"closing beats card status",
			Record{"month": "2024-03", "fechamento": "05/03", "pago": "Sim", "obs": "", "card": "8458"},
			KindClosing,
		},
		{
			"card status row",
			Record{"month": "2024-03", "card": "8458", "pago": "Sim", "pagoData": "2024-03-10"},
			KindCardStatus,
		},
		{
			"card status via cheque especial header",
			Record{"month": "2024-03", "Cartao": "8458", "pago": "N", "Cheque Especial usado": "0"},
			KindCardStatus,
		},
		{
			"pago without card is a transaction",
			Record{"month": "2024-03", "pago": "Sim", "obs": ""},
			KindTransaction,
		},
		{
			"pago without status-like companion is a transaction",
			Record{"month": "2024-03", "card": "8458", "pago": "Sim"},
			KindTransaction,
		},
		{
			"extra row",
			Record{"month": "2024-03", "tipo": "Emprestimo", "descricao": "Ajuda", "pessoa": "Pai"},
			KindExtra,
		},
		{
			"extra without month is a transaction",
			Record{"tipo": "Emprestimo", "descricao": "Ajuda", "pessoa": "Pai"},
			KindTransaction,
		},
		{
			"plain transaction",
			Record{"quem": "Pai", "compra": "Mercado", "valor": "100"},
			KindTransaction,
		},
		{
			"closing without month falls through",
			Record{"fechamento": "05/03", "pago": "S", "obs": "x", "card": "1", "month": ""},
			KindTransaction,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.r); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}
