package importer

import (
	"errors"
	"testing"
)

func TestReadCSVSemicolon(t *testing.T) {
	text := "month;quem;compra;valor\n2024-03;Pai;Mercado;1.234,56\n\n2024-03;Mae;Farmacia;45,00\n"
	records, err := ReadCSV(text)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}
	if records[0]["valor"] != "1.234,56" {
		t.Errorf("valor = %q", records[0]["valor"])
	}
	if records[1]["quem"] != "Mae" {
		t.Errorf("quem = %q", records[1]["quem"])
	}
}

func TestReadCSVComma(t *testing.T) {
	text := "month,quem,compra,valor\n2024-03,Pai,Mercado,100.50\n"
	records, err := ReadCSV(text)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(records) != 1 || records[0]["valor"] != "100.50" {
		t.Errorf("records = %v", records)
	}
}

func TestReadCSVShortLine(t *testing.T) {
	text := "month;quem;valor\n2024-03;Pai\n"
	records, err := ReadCSV(text)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if v, ok := records[0]["valor"]; !ok || v != "" {
		t.Errorf("missing cell should default to empty, got %q ok=%v", v, ok)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	for _, text := range []string{"", "month;quem\n", "\n\n"} {
		if _, err := ReadCSV(text); !errors.Is(err, ErrEmptyCSV) {
			t.Errorf("ReadCSV(%q) err = %v, want ErrEmptyCSV", text, err)
		}
	}
}
