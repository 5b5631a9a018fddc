package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"vitien/internal/core"
)

func sampleStatement() core.Statement {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }
	return core.Statement{
		WalletID:       "w-1",
		WalletName:     "Main wallet",
		Start:          day(1),
		End:            day(30),
		OpeningBalance: core.Money{Cents: 100000},
		TotalIncome:    core.Money{Cents: 50000},
		TotalExpense:   core.Money{Cents: 30000},
		ClosingBalance: core.Money{Cents: 120000},
		Transactions: []core.Transaction{
			{Type: core.Income, Amount: core.Money{Cents: 50000}, Category: "Salary", Date: day(5)},
			{Type: core.Expense, Amount: core.Money{Cents: 30000}, Category: "Rent", Note: "june", Date: day(10)},
		},
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		walletName string
		format     Format
		want       string
	}{
		{"Main wallet", FormatPDF, "statement_main-wallet_2025-06-01_2025-06-30.pdf"},
		{"Spese / Casa!", FormatXLSX, "statement_spese-casa_2025-06-01_2025-06-30.xlsx"},
		{"---", FormatPDF, "statement__2025-06-01_2025-06-30.pdf"},
	}
	for i, c := range cases {
		st := sampleStatement()
		st.WalletName = c.walletName
		if got := Filename(st, c.format); got != c.want {
			t.Fatalf("case %d: got %q, want %q", i, got, c.want)
		}
	}
}

func TestForFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"pdf", FormatPDF, true},
		{"PDF", FormatPDF, true},
		{"xlsx", FormatXLSX, true},
		{"csv", "", false},
		{"", "", false},
	}
	for i, c := range cases {
		r, ok := ForFormat(c.in)
		if ok != c.ok {
			t.Fatalf("case %d: ok = %v, want %v", i, ok, c.ok)
		}
		if ok && r.Format() != c.want {
			t.Fatalf("case %d: format = %s, want %s", i, r.Format(), c.want)
		}
	}
}

func TestPDFRender(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPDFRenderer().Render(&buf, sampleStatement()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestPDFRenderEmptyStatement(t *testing.T) {
	st := sampleStatement()
	st.Transactions = nil

	var buf bytes.Buffer
	if err := NewPDFRenderer().Render(&buf, st); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("empty output")
	}
}

func TestXLSXRender(t *testing.T) {
	var buf bytes.Buffer
	if err := NewXLSXRenderer().Render(&buf, sampleStatement()); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(sheetName, "B1")
	if err != nil {
		t.Fatalf("read B1: %v", err)
	}
	if got != "Main wallet" {
		t.Fatalf("B1 expected wallet name, got %q", got)
	}

	closing, err := f.GetCellValue(sheetName, "B7")
	if err != nil {
		t.Fatalf("read B7: %v", err)
	}
	if closing != "1200.00" {
		t.Fatalf("B7 expected closing balance 1200.00, got %q", closing)
	}

	firstTx, err := f.GetCellValue(sheetName, "A10")
	if err != nil {
		t.Fatalf("read A10: %v", err)
	}
	if firstTx != "2025-06-05" {
		t.Fatalf("A10 expected first transaction date, got %q", firstTx)
	}
}
