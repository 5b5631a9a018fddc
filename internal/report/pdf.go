package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"vitien/internal/core"
)

// PDFRenderer produces an A4 portrait statement: a summary block followed by
// the in-period transactions, oldest first.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Format() Format      { return FormatPDF }

func (r *PDFRenderer) Render(w io.Writer, st core.Statement) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Account Statement", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Wallet: %s", st.WalletName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Period: %s to %s",
		st.Start.Format("2006-01-02"), st.End.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	summary := []struct {
		label string
		value core.Money
	}{
		{"Opening balance", st.OpeningBalance},
		{"Total income", st.TotalIncome},
		{"Total expense", st.TotalExpense},
		{"Closing balance", st.ClosingBalance},
	}
	pdf.SetFont("Helvetica", "B", 11)
	for _, row := range summary {
		pdf.CellFormat(60, 7, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row.value.String(), "", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	headers := []struct {
		label string
		width float64
	}{
		{"Date", 25},
		{"Type", 22},
		{"Category", 45},
		{"Note", 68},
		{"Amount", 30},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 8, h.label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, tx := range st.Transactions {
		pdf.CellFormat(25, 7, tx.Date.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 7, string(tx.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, tx.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(68, 7, tx.Note, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, tx.Signed().String(), "1", 1, "R", false, 0, "")
	}
	if len(st.Transactions) == 0 {
		pdf.CellFormat(190, 7, "No transactions in this period", "1", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
