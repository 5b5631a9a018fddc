package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"vitien/internal/core"
)

const sheetName = "Statement"

// XLSXRenderer produces a single-sheet workbook: summary rows on top, then
// the in-period transactions, oldest first.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) Format() Format { return FormatXLSX }

func (r *XLSXRenderer) Render(w io.Writer, st core.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	rows := [][]any{
		{"Wallet", st.WalletName},
		{"Period start", st.Start.Format("2006-01-02")},
		{"Period end", st.End.Format("2006-01-02")},
		{"Opening balance", st.OpeningBalance.String()},
		{"Total income", st.TotalIncome.String()},
		{"Total expense", st.TotalExpense.String()},
		{"Closing balance", st.ClosingBalance.String()},
		{},
		{"Date", "Type", "Category", "Note", "Amount"},
	}
	for _, tx := range st.Transactions {
		rows = append(rows, []any{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			tx.Category,
			tx.Note,
			tx.Signed().String(),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("set row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("render xlsx: %w", err)
	}
	return nil
}
