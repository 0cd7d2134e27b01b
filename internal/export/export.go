// Package export writes transactions as CSV or XLSX files.
//
// The CSV columns are the ones the importer reads, so an export can be
// imported again.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/spendwise/backend/internal/importer"
	"github.com/spendwise/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// Format is a file format for exports.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Valid reports if the format is supported.
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatXLSX
}

// Filename returns the name of an export file created at the given time.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("transactions_%s.%s", t.Format("20060102"), f)
}

const sheetName = "Transactions"

func record(t models.Transaction) []string {
	return []string{
		t.Date.UTC().Format(time.RFC3339),
		t.Title,
		string(t.Type),
		t.Amount.String(),
		t.Category,
		string(t.Mode),
		t.Payee,
		t.Description,
	}
}

// Write writes the transactions in the given format.
func Write(w io.Writer, format Format, transactions []models.Transaction) error {
	switch format {
	case FormatCSV:
		return CSV(w, transactions)
	case FormatXLSX:
		return XLSX(w, transactions)
	default:
		return fmt.Errorf("%w: unknown export format '%s'", models.ErrValidation, format)
	}
}

// CSV writes the transactions as CSV with a header line.
func CSV(w io.Writer, transactions []models.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(importer.Columns); err != nil {
		return err
	}

	for _, t := range transactions {
		if err := writer.Write(record(t)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// XLSX writes the transactions to a workbook with a single sheet.
//
// Dates are written as date cells and amounts as numbers.
func XLSX(w io.Writer, transactions []models.Transaction) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if err = f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := make([]any, 0, len(importer.Columns))
	for _, column := range importer.Columns {
		header = append(header, column)
	}

	if err = f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, t := range transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []any{
			t.Date.UTC(),
			t.Title,
			string(t.Type),
			t.Amount.InexactFloat64(),
			t.Category,
			string(t.Mode),
			t.Payee,
			t.Description,
		}

		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	if err = f.SetColWidth(sheetName, "A", "A", 20); err != nil {
		return err
	}

	if err = f.SetColWidth(sheetName, "B", "B", 30); err != nil {
		return err
	}

	return f.Write(w)
}
