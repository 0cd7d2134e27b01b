// Package importer reads transactions from CSV files and creates them
// through the transaction writer.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/models"
)

// Columns are the column names written by the exporter. Parse accepts
// them in any order.
var Columns = []string{"date", "title", "type", "amount", "category", "mode", "payee", "description"}

// Bank exports often use separate outflow and inflow columns and a memo
// instead of a description. Those are accepted too.
const (
	columnOutflow = "outflow"
	columnInflow  = "inflow"
	columnMemo    = "memo"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02", "01/02/2006"}

// ParseError is an error in a specific line of the CSV.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error in line %d of the CSV: %s", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Row is a parsed line of the CSV.
type Row struct {
	Line        int                        `json:"line" example:"2"` // Line in the CSV file, the header being line 1
	Transaction ledger.TransactionEditable `json:"transaction"`
}

type header map[string]int

func (h header) get(record []string, column string) string {
	idx, ok := h[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (h header) has(column string) bool {
	_, ok := h[column]
	return ok
}

// Parse reads all transactions from a CSV file with a header line.
//
// Transactions without category are kept that way. The writer suggests
// a category when they are created.
func Parse(f io.Reader) ([]Row, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	first, err := reader.Read()
	if err == io.EOF {
		return []Row{}, nil
	} else if err != nil {
		return csvReadError(reader, fmt.Errorf("could not read header: %w", err))
	}

	h := make(header, len(first))
	for i, name := range first {
		h[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}

	if !h.has("date") || !h.has("payee") || !(h.has("amount") || h.has(columnOutflow) || h.has(columnInflow)) {
		return csvReadError(reader, errors.New("the header must contain the columns date, payee and either amount or outflow and inflow"))
	}

	rows := make([]Row, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		transaction, err := parseRecord(h, record)
		if err != nil {
			return csvReadError(reader, err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, Row{Line: line, Transaction: transaction})
	}

	return rows, nil
}

func parseRecord(h header, record []string) (ledger.TransactionEditable, error) {
	t := ledger.TransactionEditable{
		Title:       h.get(record, "title"),
		Type:        models.TransactionType(strings.ToLower(h.get(record, "type"))),
		Category:    h.get(record, "category"),
		Mode:        models.NormalizeMode(models.Mode(h.get(record, "mode"))),
		Payee:       h.get(record, "payee"),
		Description: h.get(record, "description"),
	}

	if t.Description == "" {
		t.Description = h.get(record, columnMemo)
	}

	if t.Title == "" {
		t.Title = t.Payee
	}

	if t.Mode == "" {
		t.Mode = models.ModeBankTransfer
	}

	date, err := parseDate(h.get(record, "date"))
	if err != nil {
		return ledger.TransactionEditable{}, err
	}
	t.Date = date

	amount := h.get(record, "amount")
	outflow := h.get(record, columnOutflow)
	inflow := h.get(record, columnInflow)

	switch {
	case amount != "":
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return ledger.TransactionEditable{}, errors.New("amount could not be parsed to a decimal")
		}

		// Without a type column, the sign gives the direction
		if t.Type == "" {
			t.Type = models.TransactionTypeExpense
			if t.Amount.IsPositive() {
				t.Type = models.TransactionTypeIncome
			}
		}
	case outflow != "" && inflow != "":
		return ledger.TransactionEditable{}, errors.New("both outflow and inflow are set for the transaction")
	case outflow != "":
		t.Type = models.TransactionTypeExpense
		t.Amount, err = decimal.NewFromString(outflow)
		if err != nil {
			return ledger.TransactionEditable{}, errors.New("outflow could not be parsed to a decimal")
		}
	case inflow != "":
		t.Type = models.TransactionTypeIncome
		t.Amount, err = decimal.NewFromString(inflow)
		if err != nil {
			return ledger.TransactionEditable{}, errors.New("inflow could not be parsed to a decimal")
		}
	default:
		return ledger.TransactionEditable{}, errors.New("no amount is set for the transaction")
	}

	if t.Amount.IsZero() {
		return ledger.TransactionEditable{}, errors.New("the amount for a transaction must not be 0")
	}

	t.Amount = t.Amount.Abs()
	return t, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		date, err := time.Parse(layout, value)
		if err == nil {
			return date.In(time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse time '%s', use YYYY-MM-DD or RFC 3339", value)
}

// csvReadError returns a *ParseError for the line the reader is at.
func csvReadError(r *csv.Reader, err error) ([]Row, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(0)

	return []Row{}, &ParseError{Line: line, Err: err}
}
