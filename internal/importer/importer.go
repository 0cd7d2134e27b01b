package importer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/models"
)

// Result is the outcome of importing a single row.
type Result struct {
	Line        int                 `json:"line" example:"2"`                                       // Line in the CSV file
	Transaction *models.Transaction `json:"transaction,omitempty"`                                  // The created transaction
	Error       string              `json:"error,omitempty" example:"the payee must not be empty"` // Why the row was rejected
}

// Importer creates parsed rows as transactions.
type Importer struct {
	writer ledger.Writer
}

func New(writer ledger.Writer) Importer {
	return Importer{writer: writer}
}

// rejected reports if the error only affects a single row.
func rejected(err error) bool {
	return errors.Is(err, models.ErrValidation) || errors.Is(err, models.ErrBudgetExceeded)
}

// Import creates the rows in order. Every row is checked against the budgets
// like any other transaction, including the rows imported before it.
//
// Rows that are invalid or exceed a budget are skipped and reported in their
// Result. Any other error stops the import and is returned together with the
// results of the rows before it.
func (i Importer) Import(ctx context.Context, ownerID uuid.UUID, rows []Row) ([]Result, error) {
	results := make([]Result, 0, len(rows))

	for _, row := range rows {
		transaction, err := i.writer.Create(ctx, ownerID, row.Transaction)
		if err != nil && rejected(err) {
			results = append(results, Result{Line: row.Line, Error: err.Error()})
			continue
		} else if err != nil {
			return results, err
		}

		results = append(results, Result{Line: row.Line, Transaction: &transaction})
	}

	log.Debug().Str("owner", ownerID.String()).Int("rows", len(rows)).Msg("import")
	return results, nil
}
