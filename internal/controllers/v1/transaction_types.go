package v1

import (
	"fmt"
	"time"

	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/models"
)

type TransactionResponse struct {
	Data models.Transaction `json:"data"` // Data for the transaction
}

type TransactionListResponse struct {
	Data []models.Transaction `json:"data"` // List of transactions
}

type TransactionQueryFilter struct {
	Type      string    `form:"type" example:"expense"`                          // By type
	Category  string    `form:"category" example:"Food"`                         // By category
	Mode      string    `form:"mode" example:"UPI"`                              // By payment mode
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" time_utc:"1"`  // Transactions on or after this date
	UntilDate time.Time `form:"untilDate" time_format:"2006-01-02" time_utc:"1"` // Transactions on or before this date
	Offset    uint      `form:"offset"`                                          // The offset of the first transaction returned
	Limit     int       `form:"limit"`                                           // Maximum number of transactions to return. Zero or less means no limit
}

func (f TransactionQueryFilter) model() (ledger.TransactionFilter, error) {
	filter := ledger.TransactionFilter{
		Type:      models.TransactionType(f.Type),
		Category:  f.Category,
		Mode:      models.NormalizeMode(models.Mode(f.Mode)),
		FromDate:  f.FromDate,
		UntilDate: f.UntilDate,
		Offset:    int(f.Offset),
		Limit:     f.Limit,
	}

	if filter.Type != "" && !filter.Type.Valid() {
		return ledger.TransactionFilter{}, fmt.Errorf("%w: the type must be one of %v, got '%s'", models.ErrValidation, models.TransactionTypes, f.Type)
	}

	if filter.Mode != "" && !filter.Mode.Valid() {
		return ledger.TransactionFilter{}, fmt.Errorf("%w: the mode must be one of %v, got '%s'", models.ErrValidation, models.Modes, f.Mode)
	}

	return filter, nil
}
