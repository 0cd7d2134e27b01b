package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

// BudgetExceededError is returned when an expense would take the spend of
// a category above its ceiling for the month.
type BudgetExceededError struct {
	Category  string          `json:"category"`
	Month     types.Month     `json:"month"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Attempted decimal.Decimal `json:"attempted"`
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("Budget exceeded for %s in %s. Limit: %s, Already spent: %s, Attempted: %s", e.Category, e.Month, e.Limit, e.Spent, e.Attempted)
}

// Is makes errors.Is(err, models.ErrBudgetExceeded) true.
func (e *BudgetExceededError) Is(target error) bool {
	return target == models.ErrBudgetExceeded
}

// Remaining is the amount that can still be spent in the month.
func (e *BudgetExceededError) Remaining() decimal.Decimal {
	return e.Limit.Sub(e.Spent)
}

// DuplicateBudgetError is returned when a budget for the same category and
// month already exists.
type DuplicateBudgetError struct {
	Category  string          `json:"category"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Limit     decimal.Decimal `json:"limit"`
	Attempted decimal.Decimal `json:"attempted"`
}

func (e *DuplicateBudgetError) Error() string {
	return fmt.Sprintf("Budget already set for this category & month: %s in %04d-%02d has a limit of %s, attempted: %s", e.Category, e.Year, e.Month, e.Limit, e.Attempted)
}

// Is makes errors.Is(err, models.ErrDuplicateBudget) true.
func (e *DuplicateBudgetError) Is(target error) bool {
	return target == models.ErrDuplicateBudget
}
