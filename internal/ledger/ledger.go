// Package ledger enforces monthly budget ceilings on the write path of
// transactions and manages budgets.
//
// All amounts are unsigned. The direction of a transaction is given by its
// type, only expenses count against a budget.
package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Ledger answers whether a category has a ceiling in a month and how
// much of it remains.
type Ledger struct {
	db *gorm.DB
}

// New returns a Ledger reading from db.
//
// db may be a transaction. Budget rows read by Check are then locked
// until the transaction ends.
func New(db *gorm.DB) Ledger {
	return Ledger{db: db}
}

// Ceiling returns the ceiling for the category in the month.
//
// If no budget is configured, ok is false and spending is unlimited.
func (l Ledger) Ceiling(ctx context.Context, ownerID uuid.UUID, category string, month types.Month) (ceiling decimal.Decimal, ok bool, err error) {
	budget, err := store.New[models.Budget](l.db).ForUpdate().FindOne(ctx, ownerID, models.Budget{
		Category: category,
		Month:    month.Number(),
		Year:     month.Year(),
	})
	if errors.Is(err, models.ErrResourceNotFound) {
		return decimal.Zero, false, nil
	} else if err != nil {
		return decimal.Zero, false, err
	}

	return budget.Amount, true, nil
}

// SpentSoFar returns the sum of all expenses of the owner in the category
// during the spend window of the month.
func (l Ledger) SpentSoFar(ctx context.Context, ownerID uuid.UUID, category string, month types.Month) (decimal.Decimal, error) {
	return l.spent(ctx, ownerID, category, month, uuid.Nil)
}

func (l Ledger) spent(ctx context.Context, ownerID uuid.UUID, category string, month types.Month, exclude uuid.UUID) (decimal.Decimal, error) {
	groups, err := store.NewTransactions(l.db).AggregateSum(ctx, ownerID, store.Match{
		Type:     models.TransactionTypeExpense,
		Category: category,
		Exclude:  exclude,
	}.InMonth(month), store.GroupByNone)
	if err != nil {
		return decimal.Zero, err
	}

	return groups.Total(""), nil
}

// WouldExceed reports if an expense of amount would take the spend of the
// category above the ceiling. Spending exactly up to the ceiling is allowed.
//
// Without a ceiling, it is always false.
func (l Ledger) WouldExceed(ctx context.Context, ownerID uuid.UUID, category string, month types.Month, amount decimal.Decimal) (bool, error) {
	err := l.Check(ctx, ownerID, category, month, amount, uuid.Nil)

	var exceeded *BudgetExceededError
	if errors.As(err, &exceeded) {
		return true, nil
	}

	return false, err
}

// Check returns a *BudgetExceededError if an expense of amount would take
// the spend of the category above the ceiling.
//
// The transaction with the ID exclude is not counted as spent. This is used
// when an existing transaction is updated.
func (l Ledger) Check(ctx context.Context, ownerID uuid.UUID, category string, month types.Month, amount decimal.Decimal, exclude uuid.UUID) error {
	ceiling, ok, err := l.Ceiling(ctx, ownerID, category, month)
	if err != nil || !ok {
		return err
	}

	spent, err := l.spent(ctx, ownerID, category, month, exclude)
	if err != nil {
		return err
	}

	if spent.Add(amount).GreaterThan(ceiling) {
		return &BudgetExceededError{
			Category:  category,
			Month:     month,
			Limit:     ceiling,
			Spent:     spent,
			Attempted: amount,
		}
	}

	return nil
}

// Status is the state of a budget.
type Status struct {
	Budget    models.Budget   `json:"budget"`
	Spent     decimal.Decimal `json:"spent" example:"1900"`    // Sum of all expenses in the category and month
	Remaining decimal.Decimal `json:"remaining" example:"100"` // Amount that can still be spent. Negative when the budget is overspent
}

// Status returns how much of the budget with the given ID is spent and
// how much remains.
func (l Ledger) Status(ctx context.Context, ownerID, budgetID uuid.UUID) (Status, error) {
	budget, err := store.New[models.Budget](l.db).Get(ctx, ownerID, budgetID)
	if err != nil {
		return Status{}, err
	}

	spent, err := l.SpentSoFar(ctx, ownerID, budget.Category, budget.Period())
	if err != nil {
		return Status{}, err
	}

	return Status{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Amount.Sub(spent),
	}, nil
}
