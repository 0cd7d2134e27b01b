// Package reports computes read-only rollups of the transactions of an owner.
//
// All totals are sums of unsigned amounts. There is no currency conversion,
// the currency of the reports is configured for the whole instance.
package reports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
	"github.com/spendwise/backend/internal/types"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Summary contains the totals over a period.
type Summary struct {
	Income   decimal.Decimal `json:"income" example:"3000"`  // Sum of all income
	Expense  decimal.Decimal `json:"expense" example:"1900"` // Sum of all expenses
	Balance  decimal.Decimal `json:"balance" example:"1100"` // Income minus expenses
	Currency string          `json:"currency" example:"INR"` // ISO 4217 code of the currency
}

// Monthly is the Summary for one month.
type Monthly struct {
	Month int `json:"month" example:"6"`    // Month, January being 1
	Year  int `json:"year" example:"2025"` // Four digit year
	Summary
}

// Yearly contains the Summary for every month of a year and their totals.
type Yearly struct {
	Year   int       `json:"year" example:"2025"`
	Months []Monthly `json:"months"` // Always twelve entries, January first
	Summary
}

// CategoryTotal is the sum of the expenses of a category.
type CategoryTotal struct {
	Category string          `json:"category" example:"Food"`
	Total    decimal.Decimal `json:"total" example:"1900"`
}

// ModeTotal is the sum of the expenses paid with a payment mode.
type ModeTotal struct {
	Mode  models.Mode     `json:"mode" example:"UPI"`
	Total decimal.Decimal `json:"total" example:"700"`
}

// Aggregator computes the reports.
type Aggregator struct {
	transactions store.Transactions
	currency     currency.Unit
}

// New returns an Aggregator that reports in the given currency.
func New(db *gorm.DB, unit currency.Unit) Aggregator {
	return Aggregator{
		transactions: store.NewTransactions(db),
		currency:     unit,
	}
}

func (a Aggregator) summary(ctx context.Context, ownerID uuid.UUID, match store.Match) (Summary, error) {
	groups, err := a.transactions.AggregateSum(ctx, ownerID, match, store.GroupByType)
	if err != nil {
		return Summary{}, err
	}

	income := groups.Total(string(models.TransactionTypeIncome))
	expense := groups.Total(string(models.TransactionTypeExpense))

	return Summary{
		Income:   income,
		Expense:  expense,
		Balance:  income.Sub(expense),
		Currency: a.currency.String(),
	}, nil
}

// Summary returns the totals over the whole history of the owner.
func (a Aggregator) Summary(ctx context.Context, ownerID uuid.UUID) (Summary, error) {
	return a.summary(ctx, ownerID, store.Match{})
}

// Monthly returns the totals for the spend window of the month.
func (a Aggregator) Monthly(ctx context.Context, ownerID uuid.UUID, month types.Month) (Monthly, error) {
	summary, err := a.summary(ctx, ownerID, store.Match{}.InMonth(month))
	if err != nil {
		return Monthly{}, err
	}

	return Monthly{
		Month:   month.Number(),
		Year:    month.Year(),
		Summary: summary,
	}, nil
}

// ByCategory returns the expenses of the month by category, ordered by category.
func (a Aggregator) ByCategory(ctx context.Context, ownerID uuid.UUID, month types.Month) ([]CategoryTotal, error) {
	groups, err := a.transactions.AggregateSum(ctx, ownerID, store.Match{Type: models.TransactionTypeExpense}.InMonth(month), store.GroupByCategory)
	if err != nil {
		return nil, err
	}

	totals := make([]CategoryTotal, 0, len(groups))
	for _, g := range groups {
		totals = append(totals, CategoryTotal{Category: g.Key, Total: g.Total})
	}

	return totals, nil
}

// ByMode returns the expenses of the month by payment mode, ordered by mode.
func (a Aggregator) ByMode(ctx context.Context, ownerID uuid.UUID, month types.Month) ([]ModeTotal, error) {
	groups, err := a.transactions.AggregateSum(ctx, ownerID, store.Match{Type: models.TransactionTypeExpense}.InMonth(month), store.GroupByMode)
	if err != nil {
		return nil, err
	}

	totals := make([]ModeTotal, 0, len(groups))
	for _, g := range groups {
		totals = append(totals, ModeTotal{Mode: models.Mode(g.Key), Total: g.Total})
	}

	return totals, nil
}

// Yearly returns the Monthly report for every month of the year.
//
// The totals of the year are the sums of the monthly totals.
func (a Aggregator) Yearly(ctx context.Context, ownerID uuid.UUID, year int) (Yearly, error) {
	first, err := types.FromNumbers(1, year)
	if err != nil {
		return Yearly{}, err
	}

	yearly := Yearly{
		Year:   year,
		Months: make([]Monthly, 0, 12),
		Summary: Summary{
			Income:   decimal.Zero,
			Expense:  decimal.Zero,
			Balance:  decimal.Zero,
			Currency: a.currency.String(),
		},
	}

	for i := 0; i < 12; i++ {
		monthly, err := a.Monthly(ctx, ownerID, first.AddDate(0, i))
		if err != nil {
			return Yearly{}, err
		}

		yearly.Months = append(yearly.Months, monthly)
		yearly.Income = yearly.Income.Add(monthly.Income)
		yearly.Expense = yearly.Expense.Add(monthly.Expense)
	}

	yearly.Balance = yearly.Income.Sub(yearly.Expense)
	return yearly, nil
}
