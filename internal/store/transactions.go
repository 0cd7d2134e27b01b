package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// amountScale is the number of decimal places of the amount columns.
const amountScale = 8

// GroupBy is the column a sum is grouped by.
type GroupBy string

const (
	GroupByNone     GroupBy = ""
	GroupByType     GroupBy = "type"
	GroupByCategory GroupBy = "category"
	GroupByMode     GroupBy = "mode"
)

// Match selects the transactions that are summed.
//
// Zero values match everything.
type Match struct {
	Type     models.TransactionType
	Category string
	Mode     models.Mode
	From     time.Time // Inclusive
	Until    time.Time // Exclusive
	Exclude  uuid.UUID // A transaction that is not counted
}

// InMonth restricts the match to the spend window of the month.
func (m Match) InMonth(month types.Month) Match {
	m.From, m.Until = month.Window()
	return m
}

// Group is the sum of the amounts of all transactions with the same key.
type Group struct {
	Key   string
	Total decimal.Decimal
}

// Groups is the result of an aggregation, ordered by key.
type Groups []Group

// Total returns the total for the key. Keys without transactions have a total of zero.
func (g Groups) Total(key string) decimal.Decimal {
	for _, group := range g {
		if group.Key == key {
			return group.Total
		}
	}

	return decimal.Zero
}

// Map returns the totals by key.
func (g Groups) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(g))
	for _, group := range g {
		m[group.Key] = group.Total
	}
	return m
}

// Sum returns the sum of all groups.
func (g Groups) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, group := range g {
		sum = sum.Add(group.Total)
	}
	return sum
}

// Transactions is the Store for transactions. It adds aggregations.
type Transactions struct {
	Store[models.Transaction]
}

// NewTransactions returns the transaction store.
func NewTransactions(db *gorm.DB) Transactions {
	return Transactions{New[models.Transaction](db)}
}

// AggregateSum sums the amounts of the owner's transactions that match,
// grouped by the column in groupBy.
//
// Without grouping, the result always contains exactly one group with an
// empty key.
func (s Transactions) AggregateSum(ctx context.Context, ownerID uuid.UUID, match Match, groupBy GroupBy) (Groups, error) {
	q := s.query(ctx, ownerID).Model(&models.Transaction{})

	if match.Type != "" {
		q = q.Where("transactions.type = ?", match.Type)
	}

	if match.Category != "" {
		q = q.Where("transactions.category = ?", match.Category)
	}

	if match.Mode != "" {
		q = q.Where("transactions.mode = ?", match.Mode)
	}

	// Dates are stored in UTC and compared as instants. date() would
	// truncate in the session timezone on postgresql.
	if !match.From.IsZero() {
		q = q.Where("transactions.date >= ?", match.From.In(time.UTC))
	}

	if !match.Until.IsZero() {
		q = q.Where("transactions.date < ?", match.Until.In(time.UTC))
	}

	if match.Exclude != uuid.Nil {
		q = q.Where("transactions.id != ?", match.Exclude)
	}

	switch groupBy {
	case GroupByNone:
		q = q.Select("'' AS group_key, SUM(transactions.amount) AS total")
	case GroupByType, GroupByCategory, GroupByMode:
		column := fmt.Sprintf("transactions.%s", groupBy)
		q = q.Select(column + " AS group_key, SUM(transactions.amount) AS total").Group(column).Order(column)
	default:
		return nil, fmt.Errorf("cannot group transactions by '%s'", groupBy)
	}

	var rows []struct {
		GroupKey string
		Total    decimal.NullDecimal
	}

	err := q.Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	groups := make(Groups, 0, len(rows))
	for _, row := range rows {
		total := decimal.Zero

		// SUM is NULL when no transactions match
		if row.Total.Valid {
			total = row.Total.Decimal.Round(amountScale)
		}

		groups = append(groups, Group{Key: row.GroupKey, Total: total})
	}

	return groups, nil
}
