package store_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
	"github.com/spendwise/backend/internal/types"
)

func (suite *TestSuiteStandard) TestAggregateSumGroups() {
	owner := uuid.New()
	june := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	income := func(t *models.Transaction) { t.Type = models.TransactionTypeIncome }
	upi := func(t *models.Transaction) { t.Mode = models.ModeUPI }

	suite.createTestTransaction(owner, "Food", 10.10, june)
	suite.createTestTransaction(owner, "Food", 20.20, june, upi)
	suite.createTestTransaction(owner, "Rent", 500, june, upi)
	suite.createTestTransaction(owner, "Salary", 3000, june, income)

	// Another owner's transactions are never counted
	suite.createTestTransaction(uuid.New(), "Food", 99, june)

	s := store.NewTransactions(models.DB)

	tests := []struct {
		name     string
		match    store.Match
		groupBy  store.GroupBy
		expected map[string]decimal.Decimal
	}{
		{
			"By type",
			store.Match{},
			store.GroupByType,
			map[string]decimal.Decimal{
				"expense": decimal.NewFromFloat(530.3),
				"income":  decimal.NewFromInt(3000),
			},
		},
		{
			"Expenses by category",
			store.Match{Type: models.TransactionTypeExpense},
			store.GroupByCategory,
			map[string]decimal.Decimal{
				"Food": decimal.NewFromFloat(30.3),
				"Rent": decimal.NewFromInt(500),
			},
		},
		{
			"Expenses by mode",
			store.Match{Type: models.TransactionTypeExpense},
			store.GroupByMode,
			map[string]decimal.Decimal{
				"Cash": decimal.NewFromFloat(10.1),
				"UPI":  decimal.NewFromFloat(520.2),
			},
		},
		{
			"Single category, no grouping",
			store.Match{Type: models.TransactionTypeExpense, Category: "Food"},
			store.GroupByNone,
			map[string]decimal.Decimal{
				"": decimal.NewFromFloat(30.3),
			},
		},
		{
			"Nothing matches, no grouping",
			store.Match{Category: "Travel"},
			store.GroupByNone,
			map[string]decimal.Decimal{
				"": decimal.Zero,
			},
		},
		{
			"Nothing matches, grouped",
			store.Match{Category: "Travel"},
			store.GroupByCategory,
			map[string]decimal.Decimal{},
		},
	}

	for _, tt := range tests {
		groups, err := s.AggregateSum(suite.ctx, owner, tt.match, tt.groupBy)
		suite.Require().Nil(err, tt.name)

		totals := groups.Map()
		suite.Assert().Len(totals, len(tt.expected), tt.name)
		for key, expected := range tt.expected {
			suite.Assert().True(expected.Equal(totals[key]), "%s: total for '%s' is %s, expected %s", tt.name, key, totals[key], expected)
		}
	}
}

func (suite *TestSuiteStandard) TestAggregateSumOrderedByKey() {
	owner := uuid.New()
	june := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for _, category := range []string{"Travel", "Food", "Rent"} {
		suite.createTestTransaction(owner, category, 1, june)
	}

	groups, err := store.NewTransactions(models.DB).AggregateSum(suite.ctx, owner, store.Match{}, store.GroupByCategory)
	suite.Require().Nil(err)
	suite.Require().Len(groups, 3)
	suite.Assert().Equal("Food", groups[0].Key)
	suite.Assert().Equal("Rent", groups[1].Key)
	suite.Assert().Equal("Travel", groups[2].Key)
	suite.Assert().True(groups.Sum().Equal(decimal.NewFromInt(3)))
}

func (suite *TestSuiteStandard) TestAggregateSumMonthWindow() {
	owner := uuid.New()

	// Inside of June 2025
	suite.createTestTransaction(owner, "Food", 1, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	suite.createTestTransaction(owner, "Food", 2, time.Date(2025, 6, 30, 23, 59, 59, 999000000, time.UTC))
	suite.createTestTransaction(owner, "Food", 16, time.Date(2025, 6, 30, 23, 59, 59, 999999999, time.UTC))

	// 2025-06-30T21:30:00Z
	suite.createTestTransaction(owner, "Food", 32, time.Date(2025, 7, 1, 3, 0, 0, 0, time.FixedZone("IST", 5*3600+1800)))

	// Outside of June 2025
	suite.createTestTransaction(owner, "Food", 4, time.Date(2025, 5, 31, 23, 59, 59, 0, time.UTC))
	suite.createTestTransaction(owner, "Food", 8, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	suite.createTestTransaction(owner, "Food", 64, time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC))

	groups, err := store.NewTransactions(models.DB).AggregateSum(suite.ctx, owner, store.Match{}.InMonth(types.NewMonth(2025, time.June)), store.GroupByNone)
	suite.Require().Nil(err)
	suite.Assert().True(groups.Total("").Equal(decimal.NewFromInt(51)), "Total is %s", groups.Total(""))
}

// The window bounds are instants, not calendar days in some other zone.
func (suite *TestSuiteStandard) TestAggregateSumExactBounds() {
	owner := uuid.New()
	from := time.Date(2025, 6, 10, 18, 30, 0, 0, time.UTC)
	until := time.Date(2025, 6, 12, 6, 0, 0, 0, time.UTC)

	suite.createTestTransaction(owner, "Food", 1, from)
	suite.createTestTransaction(owner, "Food", 2, until.Add(-time.Nanosecond))
	suite.createTestTransaction(owner, "Food", 4, from.Add(-time.Second))
	suite.createTestTransaction(owner, "Food", 8, until)

	groups, err := store.NewTransactions(models.DB).AggregateSum(suite.ctx, owner, store.Match{From: from, Until: until}, store.GroupByNone)
	suite.Require().Nil(err)
	suite.Assert().True(groups.Total("").Equal(decimal.NewFromInt(3)), "Total is %s", groups.Total(""))
}

func (suite *TestSuiteStandard) TestAggregateSumExclude() {
	owner := uuid.New()
	june := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	suite.createTestTransaction(owner, "Food", 100, june)
	excluded := suite.createTestTransaction(owner, "Food", 50, june)

	groups, err := store.NewTransactions(models.DB).AggregateSum(suite.ctx, owner, store.Match{Exclude: excluded.ID}, store.GroupByNone)
	suite.Require().Nil(err)
	suite.Assert().True(groups.Total("").Equal(decimal.NewFromInt(100)))
}

func (suite *TestSuiteStandard) TestAggregateSumInvalidGroup() {
	_, err := store.NewTransactions(models.DB).AggregateSum(suite.ctx, uuid.New(), store.Match{}, store.GroupBy("payee; DROP TABLE transactions"))
	suite.Assert().NotNil(err)
}

func (suite *TestSuiteStandard) TestAggregateSumPrecision() {
	owner := uuid.New()
	june := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		suite.createTestTransaction(owner, "Food", 0.1, june)
	}

	groups, err := store.NewTransactions(models.DB).AggregateSum(suite.ctx, owner, store.Match{}, store.GroupByNone)
	suite.Require().Nil(err)
	suite.Assert().Equal("1", groups.Total("").String())
}
