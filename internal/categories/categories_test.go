package categories_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/categories"
	"github.com/spendwise/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategories() {
	owner := uuid.New()

	_, err := suite.service.Create(suite.ctx, owner, categories.CategoryEditable{Name: "Salary", Type: models.TransactionTypeIncome})
	suite.Require().Nil(err)

	food, err := suite.service.Create(suite.ctx, owner, categories.CategoryEditable{Name: " Food ", Type: models.TransactionTypeExpense})
	suite.Require().Nil(err)
	suite.Assert().Equal("Food", food.Name)

	// Another owner
	_, err = suite.service.Create(suite.ctx, uuid.New(), categories.CategoryEditable{Name: "Rent", Type: models.TransactionTypeExpense})
	suite.Require().Nil(err)

	all, err := suite.service.List(suite.ctx, owner, "")
	suite.Require().Nil(err)
	suite.Require().Len(all, 2)
	suite.Assert().Equal("Food", all[0].Name)
	suite.Assert().Equal("Salary", all[1].Name)

	expenses, err := suite.service.List(suite.ctx, owner, models.TransactionTypeExpense)
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 1)
	suite.Assert().Equal(food.ID, expenses[0].ID)
}

func (suite *TestSuiteStandard) TestCategoryNameUnique() {
	owner := uuid.New()

	_, err := suite.service.Create(suite.ctx, owner, categories.CategoryEditable{Name: "Food", Type: models.TransactionTypeExpense})
	suite.Require().Nil(err)

	_, err = suite.service.Create(suite.ctx, owner, categories.CategoryEditable{Name: "Food", Type: models.TransactionTypeIncome})
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)

	_, err = suite.service.Create(suite.ctx, uuid.New(), categories.CategoryEditable{Name: "Food", Type: models.TransactionTypeExpense})
	suite.Assert().Nil(err, "Other owners can use the same name")
}

func (suite *TestSuiteStandard) TestCategoryValidation() {
	_, err := suite.service.Create(suite.ctx, uuid.New(), categories.CategoryEditable{Name: "  ", Type: models.TransactionTypeExpense})
	suite.Assert().ErrorIs(err, models.ErrValidation)

	_, err = suite.service.Create(suite.ctx, uuid.New(), categories.CategoryEditable{Name: "Food", Type: "transfer"})
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestCategoryUpdateDelete() {
	owner := uuid.New()

	category, err := suite.service.Create(suite.ctx, owner, categories.CategoryEditable{Name: "Food", Type: models.TransactionTypeExpense})
	suite.Require().Nil(err)

	updated, err := suite.service.Update(suite.ctx, owner, category.ID, categories.CategoryEditable{Name: "Groceries"}, []string{"Name"})
	suite.Require().Nil(err)
	suite.Assert().Equal("Groceries", updated.Name)
	suite.Assert().Equal(models.TransactionTypeExpense, updated.Type, "Type must not change when it is not named")

	_, err = suite.service.Update(suite.ctx, uuid.New(), category.ID, categories.CategoryEditable{Name: "Stolen"}, []string{"Name"})
	suite.Assert().ErrorIs(err, models.ErrForbidden)

	err = suite.service.Delete(suite.ctx, uuid.New(), category.ID)
	suite.Assert().ErrorIs(err, models.ErrForbidden)

	suite.Require().Nil(suite.service.Delete(suite.ctx, owner, category.ID))

	_, err = suite.service.Get(suite.ctx, owner, category.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSuggest() {
	owner := uuid.New()

	rules := []categories.MatchRuleEditable{
		{Priority: 5, Match: "*", Category: "Misc"},
		{Priority: 1, Match: "Bank*", Category: "Fees"},
		{Priority: 1, Match: "Bank of*", Category: "Never"},
		{Priority: 2, Match: "*Store", Category: "Food"},
	}

	for _, r := range rules {
		_, err := suite.service.CreateMatchRule(suite.ctx, owner, r)
		suite.Require().Nil(err)
	}

	tests := []struct {
		payee    string
		category string
		ok       bool
	}{
		{"Bank of Springfield", "Fees", true},
		{"Corner Store", "Food", true},
		{"Landlord", "Misc", true},
		{"", "", false},
	}

	for _, tt := range tests {
		suite.T().Run(tt.payee, func(t *testing.T) {
			category, ok, err := suite.service.Suggest(suite.ctx, owner, tt.payee)
			assert.Nil(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.category, category)
		})
	}

	_, ok, err := suite.service.Suggest(suite.ctx, uuid.New(), "Bank of Springfield")
	suite.Require().Nil(err)
	suite.Assert().False(ok, "Rules of other owners must not be applied")
}

func (suite *TestSuiteStandard) TestMatchRules() {
	owner := uuid.New()

	rule, err := suite.service.CreateMatchRule(suite.ctx, owner, categories.MatchRuleEditable{Priority: 2, Match: "Uber*", Category: "Travel"})
	suite.Require().Nil(err)

	_, err = suite.service.CreateMatchRule(suite.ctx, owner, categories.MatchRuleEditable{Match: "", Category: "Travel"})
	suite.Assert().ErrorIs(err, models.ErrValidation)

	updated, err := suite.service.UpdateMatchRule(suite.ctx, owner, rule.ID, categories.MatchRuleEditable{Priority: 0}, []string{"Priority"})
	suite.Require().Nil(err)
	suite.Assert().Equal(uint(0), updated.Priority)
	suite.Assert().Equal("Uber*", updated.Match)

	got, err := suite.service.GetMatchRule(suite.ctx, owner, rule.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(uint(0), got.Priority)

	suite.Require().Nil(suite.service.DeleteMatchRule(suite.ctx, owner, rule.ID))

	rules, err := suite.service.ListMatchRules(suite.ctx, owner)
	suite.Require().Nil(err)
	suite.Assert().Len(rules, 0)
}
