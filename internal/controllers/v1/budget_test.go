package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBudgetCreateGet() {
	token := suite.login()
	budget := suite.createTestBudget(token, "Food", "2000", 6, 2025)

	suite.Assert().Equal("Food", budget.Category)
	suite.Assert().True(budget.Amount.Equal(decimal.NewFromInt(2000)))

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(budget.ID, response.Data.ID)
	suite.Assert().Equal(6, response.Data.Month)
	suite.Assert().Equal(2025, response.Data.Year)
}

func (suite *TestSuiteStandard) TestBudgetCreateFails() {
	token := suite.login()

	tests := []struct {
		name string
		body any
		msg  string
	}{
		{"Empty body", "", "must not be empty"},
		{"Zero amount", map[string]any{"category": "Food", "amount": "0", "month": 6, "year": 2025}, "amount"},
		{"Negative amount", map[string]any{"category": "Food", "amount": "-5", "month": 6, "year": 2025}, "amount"},
		{"No category", map[string]any{"amount": "100", "month": 6, "year": 2025}, "category"},
		{"Month 13", map[string]any{"category": "Food", "amount": "100", "month": 13, "year": 2025}, "month"},
		{"Two digit year", map[string]any{"category": "Food", "amount": "100", "month": 6, "year": 25}, "year"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/budgets", tt.body, test.Bearer(token))
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
			assert.Contains(t, test.DecodeError(t, recorder.Body.Bytes()), tt.msg)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetDuplicate() {
	token := suite.login()
	suite.createTestBudget(token, "Food", "2000", 6, 2025)

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/budgets", map[string]any{
		"category": "Food",
		"amount":   "2500",
		"month":    6,
		"year":     2025,
	}, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response struct {
		Error   string `json:"error"`
		Details struct {
			Category  string          `json:"category"`
			Month     int             `json:"month"`
			Year      int             `json:"year"`
			Limit     decimal.Decimal `json:"limit"`
			Attempted decimal.Decimal `json:"attempted"`
		} `json:"details"`
	}
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Contains(response.Error, "Budget already set for this category & month")
	suite.Assert().Equal("Food", response.Details.Category)
	suite.Assert().True(response.Details.Limit.Equal(decimal.NewFromInt(2000)), "Limit is %s", response.Details.Limit)
	suite.Assert().True(response.Details.Attempted.Equal(decimal.NewFromInt(2500)), "Attempted is %s", response.Details.Attempted)

	// Other months, other categories and other owners are fine
	suite.createTestBudget(token, "Food", "2000", 7, 2025)
	suite.createTestBudget(token, "Rent", "2000", 6, 2025)
	suite.createTestBudget(suite.login(), "Food", "2000", 6, 2025)
}

func (suite *TestSuiteStandard) TestBudgetList() {
	token := suite.login()
	suite.createTestBudget(token, "Food", "2000", 6, 2025)
	suite.createTestBudget(token, "Rent", "1000", 6, 2025)
	suite.createTestBudget(token, "Food", "2000", 7, 2025)
	suite.createTestBudget(token, "Food", "2000", 6, 2024)

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 4},
		{"Month and year", "month=6&year=2025", 2},
		{"Month", "month=6", 3},
		{"Year", "year=2024", 1},
		{"Invalid month is ignored", "month=June", 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(suite.controller, t, http.MethodGet, "http://example.com/v1/budgets?"+tt.query, "", test.Bearer(token))
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetStatus() {
	token := suite.login()
	budget := suite.createTestBudget(token, "Food", "2000", 6, 2025)

	suite.createTestTransaction(token, map[string]any{"category": "Food", "amount": "1500"})
	suite.createTestTransaction(token, map[string]any{"category": "Food", "amount": "250.50"})
	suite.createTestTransaction(token, map[string]any{"category": "Food", "amount": "99", "date": "2025-05-31T23:59:59Z"})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s/status", budget.ID), "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetStatusResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(budget.ID, response.Data.Budget.ID)
	suite.Assert().True(response.Data.Spent.Equal(decimal.RequireFromString("1750.5")), "Spent is %s", response.Data.Spent)
	suite.Assert().True(response.Data.Remaining.Equal(decimal.RequireFromString("249.5")), "Remaining is %s", response.Data.Remaining)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s/status", budget.ID), "", test.Bearer(suite.login()))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestBudgetUpdate() {
	token := suite.login()
	budget := suite.createTestBudget(token, "Food", "2000", 6, 2025)
	suite.createTestBudget(token, "Food", "2000", 7, 2025)
	url := fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID)

	recorder := test.Request(suite.controller, suite.T(), http.MethodPatch, url, `{ "amount": "2500" }`, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(2500)))
	suite.Assert().Equal("Food", response.Data.Category)

	// Moving the budget onto another one is a duplicate
	recorder = test.Request(suite.controller, suite.T(), http.MethodPatch, url, `{ "month": 7 }`, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Contains(test.DecodeError(suite.T(), recorder.Body.Bytes()), "Budget already set")

	// PUT needs all fields
	recorder = test.Request(suite.controller, suite.T(), http.MethodPut, url, `{ "amount": "100" }`, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.controller, suite.T(), http.MethodPut, url, map[string]any{
		"category": "Rent",
		"amount":   "900",
		"month":    8,
		"year":     2025,
	}, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("Rent", response.Data.Category)
	suite.Assert().Equal(8, response.Data.Month)

	recorder = test.Request(suite.controller, suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/budgets/%s", uuid.New()), `{ "amount": "1" }`, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetDelete() {
	token := suite.login()
	budget := suite.createTestBudget(token, "Food", "100", 6, 2025)

	// Over the budget
	suite.createTestTransaction(token, map[string]any{"category": "Food", "amount": "101"}, http.StatusBadRequest)

	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Without a budget, there is no limit
	suite.createTestTransaction(token, map[string]any{"category": "Food", "amount": "101"})

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
