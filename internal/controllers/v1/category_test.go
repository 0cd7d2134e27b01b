package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/test"
)

func (suite *TestSuiteStandard) createTestCategory(token, name, transactionType string) models.Category {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/categories", map[string]any{
		"name": name,
		"type": transactionType,
	}, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return response.Data
}

func (suite *TestSuiteStandard) TestCategories() {
	token := suite.login()

	suite.createTestCategory(token, "Salary", "income")
	suite.createTestCategory(token, "Rent", "expense")
	food := suite.createTestCategory(token, "Food", "expense")

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/categories", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 3)
	suite.Assert().Equal("Food", list.Data[0].Name)
	suite.Assert().Equal("Salary", list.Data[2].Name)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/categories?type=expense", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list.Data, 2)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/categories?type=transfer", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	url := fmt.Sprintf("http://example.com/v1/categories/%s", food.ID)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, url, "", test.Bearer(suite.login()))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	recorder = test.Request(suite.controller, suite.T(), http.MethodPatch, url, `{ "name": "Groceries" }`, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("Groceries", response.Data.Name)
	suite.Assert().Equal(models.TransactionTypeExpense, response.Data.Type)

	recorder = test.Request(suite.controller, suite.T(), http.MethodPatch, url, `{ "name": "Rent" }`, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Contains(test.DecodeError(suite.T(), recorder.Body.Bytes()), "must be unique")

	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, url, "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, url, "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoryCreateFails() {
	token := suite.login()
	suite.createTestCategory(token, "Food", "expense")

	for _, body := range []any{
		"",
		map[string]any{"name": "Food", "type": "expense"},
		map[string]any{"name": " ", "type": "expense"},
		map[string]any{"name": "Travel", "type": "transfer"},
	} {
		recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/categories", body, test.Bearer(token))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestMatchRules() {
	token := suite.login()

	create := func(priority int, match, category string) models.MatchRule {
		recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/match-rules", map[string]any{
			"priority": priority,
			"match":    match,
			"category": category,
		}, test.Bearer(token))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

		var response v1.MatchRuleResponse
		test.DecodeResponse(suite.T(), &recorder, &response)
		return response.Data
	}

	generic := create(10, "*", "Misc")
	bank := create(1, "Bank*", "Fees")

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/match-rules", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.MatchRuleListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 2)
	suite.Assert().Equal(bank.ID, list.Data[0].ID, "Rules must be ordered by priority")

	transaction := suite.createTestTransaction(token, map[string]any{"payee": "Bank of Test"})
	suite.Assert().Equal("Fees", transaction.Category)

	transaction = suite.createTestTransaction(token, map[string]any{"payee": "Corner Store"})
	suite.Assert().Equal("Misc", transaction.Category)

	url := fmt.Sprintf("http://example.com/v1/match-rules/%s", generic.ID)

	recorder = test.Request(suite.controller, suite.T(), http.MethodPatch, url, `{ "priority": 0 }`, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(uint(0), response.Data.Priority)
	suite.Assert().Equal("*", response.Data.Match)

	transaction = suite.createTestTransaction(token, map[string]any{"payee": "Bank of Test"})
	suite.Assert().Equal("Misc", transaction.Category)

	recorder = test.Request(suite.controller, suite.T(), http.MethodPatch, url, `{ "match": "" }`, test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, url, "", test.Bearer(suite.login()))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, url, "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, url, "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
