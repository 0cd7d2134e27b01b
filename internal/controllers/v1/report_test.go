package v1_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) seedReports(token string) {
	suite.createTestTransaction(token, map[string]any{"type": "income", "category": "Salary", "amount": "3000", "mode": "BankTransfer", "date": "2025-06-01T09:00:00Z"})
	suite.createTestTransaction(token, map[string]any{"category": "Food", "amount": "400", "mode": "UPI", "date": "2025-06-02T09:00:00Z"})
	suite.createTestTransaction(token, map[string]any{"category": "Food", "amount": "100", "mode": "Cash", "date": "2025-06-30T23:59:59Z"})
	suite.createTestTransaction(token, map[string]any{"category": "Rent", "amount": "1000", "mode": "BankTransfer", "date": "2025-06-05T09:00:00Z"})
	suite.createTestTransaction(token, map[string]any{"type": "income", "category": "Salary", "amount": "3000", "mode": "BankTransfer", "date": "2025-07-01T00:00:00Z"})
	suite.createTestTransaction(token, map[string]any{"category": "Food", "amount": "250", "mode": "Card", "date": "2025-07-03T09:00:00Z"})
}

func (suite *TestSuiteStandard) TestReportSummary() {
	token := suite.login()
	suite.seedReports(token)

	// Data of other users is never included
	suite.seedReports(suite.login())

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/reports/summary", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Income.Equal(decimal.NewFromInt(6000)), "Income is %s", response.Data.Income)
	suite.Assert().True(response.Data.Expense.Equal(decimal.NewFromInt(1750)), "Expense is %s", response.Data.Expense)
	suite.Assert().True(response.Data.Balance.Equal(decimal.NewFromInt(4250)), "Balance is %s", response.Data.Balance)
	suite.Assert().Equal("INR", response.Data.Currency)
}

func (suite *TestSuiteStandard) TestReportMonthly() {
	token := suite.login()
	suite.seedReports(token)

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/reports/monthly?month=6&year=2025", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthlyResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(6, response.Data.Month)
	suite.Assert().Equal(2025, response.Data.Year)
	suite.Assert().True(response.Data.Income.Equal(decimal.NewFromInt(3000)), "Income is %s", response.Data.Income)
	suite.Assert().True(response.Data.Expense.Equal(decimal.NewFromInt(1500)), "Expense is %s", response.Data.Expense)
	suite.Assert().True(response.Data.Balance.Equal(decimal.NewFromInt(1500)), "Balance is %s", response.Data.Balance)

	// A month without transactions has zero totals
	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/reports/monthly?month=1&year=2025", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Income.IsZero())
	suite.Assert().True(response.Data.Expense.IsZero())
}

func (suite *TestSuiteStandard) TestReportByCategoryAndMode() {
	token := suite.login()
	suite.seedReports(token)

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/reports/by-category?month=6&year=2025", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var categories v1.CategoryTotalsResponse
	test.DecodeResponse(suite.T(), &recorder, &categories)
	suite.Require().Len(categories.Data, 2)
	suite.Assert().Equal("Food", categories.Data[0].Category)
	suite.Assert().True(categories.Data[0].Total.Equal(decimal.NewFromInt(500)), "Total is %s", categories.Data[0].Total)
	suite.Assert().Equal("Rent", categories.Data[1].Category)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/reports/by-mode?month=6&year=2025", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var modes v1.ModeTotalsResponse
	test.DecodeResponse(suite.T(), &recorder, &modes)
	suite.Require().Len(modes.Data, 3)

	totals := make(map[models.Mode]decimal.Decimal)
	for _, m := range modes.Data {
		totals[m.Mode] = m.Total
	}
	suite.Assert().True(totals[models.ModeBankTransfer].Equal(decimal.NewFromInt(1000)))
	suite.Assert().True(totals[models.ModeCash].Equal(decimal.NewFromInt(100)))
	suite.Assert().True(totals[models.ModeUPI].Equal(decimal.NewFromInt(400)))

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/reports/by-mode?month=8&year=2025", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`{ "data": [] }`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestReportYearly() {
	token := suite.login()
	suite.seedReports(token)

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/reports/yearly?year=2025", "", test.Bearer(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.YearlyResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data.Months, 12)
	suite.Assert().Equal(2025, response.Data.Year)
	suite.Assert().Equal(1, response.Data.Months[0].Month)
	suite.Assert().True(response.Data.Months[6].Expense.Equal(decimal.NewFromInt(250)), "July expense is %s", response.Data.Months[6].Expense)
	suite.Assert().True(response.Data.Income.Equal(decimal.NewFromInt(6000)), "Income is %s", response.Data.Income)
	suite.Assert().True(response.Data.Expense.Equal(decimal.NewFromInt(1750)), "Expense is %s", response.Data.Expense)
}

func (suite *TestSuiteStandard) TestReportQueryFails() {
	token := suite.login()

	tests := []struct {
		name string
		path string
	}{
		{"Monthly without query", "/v1/reports/monthly"},
		{"Monthly without year", "/v1/reports/monthly?month=6"},
		{"Monthly month 13", "/v1/reports/monthly?month=13&year=2025"},
		{"Monthly month not a number", "/v1/reports/monthly?month=June&year=2025"},
		{"By category two digit year", "/v1/reports/by-category?month=6&year=25"},
		{"By mode without month", "/v1/reports/by-mode?year=2025"},
		{"Yearly without year", "/v1/reports/yearly"},
		{"Yearly five digit year", "/v1/reports/yearly?year=20251"},
		{"Yearly year not a number", "/v1/reports/yearly?year=last"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(suite.controller, t, http.MethodGet, "http://example.com"+tt.path, "", test.Bearer(token))
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
			assert.NotEmpty(t, test.DecodeError(t, recorder.Body.Bytes()))
		})
	}
}
