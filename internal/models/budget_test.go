package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

func (suite *TestSuiteStandard) TestBudgetValidation() {
	owner := suite.createTestUser(models.User{})

	tests := []struct {
		name   string
		budget models.Budget
	}{
		{"Zero amount", models.Budget{OwnerID: owner.ID, Category: "Food", Month: 6, Year: 2025}},
		{"Negative amount", models.Budget{OwnerID: owner.ID, Category: "Food", Amount: decimal.NewFromInt(-5), Month: 6, Year: 2025}},
		{"No category", models.Budget{OwnerID: owner.ID, Category: " ", Amount: decimal.NewFromInt(5), Month: 6, Year: 2025}},
		{"Month out of range", models.Budget{OwnerID: owner.ID, Category: "Food", Amount: decimal.NewFromInt(5), Month: 13, Year: 2025}},
		{"Year out of range", models.Budget{OwnerID: owner.ID, Category: "Food", Amount: decimal.NewFromInt(5), Month: 6, Year: 25}},
	}

	for _, tt := range tests {
		err := models.DB.Create(&tt.budget).Error
		suite.Assert().ErrorIs(err, models.ErrValidation, tt.name)
	}
}

func (suite *TestSuiteStandard) TestBudgetPeriod() {
	budget := models.Budget{Month: 2, Year: 2024}
	suite.Assert().Equal(types.NewMonth(2024, time.February), budget.Period())
}
