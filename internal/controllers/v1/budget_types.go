package v1

import (
	"strconv"

	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/models"
)

type BudgetResponse struct {
	Data models.Budget `json:"data"` // Data for the budget
}

type BudgetListResponse struct {
	Data []models.Budget `json:"data"` // List of budgets
}

type BudgetStatusResponse struct {
	Data ledger.Status `json:"data"` // Status of the budget
}

type BudgetQueryFilter struct {
	Month string `form:"month" example:"6"`    // By month, January being 1
	Year  string `form:"year" example:"2025"` // By four digit year
}

// model converts the filter. Values that are not numbers do not filter.
func (f BudgetQueryFilter) model() ledger.BudgetFilter {
	month, _ := strconv.Atoi(f.Month)
	year, _ := strconv.Atoi(f.Year)

	return ledger.BudgetFilter{
		Month: month,
		Year:  year,
	}
}
