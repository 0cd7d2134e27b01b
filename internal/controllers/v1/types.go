package v1

import (
	"fmt"
	"strconv"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/spendwise/backend/internal/uuid"
)

type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// QueryMonth selects a month by its number and a four digit year.
type QueryMonth struct {
	Month string `form:"month" example:"6"`    // Month, January being 1
	Year  string `form:"year" example:"2025"` // Four digit year
}

// month parses the query. Both parameters must be set.
func (q QueryMonth) month() (types.Month, error) {
	if q.Month == "" || q.Year == "" {
		return types.Month{}, errMonthNotSetInQuery
	}

	month, err := strconv.Atoi(q.Month)
	if err != nil {
		return types.Month{}, fmt.Errorf("%w: the month must be a number, got '%s'", models.ErrValidation, q.Month)
	}

	year, err := strconv.Atoi(q.Year)
	if err != nil {
		return types.Month{}, fmt.Errorf("%w: the year must be a number, got '%s'", models.ErrValidation, q.Year)
	}

	return types.FromNumbers(month, year)
}

// QueryYear selects a year.
type QueryYear struct {
	Year string `form:"year" example:"2025"` // Four digit year
}

func (q QueryYear) year() (int, error) {
	if q.Year == "" {
		return 0, errYearNotSetInQuery
	}

	year, err := strconv.Atoi(q.Year)
	if err != nil {
		return 0, fmt.Errorf("%w: the year must be a number, got '%s'", models.ErrValidation, q.Year)
	}

	return year, nil
}
