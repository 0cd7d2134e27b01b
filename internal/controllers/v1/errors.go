package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/auth"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/importer"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/spendwise/backend/internal/uuid"
)

var (
	errMonthNotSetInQuery = errors.New("the month and year query parameters must be set")
	errYearNotSetInQuery  = errors.New("the year query parameter must be set")
	errNoFilePost         = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix    = errors.New("this endpoint only supports files of the following type")
)

// clientErrors are the errors caused by the request. They result in HTTP 400.
var clientErrors = []error{
	models.ErrValidation,
	models.ErrBudgetExceeded,
	models.ErrDuplicateBudget,
	models.ErrCategoryNameNotUnique,
	models.ErrEmailInUse,
	httputil.ErrInvalidBody,
	httputil.ErrRequestBodyEmpty,
	httputil.ErrInvalidQueryString,
	uuid.ErrInvalid,
	types.ErrMonthOutOfRange,
	types.ErrYearOutOfRange,
	errMonthNotSetInQuery,
	errYearNotSetInQuery,
	errNoFilePost,
	errWrongFileSuffix,
}

// bindQuery binds the query string into obj. When binding fails, it
// responds with HTTP 400 and returns false.
func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		respondError(c, httputil.ErrInvalidQueryString)
		return false
	}

	return true
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrMissingToken) || errors.Is(err, auth.ErrInvalidToken) {
		return http.StatusUnauthorized
	}

	if errors.Is(err, models.ErrForbidden) {
		return http.StatusForbidden
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	for _, e := range clientErrors {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}

	var parseError *importer.ParseError
	if errors.As(err, &parseError) {
		return http.StatusBadRequest
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// budgetExceededDetails are the details of a rejected expense.
type budgetExceededDetails struct {
	Category  string          `json:"category" example:"Food"`
	Month     types.Month     `json:"month" example:"2025-06"`
	Limit     decimal.Decimal `json:"limit" example:"2000"`
	Spent     decimal.Decimal `json:"spent" example:"1900"`
	Attempted decimal.Decimal `json:"attempted" example:"200"`
	Remaining decimal.Decimal `json:"remaining" example:"100"`
}

// details returns structured information about budget errors.
func details(err error) any {
	var exceeded *ledger.BudgetExceededError
	if errors.As(err, &exceeded) {
		return budgetExceededDetails{
			Category:  exceeded.Category,
			Month:     exceeded.Month,
			Limit:     exceeded.Limit,
			Spent:     exceeded.Spent,
			Attempted: exceeded.Attempted,
			Remaining: exceeded.Remaining(),
		}
	}

	var duplicate *ledger.DuplicateBudgetError
	if errors.As(err, &duplicate) {
		return duplicate
	}

	return nil
}

// respondError aborts the request with the error.
//
// Server errors are logged with the request ID. The response only
// contains the request ID, not the error itself.
func respondError(c *gin.Context, err error) {
	code := status(err)

	if code == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		err = fmt.Errorf("%w, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", models.ErrGeneral, requestid.Get(c))
	}

	c.AbortWithStatusJSON(code, httputil.HTTPError{
		Error:   err.Error(),
		Details: details(err),
	})
}
