package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/auth"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/reports"
)

type SummaryResponse struct {
	Data reports.Summary `json:"data"` // Totals over all transactions
}

type MonthlyResponse struct {
	Data reports.Monthly `json:"data"` // Totals for the month
}

type YearlyResponse struct {
	Data reports.Yearly `json:"data"` // Totals for the year and each of its months
}

type CategoryTotalsResponse struct {
	Data []reports.CategoryTotal `json:"data"` // Expenses by category
}

type ModeTotalsResponse struct {
	Data []reports.ModeTotal `json:"data"` // Expenses by payment mode
}

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	for _, path := range []string{"/summary", "/monthly", "/yearly", "/by-category", "/by-mode"} {
		r.OPTIONS(path, httputil.OptionsGet)
	}

	r.GET("/summary", co.GetSummary)
	r.GET("/monthly", co.GetMonthly)
	r.GET("/yearly", co.GetYearly)
	r.GET("/by-category", co.GetByCategory)
	r.GET("/by-mode", co.GetByMode)
}

// @Summary		Summary
// @Description	Returns total income, total expenses and the balance over all transactions
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		401	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Router			/v1/reports/summary [get]
func (co Controller) GetSummary(c *gin.Context) {
	summary, err := co.reports.Summary(c.Request.Context(), auth.Owner(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: summary})
}

// @Summary		Monthly report
// @Description	Returns total income, total expenses and the balance for a month
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	MonthlyResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			month	query		int	true	"Month, January being 1"
// @Param			year	query		int	true	"Four digit year"
// @Router			/v1/reports/monthly [get]
func (co Controller) GetMonthly(c *gin.Context) {
	var query QueryMonth
	if !bindQuery(c, &query) {
		return
	}

	month, err := query.month()
	if err != nil {
		respondError(c, err)
		return
	}

	monthly, err := co.reports.Monthly(c.Request.Context(), auth.Owner(c), month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthlyResponse{Data: monthly})
}

// @Summary		Yearly report
// @Description	Returns the monthly reports for every month of a year and the totals of the year
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	YearlyResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			year	query		int	true	"Four digit year"
// @Router			/v1/reports/yearly [get]
func (co Controller) GetYearly(c *gin.Context) {
	var query QueryYear
	if !bindQuery(c, &query) {
		return
	}

	year, err := query.year()
	if err != nil {
		respondError(c, err)
		return
	}

	yearly, err := co.reports.Yearly(c.Request.Context(), auth.Owner(c), year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, YearlyResponse{Data: yearly})
}

// @Summary		Expenses by category
// @Description	Returns the expenses of a month grouped by category
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	CategoryTotalsResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			month	query		int	true	"Month, January being 1"
// @Param			year	query		int	true	"Four digit year"
// @Router			/v1/reports/by-category [get]
func (co Controller) GetByCategory(c *gin.Context) {
	var query QueryMonth
	if !bindQuery(c, &query) {
		return
	}

	month, err := query.month()
	if err != nil {
		respondError(c, err)
		return
	}

	totals, err := co.reports.ByCategory(c.Request.Context(), auth.Owner(c), month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryTotalsResponse{Data: totals})
}

// @Summary		Expenses by payment mode
// @Description	Returns the expenses of a month grouped by payment mode
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	ModeTotalsResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			month	query		int	true	"Month, January being 1"
// @Param			year	query		int	true	"Four digit year"
// @Router			/v1/reports/by-mode [get]
func (co Controller) GetByMode(c *gin.Context) {
	var query QueryMonth
	if !bindQuery(c, &query) {
		return
	}

	month, err := query.month()
	if err != nil {
		respondError(c, err)
		return
	}

	totals, err := co.reports.ByMode(c.Request.Context(), auth.Owner(c), month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModeTotalsResponse{Data: totals})
}
