package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/auth"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/ledger"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.GET("/:id/status", co.GetBudgetStatus)
		r.PATCH("/:id", co.UpdateBudget)
		r.PUT("/:id", co.ReplaceBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OptionsGetPatchPutDelete(c)
}

// @Summary		Create budget
// @Description	Creates a new budget. There can only be one budget per category and month.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			budget	body		ledger.BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	var data ledger.BudgetEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	budget, err := co.budgets.Create(c.Request.Context(), auth.Owner(c), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: budget})
}

// @Summary		Get budgets
// @Description	Returns the budgets ordered by year, month and category. Filter values that are not numbers are ignored.
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetListResponse
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			month	query		int	false	"Filter by month"
// @Param			year	query		int	false	"Filter by year"
// @Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if !bindQuery(c, &filter) {
		return
	}

	budgets, err := co.budgets.List(c.Request.Context(), auth.Owner(c), filter.model())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: budgets})
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		403	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	budget, err := co.budgets.Get(c.Request.Context(), auth.Owner(c), uri.ID.UUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: budget})
}

// @Summary		Get budget status
// @Description	Returns how much of the budget is spent and how much remains
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetStatusResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		403	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/status [get]
func (co Controller) GetBudgetStatus(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	budgetStatus, err := co.ledger.Status(c.Request.Context(), auth.Owner(c), uri.ID.UUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetStatusResponse{Data: budgetStatus})
}

// @Summary		Update budget
// @Description	Updates an existing budget. Only values to be updated need to be specified. Fields that are sent are updated, even if their value is empty or zero.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		403		{object}	httputil.HTTPError
// @Failure		404		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		ledger.BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	co.updateBudget(c, false)
}

// @Summary		Replace budget
// @Description	Replaces all fields of an existing budget
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		403		{object}	httputil.HTTPError
// @Failure		404		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		ledger.BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [put]
func (co Controller) ReplaceBudget(c *gin.Context) {
	co.updateBudget(c, true)
}

// updateBudget updates the fields sent in the body. If all is true,
// all fields are updated.
func (co Controller) updateBudget(c *gin.Context, all bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	fields := ledger.BudgetFields
	if !all {
		fields, err = httputil.GetBodyFields(c, ledger.BudgetEditable{})
		if err != nil {
			respondError(c, err)
			return
		}
	}

	var data ledger.BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	budget, err := co.budgets.Update(c.Request.Context(), auth.Owner(c), uri.ID.UUID, data, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: budget})
}

// @Summary		Delete budget
// @Description	Deletes a budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		403	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	err = co.budgets.Delete(c.Request.Context(), auth.Owner(c), uri.ID.UUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
