package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/auth"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/ledger"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.PUT("/:id", co.ReplaceTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.OptionsGetPatchPutDelete(c)
}

// @Summary		Create transaction
// @Description	Creates a new transaction. Expenses that would take the spend of their category above the budget of the month are rejected.
// @Description	If no category is set, it is suggested from the match rules by the payee.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			transaction	body		ledger.TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var data ledger.TransactionEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	transaction, err := co.writer.Create(c.Request.Context(), auth.Owner(c), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: transaction})
}

// @Summary		Get transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionListResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			type		query		string	false	"Filter by type"
// @Param			category	query		string	false	"Filter by category"
// @Param			mode		query		string	false	"Filter by payment mode"
// @Param			fromDate	query		string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			untilDate	query		string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Param			offset		query		uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of transactions to return. Defaults to all."
// @Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if !bindQuery(c, &filter) {
		return
	}

	model, err := filter.model()
	if err != nil {
		respondError(c, err)
		return
	}

	transactions, err := co.writer.List(c.Request.Context(), auth.Owner(c), model)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		403	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	transaction, err := co.writer.Get(c.Request.Context(), auth.Owner(c), uri.ID.UUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified. Fields that are sent are updated, even if their value is empty or zero.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		403			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		ledger.TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	co.updateTransaction(c, false)
}

// @Summary		Replace transaction
// @Description	Replaces all fields of an existing transaction
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		403			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		ledger.TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [put]
func (co Controller) ReplaceTransaction(c *gin.Context) {
	co.updateTransaction(c, true)
}

// updateTransaction updates the fields sent in the body. If all is true,
// all fields are updated.
func (co Controller) updateTransaction(c *gin.Context, all bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	fields := ledger.TransactionFields
	if !all {
		fields, err = httputil.GetBodyFields(c, ledger.TransactionEditable{})
		if err != nil {
			respondError(c, err)
			return
		}
	}

	var data ledger.TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		respondError(c, err)
		return
	}

	transaction, err := co.writer.Update(c.Request.Context(), auth.Owner(c), uri.ID.UUID, data, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		403	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		respondError(c, err)
		return
	}

	err = co.writer.Delete(c.Request.Context(), auth.Owner(c), uri.ID.UUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
