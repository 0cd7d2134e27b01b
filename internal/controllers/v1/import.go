package v1

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/auth"
	"github.com/spendwise/backend/internal/export"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/importer"
	"github.com/spendwise/backend/internal/models"
)

type ImportResponse struct {
	Data []importer.Result `json:"data"` // Result for each row of the file
}

type ImportPreviewResponse struct {
	Data []importer.Row `json:"data"` // Transactions as they would be imported
}

type ExportQuery struct {
	TransactionQueryFilter
	Format string `form:"format" example:"xlsx"` // File format, csv or xlsx. Defaults to csv
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(strings.ToLower(formFile.Filename), suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// parseUpload reads the rows of the uploaded CSV file.
func parseUpload(c *gin.Context) ([]importer.Row, error) {
	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return importer.Parse(f)
}

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func (co Controller) RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/transactions", httputil.OptionsPost)
	r.POST("/transactions", co.ImportTransactions)

	r.OPTIONS("/transactions/preview", httputil.OptionsPost)
	r.POST("/transactions/preview", co.ImportTransactionsPreview)
}

// RegisterExportRoutes registers the routes for exports with
// the RouterGroup that is passed.
func (co Controller) RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/transactions", httputil.OptionsGet)
	r.GET("/transactions", co.ExportTransactions)
}

// @Summary		Import transactions
// @Description	Imports transactions from a CSV file. Every row is created like a single transaction and checked against the budgets.
// @Description	Rows that are invalid or exceed a budget are skipped, the error is returned in the result for the row.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ImportResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/import/transactions [post]
func (co Controller) ImportTransactions(c *gin.Context) {
	rows, err := parseUpload(c)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := co.importer.Import(c.Request.Context(), auth.Owner(c), rows)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportResponse{Data: results})
}

// @Summary		Preview transaction import
// @Description	Parses a CSV file and returns the transactions it contains without creating them.
// @Description	Rows without category get the category suggested by the match rules.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ImportPreviewResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/import/transactions/preview [post]
func (co Controller) ImportTransactionsPreview(c *gin.Context) {
	rows, err := parseUpload(c)
	if err != nil {
		respondError(c, err)
		return
	}

	for i, row := range rows {
		if row.Transaction.Category != "" {
			continue
		}

		category, ok, err := co.categories.Suggest(c.Request.Context(), auth.Owner(c), row.Transaction.Payee)
		if err != nil {
			respondError(c, err)
			return
		}

		if ok {
			rows[i].Transaction.Category = category
		}
	}

	c.JSON(http.StatusOK, ImportPreviewResponse{Data: rows})
}

// @Summary		Export transactions
// @Description	Returns the transactions as a CSV or XLSX file, newest first. The CSV file can be imported again.
// @Tags			Export
// @Produce		text/csv
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			format		query		string	false	"csv or xlsx, defaults to csv"
// @Param			type		query		string	false	"Filter by type"
// @Param			category	query		string	false	"Filter by category"
// @Param			mode		query		string	false	"Filter by payment mode"
// @Param			fromDate	query		string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			untilDate	query		string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Router			/v1/export/transactions [get]
func (co Controller) ExportTransactions(c *gin.Context) {
	var query ExportQuery
	if !bindQuery(c, &query) {
		return
	}

	format := export.Format(strings.ToLower(query.Format))
	if format == "" {
		format = export.FormatCSV
	}

	if !format.Valid() {
		respondError(c, fmt.Errorf("%w: the format must be csv or xlsx, got '%s'", models.ErrValidation, query.Format))
		return
	}

	filter, err := query.model()
	if err != nil {
		respondError(c, err)
		return
	}

	transactions, err := co.writer.List(c.Request.Context(), auth.Owner(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, transactions); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", format.Filename(time.Now())))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
