// Package v1 implements the handlers of the v1 API.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/auth"
	"github.com/spendwise/backend/internal/categories"
	"github.com/spendwise/backend/internal/config"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/importer"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/reports"
	"gorm.io/gorm"
)

// Controller holds the services used by the handlers.
type Controller struct {
	db         *gorm.DB
	auth       auth.Service
	budgets    ledger.Budgets
	ledger     ledger.Ledger
	writer     ledger.Writer
	categories categories.Service
	reports    reports.Aggregator
	importer   importer.Importer
}

// New returns a Controller using the database and configuration.
func New(db *gorm.DB, cfg config.Config, publisher events.Publisher) Controller {
	categoryService := categories.New(db)
	writer := ledger.NewWriter(db, publisher, categoryService, cfg.EnforceBudgetOnUpdate)

	return Controller{
		db:         db,
		auth:       auth.New(db, cfg.JWTSecret, cfg.TokenTTL),
		budgets:    ledger.NewBudgets(db, publisher),
		ledger:     ledger.New(db),
		writer:     writer,
		categories: categoryService,
		reports:    reports.New(db, cfg.Currency),
		importer:   importer.New(writer),
	}
}

// Authenticate returns the middleware that authenticates requests for
// all routes that need an owner.
func (co Controller) Authenticate() gin.HandlerFunc {
	return co.auth.Middleware()
}
