package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// BudgetEditable contains the fields of a budget that can be set.
type BudgetEditable struct {
	Category string          `json:"category" example:"Food"`                           // Category the ceiling applies to
	Amount   decimal.Decimal `json:"amount" example:"2000"`                             // The ceiling. Must be greater than zero
	Month    int             `json:"month" minimum:"1" maximum:"12" example:"6"`        // Month, January being 1
	Year     int             `json:"year" minimum:"1000" maximum:"9999" example:"2025"` // Four digit year
}

// BudgetFields are the names of all fields of BudgetEditable.
var BudgetFields = []string{"Category", "Amount", "Month", "Year"}

func (e BudgetEditable) model(ownerID uuid.UUID) models.Budget {
	return models.Budget{
		OwnerID:  ownerID,
		Category: e.Category,
		Amount:   e.Amount,
		Month:    e.Month,
		Year:     e.Year,
	}
}

// applyTo sets the named fields on the budget.
func (e BudgetEditable) applyTo(b *models.Budget, fields []string) {
	for _, field := range fields {
		switch field {
		case "Category":
			b.Category = e.Category
		case "Amount":
			b.Amount = e.Amount
		case "Month":
			b.Month = e.Month
		case "Year":
			b.Year = e.Year
		}
	}
}

// BudgetFilter selects budgets. Zero values do not filter.
type BudgetFilter struct {
	Month int
	Year  int
}

// Budgets manages the lifecycle of budgets.
type Budgets struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewBudgets returns the budget service.
func NewBudgets(db *gorm.DB, publisher events.Publisher) Budgets {
	return Budgets{db: db, publisher: publisher}
}

// duplicate returns a *DuplicateBudgetError if the owner has a budget other
// than the one with the ID except for the tuple of b.
func duplicate(ctx context.Context, tx *gorm.DB, b models.Budget, except uuid.UUID) error {
	existing, err := store.New[models.Budget](tx).ForUpdate().Find(ctx, b.OwnerID, models.Budget{
		Category: b.Category,
		Month:    b.Month,
		Year:     b.Year,
	}, []any{"Category", "Month", "Year"}, store.Where("id != ?", except))
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		BudgetRejections.WithLabelValues(reasonDuplicate).Inc()

		return &DuplicateBudgetError{
			Category:  b.Category,
			Month:     b.Month,
			Year:      b.Year,
			Limit:     existing[0].Amount,
			Attempted: b.Amount,
		}
	}

	return nil
}

// Create creates a budget.
//
// It fails with a *DuplicateBudgetError if the owner already has a budget
// for the category and month, regardless of its amount.
func (s Budgets) Create(ctx context.Context, ownerID uuid.UUID, data BudgetEditable) (models.Budget, error) {
	budget := data.model(ownerID)
	err := budget.Normalize()
	if err != nil {
		return models.Budget{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := duplicate(ctx, tx, budget, uuid.Nil)
		if err != nil {
			return err
		}

		return store.New[models.Budget](tx).Create(ctx, &budget)
	})
	if err != nil {
		return models.Budget{}, err
	}

	events.Emit(ctx, s.publisher, events.New(events.BudgetCreated, ownerID, budget.ID, budget))
	return budget, nil
}

// List returns the budgets of the owner, ordered by year, month and category.
func (s Budgets) List(ctx context.Context, ownerID uuid.UUID, filter BudgetFilter) ([]models.Budget, error) {
	return store.New[models.Budget](s.db).Find(ctx, ownerID, models.Budget{
		Month: filter.Month,
		Year:  filter.Year,
	}, nil, store.OrderBy("year ASC, month ASC, category ASC"))
}

// Get returns a single budget.
func (s Budgets) Get(ctx context.Context, ownerID, id uuid.UUID) (models.Budget, error) {
	return store.New[models.Budget](s.db).Get(ctx, ownerID, id)
}

// Update sets the fields named in fields to the values in data.
//
// Fields that are not named keep their value. Named fields are set
// even if their value is the zero value.
func (s Budgets) Update(ctx context.Context, ownerID, id uuid.UUID, data BudgetEditable, fields []string) (models.Budget, error) {
	var budget models.Budget

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) (err error) {
		budget, err = store.New[models.Budget](tx).UpdateByID(ctx, ownerID, id, func(b *models.Budget) error {
			data.applyTo(b, fields)

			err := b.Normalize()
			if err != nil {
				return err
			}

			// The tuple only needs to be verified if it changed
			if !slices.Contains(fields, "Category") && !slices.Contains(fields, "Month") && !slices.Contains(fields, "Year") {
				return nil
			}

			return duplicate(ctx, tx, *b, id)
		})
		return err
	})
	if err != nil {
		return models.Budget{}, err
	}

	events.Emit(ctx, s.publisher, events.New(events.BudgetUpdated, ownerID, budget.ID, budget))
	return budget, nil
}

// Delete deletes a budget.
func (s Budgets) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := store.New[models.Budget](s.db).DeleteByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	events.Emit(ctx, s.publisher, events.New(events.BudgetDeleted, ownerID, id, nil))
	return nil
}
