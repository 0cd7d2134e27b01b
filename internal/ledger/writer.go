package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
	"github.com/spendwise/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionEditable contains the fields of a transaction that can be set.
type TransactionEditable struct {
	Title       string                 `json:"title" example:"Weekly groceries"`                             // Short description
	Amount      decimal.Decimal        `json:"amount" example:"42.12"`                                       // Amount. Negative values are stored as their magnitude
	Type        models.TransactionType `json:"type" enums:"income,expense" example:"expense"`                // Direction of the transaction
	Category    string                 `json:"category" example:"Food"`                                      // Category. If empty on creation, it is suggested from the match rules
	Mode        models.Mode            `json:"mode" enums:"Cash,Online,UPI,Card,BankTransfer" example:"UPI"` // Payment mode
	Payee       string                 `json:"payee" example:"Corner Store"`                                 // Who was paid or who paid
	Description string                 `json:"description" example:"Vegetables and rice"`                    // Optional longer description
	Date        time.Time              `json:"date" example:"2025-06-14T11:30:00Z"`                          // Date of the transaction. Defaults to the time of creation
}

// TransactionFields are the names of all fields of TransactionEditable.
var TransactionFields = []string{"Title", "Amount", "Type", "Category", "Mode", "Payee", "Description", "Date"}

// budgetFields are the fields that change the contribution of a transaction
// to a budget.
var budgetFields = []string{"Amount", "Type", "Category", "Date"}

func (e TransactionEditable) model(ownerID uuid.UUID) models.Transaction {
	return models.Transaction{
		OwnerID:     ownerID,
		Title:       e.Title,
		Amount:      e.Amount,
		Type:        e.Type,
		Category:    e.Category,
		Mode:        e.Mode,
		Payee:       e.Payee,
		Description: e.Description,
		Date:        e.Date,
	}
}

// applyTo sets the named fields on the transaction.
func (e TransactionEditable) applyTo(t *models.Transaction, fields []string) {
	for _, field := range fields {
		switch field {
		case "Title":
			t.Title = e.Title
		case "Amount":
			t.Amount = e.Amount
		case "Type":
			t.Type = e.Type
		case "Category":
			t.Category = e.Category
		case "Mode":
			t.Mode = e.Mode
		case "Payee":
			t.Payee = e.Payee
		case "Description":
			t.Description = e.Description
		case "Date":
			t.Date = e.Date
		}
	}
}

// TransactionFilter selects transactions. Zero values do not filter.
type TransactionFilter struct {
	Type      models.TransactionType
	Category  string
	Mode      models.Mode
	FromDate  time.Time // Transactions on or after this date
	UntilDate time.Time // Transactions on or before this date
	Offset    int
	Limit     int // Maximum number of transactions, zero means no limit
}

// Suggester suggests a category for a payee.
type Suggester interface {
	Suggest(ctx context.Context, ownerID uuid.UUID, payee string) (category string, ok bool, err error)
}

// Writer creates, updates and deletes transactions. Expenses are checked
// against the budget of their category and month.
type Writer struct {
	db              *gorm.DB
	publisher       events.Publisher
	suggester       Suggester
	enforceOnUpdate bool
}

// NewWriter returns a Writer.
//
// suggester may be nil. If enforceOnUpdate is false, updates are never
// rejected because of budgets.
func NewWriter(db *gorm.DB, publisher events.Publisher, suggester Suggester, enforceOnUpdate bool) Writer {
	return Writer{
		db:              db,
		publisher:       publisher,
		suggester:       suggester,
		enforceOnUpdate: enforceOnUpdate,
	}
}

// rejected records a rejection because of an exceeded budget.
func (w Writer) rejected(ctx context.Context, ownerID uuid.UUID, err error) {
	var exceeded *BudgetExceededError
	if !errors.As(err, &exceeded) {
		return
	}

	BudgetRejections.WithLabelValues(reasonExceeded).Inc()
	events.Emit(ctx, w.publisher, events.New(events.BudgetExceeded, ownerID, uuid.Nil, exceeded))
}

// Create creates a transaction.
//
// The budget is checked for the category in the month of the transaction date,
// which defaults to now. The check and the insert happen in one database
// transaction with the budget row locked.
func (w Writer) Create(ctx context.Context, ownerID uuid.UUID, data TransactionEditable) (models.Transaction, error) {
	transaction := data.model(ownerID)

	if transaction.Category == "" && w.suggester != nil {
		category, ok, err := w.suggester.Suggest(ctx, ownerID, transaction.Payee)
		if err != nil {
			return models.Transaction{}, err
		}

		if ok {
			transaction.Category = category
		}
	}

	err := transaction.Normalize()
	if err != nil {
		return models.Transaction{}, err
	}

	err = w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if transaction.Type == models.TransactionTypeExpense {
			err := New(tx).Check(ctx, ownerID, transaction.Category, types.MonthOf(transaction.Date), transaction.Amount, uuid.Nil)
			if err != nil {
				return err
			}
		}

		return store.NewTransactions(tx).Create(ctx, &transaction)
	})
	if err != nil {
		w.rejected(ctx, ownerID, err)
		return models.Transaction{}, err
	}

	events.Emit(ctx, w.publisher, events.New(events.TransactionCreated, ownerID, transaction.ID, transaction))
	return transaction, nil
}

// Update sets the fields named in fields to the values in data.
//
// Fields that are not named keep their value. Named fields are set
// even if their value is the zero value.
//
// If the update changes the contribution of an expense to a budget,
// the budget is checked without the previous contribution of the transaction.
func (w Writer) Update(ctx context.Context, ownerID, id uuid.UUID, data TransactionEditable, fields []string) (models.Transaction, error) {
	var transaction models.Transaction

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) (err error) {
		transaction, err = store.NewTransactions(tx).UpdateByID(ctx, ownerID, id, func(t *models.Transaction) error {
			data.applyTo(t, fields)

			err := t.Normalize()
			if err != nil {
				return err
			}

			if !w.enforceOnUpdate || t.Type != models.TransactionTypeExpense || !changesBudget(fields) {
				return nil
			}

			return New(tx).Check(ctx, ownerID, t.Category, types.MonthOf(t.Date), t.Amount, t.ID)
		})
		return err
	})
	if err != nil {
		w.rejected(ctx, ownerID, err)
		return models.Transaction{}, err
	}

	events.Emit(ctx, w.publisher, events.New(events.TransactionUpdated, ownerID, transaction.ID, transaction))
	return transaction, nil
}

func changesBudget(fields []string) bool {
	for _, field := range budgetFields {
		if slices.Contains(fields, field) {
			return true
		}
	}
	return false
}

// Delete deletes a transaction.
func (w Writer) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := store.NewTransactions(w.db).DeleteByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	events.Emit(ctx, w.publisher, events.New(events.TransactionDeleted, ownerID, id, nil))
	return nil
}

// Get returns a single transaction.
func (w Writer) Get(ctx context.Context, ownerID, id uuid.UUID) (models.Transaction, error) {
	return store.NewTransactions(w.db).Get(ctx, ownerID, id)
}

// List returns the owner's transactions that match the filter, newest first.
func (w Writer) List(ctx context.Context, ownerID uuid.UUID, filter TransactionFilter) ([]models.Transaction, error) {
	scopes := []store.Scope{store.OrderBy("date DESC, created_at DESC")}

	if !filter.FromDate.IsZero() {
		from := filter.FromDate.In(time.UTC)
		scopes = append(scopes, store.Where("transactions.date >= ?", time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)))
	}

	if !filter.UntilDate.IsZero() {
		until := filter.UntilDate.In(time.UTC)
		scopes = append(scopes, store.Where("transactions.date < ?", time.Date(until.Year(), until.Month(), until.Day()+1, 0, 0, 0, 0, time.UTC)))
	}

	scopes = append(scopes, store.Paginate(filter.Offset, filter.Limit))

	return store.NewTransactions(w.db).Find(ctx, ownerID, models.Transaction{
		Type:     filter.Type,
		Category: filter.Category,
		Mode:     models.NormalizeMode(filter.Mode),
	}, nil, scopes...)
}
