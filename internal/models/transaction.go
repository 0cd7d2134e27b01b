package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

var TransactionTypes = []TransactionType{TransactionTypeIncome, TransactionTypeExpense}

// Valid reports if the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return slices.Contains(TransactionTypes, t)
}

// Mode is the payment mode of a transaction.
type Mode string

const (
	ModeCash         Mode = "Cash"
	ModeOnline       Mode = "Online"
	ModeUPI          Mode = "UPI"
	ModeCard         Mode = "Card"
	ModeBankTransfer Mode = "BankTransfer"
)

var Modes = []Mode{ModeCash, ModeOnline, ModeUPI, ModeCard, ModeBankTransfer}

// NormalizeMode maps legacy spellings to the canonical mode.
func NormalizeMode(m Mode) Mode {
	if m == "Bank Transfer" {
		return ModeBankTransfer
	}
	return m
}

// Valid reports if the mode is one of the known payment modes.
func (m Mode) Valid() bool {
	return slices.Contains(Modes, m)
}

// Transaction is a single movement of money.
//
// The amount is always positive, the direction is given by the type.
type Transaction struct {
	DefaultModel
	OwnerID     uuid.UUID       `json:"ownerId" gorm:"index" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	Title       string          `json:"title" example:"Weekly groceries"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"42.12"`
	Type        TransactionType `json:"type" gorm:"index" example:"expense"`
	Category    string          `json:"category" gorm:"index" example:"Food"`
	Mode        Mode            `json:"mode" example:"UPI"`
	Payee       string          `json:"payee" example:"Corner Store"`
	Description string          `json:"description" example:"Vegetables and rice"`
	Date        time.Time       `json:"date" gorm:"index" example:"1815-12-10T18:43:00.271152Z"`
}

// Owner returns the ID of the user owning the transaction.
func (t Transaction) Owner() uuid.UUID {
	return t.OwnerID
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave normalizes and validates the transaction.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	return t.Normalize()
}

// Normalize
//   - trims whitespace from string fields
//   - stores the magnitude of the amount
//   - maps legacy mode spellings
//   - sets the date to now if it is not set and its timezone to UTC
//
// It returns an error wrapping ErrValidation when the result is not a
// valid transaction.
func (t *Transaction) Normalize() error {
	t.Title = strings.TrimSpace(t.Title)
	t.Category = strings.TrimSpace(t.Category)
	t.Payee = strings.TrimSpace(t.Payee)
	t.Description = strings.TrimSpace(t.Description)
	t.Mode = NormalizeMode(t.Mode)
	t.Amount = t.Amount.Abs()

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if t.Title == "" {
		return fmt.Errorf("%w: the title must not be empty", ErrValidation)
	}

	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: the amount must be greater than zero", ErrValidation)
	}

	if !t.Type.Valid() {
		return fmt.Errorf("%w: the type must be one of %v, got '%s'", ErrValidation, TransactionTypes, t.Type)
	}

	if t.Category == "" {
		return fmt.Errorf("%w: the category must not be empty", ErrValidation)
	}

	if !t.Mode.Valid() {
		return fmt.Errorf("%w: the mode must be one of %v, got '%s'", ErrValidation, Modes, t.Mode)
	}

	if t.Payee == "" {
		return fmt.Errorf("%w: the payee must not be empty", ErrValidation)
	}

	return nil
}
