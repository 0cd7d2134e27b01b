package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Budget is the spending ceiling for one category in one month.
//
// There is at most one budget per owner, category, month and year.
type Budget struct {
	DefaultModel
	OwnerID  uuid.UUID       `json:"ownerId" gorm:"uniqueIndex:budget_owner_category_month" example:"1e777d24-3f5b-4c43-8000-04f65f895578"` // ID of the user owning the budget
	Category string          `json:"category" gorm:"uniqueIndex:budget_owner_category_month" example:"Food"`                                // Category the ceiling applies to
	Amount   decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"2000"`                                                       // The ceiling
	Month    int             `json:"month" gorm:"uniqueIndex:budget_owner_category_month" minimum:"1" maximum:"12" example:"6"`             // Month, January being 1
	Year     int             `json:"year" gorm:"uniqueIndex:budget_owner_category_month" example:"2025"`                                    // Four digit year
}

// Owner returns the ID of the user owning the budget.
func (b Budget) Owner() uuid.UUID {
	return b.OwnerID
}

// Period returns the month the budget applies to.
func (b Budget) Period() types.Month {
	m, _ := types.FromNumbers(b.Month, b.Year)
	return m
}

// BeforeSave validates the budget.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	return b.Normalize()
}

// Normalize trims the category and validates all fields.
func (b *Budget) Normalize() error {
	b.Category = strings.TrimSpace(b.Category)

	if b.Category == "" {
		return fmt.Errorf("%w: the category must not be empty", ErrValidation)
	}

	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: the amount must be greater than zero", ErrValidation)
	}

	if _, err := types.FromNumbers(b.Month, b.Year); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}
