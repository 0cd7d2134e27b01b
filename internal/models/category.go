package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a named category of transactions.
//
// Transactions and budgets reference categories by name. Categories are
// used to suggest names, not to enforce them.
type Category struct {
	DefaultModel
	OwnerID uuid.UUID       `json:"ownerId" gorm:"uniqueIndex:category_owner_name" example:"1e777d24-3f5b-4c43-8000-04f65f895578"` // ID of the user owning the category
	Name    string          `json:"name" gorm:"uniqueIndex:category_owner_name" example:"Food"`                                    // Name of the category
	Type    TransactionType `json:"type" example:"expense"`                                                                        // Type of transactions the category is used for
}

// Owner returns the ID of the user owning the category.
func (c Category) Owner() uuid.UUID {
	return c.OwnerID
}

// BeforeSave trims the name and validates the category.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Name == "" {
		return fmt.Errorf("%w: the name must not be empty", ErrValidation)
	}

	if !c.Type.Valid() {
		return fmt.Errorf("%w: the type must be one of %v, got '%s'", ErrValidation, TransactionTypes, c.Type)
	}

	return nil
}
