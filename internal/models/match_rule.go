package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule suggests a category for transactions whose payee matches
// the glob pattern in Match.
type MatchRule struct {
	DefaultModel
	OwnerID  uuid.UUID `json:"ownerId" gorm:"index" example:"1e777d24-3f5b-4c43-8000-04f65f895578"` // ID of the user owning the rule
	Priority uint      `json:"priority" example:"3"`                                                // The priority of the match rule, lower is checked first
	Match    string    `json:"match" example:"Bank*"`                                               // The matching applied to the payee. Supports * as wildcard
	Category string    `json:"category" example:"Fees"`                                             // The category to suggest
}

// Owner returns the ID of the user owning the rule.
func (r MatchRule) Owner() uuid.UUID {
	return r.OwnerID
}

// BeforeSave trims the string fields and validates the rule.
func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	r.Category = strings.TrimSpace(r.Category)

	if r.Match == "" {
		return fmt.Errorf("%w: the match must not be empty", ErrValidation)
	}

	if r.Category == "" {
		return fmt.Errorf("%w: the category must not be empty", ErrValidation)
	}

	return nil
}
