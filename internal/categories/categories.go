// Package categories manages the categories and match rules of an owner.
package categories

import (
	"context"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/store"
	"gorm.io/gorm"
)

// CategoryEditable contains the fields of a category that can be set.
type CategoryEditable struct {
	Name string                 `json:"name" example:"Food"`                           // Name of the category
	Type models.TransactionType `json:"type" enums:"income,expense" example:"expense"` // Type of transactions the category is used for
}

// CategoryFields are the names of all fields of CategoryEditable.
var CategoryFields = []string{"Name", "Type"}

func (e CategoryEditable) model(ownerID uuid.UUID) models.Category {
	return models.Category{
		OwnerID: ownerID,
		Name:    e.Name,
		Type:    e.Type,
	}
}

func (e CategoryEditable) applyTo(c *models.Category, fields []string) {
	for _, field := range fields {
		switch field {
		case "Name":
			c.Name = e.Name
		case "Type":
			c.Type = e.Type
		}
	}
}

// MatchRuleEditable contains the fields of a match rule that can be set.
type MatchRuleEditable struct {
	Priority uint   `json:"priority" example:"3"`    // The priority of the match rule, lower is checked first
	Match    string `json:"match" example:"Bank*"`   // The matching applied to the payee. Supports * as wildcard
	Category string `json:"category" example:"Fees"` // The category to suggest
}

// MatchRuleFields are the names of all fields of MatchRuleEditable.
var MatchRuleFields = []string{"Priority", "Match", "Category"}

func (e MatchRuleEditable) model(ownerID uuid.UUID) models.MatchRule {
	return models.MatchRule{
		OwnerID:  ownerID,
		Priority: e.Priority,
		Match:    e.Match,
		Category: e.Category,
	}
}

func (e MatchRuleEditable) applyTo(r *models.MatchRule, fields []string) {
	for _, field := range fields {
		switch field {
		case "Priority":
			r.Priority = e.Priority
		case "Match":
			r.Match = e.Match
		case "Category":
			r.Category = e.Category
		}
	}
}

// Service manages categories and match rules.
type Service struct {
	categories store.Store[models.Category]
	rules      store.Store[models.MatchRule]
}

// New returns the category service.
func New(db *gorm.DB) Service {
	return Service{
		categories: store.New[models.Category](db),
		rules:      store.New[models.MatchRule](db),
	}
}

// List returns the categories of the owner ordered by name.
// If transactionType is not empty, only categories of that type are returned.
func (s Service) List(ctx context.Context, ownerID uuid.UUID, transactionType models.TransactionType) ([]models.Category, error) {
	return s.categories.Find(ctx, ownerID, models.Category{Type: transactionType}, nil, store.OrderBy("name ASC"))
}

// Create creates a category. Names are unique per owner.
func (s Service) Create(ctx context.Context, ownerID uuid.UUID, data CategoryEditable) (models.Category, error) {
	category := data.model(ownerID)

	err := s.categories.Create(ctx, &category)
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// Get returns a single category.
func (s Service) Get(ctx context.Context, ownerID, id uuid.UUID) (models.Category, error) {
	return s.categories.Get(ctx, ownerID, id)
}

// Update sets the fields named in fields to the values in data.
func (s Service) Update(ctx context.Context, ownerID, id uuid.UUID, data CategoryEditable, fields []string) (models.Category, error) {
	return s.categories.UpdateByID(ctx, ownerID, id, func(c *models.Category) error {
		data.applyTo(c, fields)
		return nil
	})
}

// Delete deletes a category.
//
// Transactions and budgets reference categories by name and are not changed.
func (s Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.categories.DeleteByID(ctx, ownerID, id)
}

// ListMatchRules returns the match rules of the owner in the order they are applied.
func (s Service) ListMatchRules(ctx context.Context, ownerID uuid.UUID) ([]models.MatchRule, error) {
	return s.rules.Find(ctx, ownerID, models.MatchRule{}, nil, store.OrderBy("priority ASC, created_at ASC"))
}

// CreateMatchRule creates a match rule.
func (s Service) CreateMatchRule(ctx context.Context, ownerID uuid.UUID, data MatchRuleEditable) (models.MatchRule, error) {
	rule := data.model(ownerID)

	err := s.rules.Create(ctx, &rule)
	if err != nil {
		return models.MatchRule{}, err
	}

	return rule, nil
}

// GetMatchRule returns a single match rule.
func (s Service) GetMatchRule(ctx context.Context, ownerID, id uuid.UUID) (models.MatchRule, error) {
	return s.rules.Get(ctx, ownerID, id)
}

// UpdateMatchRule sets the fields named in fields to the values in data.
func (s Service) UpdateMatchRule(ctx context.Context, ownerID, id uuid.UUID, data MatchRuleEditable, fields []string) (models.MatchRule, error) {
	return s.rules.UpdateByID(ctx, ownerID, id, func(r *models.MatchRule) error {
		data.applyTo(r, fields)
		return nil
	})
}

// DeleteMatchRule deletes a match rule.
func (s Service) DeleteMatchRule(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.rules.DeleteByID(ctx, ownerID, id)
}

// Suggest returns the category of the first match rule whose pattern
// matches the payee. ok is false if no rule matches.
func (s Service) Suggest(ctx context.Context, ownerID uuid.UUID, payee string) (category string, ok bool, err error) {
	if payee == "" {
		return "", false, nil
	}

	rules, err := s.ListMatchRules(ctx, ownerID)
	if err != nil {
		return "", false, err
	}

	// Rules are loaded in priority order, the first match wins
	for _, rule := range rules {
		if glob.Glob(rule.Match, payee) {
			return rule.Category, true, nil
		}
	}

	return "", false, nil
}
