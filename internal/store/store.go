// Package store provides owner scoped access to the records in the database.
//
// Every read and write goes through a single owner. Reading a record by ID
// that belongs to another owner fails with models.ErrForbidden.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is a resource owned by a single user.
type Record interface {
	models.Transaction | models.Budget | models.Category | models.MatchRule
	Owner() uuid.UUID
	Identifier() uuid.UUID
}

// Scope modifies a query, e.g. to add ordering or pagination.
type Scope func(*gorm.DB) *gorm.DB

// OrderBy orders the results.
func OrderBy(order string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

// Where adds a condition to the query.
func Where(query any, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// Paginate skips offset records and returns at most limit records.
// A limit of zero or less means no limit.
func Paginate(offset, limit int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if offset > 0 {
			db = db.Offset(offset)
		}

		if limit > 0 {
			db = db.Limit(limit)
		}

		return db
	}
}

// Store reads and writes records of a single type.
//
// db may be a transaction.
type Store[R Record] struct {
	db *gorm.DB
}

// New returns a Store for records of type R.
func New[R Record](db *gorm.DB) Store[R] {
	return Store[R]{db: db}
}

// ForUpdate returns a Store that locks all rows it reads for the
// rest of the surrounding transaction. Databases without row-level
// locking ignore this.
func (s Store[R]) ForUpdate() Store[R] {
	return Store[R]{db: s.db.Clauses(clause.Locking{Strength: "UPDATE"})}
}

func (s Store[R]) query(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
}

// Find returns all records of the owner that match the filter.
//
// If queryFields is empty, all non-zero fields of filter are used. Otherwise,
// only the named fields are used, which allows filtering for zero values.
func (s Store[R]) Find(ctx context.Context, ownerID uuid.UUID, filter R, queryFields []any, scopes ...Scope) ([]R, error) {
	var records []R

	q := s.query(ctx, ownerID).Where(&filter, queryFields...)
	for _, scope := range scopes {
		q = scope(q)
	}

	err := q.Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// FindOne returns the first record of the owner that matches the criteria.
//
// If there is none, the error wraps models.ErrResourceNotFound.
func (s Store[R]) FindOne(ctx context.Context, ownerID uuid.UUID, criteria R, queryFields ...any) (R, error) {
	var record R

	err := s.query(ctx, ownerID).Where(&criteria, queryFields...).First(&record).Error
	if err != nil {
		return record, err
	}

	return record, nil
}

// Get returns the record with the given ID.
//
// This is the only place where ownership of a single record is verified.
// It fails with models.ErrResourceNotFound if the record does not exist
// and with models.ErrForbidden if it belongs to another owner.
func (s Store[R]) Get(ctx context.Context, ownerID, id uuid.UUID) (R, error) {
	var record R

	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return record, err
	}

	if record.Owner() != ownerID {
		var empty R
		return empty, models.ErrForbidden
	}

	return record, nil
}

// Create inserts the record. The ID and timestamps are set on the record.
func (s Store[R]) Create(ctx context.Context, record *R) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// UpdateByID fetches the record with Get, applies the changes and saves it.
//
// If apply returns an error, nothing is saved and the error is returned.
func (s Store[R]) UpdateByID(ctx context.Context, ownerID, id uuid.UUID, apply func(*R) error) (R, error) {
	record, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return record, err
	}

	err = apply(&record)
	if err != nil {
		return record, err
	}

	if record.Owner() != ownerID || record.Identifier() != id {
		return record, fmt.Errorf("%w: the owner and ID of a resource cannot be changed", models.ErrValidation)
	}

	err = s.db.WithContext(ctx).Save(&record).Error
	if err != nil {
		return record, err
	}

	return record, nil
}

// DeleteByID deletes the record with the given ID after verifying it with Get.
func (s Store[R]) DeleteByID(ctx context.Context, ownerID, id uuid.UUID) error {
	record, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(&record).Error
}
