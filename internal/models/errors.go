package models

import (
	"errors"
)

var (
	ErrGeneral               = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound      = errors.New("there is no")
	ErrForbidden             = errors.New("you are not allowed to access this resource")
	ErrValidation            = errors.New("invalid input")
	ErrBudgetExceeded        = errors.New("budget exceeded")
	ErrDuplicateBudget       = errors.New("budget already set for this category & month")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
	ErrEmailInUse            = errors.New("a user with this email address already exists")
)
