package services

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail          = errors.New("email already exists")
	ErrEmailNotFound           = errors.New("email not found")
	ErrInvalidPassword         = errors.New("invalid password")
	ErrNotLoggedIn             = errors.New("not logged in")
	ErrUserNotFound            = errors.New("user not found")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrProductNotFound         = errors.New("product not found")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("order status transition not allowed")
	ErrStorage                 = errors.New("storage error")
)

// StorageError wraps a failure from the database. errors.Is(err, ErrStorage)
// matches it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
