package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotAvailable      = errors.New("this time slot is not available")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoTableAvailable  = errors.New("no suitable table available")
	ErrStorage           = errors.New("storage failure")
)

// ValidationError carries every problem found in one request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type InvalidStatusTransitionError struct {
	From string
	To   string
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("booking cannot move from %s to %s", e.From, e.To)
}

func (e *InvalidStatusTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// StorageError hides the driver error from callers; Unwrap still exposes it for logs.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage error: " + e.Op
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// storageErr converts a persistence failure into a StorageError and logs it.
// Domain errors raised inside a transaction pass through untouched.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	utils.ErrorLogger.WithError(err).Errorf("storage failure during %s", op)
	return &StorageError{Op: op, Err: err}
}

func isDomainError(err error) bool {
	for _, target := range []error{ErrValidation, ErrNotAvailable, ErrNotFound, ErrInvalidTransition, ErrNoTableAvailable, ErrStorage} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// notFoundOr maps gorm's missing-row error to NotFoundError and everything else to StorageError.
func notFoundOr(entity, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity}
	}
	return storageErr(op, err)
}
