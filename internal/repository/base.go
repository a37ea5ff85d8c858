// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"

	"pinboard/internal/models"
	"pinboard/internal/observability"

	"gorm.io/gorm"
)

// translateCreate converts storage-level failures on insert into domain
// errors. Duplicate-key violations are expected recoverable outcomes (the
// unique index is what closes check-then-insert races); they surface as
// CONFLICT, never as a server fault.
func translateCreate(err error, entity, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		observability.UniquenessConflicts.WithLabelValues(entity).Inc()
		return models.NewConflictError(conflictMsg)
	}
	return err
}

// recordMutation counts the outcome of a write per entity and operation,
// then passes the error through unchanged.
func recordMutation(entity, operation string, err error) error {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	observability.EntityMutations.WithLabelValues(entity, operation, outcome).Inc()
	return err
}

// translateGet converts a missing row into NOT_FOUND.
func translateGet(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}
