package services

import (
	"errors"
	"fmt"
	"log"

	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"gorm.io/gorm"
)

// ErrNotFound is wrapped by every "record missing" error of this package
var ErrNotFound = errors.New("not found")

var (
	ErrWorkspaceNotFound = fmt.Errorf("workspace %w", ErrNotFound)
	ErrCategoryNotFound  = fmt.Errorf("category %w", ErrNotFound)
	ErrProjectNotFound   = fmt.Errorf("project %w", ErrNotFound)
	ErrTaskNotFound      = fmt.Errorf("task %w", ErrNotFound)
	ErrTagNotFound       = fmt.Errorf("tag %w", ErrNotFound)
	ErrPriorityNotFound  = fmt.Errorf("priority %w", ErrNotFound)
	ErrStatusNotFound    = fmt.Errorf("status %w", ErrNotFound)
)

// Title limits match the column sizes of the projects and tasks tables.
const (
	MaxProjectTitleLength = 200
	MaxTaskTitleLength    = 240
)

const (
	MsgNoDefaultWorkspace = "There has to be at-least one default workspace."
	MsgUnknownError       = "Unknown error."
)

// notFound maps gorm's missing-record error onto target
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func required(field string) error {
	return apierrors.NewValidationError(fmt.Sprintf("Field %q is required.", field))
}

func blank(field string) error {
	return apierrors.NewValidationError(fmt.Sprintf("Field %q may not be blank.", field))
}

func tooLong(field string, limit int) error {
	return apierrors.NewValidationError(fmt.Sprintf("Field %q may not be longer than %d characters.", field, limit))
}

func invalidReference(field string, id uint64) error {
	return apierrors.NewValidationError(fmt.Sprintf("Invalid %s %d - object does not exist.", field, id))
}

// updateError hides unexpected failures of an update behind a generic
// validation message. The cause is logged.
func updateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apierrors.AsValidationError(err); ok {
		return err
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	log.Printf("%s: %v", op, err)
	return apierrors.NewValidationError(MsgUnknownError)
}
