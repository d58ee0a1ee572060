package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/guildhall/internal/balance"
	"github.com/forgo/guildhall/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Guild Errors =====
var (
	ErrGuildNotFound   = errors.New("guild not found")
	ErrGuildNameExists = errors.New("a guild with this name already exists")
)

// ===== Player Errors =====
var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrPlayerNameExists = errors.New("a player with this name already exists")
)

// ===== Balance Errors =====
var (
	ErrInvalidCapacity           = balance.ErrInvalidCapacity
	ErrInsufficientGuilds        = balance.ErrInsufficientGuilds
	ErrInsufficientClassCoverage = balance.ErrInsufficientClassCoverage
	ErrApplyIncomplete           = errors.New("some assignments could not be applied")
)

// ValidationError carries field errors for requests that did not come through
// a handler (CLI, roster import).
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func validation(fields []model.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ApplyError reports assignments the store did not persist.
// It matches ErrApplyIncomplete with errors.Is.
type ApplyError struct {
	Applied []string // player ids whose assignment was persisted
	Failed  []string // player ids whose assignment was not persisted
	Cause   error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s: %d of %d failed: %v", ErrApplyIncomplete, len(e.Failed), len(e.Failed)+len(e.Applied), e.Cause)
}

func (e *ApplyError) Is(target error) bool {
	return target == ErrApplyIncomplete
}

func (e *ApplyError) Unwrap() error {
	return e.Cause
}
