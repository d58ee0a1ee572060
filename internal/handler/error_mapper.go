package handler

import (
	"errors"

	"github.com/forgo/guildhall/internal/balance"
	"github.com/forgo/guildhall/internal/model"
	"github.com/forgo/guildhall/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var (
		capErr   *balance.CapacityError
		applyErr *service.ApplyError
		valErr   *service.ValidationError
	)

	switch {
	// ===== Validation Errors → 422 =====
	case errors.As(err, &valErr):
		return model.NewValidationError(valErr.Fields)

	// ===== Balance Preconditions → 400 =====
	case errors.As(err, &capErr):
		return model.NewCapacityError(capErr.Minimum)
	case errors.Is(err, service.ErrInvalidCapacity):
		return model.NewPreconditionError(err.Error())
	case errors.Is(err, service.ErrInsufficientGuilds),
		errors.Is(err, service.ErrInsufficientClassCoverage):
		return model.NewPreconditionError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrGuildNotFound):
		return model.NewNotFoundError("guild")
	case errors.Is(err, service.ErrPlayerNotFound):
		return model.NewNotFoundError("player")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrGuildNameExists),
		errors.Is(err, service.ErrPlayerNameExists):
		return model.NewConflictError(err.Error())

	// ===== Apply Errors → 500 =====
	case errors.As(err, &applyErr):
		return model.NewApplyError("some assignments could not be applied", applyErr.Failed)

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 && pd.Code == model.ErrCodeInternal {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
