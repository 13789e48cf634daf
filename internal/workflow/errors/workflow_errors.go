package workflowerrors

import (
	"net/http"

	"go-leave-engine/internal/shared/apperror"
)

var (
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"workflow config not found",
		http.StatusNotFound,
	)
	ErrDelegationNotFound = apperror.New(
		apperror.CodeNotFound,
		"delegation not found",
		http.StatusNotFound,
	)
	ErrNoLevels = apperror.New(
		apperror.CodeInvalidInput,
		"workflow config needs at least one approval level",
		http.StatusBadRequest,
	)
	ErrLevelsNotSequential = apperror.New(
		apperror.CodeInvalidInput,
		"workflow levels must be numbered 1..N without gaps",
		http.StatusBadRequest,
	)
	ErrSelfDelegation = apperror.New(
		apperror.CodeInvalidInput,
		"cannot delegate approvals to yourself",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
