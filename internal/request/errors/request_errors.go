package requesterrors

import (
	"net/http"

	"go-leave-engine/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requesting employee may perform this action",
		http.StatusForbidden,
	)
	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not the approver for the current step",
		http.StatusForbidden,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is no longer pending",
		http.StatusUnprocessableEntity,
	)
	ErrChainStarted = apperror.New(
		apperror.CodeInvalidState,
		"approval already in progress, cancel and resubmit instead",
		http.StatusUnprocessableEntity,
	)
	ErrOverlap = apperror.New(
		apperror.CodeConflict,
		"an overlapping leave request already exists",
		http.StatusConflict,
	)
	ErrConcurrentDecision = apperror.New(
		apperror.CodeConflict,
		"the request was decided concurrently, please reload",
		http.StatusConflict,
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
	ErrPastStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"start_date is in the past and this leave type does not allow late submission",
		http.StatusBadRequest,
	)
	ErrTenureNotMet = apperror.New(
		apperror.CodeInvalidInput,
		"employee tenure does not meet the minimum for this leave type",
		http.StatusBadRequest,
	)
	ErrMaxDurationExceeded = apperror.New(
		apperror.CodeInvalidInput,
		"requested days exceed the maximum duration for this leave type",
		http.StatusBadRequest,
	)
	ErrAttachmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"this leave type requires a supporting attachment",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"the requested period contains no working days",
		http.StatusBadRequest,
	)
	ErrBlockedPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"the requested period falls in a blocked period",
		http.StatusBadRequest,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be APPROVE or REJECT",
		http.StatusBadRequest,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a comment is required",
		http.StatusBadRequest,
	)
)
