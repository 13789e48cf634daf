package ledgererrors

import (
	"net/http"

	"go-leave-engine/internal/shared/apperror"
)

var (
	ErrLedgerNotFound = apperror.New(
		apperror.CodeNotFound,
		"balance ledger not found",
		http.StatusNotFound,
	)
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"accrual config not found",
		http.StatusNotFound,
	)
	ErrDuplicateConfig = apperror.New(
		apperror.CodeConflict,
		"accrual config already exists for this leave type",
		http.StatusConflict,
	)
	ErrInvalidFrequency = apperror.New(
		apperror.CodeInvalidInput,
		"frequency must be MONTHLY or YEARLY",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"leave balance is insufficient",
		http.StatusUnprocessableEntity,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a reason is required for manual adjustments",
		http.StatusBadRequest,
	)
	ErrVersionConflict = apperror.New(
		apperror.CodeConflict,
		"balance was modified concurrently, please retry",
		http.StatusConflict,
	)
)
