package calendarerrors

import (
	"net/http"

	"go-leave-engine/internal/shared/apperror"
)

var (
	ErrCalendarNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday calendar not found",
		http.StatusNotFound,
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
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
)
