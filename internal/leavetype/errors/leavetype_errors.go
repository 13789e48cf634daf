package leavetypeerrors

import (
	"net/http"

	"go-leave-engine/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrDuplicateCode = apperror.New(
		apperror.CodeConflict,
		"leave type code already exists",
		http.StatusConflict,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
)
