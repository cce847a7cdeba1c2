package salarychangerequesterrors

import (
	"net/http"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/shared/apperror"
)

var (
	ErrPendingRequestExists = apperror.New(
		apperror.CodeConflict,
		"A pending salary change request already exists for this employee",
		http.StatusConflict,
	)

	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary change request not found",
		http.StatusNotFound,
	)

	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Salary change request has already been decided",
		http.StatusConflict,
	)

	ErrInvalidProposedItems = apperror.New(
		apperror.CodeInvalidInput,
		"Proposed salary items are not a valid configuration",
		http.StatusBadRequest,
	)
)
