package attendanceerrors

import (
	"net/http"

	"github.com/gopal-gautam/empms-backend/internal/shared/apperror"
)

var (
	ErrClockInOutNotFound = apperror.New(
		apperror.CodeNotFound,
		"Clock-in/out record not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrNotRecordOwner = apperror.New(
		apperror.CodeForbidden,
		"You can only modify your own clock-in/out records",
		http.StatusForbidden,
	)
	ErrClockOutAlreadySet = apperror.New(
		apperror.CodeForbidden,
		"clock-out time is already set and cannot be modified",
		http.StatusForbidden,
	)
	ErrEmailClaimMissing = apperror.New(
		apperror.CodeForbidden,
		"A verified email is required for self-service attendance",
		http.StatusForbidden,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected an ISO-8601 date",
		http.StatusBadRequest,
	)
	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"Times must be in HH:mm format",
		http.StatusBadRequest,
	)
)
