package employeeerrors

import (
	"net/http"

	"github.com/gopal-gautam/empms-backend/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee ID already exists",
		http.StatusConflict,
	)
	ErrEmployeeHasAttendance = apperror.New(
		apperror.CodeConflict,
		"Employee still has clock-in/out records",
		http.StatusConflict,
	)
	ErrInvalidDateOfBirth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid dateOfBirth, expected an ISO-8601 date",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfJoining = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid dateOfJoining, expected an ISO-8601 date",
		http.StatusBadRequest,
	)
	ErrIdentityProvisioningFailed = apperror.New(
		apperror.CodeUpstreamFailure,
		"Failed to create the employee's login account",
		http.StatusBadGateway,
	)
)
