package autherrors

import (
	"github.com/gopal-gautam/empms-backend/internal/shared/apperror"
	"net/http"
)

var (
	ErrMissingIdentity = apperror.New(
		apperror.CodeUnauthorized,
		"User not authenticated",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
)
