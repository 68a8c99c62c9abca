package employee

import (
	"errors"

	employeeerrors "github.com/gopal-gautam/empms-backend/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	constraintEmployeeCode  = "uq_employees_employee_code"
	constraintEmployeeEmail = "uq_employees_email"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintEmployeeCode:
				return employeeerrors.ErrEmployeeCodeAlreadyExists.WithCause(err)
			case constraintEmployeeEmail:
				return employeeerrors.ErrEmployeeEmailAlreadyExists.WithCause(err)
			}
		case pgForeignKeyViolation:
			return employeeerrors.ErrEmployeeHasAttendance.WithCause(err)
		}
	}

	return err
}
