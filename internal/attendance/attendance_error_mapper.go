package attendance

import (
	"errors"

	attendanceerrors "github.com/gopal-gautam/empms-backend/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrClockInOutNotFound
	}

	// The referenced employee vanished between lookup and write.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return attendanceerrors.ErrEmployeeNotFound.WithCause(err)
	}

	return err
}
