package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	attendanceerrors "github.com/gopal-gautam/empms-backend/internal/attendance/errors"
	"github.com/gopal-gautam/empms-backend/internal/shared/apperror"
	"github.com/gopal-gautam/empms-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, req CreateClockInOutRequest) (ClockInOutResponse, error)
	GetAll(ctx context.Context) ([]ClockInOutResponse, error)
	GetByID(ctx context.Context, id string) (ClockInOutResponse, error)
	Update(ctx context.Context, id string, req UpdateClockInOutRequest) (ClockInOutResponse, error)
	Delete(ctx context.Context, id string) error

	ClockInSelf(ctx context.Context, email string, req ClockInSelfRequest) (ClockInOutResponse, error)
	GetAllSelf(ctx context.Context, email string) ([]ClockInOutResponse, error)
	UpdateSelf(ctx context.Context, id, email string, req UpdateClockInSelfRequest) (ClockInOutResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return newService(repo, time.Now, logger...)
}

func newService(repo Repository, now func() time.Time, logger ...*zap.Logger) *service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, now: now, logger: l}
}

// Create records a clock-in for the employee identified by business code.
func (s *service) Create(ctx context.Context, req CreateClockInOutRequest) (ClockInOutResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return ClockInOutResponse{}, attendanceerrors.ErrInvalidDate.WithCause(err)
	}
	clockOut := presentOrNil(req.ClockOutTime)
	if err := validateTimes(&req.ClockInTime, clockOut); err != nil {
		return ClockInOutResponse{}, err
	}

	ref, err := s.findEmployeeByCode(ctx, req.EmployeeID)
	if err != nil {
		return ClockInOutResponse{}, err
	}

	rec := &ClockInOut{
		ID:           uuid.New(),
		EmployeeID:   ref.ID,
		Date:         date,
		ClockInTime:  req.ClockInTime,
		ClockOutTime: clockOut,
		Notes:        req.Notes,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return ClockInOutResponse{}, mapRepositoryError(err)
	}
	rec.Employee = ref

	contextutil.GetLogger(ctx, s.logger).Info("clock-in recorded",
		zap.String("clock_in_out_id", rec.ID.String()),
		zap.String("employee_code", ref.EmployeeCode),
	)
	return mapToResponse(*rec), nil
}

func (s *service) GetAll(ctx context.Context) ([]ClockInOutResponse, error) {
	rows, err := s.repo.FindAllWithEmployee(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapAll(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClockInOutResponse, error) {
	rec, err := s.findByID(ctx, id)
	if err != nil {
		return ClockInOutResponse{}, err
	}
	return mapToResponse(*rec), nil
}

// Update applies only the supplied fields. A new employeeId is resolved by
// code the same way Create does it.
func (s *service) Update(ctx context.Context, id string, req UpdateClockInOutRequest) (ClockInOutResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ClockInOutResponse{}, attendanceerrors.ErrClockInOutNotFound
	}

	clockOut := presentOrNil(req.ClockOutTime)
	if err := validateTimes(req.ClockInTime, clockOut); err != nil {
		return ClockInOutResponse{}, err
	}

	updates := map[string]any{}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return ClockInOutResponse{}, attendanceerrors.ErrInvalidDate.WithCause(err)
		}
		updates["date"] = date
	}
	if req.EmployeeID != nil {
		ref, err := s.findEmployeeByCode(ctx, *req.EmployeeID)
		if err != nil {
			return ClockInOutResponse{}, err
		}
		updates["employee_id"] = ref.ID
	}
	if req.ClockInTime != nil {
		updates["clock_in_time"] = *req.ClockInTime
	}
	if clockOut != nil {
		updates["clock_out_time"] = *clockOut
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return ClockInOutResponse{}, mapRepositoryError(err)
		}
	}

	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrClockInOutNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	contextutil.GetLogger(ctx, s.logger).Info("clock-in/out deleted", zap.String("clock_in_out_id", id))
	return nil
}

// ClockInSelf records today's clock-in for the employee owning email. The
// record's employee always comes from the identity, never from the body.
func (s *service) ClockInSelf(ctx context.Context, email string, req ClockInSelfRequest) (ClockInOutResponse, error) {
	ref, err := s.findEmployeeByEmail(ctx, email)
	if err != nil {
		return ClockInOutResponse{}, err
	}
	if err := validateTimes(&req.ClockInTime, nil); err != nil {
		return ClockInOutResponse{}, err
	}

	y, m, d := s.now().Date()
	rec := &ClockInOut{
		ID:          uuid.New(),
		EmployeeID:  ref.ID,
		Date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		ClockInTime: req.ClockInTime,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return ClockInOutResponse{}, mapRepositoryError(err)
	}
	rec.Employee = ref

	contextutil.GetLogger(ctx, s.logger).Info("self clock-in recorded",
		zap.String("clock_in_out_id", rec.ID.String()),
		zap.String("employee_code", ref.EmployeeCode),
	)
	return mapToResponse(*rec), nil
}

func (s *service) GetAllSelf(ctx context.Context, email string) ([]ClockInOutResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, attendanceerrors.ErrEmailClaimMissing
	}
	rows, err := s.repo.FindAllByEmployeeEmail(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapAll(rows), nil
}

// UpdateSelf lets an employee set clock-out once and edit notes on their own
// record. The clock-out write is conditional on the column still being NULL.
func (s *service) UpdateSelf(ctx context.Context, id, email string, req UpdateClockInSelfRequest) (ClockInOutResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return ClockInOutResponse{}, attendanceerrors.ErrEmailClaimMissing
	}

	rec, err := s.findByID(ctx, id)
	if err != nil {
		return ClockInOutResponse{}, err
	}
	if rec.Employee == nil || rec.Employee.Email != email {
		return ClockInOutResponse{}, attendanceerrors.ErrNotRecordOwner
	}

	clockOut := presentOrNil(req.ClockOutTime)
	if clockOut == nil && req.Notes == nil {
		return mapToResponse(*rec), nil
	}

	logger := contextutil.GetLogger(ctx, s.logger)

	if clockOut != nil {
		if err := validateTimes(nil, clockOut); err != nil {
			return ClockInOutResponse{}, err
		}
		if rec.ClockOutTime != nil {
			return ClockInOutResponse{}, attendanceerrors.ErrClockOutAlreadySet
		}

		ok, err := s.repo.SetClockOutIfUnset(ctx, id, *clockOut, req.Notes)
		if err != nil {
			return ClockInOutResponse{}, mapRepositoryError(err)
		}
		if !ok {
			// Either another clock-out won or the record is gone.
			if _, err := s.repo.FindByIDWithEmployee(ctx, id); err != nil {
				return ClockInOutResponse{}, mapRepositoryError(err)
			}
			logger.Warn("concurrent clock-out lost", zap.String("clock_in_out_id", id))
			return ClockInOutResponse{}, attendanceerrors.ErrClockOutAlreadySet
		}

		rec.ClockOutTime = clockOut
		if req.Notes != nil {
			rec.Notes = req.Notes
		}
		logger.Info("self clock-out recorded", zap.String("clock_in_out_id", id))
		return mapToResponse(*rec), nil
	}

	if err := s.repo.UpdateNotes(ctx, id, *req.Notes); err != nil {
		return ClockInOutResponse{}, mapRepositoryError(err)
	}
	rec.Notes = req.Notes
	return mapToResponse(*rec), nil
}

func (s *service) findByID(ctx context.Context, id string) (*ClockInOut, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, attendanceerrors.ErrClockInOutNotFound
	}
	rec, err := s.repo.FindByIDWithEmployee(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rec, nil
}

func (s *service) findEmployeeByCode(ctx context.Context, code string) (*EmployeeRef, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}
	ref, err := s.repo.FindEmployeeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return ref, nil
}

func (s *service) findEmployeeByEmail(ctx context.Context, email string) (*EmployeeRef, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, attendanceerrors.ErrEmailClaimMissing
	}
	ref, err := s.repo.FindEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return ref, nil
}

func validateTimes(clockIn, clockOut *string) error {
	if clockIn != nil && !apperror.IsHHMM(*clockIn) {
		return attendanceerrors.ErrInvalidTime
	}
	if clockOut != nil && !apperror.IsHHMM(*clockOut) {
		return attendanceerrors.ErrInvalidTime
	}
	return nil
}

// presentOrNil treats an empty string the same as an omitted value.
func presentOrNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func mapAll(rows []ClockInOut) []ClockInOutResponse {
	out := make([]ClockInOutResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out
}

func mapToResponse(r ClockInOut) ClockInOutResponse {
	resp := ClockInOutResponse{
		ID:           r.ID.String(),
		Date:         r.Date.Format(dateLayout),
		ClockInTime:  r.ClockInTime,
		ClockOutTime: r.ClockOutTime,
		Notes:        r.Notes,
	}
	if r.Employee != nil {
		resp.EmployeeID = r.Employee.EmployeeCode
		resp.FirstName = r.Employee.FirstName
		resp.LastName = r.Employee.LastName
	}
	return resp
}
