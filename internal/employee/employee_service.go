package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	employeeerrors "github.com/gopal-gautam/empms-backend/internal/employee/errors"
	"github.com/gopal-gautam/empms-backend/internal/events"
	"github.com/gopal-gautam/empms-backend/internal/messaging/kafka"
	"github.com/gopal-gautam/empms-backend/internal/provisioning"
	"github.com/gopal-gautam/empms-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeListCacheKey = "employees:all"
	// EmployeeListGenerationKey is bumped after every employee write. List
	// snapshots are cached under the generation read before loading them, so
	// a load that overlaps a write can only populate a retired key.
	EmployeeListGenerationKey = "employees:all:gen"

	defaultCacheTTL = 5 * time.Minute
	dateLayout      = "2006-01-02"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, fields []string) ([]map[string]any, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type Deps struct {
	DB          *gorm.DB
	Repo        Repository
	Outbox      kafka.OutboxRepository
	Provisioner provisioning.Provisioner
	Redis       *redis.Client
	CacheTTL    time.Duration
	Topic       string
}

type service struct {
	db          *gorm.DB
	repo        Repository
	outbox      kafka.OutboxRepository
	provisioner provisioning.Provisioner
	rdb         *redis.Client
	cacheTTL    time.Duration
	topic       string
	sf          *singleflight.Group
	logger      *zap.Logger
}

// NewService wires the employee service. Outbox and Redis are optional.
func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	topic := deps.Topic
	if topic == "" {
		topic = events.EmployeeLifecycleTopic
	}
	return &service{
		db:          deps.DB,
		repo:        deps.Repo,
		outbox:      deps.Outbox,
		provisioner: deps.Provisioner,
		rdb:         deps.Redis,
		cacheTTL:    ttl,
		topic:       topic,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

// Create stores the employee and then provisions the login account. When
// provisioning fails the row is deleted again and the provisioning error is
// returned. The row is committed before the provider call, so a crash in
// between can leave an employee without an account.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("create employee requested",
		zap.String("employee_code", req.EmployeeID),
		zap.String("email", req.Email),
	)

	empl, err := newEmployee(req)
	if err != nil {
		logger.Warn("create employee invalid input", zap.Error(err))
		return EmployeeResponse{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueueLifecycleEvent(ctx, tx, events.EmployeeCreated, empl)
	})
	if err != nil {
		logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.invalidateListCache(ctx)

	if err := s.provisioner.CreateUser(ctx, empl.Email, empl.FirstName, empl.LastName); err != nil {
		logger.Error("identity provisioning failed, removing employee",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)

		if compErr := s.compensate(context.WithoutCancel(ctx), empl); compErr != nil {
			logger.Error("compensating delete failed, employee row left without login account",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(compErr),
			)
			return EmployeeResponse{}, employeeerrors.ErrIdentityProvisioningFailed.WithCause(
				errors.Join(err, fmt.Errorf("compensating delete: %w", compErr)),
			)
		}
		return EmployeeResponse{}, employeeerrors.ErrIdentityProvisioningFailed.WithCause(err)
	}

	logger.Info("create employee success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)
	return mapToResponse(*empl), nil
}

func (s *service) compensate(ctx context.Context, empl *Employee) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteInTx(ctx, tx, empl)
	})
	if err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *service) deleteInTx(ctx context.Context, tx *gorm.DB, empl *Employee) error {
	if err := s.repo.WithTx(tx).Delete(ctx, empl.ID.String()); err != nil {
		return mapRepositoryError(err)
	}
	return s.enqueueLifecycleEvent(ctx, tx, events.EmployeeDeleted, empl)
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *gorm.DB, eventType string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.EmployeeLifecycleEvent{
		EventType:    eventType,
		RequestID:    rid,
		EmployeeID:   empl.ID.String(),
		EmployeeCode: empl.EmployeeCode,
		Email:        empl.Email,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     eventType,
		Topic:         s.topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// GetAll returns every employee, restricted to the requested fields when at
// least one of them is a known employee field. Unknown names are ignored.
func (s *service) GetAll(ctx context.Context, fields []string) ([]map[string]any, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("get all employees requested", zap.Strings("fields", fields))

	rows, err := s.listAll(ctx)
	if err != nil {
		logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return Project(rows, fields), nil
}

func (s *service) listAll(ctx context.Context) ([]EmployeeResponse, error) {
	cacheKey := s.listCacheKey(ctx)
	if cacheKey != "" {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	sfKey := cacheKey
	if sfKey == "" {
		sfKey = EmployeeListCacheKey
	}

	// The load is shared by every coalesced caller and must not die with
	// the first caller's request.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(sfKey, func() (any, error) {
		empls, err := s.repo.FindAll(loadCtx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if cacheKey != "" {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(loadCtx, cacheKey, jsonData, s.cacheTTL).Err(); err != nil {
					s.logger.Warn("failed to cache employee list", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

// listCacheKey returns the list key for the current generation, or "" when
// caching is disabled or the generation cannot be read.
func (s *service) listCacheKey(ctx context.Context) string {
	if s.rdb == nil {
		return ""
	}
	gen, err := s.rdb.Get(ctx, EmployeeListGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("failed to read employee list generation", zap.Error(err))
		return ""
	}
	return EmployeeListCacheKeyFor(gen)
}

func EmployeeListCacheKeyFor(gen int64) string {
	return fmt.Sprintf("%s:%d", EmployeeListCacheKey, gen)
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("get employee by id requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		mapped := mapRepositoryError(err)
		if !errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			logger.Error("get employee by id failed", zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("delete employee requested", zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		empl, err := s.repo.WithTx(tx).FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		return s.deleteInTx(ctx, tx, empl)
	})
	if err != nil {
		logger.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx)
	logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(context.WithoutCancel(ctx), EmployeeListGenerationKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", EmployeeListGenerationKey),
		)
	}
}

func newEmployee(req CreateEmployeeRequest) (*Employee, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDateOfBirth.WithCause(err)
	}
	doj, err := parseDate(req.DateOfJoining)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDateOfJoining.WithCause(err)
	}

	return &Employee{
		ID:         uuid.New(),
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,

		DateOfBirth:   dob,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
		Nationality:   req.Nationality,

		Email:          strings.TrimSpace(req.Email),
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		Country:        req.Country,

		EmployeeCode:     strings.TrimSpace(req.EmployeeID),
		Department:       req.Department,
		Position:         req.Position,
		JobTitle:         req.JobTitle,
		EmploymentType:   req.EmploymentType,
		DateOfJoining:    doj,
		WorkLocation:     req.WorkLocation,
		ReportingManager: req.ReportingManager,

		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,

		EmergencyContactName:     req.EmergencyContactName,
		EmergencyContactRelation: req.EmergencyContactRelation,
		EmergencyContactPhone:    req.EmergencyContactPhone,
		EmergencyContactAddress:  req.EmergencyContactAddress,

		CitizenshipNumber: req.CitizenshipNumber,
		PANNumber:         req.PANNumber,
		PassportNumber:    req.PassportNumber,
		DrivingLicense:    req.DrivingLicense,

		BloodGroup: req.BloodGroup,
		Allergies:  req.Allergies,
		Notes:      req.Notes,
	}, nil
}

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp.
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

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID.String(),
		FirstName:  e.FirstName,
		MiddleName: e.MiddleName,
		LastName:   e.LastName,

		DateOfBirth:   e.DateOfBirth.Format(dateLayout),
		Gender:        e.Gender,
		MaritalStatus: e.MaritalStatus,
		Nationality:   e.Nationality,

		Email:          e.Email,
		Phone:          e.Phone,
		AlternatePhone: e.AlternatePhone,
		Address:        e.Address,
		City:           e.City,
		State:          e.State,
		ZipCode:        e.ZipCode,
		Country:        e.Country,

		EmployeeID:       e.EmployeeCode,
		Department:       e.Department,
		Position:         e.Position,
		JobTitle:         e.JobTitle,
		EmploymentType:   e.EmploymentType,
		DateOfJoining:    e.DateOfJoining.Format(dateLayout),
		WorkLocation:     e.WorkLocation,
		ReportingManager: e.ReportingManager,

		BankName:      e.BankName,
		AccountNumber: e.AccountNumber,
		IFSCCode:      e.IFSCCode,

		EmergencyContactName:     e.EmergencyContactName,
		EmergencyContactRelation: e.EmergencyContactRelation,
		EmergencyContactPhone:    e.EmergencyContactPhone,
		EmergencyContactAddress:  e.EmergencyContactAddress,

		CitizenshipNumber: e.CitizenshipNumber,
		PANNumber:         e.PANNumber,
		PassportNumber:    e.PassportNumber,
		DrivingLicense:    e.DrivingLicense,

		BloodGroup: e.BloodGroup,
		Allergies:  e.Allergies,
		Notes:      e.Notes,

		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
