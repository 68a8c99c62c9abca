package attendance

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindEmployeeByCode(ctx context.Context, code string) (*EmployeeRef, error)
	FindEmployeeByEmail(ctx context.Context, email string) (*EmployeeRef, error)
	Create(ctx context.Context, rec *ClockInOut) error
	FindAllWithEmployee(ctx context.Context) ([]ClockInOut, error)
	FindAllByEmployeeEmail(ctx context.Context, email string) ([]ClockInOut, error)
	FindByIDWithEmployee(ctx context.Context, id string) (*ClockInOut, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	SetClockOutIfUnset(ctx context.Context, id, clockOut string, notes *string) (bool, error)
	UpdateNotes(ctx context.Context, id, notes string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindEmployeeByCode(ctx context.Context, code string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		Where("employee_code = ?", code).
		Take(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *repository) FindEmployeeByEmail(ctx context.Context, email string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *repository) Create(ctx context.Context, rec *ClockInOut) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(rec).Error
}

func (r *repository) FindAllWithEmployee(ctx context.Context) ([]ClockInOut, error) {
	var rows []ClockInOut
	err := r.db.WithContext(ctx).
		Joins("Employee").
		Order("clock_in_outs.date DESC, clock_in_outs.clock_in_time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployeeEmail(ctx context.Context, email string) ([]ClockInOut, error) {
	var rows []ClockInOut
	err := r.db.WithContext(ctx).
		Joins("Employee").
		Where(`"Employee"."email" = ?`, email).
		Order("clock_in_outs.date DESC, clock_in_outs.clock_in_time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDWithEmployee(ctx context.Context, id string) (*ClockInOut, error) {
	var rec ClockInOut
	err := r.db.WithContext(ctx).
		Joins("Employee").
		Where("clock_in_outs.id = ?", id).
		Take(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update applies column updates and reports gorm.ErrRecordNotFound when the
// record does not exist.
func (r *repository) Update(ctx context.Context, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&ClockInOut{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetClockOutIfUnset writes the clock-out time only while it is still NULL.
// It returns false when another write got there first.
func (r *repository) SetClockOutIfUnset(ctx context.Context, id, clockOut string, notes *string) (bool, error) {
	updates := map[string]any{"clock_out_time": clockOut}
	if notes != nil {
		updates["notes"] = *notes
	}

	res := r.db.WithContext(ctx).
		Model(&ClockInOut{}).
		Where("id = ? AND clock_out_time IS NULL", id).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) UpdateNotes(ctx context.Context, id, notes string) error {
	return r.Update(ctx, id, map[string]any{"notes": notes})
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ClockInOut{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
