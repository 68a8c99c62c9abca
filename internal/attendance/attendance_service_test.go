package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	attendanceerrors "github.com/gopal-gautam/empms-backend/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	findEmployeeByCodeFn     func(ctx context.Context, code string) (*EmployeeRef, error)
	findEmployeeByEmailFn    func(ctx context.Context, email string) (*EmployeeRef, error)
	createFn                 func(ctx context.Context, rec *ClockInOut) error
	findAllWithEmployeeFn    func(ctx context.Context) ([]ClockInOut, error)
	findAllByEmployeeEmailFn func(ctx context.Context, email string) ([]ClockInOut, error)
	findByIDWithEmployeeFn   func(ctx context.Context, id string) (*ClockInOut, error)
	updateFn                 func(ctx context.Context, id string, updates map[string]any) error
	setClockOutIfUnsetFn     func(ctx context.Context, id, clockOut string, notes *string) (bool, error)
	updateNotesFn            func(ctx context.Context, id, notes string) error
	deleteFn                 func(ctx context.Context, id string) error
}

func (f *fakeRepo) FindEmployeeByCode(ctx context.Context, code string) (*EmployeeRef, error) {
	if f.findEmployeeByCodeFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findEmployeeByCodeFn(ctx, code)
}

func (f *fakeRepo) FindEmployeeByEmail(ctx context.Context, email string) (*EmployeeRef, error) {
	if f.findEmployeeByEmailFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findEmployeeByEmailFn(ctx, email)
}

func (f *fakeRepo) Create(ctx context.Context, rec *ClockInOut) error {
	if f.createFn == nil {
		return errors.New("unexpected Create")
	}
	return f.createFn(ctx, rec)
}

func (f *fakeRepo) FindAllWithEmployee(ctx context.Context) ([]ClockInOut, error) {
	return f.findAllWithEmployeeFn(ctx)
}

func (f *fakeRepo) FindAllByEmployeeEmail(ctx context.Context, email string) ([]ClockInOut, error) {
	return f.findAllByEmployeeEmailFn(ctx, email)
}

func (f *fakeRepo) FindByIDWithEmployee(ctx context.Context, id string) (*ClockInOut, error) {
	if f.findByIDWithEmployeeFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByIDWithEmployeeFn(ctx, id)
}

func (f *fakeRepo) Update(ctx context.Context, id string, updates map[string]any) error {
	if f.updateFn == nil {
		return errors.New("unexpected Update")
	}
	return f.updateFn(ctx, id, updates)
}

func (f *fakeRepo) SetClockOutIfUnset(ctx context.Context, id, clockOut string, notes *string) (bool, error) {
	if f.setClockOutIfUnsetFn == nil {
		return false, errors.New("unexpected SetClockOutIfUnset")
	}
	return f.setClockOutIfUnsetFn(ctx, id, clockOut, notes)
}

func (f *fakeRepo) UpdateNotes(ctx context.Context, id, notes string) error {
	if f.updateNotesFn == nil {
		return errors.New("unexpected UpdateNotes")
	}
	return f.updateNotesFn(ctx, id, notes)
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func strPtr(v string) *string { return &v }

var (
	fixedNow = time.Date(2026, 3, 9, 8, 45, 0, 0, time.UTC)

	alice = &EmployeeRef{
		ID:           uuid.New(),
		EmployeeCode: "EMP001",
		FirstName:    "Alice",
		LastName:     "Shrestha",
		Email:        "alice@example.com",
	}
	bob = &EmployeeRef{
		ID:           uuid.New(),
		EmployeeCode: "EMP002",
		FirstName:    "Bob",
		LastName:     "Rai",
		Email:        "bob@example.com",
	}
)

func newTestService(repo Repository) *service {
	return newService(repo, func() time.Time { return fixedNow })
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves employee by code and returns enriched view", func(t *testing.T) {
		var stored *ClockInOut
		repo := &fakeRepo{
			findEmployeeByCodeFn: func(_ context.Context, code string) (*EmployeeRef, error) {
				assert.Equal(t, "EMP001", code)
				return alice, nil
			},
			createFn: func(_ context.Context, rec *ClockInOut) error {
				stored = rec
				return nil
			},
		}

		resp, err := newTestService(repo).Create(ctx, CreateClockInOutRequest{
			EmployeeID:   "EMP001",
			Date:         "2026-03-09",
			ClockInTime:  "09:00",
			ClockOutTime: strPtr(""),
		})

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, alice.ID, stored.EmployeeID)
		assert.Nil(t, stored.ClockOutTime)
		assert.Equal(t, "EMP001", resp.EmployeeID)
		assert.Equal(t, "Alice", resp.FirstName)
		assert.Equal(t, "Shrestha", resp.LastName)
		assert.Equal(t, "2026-03-09", resp.Date)
		assert.Equal(t, "09:00", resp.ClockInTime)
		assert.Nil(t, resp.ClockOutTime)
	})

	t.Run("employee code is matched without surrounding whitespace", func(t *testing.T) {
		repo := &fakeRepo{
			findEmployeeByCodeFn: func(_ context.Context, code string) (*EmployeeRef, error) {
				if code != "EMP001" {
					return nil, gorm.ErrRecordNotFound
				}
				return alice, nil
			},
			createFn: func(context.Context, *ClockInOut) error { return nil },
		}

		resp, err := newTestService(repo).Create(ctx, CreateClockInOutRequest{
			EmployeeID:  " EMP001 ",
			Date:        "2026-03-09",
			ClockInTime: "09:00",
		})

		require.NoError(t, err)
		assert.Equal(t, "EMP001", resp.EmployeeID)
	})

	t.Run("unknown employee code writes nothing", func(t *testing.T) {
		repo := &fakeRepo{}

		_, err := newTestService(repo).Create(ctx, CreateClockInOutRequest{
			EmployeeID:  "EMP404",
			Date:        "2026-03-09",
			ClockInTime: "09:00",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("rejects malformed time", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).Create(ctx, CreateClockInOutRequest{
			EmployeeID:  "EMP001",
			Date:        "2026-03-09",
			ClockInTime: "9am",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidTime)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).Create(ctx, CreateClockInOutRequest{
			EmployeeID:  "EMP001",
			Date:        "09/03/2026",
			ClockInTime: "09:00",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})
}

func TestService_GetAll_EnrichesRows(t *testing.T) {
	repo := &fakeRepo{
		findAllWithEmployeeFn: func(context.Context) ([]ClockInOut, error) {
			return []ClockInOut{
				{ID: uuid.New(), Date: fixedNow, ClockInTime: "09:00", Employee: alice},
				{ID: uuid.New(), Date: fixedNow, ClockInTime: "09:15", ClockOutTime: strPtr("17:00"), Employee: bob},
			}, nil
		},
	}

	resp, err := newTestService(repo).GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "EMP001", resp[0].EmployeeID)
	assert.Equal(t, "Bob", resp[1].FirstName)
	assert.Equal(t, "17:00", *resp[1].ClockOutTime)
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id is not found", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).GetByID(ctx, "nope")
		assert.ErrorIs(t, err, attendanceerrors.ErrClockInOutNotFound)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, attendanceerrors.ErrClockInOutNotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("applies only supplied fields", func(t *testing.T) {
		var got map[string]any
		repo := &fakeRepo{
			findEmployeeByCodeFn: func(context.Context, string) (*EmployeeRef, error) { return bob, nil },
			updateFn: func(_ context.Context, _ string, updates map[string]any) error {
				got = updates
				return nil
			},
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) {
				return &ClockInOut{ID: uuid.MustParse(id), Date: fixedNow, ClockInTime: "09:00", ClockOutTime: strPtr("18:00"), Employee: bob}, nil
			},
		}

		resp, err := newTestService(repo).Update(ctx, id, UpdateClockInOutRequest{
			EmployeeID:   strPtr("EMP002"),
			ClockOutTime: strPtr("18:00"),
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"employee_id": bob.ID, "clock_out_time": "18:00"}, got)
		assert.Equal(t, "EMP002", resp.EmployeeID)
	})

	t.Run("empty clock-out is ignored", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) {
				return &ClockInOut{ID: uuid.MustParse(id), ClockOutTime: strPtr("17:00"), Employee: alice}, nil
			},
		}

		resp, err := newTestService(repo).Update(ctx, id, UpdateClockInOutRequest{ClockOutTime: strPtr("")})

		require.NoError(t, err)
		assert.Equal(t, "17:00", *resp.ClockOutTime)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		repo := &fakeRepo{
			updateFn: func(context.Context, string, map[string]any) error { return gorm.ErrRecordNotFound },
		}

		_, err := newTestService(repo).Update(ctx, id, UpdateClockInOutRequest{Notes: strPtr("late")})

		assert.ErrorIs(t, err, attendanceerrors.ErrClockInOutNotFound)
	})

	t.Run("unknown employee code", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).Update(ctx, id, UpdateClockInOutRequest{EmployeeID: strPtr("EMP404")})
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		repo := &fakeRepo{deleteFn: func(_ context.Context, got string) error {
			assert.Equal(t, id, got)
			return nil
		}}
		assert.NoError(t, newTestService(repo).Delete(ctx, id))
	})

	t.Run("missing record is not found", func(t *testing.T) {
		repo := &fakeRepo{deleteFn: func(context.Context, string) error { return gorm.ErrRecordNotFound }}
		err := newTestService(repo).Delete(ctx, uuid.NewString())
		assert.ErrorIs(t, err, attendanceerrors.ErrClockInOutNotFound)
	})
}

func TestService_ClockInSelf(t *testing.T) {
	ctx := context.Background()

	t.Run("employee and date come from identity and clock", func(t *testing.T) {
		var stored *ClockInOut
		repo := &fakeRepo{
			findEmployeeByEmailFn: func(_ context.Context, email string) (*EmployeeRef, error) {
				assert.Equal(t, "alice@example.com", email)
				return alice, nil
			},
			createFn: func(_ context.Context, rec *ClockInOut) error {
				stored = rec
				return nil
			},
		}

		resp, err := newTestService(repo).ClockInSelf(ctx, "alice@example.com", ClockInSelfRequest{
			ClockInTime: "08:45",
			Notes:       strPtr("wfh"),
		})

		require.NoError(t, err)
		assert.Equal(t, alice.ID, stored.EmployeeID)
		assert.Nil(t, stored.ClockOutTime)
		assert.Equal(t, "2026-03-09", resp.Date)
		assert.Equal(t, "EMP001", resp.EmployeeID)
		assert.Equal(t, "wfh", *resp.Notes)
	})

	t.Run("no employee for email", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).ClockInSelf(ctx, "ghost@example.com", ClockInSelfRequest{ClockInTime: "08:45"})
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("missing email claim", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).ClockInSelf(ctx, "", ClockInSelfRequest{ClockInTime: "08:45"})
		assert.ErrorIs(t, err, attendanceerrors.ErrEmailClaimMissing)
	})
}

func TestService_GetAllSelf(t *testing.T) {
	repo := &fakeRepo{
		findAllByEmployeeEmailFn: func(_ context.Context, email string) ([]ClockInOut, error) {
			assert.Equal(t, "bob@example.com", email)
			return []ClockInOut{{ID: uuid.New(), Date: fixedNow, ClockInTime: "09:00", Employee: bob}}, nil
		},
	}

	resp, err := newTestService(repo).GetAllSelf(context.Background(), "bob@example.com")

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "EMP002", resp[0].EmployeeID)
}

func TestService_UpdateSelf(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	openRecord := func() *ClockInOut {
		return &ClockInOut{ID: uuid.MustParse(id), Date: fixedNow, ClockInTime: "09:00", Employee: alice}
	}

	t.Run("sets clock-out once", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) { return openRecord(), nil },
			setClockOutIfUnsetFn: func(_ context.Context, _ string, clockOut string, notes *string) (bool, error) {
				assert.Equal(t, "17:30", clockOut)
				assert.Equal(t, "done", *notes)
				return true, nil
			},
		}

		resp, err := newTestService(repo).UpdateSelf(ctx, id, "alice@example.com", UpdateClockInSelfRequest{
			ClockOutTime: strPtr("17:30"),
			Notes:        strPtr("done"),
		})

		require.NoError(t, err)
		assert.Equal(t, "17:30", *resp.ClockOutTime)
		assert.Equal(t, "done", *resp.Notes)
	})

	t.Run("clock-out already set", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) {
				rec := openRecord()
				rec.ClockOutTime = strPtr("17:00")
				return rec, nil
			},
		}

		_, err := newTestService(repo).UpdateSelf(ctx, id, "alice@example.com", UpdateClockInSelfRequest{ClockOutTime: strPtr("18:00")})

		assert.ErrorIs(t, err, attendanceerrors.ErrClockOutAlreadySet)
	})

	t.Run("concurrent clock-out loses", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) { return openRecord(), nil },
			setClockOutIfUnsetFn:   func(context.Context, string, string, *string) (bool, error) { return false, nil },
		}

		_, err := newTestService(repo).UpdateSelf(ctx, id, "alice@example.com", UpdateClockInSelfRequest{ClockOutTime: strPtr("18:00")})

		assert.ErrorIs(t, err, attendanceerrors.ErrClockOutAlreadySet)
	})

	t.Run("record deleted before clock-out write", func(t *testing.T) {
		calls := 0
		repo := &fakeRepo{
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) {
				calls++
				if calls == 1 {
					return openRecord(), nil
				}
				return nil, gorm.ErrRecordNotFound
			},
			setClockOutIfUnsetFn: func(context.Context, string, string, *string) (bool, error) { return false, nil },
		}

		_, err := newTestService(repo).UpdateSelf(ctx, id, "alice@example.com", UpdateClockInSelfRequest{ClockOutTime: strPtr("18:00")})

		assert.ErrorIs(t, err, attendanceerrors.ErrClockInOutNotFound)
		assert.Equal(t, 2, calls)
	})

	t.Run("other employee's record is forbidden", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) { return openRecord(), nil },
		}

		_, err := newTestService(repo).UpdateSelf(ctx, id, "bob@example.com", UpdateClockInSelfRequest{Notes: strPtr("mine")})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotRecordOwner)
	})

	t.Run("email match is exact", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) { return openRecord(), nil },
		}

		_, err := newTestService(repo).UpdateSelf(ctx, id, "Alice@Example.com", UpdateClockInSelfRequest{Notes: strPtr("x")})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotRecordOwner)
	})

	t.Run("notes only", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) {
				rec := openRecord()
				rec.ClockOutTime = strPtr("17:00")
				return rec, nil
			},
			updateNotesFn: func(_ context.Context, _ string, notes string) error {
				assert.Equal(t, "left early", notes)
				return nil
			},
		}

		resp, err := newTestService(repo).UpdateSelf(ctx, id, "alice@example.com", UpdateClockInSelfRequest{Notes: strPtr("left early")})

		require.NoError(t, err)
		assert.Equal(t, "left early", *resp.Notes)
		assert.Equal(t, "17:00", *resp.ClockOutTime)
	})

	t.Run("nothing supplied writes nothing", func(t *testing.T) {
		repo := &fakeRepo{
			findByIDWithEmployeeFn: func(context.Context, string) (*ClockInOut, error) { return openRecord(), nil },
		}

		resp, err := newTestService(repo).UpdateSelf(ctx, id, "alice@example.com", UpdateClockInSelfRequest{ClockOutTime: strPtr("")})

		require.NoError(t, err)
		assert.Nil(t, resp.ClockOutTime)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		_, err := newTestService(&fakeRepo{}).UpdateSelf(ctx, id, "alice@example.com", UpdateClockInSelfRequest{Notes: strPtr("x")})
		assert.ErrorIs(t, err, attendanceerrors.ErrClockInOutNotFound)
	})
}
