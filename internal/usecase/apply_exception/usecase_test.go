package apply_exception

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	exceptionRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/exception"
	slotRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

const testInstructorID int64 = 42

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeExceptionRepo struct {
	stored   map[uuid.UUID]*domain.Exception
	affected map[uuid.UUID][]uuid.UUID
}

func newFakeExceptionRepo() *fakeExceptionRepo {
	return &fakeExceptionRepo{
		stored:   make(map[uuid.UUID]*domain.Exception),
		affected: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *fakeExceptionRepo) Create(_ context.Context, e *domain.Exception) (*domain.Exception, error) {
	created := *e
	created.ID = uuid.New()
	r.stored[created.ID] = &created
	return &created, nil
}

func (r *fakeExceptionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Exception, error) {
	e, ok := r.stored[id]
	if !ok {
		return nil, exceptionRepo.ErrExceptionNotFound
	}
	return e, nil
}

func (r *fakeExceptionRepo) ListByInstructor(_ context.Context, instructorID int64) ([]*domain.Exception, error) {
	var result []*domain.Exception
	for _, e := range r.stored {
		if e.InstructorID == instructorID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeExceptionRepo) UpdateAffectedSlots(_ context.Context, id uuid.UUID, slotIDs []uuid.UUID) error {
	r.affected[id] = slotIDs
	if e, ok := r.stored[id]; ok {
		e.AffectedSlotIDs = slotIDs
	}
	return nil
}

type fakeSlotRepo struct {
	slots map[uuid.UUID]*domain.Slot
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	repo := &fakeSlotRepo{slots: make(map[uuid.UUID]*domain.Slot)}
	for _, s := range slots {
		repo.slots[s.ID] = s
	}
	return repo
}

func (r *fakeSlotRepo) List(_ context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	var result []*domain.Slot
	for _, s := range r.slots {
		if s.InstructorID != filter.InstructorID {
			continue
		}
		if filter.StartDate != nil && s.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && s.Date.After(*filter.EndDate) {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (r *fakeSlotRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.SlotStatus, studentID *int64) error {
	s, ok := r.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.Status = status
	s.StudentID = studentID
	return nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(exceptions *fakeExceptionRepo, slots *fakeSlotRepo) *UseCase {
	uc := NewUseCase(exceptions, slots, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func slotOn(date time.Time, start, end string, status domain.SlotStatus) *domain.Slot {
	return &domain.Slot{
		ID:           uuid.New(),
		InstructorID: testInstructorID,
		Date:         domain.DateOnly(date),
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		Status:       status,
	}
}

func TestExecute_BlocksAvailableWarnsBooked(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	available := slotOn(day, "09:00", "10:30", domain.StatusAvailable)
	booked := slotOn(day, "11:00", "12:30", domain.StatusBooked)
	outside := slotOn(day.AddDate(0, 0, 5), "09:00", "10:30", domain.StatusAvailable)

	exceptions := newFakeExceptionRepo()
	slots := newFakeSlotRepo(available, booked, outside)
	uc := newTestUseCase(exceptions, slots)

	resp, err := uc.Execute(context.Background(), &Request{
		InstructorID: testInstructorID,
		Type:         "vacation",
		StartDate:    day,
		EndDate:      day.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{available.ID.String()}, resp.BlockedSlotIDs)
	assert.Equal(t, []string{booked.ID.String()}, resp.WarnedBookedSlotIDs)
	assert.Equal(t, []string{"2026-03-10", "2026-03-11"}, resp.Dates)

	// Свободный слот заблокирован, занятый не тронут
	assert.Equal(t, domain.StatusBlocked, available.Status)
	assert.Equal(t, domain.StatusBooked, booked.Status)
	assert.Equal(t, domain.StatusAvailable, outside.Status)

	exceptionID := uuid.MustParse(resp.ExceptionID)
	assert.Equal(t, []uuid.UUID{available.ID}, exceptions.affected[exceptionID])
}

func TestExecute_Idempotent(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	available := slotOn(day, "09:00", "10:30", domain.StatusAvailable)

	exceptions := newFakeExceptionRepo()
	slots := newFakeSlotRepo(available)
	uc := newTestUseCase(exceptions, slots)

	req := &Request{InstructorID: testInstructorID, Type: "illness", StartDate: day, EndDate: day}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, first.BlockedSlotIDs, 1)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, second.BlockedSlotIDs)
	assert.Empty(t, second.WarnedBookedSlotIDs)

	// Повторное применение переиспользует запись исключения и не
	// затирает список затронутых слотов
	assert.Equal(t, first.ExceptionID, second.ExceptionID)
	assert.Len(t, exceptions.stored, 1)
	assert.Equal(t, []uuid.UUID{available.ID}, exceptions.affected[uuid.MustParse(first.ExceptionID)])
}

func TestExecute_DifferentRangeCreatesNewException(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	exceptions := newFakeExceptionRepo()
	uc := newTestUseCase(exceptions, newFakeSlotRepo())

	first, err := uc.Execute(context.Background(), &Request{
		InstructorID: testInstructorID, Type: "vacation", StartDate: day, EndDate: day,
	})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{
		InstructorID: testInstructorID, Type: "vacation", StartDate: day, EndDate: day.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.ExceptionID, second.ExceptionID)
	assert.Len(t, exceptions.stored, 2)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeExceptionRepo(), newFakeSlotRepo())
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{InstructorID: 0, Type: "vacation", StartDate: day, EndDate: day})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{InstructorID: testInstructorID, Type: "sabbatical", StartDate: day, EndDate: day})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{InstructorID: testInstructorID, Type: "vacation", StartDate: day, EndDate: day.AddDate(0, 0, -2)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{InstructorID: testInstructorID, Type: "vacation", StartDate: day, EndDate: day, IsRecurring: true})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfirm_CancelsBookedSlots(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	available := slotOn(day, "09:00", "10:30", domain.StatusAvailable)
	booked := slotOn(day, "11:00", "12:30", domain.StatusBooked)

	exceptions := newFakeExceptionRepo()
	slots := newFakeSlotRepo(available, booked)
	uc := newTestUseCase(exceptions, slots)

	created, err := uc.Execute(context.Background(), &Request{
		InstructorID: testInstructorID,
		Type:         "vacation",
		StartDate:    day,
		EndDate:      day,
	})
	require.NoError(t, err)
	require.Len(t, created.WarnedBookedSlotIDs, 1)

	exceptionID := uuid.MustParse(created.ExceptionID)
	resp, err := uc.Confirm(context.Background(), exceptionID, &ConfirmRequest{InstructorID: testInstructorID})
	require.NoError(t, err)

	assert.Equal(t, []string{booked.ID.String()}, resp.CancelledSlotIDs)
	assert.Equal(t, domain.StatusCancelled, booked.Status)
	// Заблокированные Execute слоты не трогаем
	assert.Equal(t, domain.StatusBlocked, available.Status)
	assert.ElementsMatch(t, []uuid.UUID{available.ID, booked.ID}, exceptions.affected[exceptionID])
}

func TestConfirm_AccessControl(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	exceptions := newFakeExceptionRepo()
	uc := newTestUseCase(exceptions, newFakeSlotRepo())

	created, err := uc.Execute(context.Background(), &Request{
		InstructorID: testInstructorID,
		Type:         "vacation",
		StartDate:    day,
		EndDate:      day,
	})
	require.NoError(t, err)
	exceptionID := uuid.MustParse(created.ExceptionID)

	_, err = uc.Confirm(context.Background(), exceptionID, &ConfirmRequest{InstructorID: testInstructorID + 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = uc.Confirm(context.Background(), uuid.New(), &ConfirmRequest{InstructorID: testInstructorID})
	assert.ErrorIs(t, err, ErrExceptionNotFound)
}
