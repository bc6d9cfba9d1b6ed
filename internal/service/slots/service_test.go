package slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/DS-ScheduleService/internal/service/slots/models"
	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

const testInstructorID int64 = 42

var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

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

func (r *fakeSlotRepo) Create(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	created := *s
	created.ID = uuid.New()
	r.slots[created.ID] = &created
	return &created, nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
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
		if filter.Status != nil && s.Status != *filter.Status {
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
	if studentID != nil {
		s.StudentID = studentID
	}
	return nil
}

func (r *fakeSlotRepo) DeleteAvailable(_ context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if s, ok := r.slots[id]; ok && s.Status == domain.StatusAvailable {
			delete(r.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeSlotRepo) *Service {
	return NewService(repo, &fakeTxManager{}, nopLogger{})
}

func existingSlot(start, end string, status domain.SlotStatus) *domain.Slot {
	return &domain.Slot{
		ID:           uuid.New(),
		InstructorID: testInstructorID,
		Date:         testDate,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		Status:       status,
	}
}

func TestCreate(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date:      testDate,
		StartTime: "09:00",
		EndTime:   "10:30",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, string(domain.StatusAvailable), resp.Status)
	assert.Nil(t, resp.StudentID)
}

func TestCreate_WithStudentBooksImmediately(t *testing.T) {
	svc := newTestService(newFakeSlotRepo())

	studentID := int64(100)
	resp, err := svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date:      testDate,
		StartTime: "09:00",
		EndTime:   "10:30",
		StudentID: &studentID,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	require.NotNil(t, resp.StudentID)
	assert.Equal(t, studentID, *resp.StudentID)
}

func TestCreate_WithExplicitStatus(t *testing.T) {
	svc := newTestService(newFakeSlotRepo())

	// Ручная бронь времени под занятие вне сервиса
	blocked := "blocked"
	resp, err := svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date:      testDate,
		StartTime: "09:00",
		EndTime:   "10:30",
		Status:    &blocked,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusBlocked), resp.Status)

	// Импорт прошедшего занятия: статус и студент задаются явно
	completed := "completed"
	studentID := int64(100)
	resp, err = svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date:      testDate,
		StartTime: "11:00",
		EndTime:   "12:30",
		Status:    &completed,
		StudentID: &studentID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	require.NotNil(t, resp.StudentID)
	assert.Equal(t, studentID, *resp.StudentID)
}

func TestCreate_ExplicitStatusRejections(t *testing.T) {
	svc := newTestService(newFakeSlotRepo())

	bogus := "reserved"
	_, err := svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date: testDate, StartTime: "09:00", EndTime: "10:30", Status: &bogus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	booked := "booked"
	_, err = svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date: testDate, StartTime: "09:00", EndTime: "10:30", Status: &booked,
	})
	assert.ErrorIs(t, err, ErrStudentRequired)
}

func TestCreate_NonLiveStatusMayOverlapLive(t *testing.T) {
	live := existingSlot("09:00", "10:30", domain.StatusBooked)
	repo := newFakeSlotRepo(live)
	svc := newTestService(repo)

	// Исторический слот не занимает время и не конфликтует с живым
	cancelled := "cancelled"
	studentID := int64(100)
	_, err := svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date: testDate, StartTime: "09:00", EndTime: "10:30", Status: &cancelled, StudentID: &studentID,
	})
	assert.NoError(t, err)

	// Живой статус по-прежнему конфликтует
	inProgress := "in_progress"
	_, err = svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date: testDate, StartTime: "10:00", EndTime: "11:30", Status: &inProgress, StudentID: &studentID,
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newFakeSlotRepo())

	_, err := svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		StartTime: "09:00", EndTime: "10:30",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Вне операционного окна
	_, err = svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date: testDate, StartTime: "05:00", EndTime: "07:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date: testDate, StartTime: "11:00", EndTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_OverlapConflict(t *testing.T) {
	live := existingSlot("09:00", "10:30", domain.StatusBooked)
	cancelled := existingSlot("12:00", "13:30", domain.StatusCancelled)
	repo := newFakeSlotRepo(live, cancelled)
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date: testDate, StartTime: "10:00", EndTime: "11:30",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Отменённый слот не занимает время
	_, err = svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date: testDate, StartTime: "12:00", EndTime: "13:30",
	})
	assert.NoError(t, err)

	// Встык - не пересечение
	_, err = svc.Create(context.Background(), testInstructorID, &models.CreateSlotRequest{
		Date: testDate, StartTime: "10:30", EndTime: "12:00",
	})
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	slot := existingSlot("09:00", "10:30", domain.StatusAvailable)
	repo := newFakeSlotRepo(slot)
	svc := newTestService(repo)

	studentID := int64(100)
	resp, err := svc.UpdateStatus(context.Background(), testInstructorID, slot.ID, &models.UpdateStatusRequest{
		Status:    "booked",
		StudentID: &studentID,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	require.NotNil(t, resp.StudentID)
	assert.Equal(t, studentID, *resp.StudentID)
}

func TestUpdateStatus_Rejections(t *testing.T) {
	available := existingSlot("09:00", "10:30", domain.StatusAvailable)
	completed := existingSlot("11:00", "12:30", domain.StatusCompleted)
	repo := newFakeSlotRepo(available, completed)
	svc := newTestService(repo)

	studentID := int64(100)

	// Бронирование без студента
	_, err := svc.UpdateStatus(context.Background(), testInstructorID, available.ID, &models.UpdateStatusRequest{Status: "booked"})
	assert.ErrorIs(t, err, ErrStudentRequired)

	// Недопустимый переход
	_, err = svc.UpdateStatus(context.Background(), testInstructorID, completed.ID, &models.UpdateStatusRequest{Status: "booked", StudentID: &studentID})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(context.Background(), testInstructorID, available.ID, &models.UpdateStatusRequest{Status: "reserved"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), testInstructorID, uuid.New(), &models.UpdateStatusRequest{Status: "blocked"})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = svc.UpdateStatus(context.Background(), testInstructorID+1, available.ID, &models.UpdateStatusRequest{Status: "blocked"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete(t *testing.T) {
	available := existingSlot("09:00", "10:30", domain.StatusAvailable)
	booked := existingSlot("11:00", "12:30", domain.StatusBooked)
	repo := newFakeSlotRepo(available, booked)
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), testInstructorID, available.ID))
	_, err := repo.GetByID(context.Background(), available.ID)
	assert.ErrorIs(t, err, slotRepo.ErrSlotNotFound)

	// Слот с историей бронирования не удаляется физически
	err = svc.Delete(context.Background(), testInstructorID, booked.ID)
	assert.ErrorIs(t, err, ErrSlotNotDeletable)

	err = svc.Delete(context.Background(), testInstructorID, uuid.New())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestList_StatusFilter(t *testing.T) {
	available := existingSlot("09:00", "10:30", domain.StatusAvailable)
	booked := existingSlot("11:00", "12:30", domain.StatusBooked)
	repo := newFakeSlotRepo(available, booked)
	svc := newTestService(repo)

	status := "booked"
	resp, err := svc.List(context.Background(), &models.ListSlotsRequest{
		InstructorID: testInstructorID,
		Status:       &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, booked.ID.String(), resp.Slots[0].ID)

	bogus := "pending"
	_, err = svc.List(context.Background(), &models.ListSlotsRequest{InstructorID: testInstructorID, Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
