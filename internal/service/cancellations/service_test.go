package cancellations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	cancellationRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/cancellation"
	slotRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/DS-ScheduleService/internal/service/cancellations/models"
	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

const (
	testInstructorID int64 = 42
	testStudentID    int64 = 100
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeCancellationRepo struct {
	requests map[uuid.UUID]*domain.CancellationRequest
}

func newFakeCancellationRepo() *fakeCancellationRepo {
	return &fakeCancellationRepo{requests: make(map[uuid.UUID]*domain.CancellationRequest)}
}

func (r *fakeCancellationRepo) Create(_ context.Context, req *domain.CancellationRequest) (*domain.CancellationRequest, error) {
	created := *req
	created.ID = uuid.New()
	created.CreatedAt = req.RequestDate
	created.UpdatedAt = req.RequestDate
	r.requests[created.ID] = &created
	return &created, nil
}

func (r *fakeCancellationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.CancellationRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, cancellationRepo.ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeCancellationRepo) ListByInstructor(_ context.Context, instructorID int64, status *domain.CancellationStatus) ([]*domain.CancellationRequest, error) {
	var result []*domain.CancellationRequest
	for _, req := range r.requests {
		if req.InstructorID != instructorID {
			continue
		}
		if status != nil && req.Status != *status {
			continue
		}
		result = append(result, req)
	}
	return result, nil
}

func (r *fakeCancellationRepo) Process(_ context.Context, req *domain.CancellationRequest) error {
	stored, ok := r.requests[req.ID]
	if !ok || !stored.CanBeProcessed() {
		return cancellationRepo.ErrRequestNotFound
	}
	copied := *req
	r.requests[req.ID] = &copied
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

func newTestService(cancellations *fakeCancellationRepo, slots *fakeSlotRepo, reopenOnApprove bool) *Service {
	svc := NewService(cancellations, slots, &fakeTxManager{}, reopenOnApprove, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc
}

func bookedSlot() *domain.Slot {
	studentID := testStudentID
	return &domain.Slot{
		ID:           uuid.New(),
		InstructorID: testInstructorID,
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("09:00"),
		EndTime:      types.TimeString("10:30"),
		Status:       domain.StatusBooked,
		StudentID:    &studentID,
	}
}

func TestCreateRequest(t *testing.T) {
	slot := bookedSlot()
	svc := newTestService(newFakeCancellationRepo(), newFakeSlotRepo(slot), true)

	resp, err := svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{
		SlotID: slot.ID.String(),
		Reason: "болею",
	})
	require.NoError(t, err)

	assert.Equal(t, slot.ID.String(), resp.SlotID)
	assert.Equal(t, testInstructorID, resp.InstructorID)
	assert.Equal(t, testStudentID, resp.StudentID)
	assert.Equal(t, string(domain.CancellationPending), resp.Status)
	assert.Equal(t, testNow, resp.RequestDate)
}

func TestCreateRequest_Rejections(t *testing.T) {
	slot := bookedSlot()
	available := bookedSlot()
	available.Status = domain.StatusAvailable
	available.StudentID = nil
	svc := newTestService(newFakeCancellationRepo(), newFakeSlotRepo(slot, available), true)

	_, err := svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{SlotID: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{SlotID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{SlotID: available.ID.String()})
	assert.ErrorIs(t, err, ErrSlotNotBooked)

	// Чужое занятие отменить нельзя
	_, err = svc.CreateRequest(context.Background(), testStudentID+1, &models.CreateRequest{SlotID: slot.ID.String()})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestProcess_ApproveWithReopen(t *testing.T) {
	slot := bookedSlot()
	slots := newFakeSlotRepo(slot)
	cancellations := newFakeCancellationRepo()
	svc := newTestService(cancellations, slots, true)

	created, err := svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{SlotID: slot.ID.String()})
	require.NoError(t, err)
	requestID := uuid.MustParse(created.ID)

	refund := 1500.0
	resp, err := svc.Process(context.Background(), testInstructorID, requestID, &models.ProcessRequest{
		Action:       models.ActionApprove,
		RefundAmount: &refund,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.CancellationApproved), resp.Request.Status)
	assert.Equal(t, &refund, resp.Request.RefundAmount)
	require.NotNil(t, resp.Request.ProcessedAt)
	assert.Equal(t, testNow, *resp.Request.ProcessedAt)

	// Исходный слот сохраняет историю, время возвращается новым слотом
	assert.Equal(t, domain.StatusCancelled, slot.Status)
	require.NotNil(t, resp.ReopenedSlotID)
	reopened, err := slots.GetByID(context.Background(), uuid.MustParse(*resp.ReopenedSlotID))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, reopened.Status)
	assert.Equal(t, slot.StartTime, reopened.StartTime)
	assert.Equal(t, slot.EndTime, reopened.EndTime)
	assert.Nil(t, reopened.StudentID)
}

func TestProcess_ApproveReopenOverride(t *testing.T) {
	slot := bookedSlot()
	slots := newFakeSlotRepo(slot)
	svc := newTestService(newFakeCancellationRepo(), slots, true)

	created, err := svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{SlotID: slot.ID.String()})
	require.NoError(t, err)

	noReopen := false
	resp, err := svc.Process(context.Background(), testInstructorID, uuid.MustParse(created.ID), &models.ProcessRequest{
		Action:     models.ActionApprove,
		ReopenSlot: &noReopen,
	})
	require.NoError(t, err)

	assert.Nil(t, resp.ReopenedSlotID)
	assert.Equal(t, domain.StatusCancelled, slot.Status)
	assert.Len(t, slots.slots, 1)
}

func TestProcess_RejectRequiresComment(t *testing.T) {
	slot := bookedSlot()
	svc := newTestService(newFakeCancellationRepo(), newFakeSlotRepo(slot), true)

	created, err := svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{SlotID: slot.ID.String()})
	require.NoError(t, err)
	requestID := uuid.MustParse(created.ID)

	_, err = svc.Process(context.Background(), testInstructorID, requestID, &models.ProcessRequest{Action: models.ActionReject})
	assert.ErrorIs(t, err, ErrCommentRequired)

	comment := "перенос невозможен"
	resp, err := svc.Process(context.Background(), testInstructorID, requestID, &models.ProcessRequest{
		Action:       models.ActionReject,
		AdminComment: &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.CancellationRejected), resp.Request.Status)
	// Отклонение не трогает занятие
	assert.Equal(t, domain.StatusBooked, slot.Status)
	assert.Nil(t, resp.ReopenedSlotID)
}

func TestProcess_TerminalStates(t *testing.T) {
	slot := bookedSlot()
	svc := newTestService(newFakeCancellationRepo(), newFakeSlotRepo(slot), false)

	created, err := svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{SlotID: slot.ID.String()})
	require.NoError(t, err)
	requestID := uuid.MustParse(created.ID)

	_, err = svc.Process(context.Background(), testInstructorID, requestID, &models.ProcessRequest{Action: models.ActionApprove})
	require.NoError(t, err)

	// Повторная обработка невозможна
	_, err = svc.Process(context.Background(), testInstructorID, requestID, &models.ProcessRequest{Action: models.ActionApprove})
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestProcess_AccessAndValidation(t *testing.T) {
	slot := bookedSlot()
	svc := newTestService(newFakeCancellationRepo(), newFakeSlotRepo(slot), true)

	created, err := svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{SlotID: slot.ID.String()})
	require.NoError(t, err)
	requestID := uuid.MustParse(created.ID)

	_, err = svc.Process(context.Background(), testInstructorID+1, requestID, &models.ProcessRequest{Action: models.ActionApprove})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Process(context.Background(), testInstructorID, uuid.New(), &models.ProcessRequest{Action: models.ActionApprove})
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = svc.Process(context.Background(), testInstructorID, requestID, &models.ProcessRequest{Action: "postpone"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_StatusFilter(t *testing.T) {
	slot := bookedSlot()
	cancellations := newFakeCancellationRepo()
	svc := newTestService(cancellations, newFakeSlotRepo(slot), true)

	created, err := svc.CreateRequest(context.Background(), testStudentID, &models.CreateRequest{SlotID: slot.ID.String()})
	require.NoError(t, err)

	pending := string(domain.CancellationPending)
	resp, err := svc.List(context.Background(), &models.ListRequest{InstructorID: testInstructorID, Status: &pending})
	require.NoError(t, err)
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, created.ID, resp.Requests[0].ID)

	approved := string(domain.CancellationApproved)
	resp, err = svc.List(context.Background(), &models.ListRequest{InstructorID: testInstructorID, Status: &approved})
	require.NoError(t, err)
	assert.Empty(t, resp.Requests)

	bogus := "unknown"
	_, err = svc.List(context.Background(), &models.ListRequest{InstructorID: testInstructorID, Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
