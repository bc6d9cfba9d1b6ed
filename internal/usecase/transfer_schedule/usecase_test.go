package transfer_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	whRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/workinghours"
	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

const testInstructorID int64 = 42

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (r *fakeSlotRepo) List(_ context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	var result []*domain.Slot
	for _, s := range r.slots {
		if s.InstructorID == filter.InstructorID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) error {
	for _, s := range slots {
		created := *s
		if created.ID == uuid.Nil {
			created.ID = uuid.New()
		}
		r.slots = append(r.slots, &created)
	}
	return nil
}

func (r *fakeSlotRepo) DeleteByInstructor(_ context.Context, instructorID int64) error {
	var kept []*domain.Slot
	for _, s := range r.slots {
		if s.InstructorID != instructorID {
			kept = append(kept, s)
		}
	}
	r.slots = kept
	return nil
}

type fakeWorkingHoursRepo struct {
	weeks map[int64]*domain.WeeklyAvailability
}

func newFakeWorkingHoursRepo() *fakeWorkingHoursRepo {
	return &fakeWorkingHoursRepo{weeks: make(map[int64]*domain.WeeklyAvailability)}
}

func (r *fakeWorkingHoursRepo) Get(_ context.Context, instructorID int64) (*domain.WeeklyAvailability, error) {
	week, ok := r.weeks[instructorID]
	if !ok {
		return nil, whRepo.ErrWorkingHoursNotFound
	}
	copied := *week
	return &copied, nil
}

func (r *fakeWorkingHoursRepo) ReplaceAll(_ context.Context, instructorID int64, week domain.WeeklyAvailability) error {
	copied := week
	r.weeks[instructorID] = &copied
	return nil
}

type fakeTemplateRepo struct {
	templates []*domain.ScheduleTemplate
}

func (r *fakeTemplateRepo) ListByInstructor(_ context.Context, instructorID int64) ([]*domain.ScheduleTemplate, error) {
	var result []*domain.ScheduleTemplate
	for _, t := range r.templates {
		if t.InstructorID == instructorID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error) {
	created := *t
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	r.templates = append(r.templates, &created)
	return &created, nil
}

func (r *fakeTemplateRepo) DeleteByInstructor(_ context.Context, instructorID int64) error {
	var kept []*domain.ScheduleTemplate
	for _, t := range r.templates {
		if t.InstructorID != instructorID {
			kept = append(kept, t)
		}
	}
	r.templates = kept
	return nil
}

type fakeExceptionRepo struct {
	exceptions []*domain.Exception
}

func (r *fakeExceptionRepo) ListByInstructor(_ context.Context, instructorID int64) ([]*domain.Exception, error) {
	var result []*domain.Exception
	for _, e := range r.exceptions {
		if e.InstructorID == instructorID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeExceptionRepo) Create(_ context.Context, e *domain.Exception) (*domain.Exception, error) {
	created := *e
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	r.exceptions = append(r.exceptions, &created)
	return &created, nil
}

func (r *fakeExceptionRepo) DeleteByInstructor(_ context.Context, instructorID int64) error {
	var kept []*domain.Exception
	for _, e := range r.exceptions {
		if e.InstructorID != instructorID {
			kept = append(kept, e)
		}
	}
	r.exceptions = kept
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

type fixture struct {
	uc         *UseCase
	slots      *fakeSlotRepo
	weeks      *fakeWorkingHoursRepo
	templates  *fakeTemplateRepo
	exceptions *fakeExceptionRepo
}

func newFixture() *fixture {
	f := &fixture{
		slots:      &fakeSlotRepo{},
		weeks:      newFakeWorkingHoursRepo(),
		templates:  &fakeTemplateRepo{},
		exceptions: &fakeExceptionRepo{},
	}
	f.uc = NewUseCase(f.slots, f.weeks, f.templates, f.exceptions, &fakeTxManager{}, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func seedSchedule(t *testing.T, f *fixture) {
	t.Helper()

	studentID := int64(100)
	require.NoError(t, f.slots.CreateBatch(context.Background(), []*domain.Slot{
		{
			InstructorID: testInstructorID,
			Date:         time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			StartTime:    types.TimeString("09:00"),
			EndTime:      types.TimeString("10:30"),
			Status:       domain.StatusAvailable,
		},
		{
			InstructorID: testInstructorID,
			Date:         time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			StartTime:    types.TimeString("11:00"),
			EndTime:      types.TimeString("12:30"),
			Status:       domain.StatusBooked,
			StudentID:    &studentID,
		},
	}))

	week := domain.DefaultWeeklyAvailability()
	require.NoError(t, f.weeks.ReplaceAll(context.Background(), testInstructorID, week))

	_, err := f.templates.Create(context.Background(), &domain.ScheduleTemplate{
		InstructorID: testInstructorID,
		Name:         "Обычная неделя",
		Week:         week,
		IsDefault:    true,
	})
	require.NoError(t, err)

	_, err = f.exceptions.Create(context.Background(), &domain.Exception{
		InstructorID: testInstructorID,
		Type:         domain.ExceptionVacation,
		StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestExport(t *testing.T) {
	f := newFixture()
	seedSchedule(t, f)

	payload, err := f.uc.Export(context.Background(), testInstructorID)
	require.NoError(t, err)

	assert.Len(t, payload.Slots, 2)
	assert.Len(t, payload.Templates, 1)
	assert.Len(t, payload.Exceptions, 1)
	assert.Equal(t, domain.DefaultWeeklyAvailability(), payload.WorkingHours)
	assert.Equal(t, "2026-03-01T12:00:00Z", payload.ExportDate)
}

func TestExport_NoWorkingHoursFallsBackToDefault(t *testing.T) {
	f := newFixture()

	payload, err := f.uc.Export(context.Background(), testInstructorID)
	require.NoError(t, err)

	assert.Empty(t, payload.Slots)
	assert.Equal(t, domain.DefaultWeeklyAvailability(), payload.WorkingHours)
}

func TestImport_RoundTrip(t *testing.T) {
	source := newFixture()
	seedSchedule(t, source)

	payload, err := source.uc.Export(context.Background(), testInstructorID)
	require.NoError(t, err)

	target := newFixture()
	resp, err := target.uc.Import(context.Background(), testInstructorID, payload)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.SlotsImported)
	assert.Equal(t, 1, resp.TemplatesImported)
	assert.Equal(t, 1, resp.ExceptionsImported)

	reExported, err := target.uc.Export(context.Background(), testInstructorID)
	require.NoError(t, err)
	assert.Equal(t, payload.Slots, reExported.Slots)
	assert.Equal(t, payload.WorkingHours, reExported.WorkingHours)
	assert.Equal(t, payload.Templates, reExported.Templates)
	assert.Equal(t, payload.Exceptions, reExported.Exceptions)
}

func TestImport_ReplacesExistingState(t *testing.T) {
	f := newFixture()
	seedSchedule(t, f)

	payload := &SchedulePayload{
		WorkingHours: domain.DefaultWeeklyAvailability(),
		Slots: []SlotPayload{
			{
				Date:      "2026-04-01",
				StartTime: "09:00",
				EndTime:   "10:30",
				Status:    "available",
			},
		},
	}

	resp, err := f.uc.Import(context.Background(), testInstructorID, payload)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.SlotsImported)
	assert.Len(t, f.slots.slots, 1)
	assert.Empty(t, f.templates.templates)
	assert.Empty(t, f.exceptions.exceptions)
}

func TestImport_InvalidPayloadLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	seedSchedule(t, f)

	tests := []struct {
		name    string
		payload *SchedulePayload
	}{
		{
			name: "bad slot status",
			payload: &SchedulePayload{
				WorkingHours: domain.DefaultWeeklyAvailability(),
				Slots:        []SlotPayload{{Date: "2026-04-01", StartTime: "09:00", EndTime: "10:30", Status: "pending"}},
			},
		},
		{
			name: "bad slot time",
			payload: &SchedulePayload{
				WorkingHours: domain.DefaultWeeklyAvailability(),
				Slots:        []SlotPayload{{Date: "2026-04-01", StartTime: "9:00", EndTime: "10:30", Status: "available"}},
			},
		},
		{
			name: "bad slot date",
			payload: &SchedulePayload{
				WorkingHours: domain.DefaultWeeklyAvailability(),
				Slots:        []SlotPayload{{Date: "01.04.2026", StartTime: "09:00", EndTime: "10:30", Status: "available"}},
			},
		},
		{
			name: "unnamed template",
			payload: &SchedulePayload{
				WorkingHours: domain.DefaultWeeklyAvailability(),
				Templates:    []TemplatePayload{{Week: domain.DefaultWeeklyAvailability()}},
			},
		},
		{
			name: "reversed exception range",
			payload: &SchedulePayload{
				WorkingHours: domain.DefaultWeeklyAvailability(),
				Exceptions:   []ExceptionPayload{{Type: "vacation", StartDate: "2026-07-14", EndDate: "2026-07-01"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Import(context.Background(), testInstructorID, tt.payload)
			assert.ErrorIs(t, err, ErrInvalidPayload)

			// Существующие данные не тронуты
			assert.Len(t, f.slots.slots, 2)
			assert.Len(t, f.templates.templates, 1)
			assert.Len(t, f.exceptions.exceptions, 1)
		})
	}
}

func TestImport_NilPayload(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Import(context.Background(), testInstructorID, nil)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = f.uc.Import(context.Background(), 0, &SchedulePayload{WorkingHours: domain.DefaultWeeklyAvailability()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
