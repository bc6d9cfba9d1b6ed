package schedule

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	templateRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/template"
	whRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/workinghours"
	"github.com/m04kA/DS-ScheduleService/internal/service/schedule/models"
)

const testInstructorID int64 = 42

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

func (r *fakeWorkingHoursRepo) UpsertDay(_ context.Context, instructorID int64, weekday domain.Weekday, day domain.DayAvailability) error {
	week, ok := r.weeks[instructorID]
	if !ok {
		seeded := domain.WeeklyAvailability{}
		week = &seeded
		r.weeks[instructorID] = week
	}
	week.SetDay(weekday, day)
	return nil
}

func (r *fakeWorkingHoursRepo) ReplaceAll(_ context.Context, instructorID int64, week domain.WeeklyAvailability) error {
	copied := week
	r.weeks[instructorID] = &copied
	return nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*domain.ScheduleTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]*domain.ScheduleTemplate)}
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error) {
	created := *t
	created.ID = uuid.New()
	r.templates[created.ID] = &created
	return &created, nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ScheduleTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	copied := *t
	return &copied, nil
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

func (r *fakeTemplateRepo) ClearDefault(_ context.Context, instructorID int64) error {
	for _, t := range r.templates {
		if t.InstructorID == instructorID {
			t.IsDefault = false
		}
	}
	return nil
}

func (r *fakeTemplateRepo) SetDefault(_ context.Context, id uuid.UUID) error {
	t, ok := r.templates[id]
	if !ok {
		return templateRepo.ErrTemplateNotFound
	}
	t.IsDefault = true
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.templates[id]; !ok {
		return templateRepo.ErrTemplateNotFound
	}
	delete(r.templates, id)
	return nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(whr *fakeWorkingHoursRepo, templates *fakeTemplateRepo) *Service {
	return NewService(whr, templates, &fakeTxManager{}, nopLogger{})
}

func TestGetWeek_SeedsDefaultOnFirstAccess(t *testing.T) {
	whr := newFakeWorkingHoursRepo()
	svc := newTestService(whr, newFakeTemplateRepo())

	resp, err := svc.GetWeek(context.Background(), testInstructorID)
	require.NoError(t, err)

	assert.Equal(t, testInstructorID, resp.InstructorID)
	require.Len(t, resp.Days, 7)
	monday := resp.Days["monday"]
	assert.True(t, monday.Enabled)
	require.Len(t, monday.Intervals, 1)
	assert.Equal(t, models.IntervalPayload{Start: "09:00", End: "17:00"}, monday.Intervals[0])
	assert.False(t, resp.Days["saturday"].Enabled)

	// Стандартная неделя сохранена, а не только возвращена
	_, err = whr.Get(context.Background(), testInstructorID)
	assert.NoError(t, err)
}

func TestUpdateDay(t *testing.T) {
	whr := newFakeWorkingHoursRepo()
	svc := newTestService(whr, newFakeTemplateRepo())

	resp, err := svc.UpdateDay(context.Background(), testInstructorID, "saturday", &models.UpdateDayRequest{
		Enabled:              true,
		Intervals:            []models.IntervalPayload{{Start: "14:00", End: "18:00"}, {Start: "09:00", End: "12:00"}},
		SlotDurationMinutes:  60,
		BreakDurationMinutes: 10,
	})
	require.NoError(t, err)

	saturday := resp.Days["saturday"]
	assert.True(t, saturday.Enabled)
	require.Len(t, saturday.Intervals, 2)
	// Интервалы нормализованы по возрастанию
	assert.Equal(t, "09:00", saturday.Intervals[0].Start)
	assert.Equal(t, "14:00", saturday.Intervals[1].Start)
}

func TestUpdateDay_Rejections(t *testing.T) {
	whr := newFakeWorkingHoursRepo()
	svc := newTestService(whr, newFakeTemplateRepo())

	_, err := svc.UpdateDay(context.Background(), testInstructorID, "someday", &models.UpdateDayRequest{
		SlotDurationMinutes: 90, BreakDurationMinutes: 15,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateDay(context.Background(), testInstructorID, "monday", &models.UpdateDayRequest{
		Enabled:              true,
		Intervals:            []models.IntervalPayload{{Start: "09:00", End: "13:00"}, {Start: "12:00", End: "16:00"}},
		SlotDurationMinutes:  90,
		BreakDurationMinutes: 15,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Отклонённый запрос не трогает хранилище
	_, err = whr.Get(context.Background(), testInstructorID)
	assert.ErrorIs(t, err, whRepo.ErrWorkingHoursNotFound)
}

func TestAddInterval(t *testing.T) {
	whr := newFakeWorkingHoursRepo()
	svc := newTestService(whr, newFakeTemplateRepo())

	resp, err := svc.AddInterval(context.Background(), testInstructorID, "monday", &models.AddIntervalRequest{
		Start: "18:00",
		End:   "20:00",
	})
	require.NoError(t, err)

	monday := resp.Days["monday"]
	require.Len(t, monday.Intervals, 2)
	assert.Equal(t, "09:00", monday.Intervals[0].Start)
	assert.Equal(t, "18:00", monday.Intervals[1].Start)
}

func TestAddInterval_OverlapRejectedWholesale(t *testing.T) {
	whr := newFakeWorkingHoursRepo()
	svc := newTestService(whr, newFakeTemplateRepo())

	// Сеем стандартную неделю: понедельник 09:00-17:00
	_, err := svc.GetWeek(context.Background(), testInstructorID)
	require.NoError(t, err)

	_, err = svc.AddInterval(context.Background(), testInstructorID, "monday", &models.AddIntervalRequest{
		Start: "16:00",
		End:   "19:00",
	})
	assert.ErrorIs(t, err, ErrIntervalConflict)

	// Конфигурация дня осталась прежней
	week, err := whr.Get(context.Background(), testInstructorID)
	require.NoError(t, err)
	assert.Len(t, week.Monday.Intervals, 1)
}

func TestCreateTemplate_FromCurrentWeek(t *testing.T) {
	whr := newFakeWorkingHoursRepo()
	templates := newFakeTemplateRepo()
	svc := newTestService(whr, templates)

	resp, err := svc.CreateTemplate(context.Background(), testInstructorID, &models.CreateTemplateRequest{
		Name: "Обычная неделя",
	})
	require.NoError(t, err)

	assert.Equal(t, "Обычная неделя", resp.Name)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultWeeklyAvailability(), resp.Week)

	_, err = svc.CreateTemplate(context.Background(), testInstructorID, &models.CreateTemplateRequest{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateTemplate_DefaultFlagIsExclusive(t *testing.T) {
	templates := newFakeTemplateRepo()
	svc := newTestService(newFakeWorkingHoursRepo(), templates)

	first, err := svc.CreateTemplate(context.Background(), testInstructorID, &models.CreateTemplateRequest{
		Name: "Зима", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := svc.CreateTemplate(context.Background(), testInstructorID, &models.CreateTemplateRequest{
		Name: "Лето", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	stored, err := templates.GetByID(context.Background(), uuid.MustParse(first.ID))
	require.NoError(t, err)
	assert.False(t, stored.IsDefault)
}

func TestApplyTemplate(t *testing.T) {
	whr := newFakeWorkingHoursRepo()
	templates := newFakeTemplateRepo()
	svc := newTestService(whr, templates)

	week := domain.DefaultWeeklyAvailability()
	week.SetDay(domain.Saturday, domain.DayAvailability{
		Enabled:              true,
		Intervals:            []domain.TimeInterval{{Start: "10:00", End: "14:00"}},
		SlotDurationMinutes:  60,
		BreakDurationMinutes: 0,
	})

	created, err := svc.CreateTemplate(context.Background(), testInstructorID, &models.CreateTemplateRequest{
		Name: "С субботой",
		Week: &week,
	})
	require.NoError(t, err)

	resp, err := svc.ApplyTemplate(context.Background(), testInstructorID, uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.True(t, resp.Days["saturday"].Enabled)

	stored, err := whr.Get(context.Background(), testInstructorID)
	require.NoError(t, err)
	assert.Equal(t, week, *stored)
}

func TestTemplate_OwnershipAndNotFound(t *testing.T) {
	svc := newTestService(newFakeWorkingHoursRepo(), newFakeTemplateRepo())

	created, err := svc.CreateTemplate(context.Background(), testInstructorID, &models.CreateTemplateRequest{Name: "Моя"})
	require.NoError(t, err)
	templateID := uuid.MustParse(created.ID)

	_, err = svc.ApplyTemplate(context.Background(), testInstructorID+1, templateID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.DeleteTemplate(context.Background(), testInstructorID+1, templateID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ApplyTemplate(context.Background(), testInstructorID, uuid.New())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestSetDefaultTemplate(t *testing.T) {
	templates := newFakeTemplateRepo()
	svc := newTestService(newFakeWorkingHoursRepo(), templates)

	first, err := svc.CreateTemplate(context.Background(), testInstructorID, &models.CreateTemplateRequest{Name: "Зима", IsDefault: true})
	require.NoError(t, err)
	second, err := svc.CreateTemplate(context.Background(), testInstructorID, &models.CreateTemplateRequest{Name: "Лето"})
	require.NoError(t, err)

	require.NoError(t, svc.SetDefaultTemplate(context.Background(), testInstructorID, uuid.MustParse(second.ID)))

	winter, err := templates.GetByID(context.Background(), uuid.MustParse(first.ID))
	require.NoError(t, err)
	assert.False(t, winter.IsDefault)
	summer, err := templates.GetByID(context.Background(), uuid.MustParse(second.ID))
	require.NoError(t, err)
	assert.True(t, summer.IsDefault)
}

func TestDeleteTemplate(t *testing.T) {
	templates := newFakeTemplateRepo()
	svc := newTestService(newFakeWorkingHoursRepo(), templates)

	created, err := svc.CreateTemplate(context.Background(), testInstructorID, &models.CreateTemplateRequest{Name: "Временный"})
	require.NoError(t, err)
	templateID := uuid.MustParse(created.ID)

	require.NoError(t, svc.DeleteTemplate(context.Background(), testInstructorID, templateID))

	list, err := svc.ListTemplates(context.Background(), testInstructorID)
	require.NoError(t, err)
	assert.Empty(t, list.Templates)
}
