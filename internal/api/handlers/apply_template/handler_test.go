package apply_template

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-ScheduleService/internal/service/schedule"
	scheduleModels "github.com/m04kA/DS-ScheduleService/internal/service/schedule/models"
	reconcileSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/reconcile_schedule"
)

const testInstructorID int64 = 42

type fakeScheduleService struct {
	week    *scheduleModels.WeekResponse
	err     error
	applied []uuid.UUID
}

func (s *fakeScheduleService) ApplyTemplate(_ context.Context, _ int64, templateID uuid.UUID) (*scheduleModels.WeekResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.applied = append(s.applied, templateID)
	return s.week, nil
}

type fakeReconciler struct {
	resp     *reconcileSchedule.Response
	err      error
	requests []*reconcileSchedule.Request
}

func (r *fakeReconciler) Execute(_ context.Context, req *reconcileSchedule.Request) (*reconcileSchedule.Response, error) {
	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	return r.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newApplyRequest(templateID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/instructors/42/templates/"+templateID+"/apply", nil)
	return mux.SetURLVars(req, map[string]string{
		"instructorId": "42",
		"templateId":   templateID,
	})
}

func TestHandle_AppliesTemplateThenReconciles(t *testing.T) {
	templateID := uuid.New()
	svc := &fakeScheduleService{week: &scheduleModels.WeekResponse{InstructorID: testInstructorID}}
	reconciler := &fakeReconciler{resp: &reconcileSchedule.Response{
		InstructorID:   testInstructorID,
		GeneratedCount: 4,
	}}
	h := NewHandler(svc, reconciler, nopLogger{})

	w := httptest.NewRecorder()
	h.Handle(w, newApplyRequest(templateID.String()))

	require.Equal(t, http.StatusOK, w.Code)

	// Применение шаблона сразу перегенерирует слоты инструктора
	require.Len(t, reconciler.requests, 1)
	assert.Equal(t, testInstructorID, reconciler.requests[0].InstructorID)
	assert.Nil(t, reconciler.requests[0].StartDate)

	var resp ApplyTemplateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Week)
	require.NotNil(t, resp.Reconcile)
	assert.Equal(t, 4, resp.Reconcile.GeneratedCount)
}

func TestHandle_ServiceErrorSkipsReconcile(t *testing.T) {
	svc := &fakeScheduleService{err: schedule.ErrTemplateNotFound}
	reconciler := &fakeReconciler{}
	h := NewHandler(svc, reconciler, nopLogger{})

	w := httptest.NewRecorder()
	h.Handle(w, newApplyRequest(uuid.New().String()))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, reconciler.requests)
}

func TestHandle_ReconcileFailureReported(t *testing.T) {
	svc := &fakeScheduleService{week: &scheduleModels.WeekResponse{InstructorID: testInstructorID}}
	reconciler := &fakeReconciler{err: reconcileSchedule.ErrInternal}
	h := NewHandler(svc, reconciler, nopLogger{})

	w := httptest.NewRecorder()
	h.Handle(w, newApplyRequest(uuid.New().String()))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
