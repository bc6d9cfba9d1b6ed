package apply_template

import (
	scheduleModels "github.com/m04kA/DS-ScheduleService/internal/service/schedule/models"
	reconcileSchedule "github.com/m04kA/DS-ScheduleService/internal/usecase/reconcile_schedule"
)

// ApplyTemplateResponse применённая неделя и сводка перегенерации слотов
type ApplyTemplateResponse struct {
	Week      *scheduleModels.WeekResponse `json:"week"`
	Reconcile *reconcileSchedule.Response  `json:"reconcile"`
}
