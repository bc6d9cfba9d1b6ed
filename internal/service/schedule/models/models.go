package models

import (
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	"github.com/m04kA/DS-ScheduleService/pkg/types"
)

// Request модели

// IntervalPayload временной интервал в формате HH:MM
type IntervalPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpdateDayRequest запрос на полную замену конфигурации дня недели
type UpdateDayRequest struct {
	Enabled              bool              `json:"enabled"`
	Intervals            []IntervalPayload `json:"intervals"`
	SlotDurationMinutes  int               `json:"slotDurationMinutes"`
	BreakDurationMinutes int               `json:"breakDurationMinutes"`
}

// AddIntervalRequest запрос на добавление интервала к дню недели
type AddIntervalRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CreateTemplateRequest запрос на сохранение шаблона расписания.
// Если Week не передана, шаблон снимается с текущих рабочих часов.
type CreateTemplateRequest struct {
	Name      string                     `json:"name"`
	Week      *domain.WeeklyAvailability `json:"week,omitempty"`
	IsDefault bool                       `json:"isDefault"`
}

// Response модели

// DayResponse конфигурация одного дня недели
type DayResponse struct {
	Enabled              bool              `json:"enabled"`
	Intervals            []IntervalPayload `json:"intervals"`
	SlotDurationMinutes  int               `json:"slotDurationMinutes"`
	BreakDurationMinutes int               `json:"breakDurationMinutes"`
}

// WeekResponse недельное расписание инструктора
type WeekResponse struct {
	InstructorID int64                  `json:"instructorId"`
	Days         map[string]DayResponse `json:"days"`
}

// TemplateResponse шаблон расписания
type TemplateResponse struct {
	ID           string                    `json:"id"`
	InstructorID int64                     `json:"instructorId"`
	Name         string                    `json:"name"`
	Week         domain.WeeklyAvailability `json:"week"`
	IsDefault    bool                      `json:"isDefault"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

// TemplateListResponse список шаблонов инструктора
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// ToDomainDay конвертирует request в доменную конфигурацию дня
func (r *UpdateDayRequest) ToDomainDay() domain.DayAvailability {
	day := domain.DayAvailability{
		Enabled:              r.Enabled,
		Intervals:            make([]domain.TimeInterval, 0, len(r.Intervals)),
		SlotDurationMinutes:  r.SlotDurationMinutes,
		BreakDurationMinutes: r.BreakDurationMinutes,
	}
	for _, interval := range r.Intervals {
		day.Intervals = append(day.Intervals, domain.TimeInterval{
			Start: types.TimeString(interval.Start),
			End:   types.TimeString(interval.End),
		})
	}
	return day
}

// ToDomainInterval конвертирует request в доменный интервал
func (r *AddIntervalRequest) ToDomainInterval() domain.TimeInterval {
	return domain.TimeInterval{
		Start: types.TimeString(r.Start),
		End:   types.TimeString(r.End),
	}
}

// FromDomainWeek конвертирует доменную неделю в response
func FromDomainWeek(instructorID int64, week domain.WeeklyAvailability) *WeekResponse {
	resp := &WeekResponse{
		InstructorID: instructorID,
		Days:         make(map[string]DayResponse, len(domain.AllWeekdays)),
	}
	for _, weekday := range domain.AllWeekdays {
		resp.Days[string(weekday)] = fromDomainDay(week.ForWeekday(weekday))
	}
	return resp
}

// FromDomainTemplate конвертирует доменный шаблон в response
func FromDomainTemplate(t *domain.ScheduleTemplate) TemplateResponse {
	return TemplateResponse{
		ID:           t.ID.String(),
		InstructorID: t.InstructorID,
		Name:         t.Name,
		Week:         t.Week,
		IsDefault:    t.IsDefault,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// FromDomainTemplateList конвертирует список шаблонов в response
func FromDomainTemplateList(templates []*domain.ScheduleTemplate) *TemplateListResponse {
	resp := &TemplateListResponse{Templates: make([]TemplateResponse, 0, len(templates))}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, FromDomainTemplate(t))
	}
	return resp
}

func fromDomainDay(day domain.DayAvailability) DayResponse {
	resp := DayResponse{
		Enabled:              day.Enabled,
		Intervals:            make([]IntervalPayload, 0, len(day.Intervals)),
		SlotDurationMinutes:  day.SlotDurationMinutes,
		BreakDurationMinutes: day.BreakDurationMinutes,
	}
	for _, interval := range day.Intervals {
		resp.Intervals = append(resp.Intervals, IntervalPayload{
			Start: interval.Start.String(),
			End:   interval.End.String(),
		})
	}
	return resp
}
