package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
	templateRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/template"
	whRepo "github.com/m04kA/DS-ScheduleService/internal/infra/storage/workinghours"
	"github.com/m04kA/DS-ScheduleService/internal/service/schedule/models"
)

// Service сервис для работы с недельным расписанием и шаблонами
type Service struct {
	whRepo       WorkingHoursRepository
	templateRepo TemplateRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	whRepo WorkingHoursRepository,
	templateRepo TemplateRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		whRepo:       whRepo,
		templateRepo: templateRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeek получает недельное расписание инструктора.
// Если расписание ещё не создано, сохраняет и возвращает стандартную
// неделю: будни 09:00-17:00, выходные отключены.
func (s *Service) GetWeek(ctx context.Context, instructorID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching working hours for instructor=%d", instructorID)

	week, err := s.whRepo.Get(ctx, instructorID)
	if err != nil {
		if !errors.Is(err, whRepo.ErrWorkingHoursNotFound) {
			s.logger.Error("GetWeek: repository error for instructor=%d: %v", instructorID, err)
			return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
		}

		// Первое обращение - создаём стандартную неделю
		defaultWeek := domain.DefaultWeeklyAvailability()
		err = s.txManager.Do(ctx, func(txCtx context.Context) error {
			return s.whRepo.ReplaceAll(txCtx, instructorID, defaultWeek)
		})
		if err != nil {
			s.logger.Error("GetWeek: failed to seed default week for instructor=%d: %v", instructorID, err)
			return nil, fmt.Errorf("%w: GetWeek - failed to seed default week: %v", ErrInternal, err)
		}

		s.logger.Info("GetWeek: seeded default week for instructor=%d", instructorID)
		week = &defaultWeek
	}

	return models.FromDomainWeek(instructorID, *week), nil
}

// UpdateDay заменяет конфигурацию одного дня недели целиком.
// Некорректная конфигурация отклоняется до записи - текущее состояние
// дня при этом не меняется.
func (s *Service) UpdateDay(ctx context.Context, instructorID int64, weekdayStr string, req *models.UpdateDayRequest) (*models.WeekResponse, error) {
	s.logger.Info("UpdateDay: instructor=%d, weekday=%s", instructorID, weekdayStr)

	weekday, err := domain.ParseWeekday(weekdayStr)
	if err != nil {
		s.logger.Warn("UpdateDay: unknown weekday=%q for instructor=%d", weekdayStr, instructorID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	day := req.ToDomainDay()
	day.Normalize()
	if err := day.Validate(); err != nil {
		s.logger.Warn("UpdateDay: invalid config for instructor=%d, weekday=%s: %v", instructorID, weekday, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.whRepo.UpsertDay(txCtx, instructorID, weekday, day)
	})
	if err != nil {
		s.logger.Error("UpdateDay: repository error for instructor=%d, weekday=%s: %v", instructorID, weekday, err)
		return nil, fmt.Errorf("%w: UpdateDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDay: updated instructor=%d, weekday=%s, enabled=%v, intervals=%d",
		instructorID, weekday, day.Enabled, len(day.Intervals))

	return s.GetWeek(ctx, instructorID)
}

// AddInterval добавляет один интервал к дню недели.
// Пересечение с существующими интервалами отклоняется целиком:
// конфигурация дня остаётся ровно той, что была до запроса.
func (s *Service) AddInterval(ctx context.Context, instructorID int64, weekdayStr string, req *models.AddIntervalRequest) (*models.WeekResponse, error) {
	s.logger.Info("AddInterval: instructor=%d, weekday=%s, interval=%s-%s",
		instructorID, weekdayStr, req.Start, req.End)

	weekday, err := domain.ParseWeekday(weekdayStr)
	if err != nil {
		s.logger.Warn("AddInterval: unknown weekday=%q for instructor=%d", weekdayStr, instructorID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	interval := req.ToDomainInterval()

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		week, err := s.whRepo.Get(txCtx, instructorID)
		if err != nil {
			if errors.Is(err, whRepo.ErrWorkingHoursNotFound) {
				defaultWeek := domain.DefaultWeeklyAvailability()
				if err := s.whRepo.ReplaceAll(txCtx, instructorID, defaultWeek); err != nil {
					return fmt.Errorf("%w: AddInterval - failed to seed default week: %v", ErrInternal, err)
				}
				week = &defaultWeek
			} else {
				return fmt.Errorf("%w: AddInterval - repository error: %v", ErrInternal, err)
			}
		}

		day := week.ForWeekday(weekday)
		if err := day.CanAddInterval(interval); err != nil {
			if errors.Is(err, domain.ErrIntervalsOverlap) {
				return fmt.Errorf("%w: %v", ErrIntervalConflict, err)
			}
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		day.Intervals = append(day.Intervals, interval)
		day.Normalize()

		return s.whRepo.UpsertDay(txCtx, instructorID, weekday, day)
	})
	if err != nil {
		if errors.Is(err, ErrIntervalConflict) || errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("AddInterval: rejected for instructor=%d, weekday=%s: %v", instructorID, weekday, err)
			return nil, err
		}
		s.logger.Error("AddInterval: failed for instructor=%d, weekday=%s: %v", instructorID, weekday, err)
		return nil, err
	}

	s.logger.Info("AddInterval: added %s-%s to instructor=%d, weekday=%s", req.Start, req.End, instructorID, weekday)

	return s.GetWeek(ctx, instructorID)
}

// CreateTemplate сохраняет шаблон расписания.
// Если неделя в запросе не указана, шаблон снимается с текущих рабочих
// часов инструктора.
func (s *Service) CreateTemplate(ctx context.Context, instructorID int64, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("CreateTemplate: instructor=%d, name=%q, default=%v", instructorID, req.Name, req.IsDefault)

	if req.Name == "" {
		s.logger.Warn("CreateTemplate: empty name for instructor=%d", instructorID)
		return nil, fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxTemplateNameLength {
		s.logger.Warn("CreateTemplate: name too long for instructor=%d", instructorID)
		return nil, fmt.Errorf("%w: template name exceeds %d characters", ErrInvalidInput, domain.MaxTemplateNameLength)
	}

	var week domain.WeeklyAvailability
	if req.Week != nil {
		week = *req.Week
	} else {
		current, err := s.whRepo.Get(ctx, instructorID)
		if err != nil {
			if errors.Is(err, whRepo.ErrWorkingHoursNotFound) {
				week = domain.DefaultWeeklyAvailability()
			} else {
				s.logger.Error("CreateTemplate: repository error for instructor=%d: %v", instructorID, err)
				return nil, fmt.Errorf("%w: CreateTemplate - repository error: %v", ErrInternal, err)
			}
		} else {
			week = *current
		}
	}

	if err := week.Validate(); err != nil {
		s.logger.Warn("CreateTemplate: invalid week for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	template := &domain.ScheduleTemplate{
		InstructorID: instructorID,
		Name:         req.Name,
		Week:         week,
		IsDefault:    req.IsDefault,
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if req.IsDefault {
			if err := s.templateRepo.ClearDefault(txCtx, instructorID); err != nil {
				return err
			}
		}
		created, err := s.templateRepo.Create(txCtx, template)
		if err != nil {
			return err
		}
		template = created
		return nil
	})
	if err != nil {
		s.logger.Error("CreateTemplate: failed for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: CreateTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTemplate: created template id=%s for instructor=%d", template.ID, instructorID)

	resp := models.FromDomainTemplate(template)
	return &resp, nil
}

// ListTemplates получает все шаблоны инструктора
func (s *Service) ListTemplates(ctx context.Context, instructorID int64) (*models.TemplateListResponse, error) {
	s.logger.Info("ListTemplates: instructor=%d", instructorID)

	templates, err := s.templateRepo.ListByInstructor(ctx, instructorID)
	if err != nil {
		s.logger.Error("ListTemplates: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: ListTemplates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplateList(templates), nil
}

// ApplyTemplate заменяет рабочие часы инструктора неделей из шаблона.
// Уже сгенерированные слоты при этом не трогаются - изменения доходят
// до календаря только через регенерацию.
func (s *Service) ApplyTemplate(ctx context.Context, instructorID int64, templateID uuid.UUID) (*models.WeekResponse, error) {
	s.logger.Info("ApplyTemplate: instructor=%d, template=%s", instructorID, templateID)

	template, err := s.getOwnedTemplate(ctx, instructorID, templateID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.whRepo.ReplaceAll(txCtx, instructorID, template.Week)
	})
	if err != nil {
		s.logger.Error("ApplyTemplate: failed for instructor=%d, template=%s: %v", instructorID, templateID, err)
		return nil, fmt.Errorf("%w: ApplyTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ApplyTemplate: applied template=%s to instructor=%d", templateID, instructorID)

	return models.FromDomainWeek(instructorID, template.Week), nil
}

// SetDefaultTemplate помечает шаблон как шаблон по умолчанию.
// Флаг default единственный на инструктора: с прежнего шаблона он
// снимается в той же транзакции.
func (s *Service) SetDefaultTemplate(ctx context.Context, instructorID int64, templateID uuid.UUID) error {
	s.logger.Info("SetDefaultTemplate: instructor=%d, template=%s", instructorID, templateID)

	if _, err := s.getOwnedTemplate(ctx, instructorID, templateID); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.templateRepo.ClearDefault(txCtx, instructorID); err != nil {
			return err
		}
		return s.templateRepo.SetDefault(txCtx, templateID)
	})
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("SetDefaultTemplate: failed for instructor=%d, template=%s: %v", instructorID, templateID, err)
		return fmt.Errorf("%w: SetDefaultTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetDefaultTemplate: template=%s is now default for instructor=%d", templateID, instructorID)
	return nil
}

// DeleteTemplate удаляет шаблон инструктора
func (s *Service) DeleteTemplate(ctx context.Context, instructorID int64, templateID uuid.UUID) error {
	s.logger.Info("DeleteTemplate: instructor=%d, template=%s", instructorID, templateID)

	if _, err := s.getOwnedTemplate(ctx, instructorID, templateID); err != nil {
		return err
	}

	if err := s.templateRepo.Delete(ctx, templateID); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("DeleteTemplate: failed for instructor=%d, template=%s: %v", instructorID, templateID, err)
		return fmt.Errorf("%w: DeleteTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTemplate: deleted template=%s for instructor=%d", templateID, instructorID)
	return nil
}

// getOwnedTemplate получает шаблон и проверяет, что он принадлежит инструктору
func (s *Service) getOwnedTemplate(ctx context.Context, instructorID int64, templateID uuid.UUID) (*domain.ScheduleTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("getOwnedTemplate: template=%s not found", templateID)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("getOwnedTemplate: repository error for template=%s: %v", templateID, err)
		return nil, fmt.Errorf("%w: getOwnedTemplate - repository error: %v", ErrInternal, err)
	}

	if template.InstructorID != instructorID {
		s.logger.Warn("getOwnedTemplate: access denied for instructor=%d to template=%s", instructorID, templateID)
		return nil, ErrAccessDenied
	}

	return template, nil
}
