package reconcile_schedule

import (
	"sort"
	"time"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
)

// GenerateSlots детерминированно превращает конфигурацию дня недели в
// список слотов на конкретную дату. Чистая функция: одинаковые входные
// данные дают одинаковые кортежи (дата, начало, конец, статус);
// идентификаторы слотам присваивает репозиторий при вставке.
//
// Внутри каждого интервала слоты нарезаются от его начала с шагом
// slotDuration + breakDuration. Слот никогда не пересекает границу
// интервала: кандидат, чей конец выходит за interval.End, отбрасывается,
// даже если остающийся хвост короче одного слота. Хвост просто не
// используется.
func GenerateSlots(instructorID int64, date time.Time, day domain.DayAvailability) []*domain.Slot {
	if !day.Enabled || len(day.Intervals) == 0 {
		return nil
	}

	// Защитный нижний порог: валидация рабочих часов отклоняет слишком
	// короткие слоты раньше, но генератор не должен зациклиться или
	// нарезать мусор, если конфигурация пришла в обход валидации
	slotDuration := day.SlotDurationMinutes
	if slotDuration < domain.MinSlotDurationMinutes {
		slotDuration = domain.MinSlotDurationMinutes
	}

	breakDuration := day.BreakDurationMinutes
	if breakDuration < 0 {
		breakDuration = 0
	}

	// Интервалы обходим в порядке возрастания начала, не трогая вход
	intervals := make([]domain.TimeInterval, len(day.Intervals))
	copy(intervals, day.Intervals)
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.IsBefore(intervals[j].Start)
	})

	dateOnly := domain.DateOnly(date)

	var slots []*domain.Slot
	for _, interval := range intervals {
		cursor := interval.Start

		for {
			slotEnd, err := cursor.AddMinutes(slotDuration)
			if err != nil {
				// Слот вышел за пределы суток
				break
			}
			if slotEnd.IsAfter(interval.End) {
				break
			}

			slots = append(slots, &domain.Slot{
				InstructorID: instructorID,
				Date:         dateOnly,
				StartTime:    cursor,
				EndTime:      slotEnd,
				Status:       domain.StatusAvailable,
			})

			next, err := cursor.AddMinutes(slotDuration + breakDuration)
			if err != nil {
				break
			}
			cursor = next
		}
	}

	return slots
}
