package reconcile_schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/DS-ScheduleService/internal/domain"
)

// Plan результат чистого планирования реконсиляции: какие слоты создать,
// какие удалить и что доложить вызывающему. Применение плана (удаление
// строго до вставки) выполняет usecase.
type Plan struct {
	ToCreate         []*domain.Slot
	ToDelete         []uuid.UUID
	RegeneratedDates []time.Time
	SkippedDates     []time.Time
	ProtectedDays    []ProtectedDay
	Warnings         []string
}

// ProtectedDay один защищённый день и количество занятых слотов в нём
type ProtectedDay struct {
	Date        time.Time
	BookedSlots int
}

// BuildPlan строит план реконсиляции: для каждой даты окна в порядке
// возрастания решает, перегенерировать ли день, пропустить его
// (защищён бронированиями) или оставить как есть.
//
// Чистая функция над загруженным состоянием: не обращается к хранилищу
// и не мутирует existing.
//
// Правила по дням:
//   - дата, закрытая исключением (отпуск, болезнь, праздник), слоты не
//     генерирует независимо от конфигурации дня недели: свободные слоты
//     снимаются, бронирования и история не трогаются;
//   - день с booked/in_progress слотами неприкосновенен: если новая
//     конфигурация изменила бы его слоты, дата попадает в SkippedDates,
//     слоты не трогаются; если вывод генератора совпадает с текущими
//     живыми слотами, день просто не учитывается;
//   - на незащищённом дне удаляются только available слоты, история
//     (blocked/cancelled/completed/no_show) остаётся;
//   - некорректная конфигурация дня недели не валит весь прогон: день
//     пропускается с предупреждением, остальные шесть обрабатываются.
func BuildPlan(instructorID int64, week domain.WeeklyAvailability, existing []*domain.Slot, startDate, endDate time.Time, excluded map[string]bool) *Plan {
	plan := &Plan{}

	byDate := groupByDate(existing)

	for date := domain.DateOnly(startDate); !date.After(domain.DateOnly(endDate)); date = date.AddDate(0, 0, 1) {
		day := week.ForDate(date)

		if excluded[dateKey(date)] {
			for _, s := range availableSlots(byDate[dateKey(date)]) {
				plan.ToDelete = append(plan.ToDelete, s.ID)
			}
			continue
		}

		if day.Enabled {
			if err := day.Validate(); err != nil {
				plan.Warnings = append(plan.Warnings,
					fmt.Sprintf("%s: malformed %s configuration, date left untouched: %v",
						date.Format(domain.DateFormat), domain.WeekdayOf(date), err))
				continue
			}
		}

		daySlots := byDate[dateKey(date)]
		desired := GenerateSlots(instructorID, date, day)

		if HasProtectedBookings(daySlots) {
			if slotTuplesEqual(desired, liveSlots(daySlots)) {
				// Конфигурация дня фактически не изменилась
				continue
			}
			plan.SkippedDates = append(plan.SkippedDates, date)
			plan.ProtectedDays = append(plan.ProtectedDays, ProtectedDay{
				Date:        date,
				BookedSlots: countProtectedBookings(daySlots),
			})
			continue
		}

		available := availableSlots(daySlots)

		if day.Enabled {
			if slotTuplesEqual(desired, available) {
				// Перегенерация дала бы тот же набор, не меняем идентификаторы
				continue
			}
			for _, s := range available {
				plan.ToDelete = append(plan.ToDelete, s.ID)
			}
			plan.ToCreate = append(plan.ToCreate, desired...)
			plan.RegeneratedDates = append(plan.RegeneratedDates, date)
			continue
		}

		// День выключен: свободные слоты снимаются, история остаётся
		for _, s := range available {
			plan.ToDelete = append(plan.ToDelete, s.ID)
		}
	}

	return plan
}

// coveredDates разворачивает исключения инструктора в множество дат,
// закрытых для генерации; рекуррентные исключения раскрываются от
// начала окна с годовым потолком
func coveredDates(exceptions []*domain.Exception, from time.Time) map[string]bool {
	covered := make(map[string]bool)
	for _, e := range exceptions {
		for _, d := range e.Dates(from) {
			covered[dateKey(d)] = true
		}
	}
	return covered
}

func groupByDate(slots []*domain.Slot) map[string][]*domain.Slot {
	byDate := make(map[string][]*domain.Slot, len(slots))
	for _, s := range slots {
		key := dateKey(s.Date)
		byDate[key] = append(byDate[key], s)
	}
	return byDate
}

func dateKey(date time.Time) string {
	return date.Format(domain.DateFormat)
}

func liveSlots(slots []*domain.Slot) []*domain.Slot {
	var live []*domain.Slot
	for _, s := range slots {
		if s.IsLive() {
			live = append(live, s)
		}
	}
	return live
}

func availableSlots(slots []*domain.Slot) []*domain.Slot {
	var available []*domain.Slot
	for _, s := range slots {
		if s.Status == domain.StatusAvailable {
			available = append(available, s)
		}
	}
	return available
}

// slotTuplesEqual сравнивает два набора слотов по кортежам
// (начало, конец), игнорируя идентификаторы и статусы
func slotTuplesEqual(a, b []*domain.Slot) bool {
	if len(a) != len(b) {
		return false
	}

	keysA := slotTupleKeys(a)
	keysB := slotTupleKeys(b)

	for i := range keysA {
		if keysA[i] != keysB[i] {
			return false
		}
	}
	return true
}

func slotTupleKeys(slots []*domain.Slot) []string {
	keys := make([]string, len(slots))
	for i, s := range slots {
		keys[i] = string(s.StartTime) + "-" + string(s.EndTime)
	}
	sort.Strings(keys)
	return keys
}
