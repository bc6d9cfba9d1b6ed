package reconcile_schedule

import "github.com/m04kA/DS-ScheduleService/internal/domain"

// HasProtectedBookings сообщает, есть ли среди слотов дня подтверждённые
// или идущие занятия. Такой день полностью защищён от перегенерации:
// инструктор не может молча аннулировать подтверждённое занятие студента.
//
// Проверка всегда выполняется по свежезагруженному состоянию слотов
// внутри той же сериализуемой транзакции, что и применение изменений:
// студенческие бронирования могут появляться параллельно с
// редактированием расписания.
func HasProtectedBookings(daySlots []*domain.Slot) bool {
	return countProtectedBookings(daySlots) > 0
}

// countProtectedBookings считает защищённые слоты дня для отчёта UI
func countProtectedBookings(daySlots []*domain.Slot) int {
	count := 0
	for _, s := range daySlots {
		if s.IsProtected() {
			count++
		}
	}
	return count
}
