package availability

import (
	"time"

	"github.com/slotline/availability-service/internal/domain"
)

// Interval абсолютный полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет РЕАЛЬНОЕ пересечение двух полуоткрытых интервалов
// Интервалы пересекаются, только если:
// - начало одного СТРОГО раньше конца другого И
// - конец одного СТРОГО позже начала другого
//
// Граничные случаи (конец одного совпадает с началом другого) пересечением НЕ считаются:
// - Слот 11:30-12:00, занятость 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, занятость 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, занятость 12:00-12:30 → НЕТ пересечения (граничат)
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Params входные данные генератора слотов на один календарный день
// Генератор не имеет состояния и не выполняет I/O: все данные дня
// (рабочие часы, перерывы, отгулы, занятость) подаются вызывающей стороной
type Params struct {
	// Date календарная дата; компонент времени игнорируется
	Date time.Time

	// DurationMinutes длительность услуги; при нуле или отрицательном
	// значении слоты не генерируются
	DurationMinutes int

	// StepMinutes шаг генерации кандидатов; 0 означает "равен длительности"
	// (непересекающиеся слоты), значения меньше floor поднимаются до него
	StepMinutes int

	// Day рабочие часы на день недели даты; nil означает выходной
	Day *domain.BusinessDay

	// Breaks повторяющиеся перерывы; применяются только записи,
	// чей день недели совпадает с днём недели даты
	Breaks []domain.BreakWindow

	// TimeOff абсолютные окна недоступности (отпуск, праздники)
	TimeOff []domain.TimeOffWindow

	// Busy уже занятые интервалы (подтверждённые записи)
	Busy []Interval

	// BlockPastSlots отбрасывать ли кандидатов, начинающихся раньше Now
	// Включается только в публичной витрине бронирования, админка видит весь день
	BlockPastSlots bool

	// Now текущий момент; используется только при BlockPastSlots
	Now time.Time
}

// GenerateSlots вычисляет упорядоченный список доступных слотов на один день
//
// Политика ошибок: некорректная конфигурация (выходной, перепутанные часы,
// неположительная длительность) даёт пустой результат, а не ошибку —
// "нет доступности" вместо исключения
//
// Гарантии:
// - слоты целиком лежат внутри рабочего дня; слот, заканчивающийся ровно
//   в момент закрытия, допустим
// - слоты не пересекаются ни с одним перерывом, отгулом или занятым
//   интервалом (полуоткрытая семантика, касание границ не пересечение)
// - результат отсортирован по времени начала (обход курсора монотонный)
// - входные данные не модифицируются
func GenerateSlots(p Params) []domain.SlotCandidate {
	slots := make([]domain.SlotCandidate, 0)

	if p.DurationMinutes <= 0 {
		return slots
	}

	weekday := domain.WeekdayOfDate(p.Date)

	// День без рабочих часов или с перепутанными границами считается закрытым
	if p.Day == nil || !p.Day.HasHours() {
		return slots
	}
	// Рабочие часы чужого дня недели не применяются
	if p.Day.Weekday != weekday {
		return slots
	}

	day := dateOnly(p.Date)

	dayStart, err := p.Day.OpenTime.OnDate(day)
	if err != nil {
		return slots
	}
	dayEnd, err := p.Day.CloseTime.OnDate(day)
	if err != nil {
		return slots
	}

	step := p.StepMinutes
	if step <= 0 {
		step = p.DurationMinutes
	}
	if step < domain.MinStepMinutes {
		step = domain.MinStepMinutes
	}

	blocked := collectBlockedIntervals(day, weekday, p.Breaks, p.TimeOff, p.Busy)

	duration := time.Duration(p.DurationMinutes) * time.Minute
	stride := time.Duration(step) * time.Minute

	for cursor := dayStart; cursor.Before(dayEnd); cursor = cursor.Add(stride) {
		slotEnd := cursor.Add(duration)

		// Слот должен помещаться до закрытия; конец ровно в момент
		// закрытия допустим
		if slotEnd.After(dayEnd) {
			break
		}

		if p.BlockPastSlots && cursor.Before(p.Now) {
			continue
		}

		if overlapsAny(Interval{Start: cursor, End: slotEnd}, blocked) {
			continue
		}

		slots = append(slots, domain.SlotCandidate{
			StartsAt: cursor,
			EndsAt:   slotEnd,
			Label:    cursor.Format(domain.TimeFormat),
		})
	}

	return slots
}

// BlockedIntervals материализует все окна недоступности дня в абсолютные
// интервалы: отгулы и занятость как есть, перерывы только для совпадающего
// дня недели. Используется генератором и write-time проверкой при создании записи
func BlockedIntervals(
	date time.Time,
	breaks []domain.BreakWindow,
	timeOff []domain.TimeOffWindow,
	busy []Interval,
) []Interval {
	return collectBlockedIntervals(dateOnly(date), domain.WeekdayOfDate(date), breaks, timeOff, busy)
}

func collectBlockedIntervals(
	day time.Time,
	weekday domain.Weekday,
	breaks []domain.BreakWindow,
	timeOff []domain.TimeOffWindow,
	busy []Interval,
) []Interval {
	blocked := make([]Interval, 0, len(breaks)+len(timeOff)+len(busy))

	for _, b := range breaks {
		if b.Weekday != weekday {
			continue
		}
		start, err := b.StartTime.OnDate(day)
		if err != nil {
			continue
		}
		end, err := b.EndTime.OnDate(day)
		if err != nil {
			continue
		}
		blocked = append(blocked, Interval{Start: start, End: end})
	}

	for _, t := range timeOff {
		blocked = append(blocked, Interval{Start: t.StartsAt, End: t.EndsAt})
	}

	blocked = append(blocked, busy...)

	return blocked
}

func overlapsAny(slot Interval, blocked []Interval) bool {
	for _, b := range blocked {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}

// dateOnly обнуляет компонент времени, сохраняя локацию
func dateOnly(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}
