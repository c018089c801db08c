package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/cache"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/realtime"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// GenerateTimeSlots строит список слотов мастера на дату для услуги заданной длительности.
//
// Занятые интервалы берутся через кэш (один запрос к хранилищу на ключ).
// Смены обходятся с шагом политики от начала до конца (конец не включается,
// кроме смены через полночь, заканчивающейся ровно в 00:00). Слоты на сегодня
// раньше now + LeadTime в результат не попадают вовсе. Повторяющееся время
// из следующих смен пропускается. Результат отсортирован через SortTimeSlots.
//
// Ошибка загрузки не возвращается: пользователь получает сообщение через Notifier,
// а результатом будет пустой список.
func (uc *UseCase) GenerateTimeSlots(
	ctx context.Context,
	workingHoursRanges []string,
	selectedDate time.Time,
	employeeID int64,
	serviceDuration int,
) []domain.TimeSlot {
	if len(workingHoursRanges) == 0 || selectedDate.IsZero() || employeeID <= 0 || serviceDuration <= 0 {
		return []domain.TimeSlot{}
	}

	key := cache.NewKey(employeeID, selectedDate)
	unavailable, err := uc.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]domain.UnavailableSlot, error) {
		return uc.appointmentRepo.GetUnavailableSlots(ctx, employeeID, selectedDate)
	})
	if err != nil {
		uc.logger.Error("GenerateTimeSlots: failed to load unavailable slots for %s: %v", key, err)
		if uc.notifier != nil {
			uc.notifier.NotifyError(ctx, msgFetchFailed)
		}
		return []domain.TimeSlot{}
	}

	interval := uc.checker.Policy().SlotInterval
	seen := make(map[string]struct{})
	slots := make([]domain.TimeSlot, 0)

	for _, raw := range workingHoursRanges {
		r, err := types.ParseTimeRange(raw)
		if err != nil {
			uc.logger.Warn("GenerateTimeSlots: skip malformed range %q for employee=%d: %v", raw, employeeID, err)
			continue
		}

		for _, c := range walkRange(r, interval) {
			// на сегодня слоты раньше минимального запаса не показываем
			if uc.checker.IsWithinLeadTime(selectedDate, c.minutes, c.afterMidnight) {
				continue
			}

			t := types.MinutesToTime(c.minutes)
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}

			slots = append(slots, domain.TimeSlot{
				Time:            t,
				IsAvailable:     uc.checker.IsSlotAvailable(c.minutes, unavailable, selectedDate, serviceDuration, workingHoursRanges),
				IsAfterMidnight: c.afterMidnight,
			})
		}
	}

	uc.record(slots)

	return availability.SortTimeSlots(slots)
}

// Subscribe подписывает на изменения записей мастера в дату.
// Вызывающий обязан вызвать Unsubscribe, когда обновления больше не нужны.
func (uc *UseCase) Subscribe(employeeID int64, date time.Time) *realtime.Subscription {
	return uc.subscriber.Subscribe(cache.NewKey(employeeID, date))
}

type candidate struct {
	minutes       int
	afterMidnight bool
}

// walkRange перечисляет кандидатов смены с шагом interval
func walkRange(r types.TimeRange, interval int) []candidate {
	start := r.Start.Minutes()
	end := r.End.Minutes()
	crosses := r.CrossesMidnight()
	if crosses {
		end += types.MinutesPerDay
	}
	// смена через полночь до 00:00 получает последний слот ровно в полночь
	includeEnd := crosses && r.End.Minutes() == 0

	out := make([]candidate, 0, (end-start)/interval+1)
	for m := start; m < end || (includeEnd && m == end); m += interval {
		out = append(out, candidate{
			minutes:       m % types.MinutesPerDay,
			afterMidnight: m >= types.MinutesPerDay,
		})
	}
	return out
}

func (uc *UseCase) record(slots []domain.TimeSlot) {
	if uc.recorder == nil {
		return
	}
	available := 0
	for _, s := range slots {
		if s.IsAvailable {
			available++
		}
	}
	uc.recorder.AddGeneratedSlots(available, len(slots)-available)
}
