package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case частичного обновления записи, включая перенос слота
type UseCase struct {
	apptRepo     AppointmentRepository
	txManager    TransactionManager
	grid         *domain.TimeGrid
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	grid *domain.TimeGrid,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		txManager:    txManager,
		grid:         grid,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case обновления записи.
//
// Перенос слота - одно логическое обновление той же строки (никогда не
// delete+create). Проверка занятости целевого слота исключает саму
// переносимую запись: её текущий слот вот-вот освободится, поэтому перенос
// на своё же время не конфликтует сам с собой. Проверка и запись выполняются
// в одной сериализуемой транзакции.
//
// Обновление полей без переноса (имя, email, телефон, причина) не требует
// ни проверки сетки, ни проверки занятости.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d, reschedule=%t", req.ID, req.HasReschedule())

	// 1. Валидация полей запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время один раз
	now := uc.timeProvider.Now()

	// 3. Нормализуем новое время к таймзоне сетки и валидируем слот
	var newStartTime time.Time
	if req.HasReschedule() {
		newStartTime = req.StartTime.In(uc.grid.Location()).Truncate(time.Second)
		if err := validateSlot(uc.grid, newStartTime, now); err != nil {
			uc.logger.Warn("UpdateAppointment: slot validation failed for id=%d, time=%s: %v",
				req.ID, newStartTime.Format(time.RFC3339), err)
			return nil, err
		}
	}

	var result *domain.Appointment

	// 4. Чтение, проверка занятости и запись атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Текущее состояние (строка блокируется FOR UPDATE)
		current, err := uc.apptRepo.GetActiveByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.ID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 4.2. При переносе проверяем занятость целевого слота,
		// исключая саму переносимую запись
		if req.HasReschedule() {
			occupied, err := uc.apptRepo.FindOccupiedSlots(
				txCtx,
				newStartTime,
				newStartTime.Add(uc.grid.SlotDuration()),
				ptr.Ptr(current.ID),
			)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to check slot occupancy: %v", err)
				return fmt.Errorf("%w: failed to check slot occupancy: %v", ErrInternal, err)
			}
			if len(occupied) > 0 {
				uc.logger.Warn("UpdateAppointment: target slot %s already taken",
					newStartTime.Format(time.RFC3339))
				return ErrSlotTaken
			}
		}

		// 4.3. Одно обновление той же строки: id и created_at сохраняются
		params := applyPatch(current, req, newStartTime)
		updated, err := uc.apptRepo.Update(txCtx, req.ID, params)
		if err != nil {
			switch {
			case errors.Is(err, apptRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			case errors.Is(err, apptRepo.ErrSlotTaken):
				return ErrSlotTaken
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if apptRepo.IsConcurrencyConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d, start_time=%s",
		result.ID, result.StartTime.Format(time.RFC3339))

	return fromDomain(result, uc.grid.SlotDurationMinutes()), nil
}
