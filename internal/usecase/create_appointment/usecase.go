package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case создания записи на приём
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

// Execute выполняет use case создания записи.
// Проверка занятости слота и вставка выполняются в одной сериализуемой
// транзакции: между проверкой и записью нет ни внешних вызовов, ни I/O.
// Вторая линия защиты - частичный уникальный индекс в БД, его нарушение
// репозиторий транслирует в занятый слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: start_time=%s, email=%s",
		req.StartTime.Format(time.RFC3339), req.Email)

	// 1. Валидация полей запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время один раз - все проверки видят одно "сейчас"
	now := uc.timeProvider.Now()

	// 3. Нормализуем к референсной таймзоне сетки
	startTime := req.StartTime.In(uc.grid.Location()).Truncate(time.Second)

	// 4. Валидация слота: выравнивание по сетке и будущность
	if err := validateSlot(uc.grid, startTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: slot validation failed for %s: %v",
			startTime.Format(time.RFC3339), err)
		return nil, err
	}

	var result *domain.Appointment

	// 5. Проверка занятости + вставка атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Занят ли слот (FOR UPDATE внутри транзакции)
		occupied, err := uc.apptRepo.FindOccupiedSlots(txCtx, startTime, startTime.Add(uc.grid.SlotDuration()), nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check slot occupancy: %v", err)
			return fmt.Errorf("%w: failed to check slot occupancy: %v", ErrInternal, err)
		}
		if len(occupied) > 0 {
			uc.logger.Warn("CreateAppointment: slot %s already taken", startTime.Format(time.RFC3339))
			return ErrSlotTaken
		}

		// 5.2. Создаем активную запись
		appt := &domain.Appointment{
			StartTime: startTime,
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.TrimSpace(req.Email),
			Phone:     req.Phone,
			Reason:    req.Reason,
			Status:    domain.StatusActive,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Гонка, дошедшая до БД (уникальный индекс или serialization failure),
		// для клиента неотличима от занятого слота
		if apptRepo.IsConcurrencyConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, start_time=%s",
		result.ID, result.StartTime.Format(time.RFC3339))

	return fromDomain(result, uc.grid.SlotDurationMinutes()), nil
}
