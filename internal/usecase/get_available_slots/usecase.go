package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case получения свободных слотов недели.
// Read-only: выполняется без транзакции, обычным consistent read.
// Возвращённая доступность - приближение на момент чтения: слот может быть
// занят конкурентным запросом сразу после ответа, авторитетная проверка -
// это Conflict при создании.
type UseCase struct {
	apptRepo     AppointmentRepository
	grid         *domain.TimeGrid
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(apptRepo AppointmentRepository, grid *domain.TimeGrid, logger Logger) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		grid:         grid,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает свободные слоты недели page:
// все границы сетки минус занятые минус прошедшие (последнее актуально
// только для текущей недели). Дважды вызванный с теми же входами, возвращает
// идентичную упорядоченную последовательность.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: page=%d", req.Page)

	// 1. Валидация смещения недели
	if req.Page < 0 {
		uc.logger.Warn("GetAvailableSlots: negative page %d", req.Page)
		return nil, fmt.Errorf("%w: page must be non-negative, got %d", ErrInvalidPage, req.Page)
	}

	// 2. Текущее время - один раз на запрос
	now := uc.timeProvider.Now()

	// 3. Разрешаем неделю и полный набор границ сетки
	weekStart, weekEnd := uc.grid.WeekRange(req.Page, now)
	allSlots := uc.grid.SlotBoundaries(weekStart)

	// 4. Занятые слоты недели из хранилища
	occupied, err := uc.apptRepo.FindOccupiedSlots(ctx, weekStart, weekEnd, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupied slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied slots: %v", ErrInternal, err)
	}

	occupiedSet := make(map[int64]struct{}, len(occupied))
	for _, t := range occupied {
		occupiedSet[t.Unix()] = struct{}{}
	}

	// 5. Вычитаем занятое и прошедшее, порядок сохраняется по построению
	available := make([]time.Time, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.After(now) {
			continue
		}
		if _, taken := occupiedSet[slot.Unix()]; taken {
			continue
		}
		available = append(available, slot)
	}

	// 6. Пагинация: has_more - существование границ у следующей недели
	nextWeekStart, _ := uc.grid.WeekRange(req.Page+1, now)
	hasMore := len(uc.grid.SlotBoundaries(nextWeekStart)) > 0

	resp := &Response{
		Page:      req.Page,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Slots:     available,
		Count:     len(available),
		NextPage:  req.Page + 1,
		HasMore:   hasMore,
	}
	if req.Page > 0 {
		resp.HasPrevious = true
		resp.PreviousPage = ptr.Ptr(req.Page - 1)
	}

	uc.logger.Info("GetAvailableSlots: page=%d, %d of %d slots available",
		req.Page, len(available), len(allSlots))

	return resp, nil
}
