package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Service сервис простых операций над записями: чтение, список недели, отмена.
// Создание и обновление с их транзакционной проверкой занятости живут
// в отдельных use case'ах.
type Service struct {
	apptRepo     AppointmentRepository
	grid         *domain.TimeGrid
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(apptRepo AppointmentRepository, grid *domain.TimeGrid, logger Logger) *Service {
	return &Service{
		apptRepo:     apptRepo,
		grid:         grid,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает активную запись по ID.
// Отменённые записи скрыты: для них возвращается ErrAppointmentNotFound
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.apptRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt, s.grid.SlotDurationMinutes()), nil
}

// ListByWeek получает активные записи недели page по возрастанию времени начала
func (s *Service) ListByWeek(ctx context.Context, page int) (*models.WeekListResponse, error) {
	s.logger.Info("ListByWeek: page=%d", page)

	if page < 0 {
		s.logger.Warn("ListByWeek: negative page %d", page)
		return nil, fmt.Errorf("%w: page must be non-negative, got %d", ErrInvalidPage, page)
	}

	now := s.timeProvider.Now()
	weekStart, weekEnd := s.grid.WeekRange(page, now)

	appts, err := s.apptRepo.ListActiveByRange(ctx, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("ListByWeek: repository error for page=%d: %v", page, err)
		return nil, fmt.Errorf("%w: ListByWeek - repository error: %v", ErrInternal, err)
	}

	resp := &models.WeekListResponse{
		Page:         page,
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		Appointments: models.FromDomainAppointmentList(appts, s.grid.SlotDurationMinutes()),
		Count:        len(appts),
		NextPage:     page + 1,
	}
	if page > 0 {
		resp.HasPrevious = true
		resp.PreviousPage = ptr.Ptr(page - 1)
	}

	s.logger.Info("ListByWeek: page=%d, %d appointments", page, len(appts))
	return resp, nil
}

// Cancel отменяет активную запись (soft delete: статус cancelled,
// строка сохраняется для истории). Отмена терминальна и не идемпотентна:
// повторная отмена возвращает ErrAppointmentNotFound, так как запись
// больше не адресуема как активная.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	if err := s.apptRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}
