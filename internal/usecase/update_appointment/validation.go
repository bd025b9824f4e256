package update_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует поля patch-запроса (без проверки сетки слотов)
func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	if req.StartTime == nil && req.Name == nil && req.Email == nil && req.Phone == nil && req.Reason == nil {
		return fmt.Errorf("%w: at least one field must be provided", ErrInvalidInput)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return fmt.Errorf("%w: name cannot be blank", ErrInvalidInput)
		}
		if len(name) > domain.MaxNameLength {
			return fmt.Errorf("%w: name cannot exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
		}
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			return fmt.Errorf("%w: email cannot be blank", ErrInvalidInput)
		}
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	if req.Phone != nil && len(*req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone cannot exceed %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason cannot exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}

// validateEmail проверяет адрес через net/mail (RFC 5322)
func validateEmail(email string) error {
	if len(email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email cannot exceed %d characters", ErrInvalidInput, domain.MaxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	return nil
}

// validateSlot проверяет новое время против сетки: выравнивание по границе
// слота и строгая будущность относительно now
func validateSlot(grid *domain.TimeGrid, t, now time.Time) error {
	if !grid.IsAligned(t) {
		return ErrInvalidTimeSlot
	}
	if !t.After(now) {
		return ErrPastBooking
	}
	return nil
}

// applyPatch накладывает patch-запрос на текущее состояние записи.
// startTime передаётся отдельно: он уже нормализован к таймзоне сетки.
func applyPatch(current *domain.Appointment, req *Request, startTime time.Time) domain.UpdateParams {
	params := domain.UpdateParams{
		StartTime: current.StartTime,
		Name:      current.Name,
		Email:     current.Email,
		Phone:     current.Phone,
		Reason:    current.Reason,
	}

	if req.StartTime != nil {
		params.StartTime = startTime
	}
	if req.Name != nil {
		params.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		params.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		params.Phone = &phone
	}
	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		params.Reason = &reason
	}

	return params
}
