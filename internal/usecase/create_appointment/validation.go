package create_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует поля запроса (без проверки сетки слотов)
func validateRequest(req *Request) error {
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name cannot exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if err := validateEmail(email); err != nil {
		return err
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

// validateSlot проверяет кандидата на бронирование против сетки:
// выравнивание по границе слота и строгая будущность относительно now.
// now всегда передаётся явно, внутри функции часы не читаются.
func validateSlot(grid *domain.TimeGrid, t, now time.Time) error {
	if !grid.IsAligned(t) {
		return ErrInvalidTimeSlot
	}
	if !t.After(now) {
		return ErrPastBooking
	}
	return nil
}
