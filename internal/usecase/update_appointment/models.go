package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на частичное обновление записи.
// nil-поле означает "не менять". Для Phone и Reason указатель на пустую
// строку очищает значение.
type Request struct {
	ID        int64
	StartTime *time.Time // Новое начало слота (перенос)
	Name      *string
	Email     *string
	Phone     *string
	Reason    *string
}

// HasReschedule сообщает, затрагивает ли запрос время начала
func (r *Request) HasReschedule() bool {
	return r.StartTime != nil
}

// Response модель ответа с обновленной записью
type Response struct {
	ID              int64
	StartTime       time.Time
	DurationMinutes int
	Name            string
	Email           string
	Phone           *string
	Reason          *string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// fromDomain конвертирует доменную модель в response
func fromDomain(appt *domain.Appointment, durationMinutes int) *Response {
	return &Response{
		ID:              appt.ID,
		StartTime:       appt.StartTime,
		DurationMinutes: durationMinutes,
		Name:            appt.Name,
		Email:           appt.Email,
		Phone:           appt.Phone,
		Reason:          appt.Reason,
		Status:          string(appt.Status),
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
