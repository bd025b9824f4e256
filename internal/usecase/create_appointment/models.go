package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	StartTime time.Time // Начало слота, должно лежать на границе сетки
	Name      string    // Имя записавшегося, обязательно
	Email     string    // Email записавшегося, обязателен
	Phone     *string   // Телефон (опционально)
	Reason    *string   // Причина визита (опционально)
}

// Response модель ответа с созданной записью
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
