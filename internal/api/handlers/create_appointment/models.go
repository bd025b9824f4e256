package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	StartTime string  `json:"startTime"` // RFC3339, например "2025-11-11T09:00:00Z"
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	Reason          *string `json:"reason,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	// Временные метки - ISO-8601 c точностью до секунды
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		StartTime: startTime.Truncate(time.Second),
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Reason:    r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		StartTime:       resp.StartTime.Truncate(time.Second).Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Name:            resp.Name,
		Email:           resp.Email,
		Phone:           resp.Phone,
		Reason:          resp.Reason,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Truncate(time.Second).Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Truncate(time.Second).Format(time.RFC3339),
	}
}
