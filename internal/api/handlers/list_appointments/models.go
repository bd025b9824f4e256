package list_appointments

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

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

// WeekListResponse список записей за неделю с метаданными пагинации
type WeekListResponse struct {
	Page         int                   `json:"page"`
	WeekStart    string                `json:"weekStart"`
	WeekEnd      string                `json:"weekEnd"`
	Appointments []AppointmentResponse `json:"appointments"`
	Count        int                   `json:"count"`
	HasPrevious  bool                  `json:"hasPrevious"`
	PreviousPage *int                  `json:"previousPage,omitempty"`
	NextPage     int                   `json:"nextPage"`
}

func fromServiceAppointment(resp *models.AppointmentResponse) AppointmentResponse {
	return AppointmentResponse{
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

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.WeekListResponse) *WeekListResponse {
	items := make([]AppointmentResponse, 0, len(resp.Appointments))
	for _, appt := range resp.Appointments {
		items = append(items, fromServiceAppointment(appt))
	}

	return &WeekListResponse{
		Page:         resp.Page,
		WeekStart:    resp.WeekStart.Truncate(time.Second).Format(time.RFC3339),
		WeekEnd:      resp.WeekEnd.Truncate(time.Second).Format(time.RFC3339),
		Appointments: items,
		Count:        resp.Count,
		HasPrevious:  resp.HasPrevious,
		PreviousPage: resp.PreviousPage,
		NextPage:     resp.NextPage,
	}
}
