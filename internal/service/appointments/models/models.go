package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentResponse представление записи для вызывающего слоя
type AppointmentResponse struct {
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

// WeekListResponse записи недели с метаданными пагинации
type WeekListResponse struct {
	Page         int
	WeekStart    time.Time
	WeekEnd      time.Time
	Appointments []*AppointmentResponse
	Count        int

	HasPrevious  bool
	PreviousPage *int
	NextPage     int
}

// FromDomainAppointment конвертирует доменную модель
func FromDomainAppointment(appt *domain.Appointment, durationMinutes int) *AppointmentResponse {
	return &AppointmentResponse{
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

// FromDomainAppointmentList конвертирует список доменных моделей
func FromDomainAppointmentList(appts []*domain.Appointment, durationMinutes int) []*AppointmentResponse {
	out := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		out[i] = FromDomainAppointment(appt, durationMinutes)
	}
	return out
}
