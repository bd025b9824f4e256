package update_appointment

import (
	"time"

	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model частичного обновления.
// Отсутствующее поле не меняется. Неизвестные поля отвергаются
// при декодировании (DisallowUnknownFields).
type UpdateAppointmentRequest struct {
	StartTime *string `json:"startTime,omitempty"` // RFC3339
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
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
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		ID:     id,
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Reason: r.Reason,
	}

	if r.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *r.StartTime)
		if err != nil {
			return nil, err
		}
		startTime = startTime.Truncate(time.Second)
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
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
