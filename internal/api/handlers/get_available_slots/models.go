package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse свободные слоты недели с метаданными пагинации
type AvailableSlotsResponse struct {
	Page         int      `json:"page"`
	WeekStart    string   `json:"weekStart"`
	WeekEnd      string   `json:"weekEnd"`
	Slots        []string `json:"slots"`
	Count        int      `json:"count"`
	HasPrevious  bool     `json:"hasPrevious"`
	PreviousPage *int     `json:"previousPage,omitempty"`
	NextPage     int      `json:"nextPage"`
	HasMore      bool     `json:"hasMore"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.Truncate(time.Second).Format(time.RFC3339))
	}

	return &AvailableSlotsResponse{
		Page:         resp.Page,
		WeekStart:    resp.WeekStart.Truncate(time.Second).Format(time.RFC3339),
		WeekEnd:      resp.WeekEnd.Truncate(time.Second).Format(time.RFC3339),
		Slots:        slots,
		Count:        resp.Count,
		HasPrevious:  resp.HasPrevious,
		PreviousPage: resp.PreviousPage,
		NextPage:     resp.NextPage,
		HasMore:      resp.HasMore,
	}
}
