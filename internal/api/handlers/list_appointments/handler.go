package list_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidPageFormat = "некорректный формат параметра page"
	msgInvalidPage       = "параметр page не может быть отрицательным"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?page=N
// page=0 - текущая неделя, page=N - N недель вперёд
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid page format: page=%q, error=%v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidPageFormat)
			return
		}
		page = parsed
	}

	result, err := h.service.ListByWeek(r.Context(), page)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidPage) {
			h.logger.Warn("GET /appointments - Invalid page: page=%d", page)
			handlers.RespondUnprocessable(w, msgInvalidPage)
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: page=%d, error=%v", page, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
