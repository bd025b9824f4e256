package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidPageFormat = "некорректный формат параметра page"
	msgInvalidPage       = "параметр page не может быть отрицательным"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/available?page=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /appointments/available - Invalid page format: page=%q, error=%v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidPageFormat)
			return
		}
		page = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Page: page})
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidPage) {
			h.logger.Warn("GET /appointments/available - Invalid page: page=%d", page)
			handlers.RespondUnprocessable(w, msgInvalidPage)
			return
		}
		h.logger.Error("GET /appointments/available - Failed to get available slots: page=%d, error=%v", page, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
