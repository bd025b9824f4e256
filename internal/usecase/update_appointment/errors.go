package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда активная запись не найдена.
	// Отменённые записи неадресуемы: для внешнего мира их не существует
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда новое время не лежит на границе
	// слота или выходит за рабочие часы/дни
	ErrInvalidTimeSlot = errors.New("update_appointment: invalid time slot")

	// ErrPastBooking возвращается при попытке перенести запись в прошлое
	ErrPastBooking = errors.New("update_appointment: cannot reschedule into the past")

	// ErrSlotTaken возвращается, когда целевой слот занят другой активной записью
	ErrSlotTaken = errors.New("update_appointment: slot already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
