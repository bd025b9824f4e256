package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на границе слота
	// или выходит за рабочие часы/дни
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrPastBooking возвращается при попытке забронировать слот в прошлом
	ErrPastBooking = errors.New("create_appointment: cannot book in the past")

	// ErrSlotTaken возвращается, когда слот уже занят другой активной записью
	ErrSlotTaken = errors.New("create_appointment: slot already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
