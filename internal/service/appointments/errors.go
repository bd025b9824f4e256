package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена или отменена.
	// Политика видимости: отменённые записи скрыты от внешнего API,
	// строка остаётся в таблице только для истории
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidPage возвращается при отрицательном смещении недели
	ErrInvalidPage = errors.New("appointments: invalid page")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
