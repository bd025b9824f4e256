package get_available_slots

import "errors"

var (
	// ErrInvalidPage возвращается при отрицательном смещении недели
	ErrInvalidPage = errors.New("get_available_slots: invalid page")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
