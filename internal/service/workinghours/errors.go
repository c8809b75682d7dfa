package workinghours

import "errors"

var (
	// ErrInvalidWeekday возвращается, когда день недели вне диапазона 0..6
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidTime возвращается при некорректном времени открытия/закрытия
	ErrInvalidTime = errors.New("invalid working hours time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
