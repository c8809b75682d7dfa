package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено у тенанта
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("bookings: invalid booking status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("bookings: status transition is not allowed")

	// ErrSlotUnavailable возвращается, когда повторное подтверждение пересекается с бронированием или блокировкой
	ErrSlotUnavailable = errors.New("bookings: slot is not available")

	// ErrOutsideWorkingHours возвращается, когда тенант закрыт или интервал больше не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("bookings: booking is outside working hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
