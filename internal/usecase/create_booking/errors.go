package create_booking

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("create_booking: tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда время начала сегодня уже прошло
	ErrTooLateToBook = errors.New("create_booking: start time has already passed")

	// ErrTenantClosed возвращается, когда тенант не работает в этот день
	ErrTenantClosed = errors.New("create_booking: tenant is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("create_booking: booking is outside working hours")

	// ErrCrossesMidnight возвращается, когда услуга заканчивается после 24:00
	ErrCrossesMidnight = errors.New("create_booking: booking must end before midnight")

	// ErrSlotUnavailable возвращается, когда интервал пересекается с бронированием или блокировкой
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInvalidBookingData возвращается, когда данные категории не подходят тенанту
	ErrInvalidBookingData = errors.New("create_booking: invalid booking data")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
