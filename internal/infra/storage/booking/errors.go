package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrLockTenantDate возвращается при ошибке взятия advisory lock на дату тенанта
	ErrLockTenantDate = errors.New("booking.repository: failed to lock tenant date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrBookingData возвращается при ошибке (де)сериализации booking_data
	ErrBookingData = errors.New("booking.repository: invalid booking data payload")
)
